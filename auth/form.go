package auth

import "net/url"

type (
	// ActionData is what a failed form submission sends back to the
	// page: a whole-form error, per-field errors, and the submitted
	// values so the form can be repopulated. It never outlives the
	// request that produced it.
	ActionData struct {
		FormError   string            `json:"formError,omitempty"`
		FieldErrors map[string]string `json:"fieldErrors,omitempty"`
		Fields      map[string]string `json:"fields,omitempty"`
	}

	LoginForm struct {
		LoginType  string
		Username   string
		Password   string
		RedirectTo string
	}

	JokeForm struct {
		Name    string
		Content string
	}
)

// Malformed is the whole-form error used when a submission is missing
// required fields, a distinct failure from per-field validation.
func Malformed() *ActionData {
	return &ActionData{FormError: "Form must be submitted correctly"}
}

// ParseLoginForm extracts the login fields from a submission. The
// second return value reports whether the submission had the required
// shape at all, field content is validated later by the flow.
func ParseLoginForm(values url.Values) (LoginForm, bool) {
	for _, field := range []string{"loginType", "username", "password"} {
		if _, ok := values[field]; !ok {
			return LoginForm{}, false
		}
	}
	return LoginForm{
		LoginType:  values.Get("loginType"),
		Username:   values.Get("username"),
		Password:   values.Get("password"),
		RedirectTo: ResolveRedirect(values.Get("redirectTo")),
	}, true
}

func ParseJokeForm(values url.Values) (JokeForm, bool) {
	for _, field := range []string{"name", "content"} {
		if _, ok := values[field]; !ok {
			return JokeForm{}, false
		}
	}
	return JokeForm{
		Name:    values.Get("name"),
		Content: values.Get("content"),
	}, true
}

func (f LoginForm) echo() map[string]string {
	return map[string]string{
		"loginType": f.LoginType,
		"username":  f.Username,
		"password":  f.Password,
	}
}

func (f JokeForm) Echo() map[string]string {
	return map[string]string{
		"name":    f.Name,
		"content": f.Content,
	}
}

// Validate checks the joke fields, returning nil when the joke is
// worth storing.
func (f JokeForm) Validate() *ActionData {
	fieldErrors := map[string]string{}
	if msg := ValidateJokeName(f.Name); msg != "" {
		fieldErrors["name"] = msg
	}
	if msg := ValidateJokeContent(f.Content); msg != "" {
		fieldErrors["content"] = msg
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return &ActionData{FieldErrors: fieldErrors, Fields: f.Echo()}
}
