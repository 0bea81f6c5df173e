package auth

// Validators return the message to show next to the field, or an
// empty string when the value is acceptable.

func ValidateUsername(username string) string {
	if len(username) < 3 {
		return "username must be at least 3 characters long"
	}
	return ""
}

func ValidatePassword(password string) string {
	if len(password) < 6 {
		return "Passwords must be at least 6 characters long"
	}
	return ""
}

func ValidateJokeName(name string) string {
	if len(name) < 3 {
		return "name is too short"
	}
	return ""
}

func ValidateJokeContent(content string) string {
	if len(content) < 10 {
		return "the joke is too short"
	}
	return ""
}

const defaultRedirect = "/jokes"

// safeRedirects is the full set of destinations a login form is
// allowed to send the browser to.
var safeRedirects = []string{"/", "/jokes", "/jokes/new"}

// ResolveRedirect returns candidate only when it matches one of the
// allowed destinations exactly, anything else degrades silently to
// the default. This is what keeps a crafted redirectTo field from
// bouncing users to an attacker-controlled site.
func ResolveRedirect(candidate string) string {
	for _, safe := range safeRedirects {
		if candidate == safe {
			return candidate
		}
	}
	return defaultRedirect
}
