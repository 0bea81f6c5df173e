package auth

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLoginForm(t *testing.T) {
	form, ok := ParseLoginForm(url.Values{
		"loginType":  {"login"},
		"username":   {"kody"},
		"password":   {"twixrox"},
		"redirectTo": {"/"},
	})
	require.True(t, ok)
	require.Equal(t, LoginForm{
		LoginType:  "login",
		Username:   "kody",
		Password:   "twixrox",
		RedirectTo: "/",
	}, form)

	// a hostile redirect target degrades to the default without
	// making the submission malformed
	form, ok = ParseLoginForm(url.Values{
		"loginType":  {"login"},
		"username":   {"kody"},
		"password":   {"twixrox"},
		"redirectTo": {"https://evil.example.com"},
	})
	require.True(t, ok)
	require.Equal(t, "/jokes", form.RedirectTo)

	// redirectTo is optional, the credential fields are not
	_, ok = ParseLoginForm(url.Values{
		"loginType": {"login"},
		"username":  {"kody"},
		"password":  {"twixrox"},
	})
	require.True(t, ok)
	for _, missing := range []string{"loginType", "username", "password"} {
		values := url.Values{
			"loginType": {"login"},
			"username":  {"kody"},
			"password":  {"twixrox"},
		}
		delete(values, missing)
		_, ok := ParseLoginForm(values)
		require.False(t, ok, "submission without %v should be malformed", missing)
	}
}

func TestParseJokeForm(t *testing.T) {
	form, ok := ParseJokeForm(url.Values{
		"name":    {"Frisbee"},
		"content": {"I was wondering why the frisbee was getting bigger, then it hit me."},
	})
	require.True(t, ok)
	require.Equal(t, "Frisbee", form.Name)

	_, ok = ParseJokeForm(url.Values{"name": {"Frisbee"}})
	require.False(t, ok)
	_, ok = ParseJokeForm(url.Values{"content": {"it hit me"}})
	require.False(t, ok)
}

func TestJokeFormValidate(t *testing.T) {
	data := JokeForm{Name: "ab", Content: "too short"}.Validate()
	require.NotNil(t, data)
	require.Equal(t, "name is too short", data.FieldErrors["name"])
	require.Equal(t, "the joke is too short", data.FieldErrors["content"])
	require.Equal(t, "ab", data.Fields["name"])
	require.Equal(t, "too short", data.Fields["content"])

	require.Nil(t, JokeForm{Name: "Trees", Content: "they're just a bit shady"}.Validate())
}
