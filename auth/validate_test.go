package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	type testCase struct {
		username string
		valid    bool
	}
	for _, tc := range []testCase{
		{"", false},
		{"ab", false},
		{"bob", true},
		{"bob12", true},
		{strings.Repeat("a", 100), true},
	} {
		msg := ValidateUsername(tc.username)
		if tc.valid {
			require.Empty(t, msg, "username %q should be valid", tc.username)
		} else {
			require.Equal(t, "username must be at least 3 characters long", msg)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	type testCase struct {
		password string
		valid    bool
	}
	for _, tc := range []testCase{
		{"", false},
		{"12345", false},
		{"secret", true},
		{"secret1", true},
	} {
		msg := ValidatePassword(tc.password)
		if tc.valid {
			require.Empty(t, msg, "password %q should be valid", tc.password)
		} else {
			require.Equal(t, "Passwords must be at least 6 characters long", msg)
		}
	}
}

func TestValidateJokeFields(t *testing.T) {
	require.Equal(t, "name is too short", ValidateJokeName("ab"))
	require.Empty(t, ValidateJokeName("abc"))
	require.Equal(t, "the joke is too short", ValidateJokeContent("short one"))
	require.Empty(t, ValidateJokeContent("long enough to be funny"))
}

func TestResolveRedirect(t *testing.T) {
	type testCase struct {
		candidate string
		want      string
	}
	for _, tc := range []testCase{
		{"/", "/"},
		{"/jokes", "/jokes"},
		{"/jokes/new", "/jokes/new"},
		{"", "/jokes"},
		{"/jokes/", "/jokes"},
		{"/admin", "/jokes"},
		{"https://evil.example.com", "/jokes"},
		{"https://evil.example.com/jokes", "/jokes"},
		{"//evil.example.com", "/jokes"},
		{"/jokes/../../etc/passwd", "/jokes"},
		{"/JOKES", "/jokes"},
	} {
		require.Equal(t, tc.want, ResolveRedirect(tc.candidate), "candidate %q", tc.candidate)
	}
}
