package auth_test

import (
	"context"
	"testing"

	"github.com/below-1/remix-jokes/auth"
	"github.com/below-1/remix-jokes/internal/testutil"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testFlow(ctx context.Context, t *testing.T) (*auth.Flow, func() int64, func()) {
	store, cleanup := testutil.AcquireStore(ctx, t, "flow")
	flow := auth.NewFlow(store, auth.NewHasherWithCost(bcrypt.MinCost))
	count := func() int64 {
		n, err := store.CountUsers(ctx)
		if err != nil {
			t.Fatal(err)
		}
		return n
	}
	return flow, count, cleanup
}

func registerForm(username, password string) auth.LoginForm {
	return auth.LoginForm{
		LoginType:  "register",
		Username:   username,
		Password:   password,
		RedirectTo: "/jokes",
	}
}

func TestRegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	flow, count, cleanup := testFlow(ctx, t)
	defer cleanup()

	user, data, err := flow.Submit(ctx, registerForm("bob12", "secret1"))
	require.NoError(t, err)
	require.Nil(t, data)
	require.NotNil(t, user)
	require.Equal(t, "bob12", user.Username)
	require.EqualValues(t, 1, count())

	login := registerForm("bob12", "secret1")
	login.LoginType = "login"
	back, data, err := flow.Submit(ctx, login)
	require.NoError(t, err)
	require.Nil(t, data)
	require.Equal(t, user.ID, back.ID)
}

func TestRegisterTwiceConflicts(t *testing.T) {
	ctx := context.Background()
	flow, count, cleanup := testFlow(ctx, t)
	defer cleanup()

	_, data, err := flow.Submit(ctx, registerForm("bob12", "secret1"))
	require.NoError(t, err)
	require.Nil(t, data)

	user, data, err := flow.Submit(ctx, registerForm("bob12", "secret1"))
	require.NoError(t, err)
	require.Nil(t, user)
	require.NotNil(t, data)
	require.Equal(t, `User "bob12" already exists`, data.FormError)
	require.Equal(t, map[string]string{
		"loginType": "register",
		"username":  "bob12",
		"password":  "secret1",
	}, data.Fields)
	require.EqualValues(t, 1, count(), "conflicting registration must not add a user")
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	flow, _, cleanup := testFlow(ctx, t)
	defer cleanup()

	_, data, err := flow.Submit(ctx, registerForm("bob12", "secret1"))
	require.NoError(t, err)
	require.Nil(t, data)

	wrongPassword := auth.LoginForm{LoginType: "login", Username: "bob12", Password: "not-it-1"}
	noSuchUser := auth.LoginForm{LoginType: "login", Username: "nobody", Password: "secret1"}

	user, badPw, err := flow.Submit(ctx, wrongPassword)
	require.NoError(t, err)
	require.Nil(t, user)
	require.NotNil(t, badPw)

	user, badUser, err := flow.Submit(ctx, noSuchUser)
	require.NoError(t, err)
	require.Nil(t, user)
	require.NotNil(t, badUser)

	require.Equal(t, badPw.FormError, badUser.FormError,
		"wrong password and unknown user must produce the same message")
	require.Equal(t, "Username/Password combination is incorrect", badPw.FormError)
}

func TestFieldValidationShortCircuitsLookup(t *testing.T) {
	ctx := context.Background()
	flow, count, cleanup := testFlow(ctx, t)
	defer cleanup()

	user, data, err := flow.Submit(ctx, registerForm("ab", "12345"))
	require.NoError(t, err)
	require.Nil(t, user)
	require.NotNil(t, data)
	require.Empty(t, data.FormError)
	require.Equal(t, "username must be at least 3 characters long", data.FieldErrors["username"])
	require.Equal(t, "Passwords must be at least 6 characters long", data.FieldErrors["password"])
	require.Equal(t, "ab", data.Fields["username"])
	require.EqualValues(t, 0, count())
}

func TestInvalidLoginType(t *testing.T) {
	ctx := context.Background()
	flow, _, cleanup := testFlow(ctx, t)
	defer cleanup()

	form := registerForm("bob12", "secret1")
	form.LoginType = "sudo"
	user, data, err := flow.Submit(ctx, form)
	require.NoError(t, err)
	require.Nil(t, user)
	require.NotNil(t, data)
	require.Equal(t, "Login type invalid", data.FormError)
	require.Equal(t, "sudo", data.Fields["loginType"])
}
