// Package auth implements the login and registration flow: parsing
// the submitted form, validating its fields, checking credentials
// against the user store, and reporting failures in a shape the page
// can re-render.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/below-1/remix-jokes/jokes"
)

type (
	Flow struct {
		store  *jokes.Store
		hasher *Hasher
	}
)

func NewFlow(store *jokes.Store, hasher *Hasher) *Flow {
	return &Flow{store: store, hasher: hasher}
}

// Submit runs one login or registration attempt. Exactly one of the
// three results is set: the authenticated user, an ActionData payload
// for the form, or an error for failures the form cannot explain to
// the user.
//
// Login failures deliberately use one message for unknown users and
// wrong passwords, the form must not reveal which usernames exist.
func (f *Flow) Submit(ctx context.Context, form LoginForm) (*jokes.User, *ActionData, error) {
	fieldErrors := map[string]string{}
	if msg := ValidateUsername(form.Username); msg != "" {
		fieldErrors["username"] = msg
	}
	if msg := ValidatePassword(form.Password); msg != "" {
		fieldErrors["password"] = msg
	}
	if len(fieldErrors) > 0 {
		return nil, &ActionData{FieldErrors: fieldErrors, Fields: form.echo()}, nil
	}

	switch form.LoginType {
	case "login":
		return f.login(ctx, form)
	case "register":
		return f.register(ctx, form)
	default:
		return nil, &ActionData{
			FormError: "Login type invalid",
			Fields:    form.echo(),
		}, nil
	}
}

func (f *Flow) login(ctx context.Context, form LoginForm) (*jokes.User, *ActionData, error) {
	badCombination := &ActionData{
		FormError: "Username/Password combination is incorrect",
		Fields:    form.echo(),
	}
	user, err := f.store.FindUserByUsername(ctx, form.Username)
	var notFound jokes.UserNotFound
	if errors.As(err, &notFound) {
		return nil, badCombination, nil
	} else if err != nil {
		return nil, nil, fmt.Errorf("unable to run login for %v, cause %w", form.Username, err)
	}
	if !f.hasher.Compare(user.PasswordHash, form.Password) {
		return nil, badCombination, nil
	}
	return user, nil, nil
}

func (f *Flow) register(ctx context.Context, form LoginForm) (*jokes.User, *ActionData, error) {
	exists := &ActionData{
		FormError: fmt.Sprintf("User %q already exists", form.Username),
		Fields:    form.echo(),
	}
	_, err := f.store.FindUserByUsername(ctx, form.Username)
	if err == nil {
		return nil, exists, nil
	}
	var notFound jokes.UserNotFound
	if !errors.As(err, &notFound) {
		return nil, nil, fmt.Errorf("unable to run registration for %v, cause %w", form.Username, err)
	}

	hash, err := f.hasher.Hash(form.Password)
	if err != nil {
		return nil, nil, err
	}
	user, err := f.store.CreateUser(ctx, form.Username, hash)
	var taken jokes.UsernameTaken
	if errors.As(err, &taken) {
		// lost the race against a concurrent registration, the
		// unique index is the authority, not the pre-check above
		return nil, exists, nil
	} else if err != nil {
		return nil, &ActionData{
			FormError: "Something went wrong trying to create new user",
			Fields:    form.echo(),
		}, nil
	}
	return user, nil, nil
}
