package jokes_test

import (
	"context"
	"errors"
	"testing"

	"github.com/below-1/remix-jokes/internal/testutil"
	"github.com/below-1/remix-jokes/jokes"
)

func TestCachedJokes(t *testing.T) {
	ctx := context.Background()
	store, cleanup := testutil.AcquirePopulatedStore(ctx, t, "cache", func(ctx context.Context, s *jokes.Store) error {
		_, err := s.CreateUser(ctx, "kody", "hash")
		return err
	})
	defer cleanup()

	user, err := store.FindUserByUsername(ctx, "kody")
	if err != nil {
		t.Fatal(err)
	}
	cached := jokes.NewCachedJokes(store)
	joke, err := cached.CreateJoke(ctx, user.ID, "Frisbee", "I was wondering why the frisbee was getting bigger, then it hit me.")
	if err != nil {
		t.Fatal(err)
	}

	// a fresh wrapper reads through to the store, the one that
	// created the joke serves it from the primed cache
	for _, c := range []*jokes.CachedJokes{cached, jokes.NewCachedJokes(store)} {
		got, err := c.GetJoke(ctx, joke.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.ID != joke.ID || got.Content != joke.Content {
			t.Fatalf("unexpected joke %+v", got)
		}
	}

	_, err = cached.GetJoke(ctx, "no-such-joke")
	var notFound jokes.JokeNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected JokeNotFound, got %v", err)
	}
}
