package testutil

import (
	"context"
	"os"
	"path/filepath"

	"github.com/below-1/remix-jokes/jokes"
)

type (
	TestLog interface {
		Fatal(...interface{})
		Log(...interface{})
	}
)

// AcquireStore opens a fresh store backed by a throw-away sqlite file.
func AcquireStore(ctx context.Context, t TestLog, name string) (*jokes.Store, func()) {
	dir, err := os.MkdirTemp("", "jokes-tests")
	if err != nil {
		t.Fatal(err)
	}
	abspath := filepath.Join(dir, name+".db")
	store, err := jokes.Open(ctx, abspath)
	if err != nil {
		t.Fatal(err)
	}
	return store, func() {
		err := store.Close()
		if err != nil {
			t.Log("unable to close store", err)
		}
		err = os.RemoveAll(dir)
		if err != nil {
			t.Log("unable to cleanup temp dir", dir)
		}
	}
}

// AcquirePopulatedStore opens a throw-away store and runs loader on it
// before handing it to the test.
func AcquirePopulatedStore(ctx context.Context, t TestLog, name string, loader func(context.Context, *jokes.Store) error) (*jokes.Store, func()) {
	store, cleanup := AcquireStore(ctx, t, name)
	if loader != nil {
		err := loader(ctx, store)
		if err != nil {
			cleanup()
			t.Fatal(err)
		}
	}
	return store, cleanup
}
