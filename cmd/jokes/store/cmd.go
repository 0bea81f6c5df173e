package store

import (
	"context"
	"errors"

	"github.com/below-1/remix-jokes/auth"
	"github.com/below-1/remix-jokes/internal/cmdflags"
	"github.com/below-1/remix-jokes/jokes"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	database := "jokes.db"
	return &cli.Command{
		Name:  "store",
		Usage: "Manage the joke database",
		Flags: []cli.Flag{
			cmdflags.Database(&database),
		},
		Subcommands: []*cli.Command{
			initCmd(&database),
			seedCmd(&database),
		},
	}
}

func initCmd(database *string) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create the database schema without starting the site",
		Action: func(ctx *cli.Context) error {
			store, err := jokes.Open(ctx.Context, *database)
			if err != nil {
				return err
			}
			return store.Close()
		},
	}
}

func seedCmd(database *string) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Load the sample user (kody) and a handful of jokes",
		Action: func(ctx *cli.Context) error {
			store, err := jokes.Open(ctx.Context, *database)
			if err != nil {
				return err
			}
			defer store.Close()
			return seed(ctx.Context, store)
		},
	}
}

type sampleJoke struct {
	name    string
	content string
}

var sampleJokes = []sampleJoke{
	{"Road worker", "I never wanted to believe that my Dad was stealing from his job as a road worker. But when I got home, all the signs were there."},
	{"Frisbee", "I was wondering why the frisbee was getting bigger, then it hit me."},
	{"Trees", "Why do trees seem suspicious on sunny days? Dunno, they're just a bit shady."},
	{"Skeletons", "Why don't skeletons ride roller coasters? They don't have the stomach for it."},
	{"Hippos", "Why don't you find hippopotamuses hiding in trees? They're really good at it."},
	{"Dinner", "What did one plate say to the other plate? Dinner is on me!"},
	{"Elevator", "My first time using an elevator was an uplifting experience. The second time let me down."},
}

func seed(ctx context.Context, store *jokes.Store) error {
	hash, err := auth.NewHasher().Hash("twixrox")
	if err != nil {
		return err
	}
	user, err := store.CreateUser(ctx, "kody", hash)
	var taken jokes.UsernameTaken
	if errors.As(err, &taken) {
		user, err = store.FindUserByUsername(ctx, "kody")
	}
	if err != nil {
		return err
	}
	for _, j := range sampleJokes {
		_, err := store.CreateJoke(ctx, user.ID, j.name, j.content)
		if err != nil {
			return err
		}
	}
	return nil
}
