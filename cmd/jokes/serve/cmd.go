package serve

import (
	"github.com/below-1/remix-jokes/auth"
	"github.com/below-1/remix-jokes/internal/cmdflags"
	"github.com/below-1/remix-jokes/internal/httpserver"
	"github.com/below-1/remix-jokes/jokes"
	"github.com/below-1/remix-jokes/session"
	"github.com/below-1/remix-jokes/web"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	bindAddr := "localhost:7007"
	database := "jokes.db"
	keyEnvVar := ""
	sessionTTL := session.DefaultTTL
	insecureCookie := false
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the joke site",
		Flags: []cli.Flag{
			cmdflags.Bind(&bindAddr),
			cmdflags.Database(&database),
			cmdflags.SessionKeyEnvVar(&keyEnvVar),
			&cli.DurationFlag{
				Name:        "session-ttl",
				Usage:       "How long a session cookie stays valid",
				Destination: &sessionTTL,
				Value:       sessionTTL,
			},
			&cli.BoolFlag{
				Name:        "insecure-cookie",
				Usage:       "Allow the session cookie over plain HTTP (local development only)",
				Destination: &insecureCookie,
				Value:       insecureCookie,
			},
		},
		Action: func(ctx *cli.Context) error {
			key, err := session.KeyFromEnv(keyEnvVar, nil, nil)
			if err != nil {
				return err
			}
			store, err := jokes.Open(ctx.Context, database)
			if err != nil {
				return err
			}
			defer store.Close()
			sessions := session.NewManager(key, sessionTTL, !insecureCookie)
			flow := auth.NewFlow(store, auth.NewHasher())
			handler := web.AsHandler(store, flow, sessions)
			return httpserver.Serve(ctx.Context, bindAddr, handler)
		},
	}
}
