package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/below-1/remix-jokes/cmd/jokes/serve"
	"github.com/below-1/remix-jokes/cmd/jokes/store"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "jokes",
		Usage: "A tiny joke sharing site with terrible jokes",
		Commands: []*cli.Command{
			serve.Cmd(),
			store.Cmd(),
		},
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	err := app.RunContext(ctx, os.Args)
	if err != nil {
		log.Error().Err(err).Msg("Application failed")
	}
}
