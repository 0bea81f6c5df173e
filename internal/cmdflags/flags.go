package cmdflags

import (
	"github.com/below-1/remix-jokes/session"
	"github.com/urfave/cli/v2"
)

func Database(out *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "database",
		Aliases:     []string{"db", "d"},
		Usage:       "Path to the sqlite database holding users and jokes",
		Destination: out,
		Value:       *out,
	}
}

func Bind(out *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "bind",
		Usage:       "Address to bind for incoming requests",
		Destination: out,
		Value:       *out,
	}
}

func SessionKeyEnvVar(out *string) cli.Flag {
	if len(*out) == 0 {
		*out = session.KeyEnvVar
	}
	return &cli.StringFlag{
		Name:        "session-key-envvar-name",
		Usage:       "Name of the environment variable that holds the session signing key. The key itself should not be passed as an argument",
		Value:       *out,
		Destination: out,
	}
}
