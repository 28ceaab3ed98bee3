package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/google/uuid"

	"moneytrail/configs"
	"moneytrail/internal/middleware"
)

type tokenCmd struct {
	user  string
	email string
	ttl   time.Duration
}

func (*tokenCmd) Name() string     { return "token" }
func (*tokenCmd) Synopsis() string { return "mint a session token for local development" }
func (*tokenCmd) Usage() string {
	return `moneyctl token -user <uuid> [-email <email>] [-ttl <duration>]

  Prints a bearer token signed with JWT_SECRET. Refuses to run with GO_ENV=production.
`
}

func (c *tokenCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "ID of the user the token authenticates.")
	f.StringVar(&c.email, "email", "", "Email claim.")
	f.DurationVar(&c.ttl, "ttl", 0, "Token lifetime. Defaults to TOKEN_TTL.")
}

func (c *tokenCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	userID, err := uuid.Parse(c.user)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -user: %v\n", err)
		return subcommands.ExitUsageError
	}

	cfg := configs.Load()
	if cfg.IsProduction() {
		fmt.Fprintln(os.Stderr, "Error: refusing to mint tokens in production")
		return subcommands.ExitFailure
	}

	ttl := cfg.Auth.TokenTTL
	if c.ttl > 0 {
		ttl = c.ttl
	}

	token, err := middleware.NewSessions(cfg.Auth.JWTSecret, ttl).GenerateJWT(userID, c.email)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Println(token)
	return subcommands.ExitSuccess
}
