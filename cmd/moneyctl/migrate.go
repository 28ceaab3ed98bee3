package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"moneytrail/internal/database"
)

type migrateCmd struct {
	print bool
}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "create the database schema" }
func (*migrateCmd) Usage() string {
	return `moneyctl migrate [-print]

  Applies the embedded schema when the database has not been migrated yet.
`
}

func (c *migrateCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.print, "print", false, "Print the schema instead of applying it.")
}

func (c *migrateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.print {
		fmt.Print(database.Schema())
		return subcommands.ExitSuccess
	}

	e, err := openEnv(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer e.Close()

	if err := database.RunMigrations(ctx, e.db, e.log); err != nil {
		fmt.Fprintf(os.Stderr, "Error running migrations: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
