package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/google/uuid"

	"moneytrail/internal/export"
	"moneytrail/internal/utils"
)

type exportCmd struct {
	user   string
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write a user's records to an xlsx workbook" }
func (*exportCmd) Usage() string {
	return `moneyctl export -user <uuid> [-o <file>]

  Writes the Money Breakdown workbook. Defaults to money-breakdown-<today>.xlsx.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "ID of the user to export.")
	f.StringVar(&c.output, "o", "", "Output file.")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	userID, err := uuid.Parse(c.user)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -user: %v\n", err)
		return subcommands.ExitUsageError
	}

	e, err := openEnv(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer e.Close()

	if c.output == "" {
		c.output = export.FileName(utils.Clock(utils.LoadLocation(e.cfg.Display.Timezone))())
	}

	rows, err := e.records().Rows(ctx, userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading records: %v\n", err)
		return subcommands.ExitFailure
	}

	f, err := os.Create(c.output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	if err := export.WriteWorkbook(f, rows); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Error writing workbook: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Wrote %d records to %s\n", len(rows), c.output)
	return subcommands.ExitSuccess
}
