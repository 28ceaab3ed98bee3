package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"
	"github.com/google/uuid"

	"moneytrail/internal/finance"
	"moneytrail/internal/format"
	"moneytrail/internal/utils"
)

type summaryCmd struct {
	user string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "print a user's records and latest snapshot" }
func (*summaryCmd) Usage() string {
	return `moneyctl summary -user <uuid>

  Prints every record of the user sorted by date, then the latest
  snapshot with its debt ratios and the dataset currency.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "ID of the user to report on.")
}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	svc := e.records()
	rows, err := svc.Rows(ctx, userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading records: %v\n", err)
		return subcommands.ExitFailure
	}
	series, err := svc.Series(ctx, userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error aggregating records: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := writeSummary(os.Stdout, rows, series.DatasetCurrency); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing summary: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// writeSummary renders the records table followed by the latest snapshot
func writeSummary(w io.Writer, rows []finance.Row, datasetCurrency string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintf(w, "No records. Dataset currency: %s\n", datasetCurrency)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Date\tGross income\tTaxes paid\tAssets ex cash\tCash\tDebt\tTotal assets\tNet worth\t")
	for _, row := range rows {
		r := row.Record
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			utils.DisplayDate(r.Date),
			format.Amount(r.GrossIncomeYtd, r.Currency),
			format.Amount(r.TaxesPaidYtd, r.Currency),
			format.Amount(r.AssetsExCash, r.Currency),
			format.Amount(r.Cash, r.Currency),
			format.Amount(r.Debt, r.Currency),
			format.Amount(row.Metrics.TotalAssets, r.Currency),
			format.Amount(row.Metrics.NetWorth, r.Currency),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	latest := rows[len(rows)-1]
	toAssets, toNetWorth := finance.DebtRatios(latest.Record.Debt, latest.Metrics)
	_, err := fmt.Fprintf(w, "\nLatest (%s): net worth %s, debt/assets %s, debt/net worth %s\nDataset currency: %s\n",
		utils.DisplayDate(latest.Record.Date),
		format.AmountK(latest.Metrics.NetWorth, datasetCurrency),
		format.Percent(toAssets, 2),
		format.Percent(toNetWorth, 2),
		datasetCurrency,
	)
	return err
}
