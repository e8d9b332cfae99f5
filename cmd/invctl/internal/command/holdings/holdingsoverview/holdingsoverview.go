// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package holdingsoverview implements the "holdings overview" command.
package holdingsoverview

import (
	"context"

	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/invctl/cmd/invctl/internal/invctlcmd"
	"github.com/bufdev/invctl/internal/invctl/invctlledger"
	"github.com/bufdev/invctl/internal/invctl/invctlstats"
	"github.com/bufdev/invctl/internal/invctl/invctlvaluation"
	"github.com/bufdev/invctl/internal/pkg/cliio"
	"github.com/spf13/pflag"
)

// NewCommand returns a new holdings overview command.
func NewCommand(name string, builder appext.SubCommandBuilder) *appcmd.Command {
	flags := newFlags()
	return &appcmd.Command{
		Use:   name,
		Short: "Display open holdings with cost basis, prices, and profit",
		Args:  appcmd.NoArgs,
		Run: builder.NewRunFunc(
			func(ctx context.Context, container appext.Container) error {
				return run(ctx, container, flags)
			},
		),
		BindFlags: flags.Bind,
	}
}

type flags struct {
	// Dir is the base directory containing invctl.yaml and the ledgers.
	Dir string
	// Format is the output format (table, csv, json).
	Format string
}

func newFlags() *flags {
	return &flags{}
}

// Bind registers the flag definitions with the given flag set.
func (f *flags) Bind(flagSet *pflag.FlagSet) {
	invctlcmd.BindDirFlag(flagSet, &f.Dir)
	invctlcmd.BindFormatFlag(flagSet, &f.Format)
}

func run(_ context.Context, container appext.Container, flags *flags) error {
	format, err := cliio.ParseFormat(flags.Format)
	if err != nil {
		return appcmd.NewInvalidArgumentError(err.Error())
	}
	snapshot, err := invctlcmd.LoadPortfolio(container, flags.Dir)
	if err != nil {
		return err
	}
	localCurrency := snapshot.Config.LocalCurrency
	table := cliio.Table{
		Headers: []string{
			"TICKER",
			"NAME",
			"TYPE",
			"SECTOR",
			"QUANTITY",
			"AVG COST",
			"PRICE",
			"INVESTED",
			"CURRENT",
			"PROFIT",
			"PROFIT %",
			"DAY %",
		},
	}
	for _, valued := range snapshot.Valued {
		table.Rows = append(table.Rows, toRow(valued, localCurrency))
	}
	stats := invctlstats.Aggregate(snapshot.Valued)
	table.Totals = []string{
		"TOTAL",
		"",
		"",
		"",
		"",
		"",
		"",
		cliio.FormatMoney(stats.TotalInvested, localCurrency),
		cliio.FormatMoney(stats.TotalCurrent, localCurrency),
		cliio.FormatSignedMoney(stats.Profit, localCurrency),
		cliio.FormatSignedPercent(stats.ProfitPercent),
		"",
	}
	return cliio.Write(container.Stdout(), format, table, snapshot.Valued)
}

func toRow(valued invctlvaluation.ValuedHolding, localCurrency string) []string {
	nativeCurrency := valued.Currency
	if nativeCurrency == "" {
		nativeCurrency = localCurrency
	}
	dayChange := ""
	if valued.HasQuote {
		dayChange = cliio.FormatSignedPercent(valued.DailyChangePercent)
	}
	return []string{
		valued.Ticker,
		valued.Name,
		invctlledger.BucketKey(valued.AssetType),
		invctlledger.BucketKey(valued.Sector),
		cliio.FormatQuantity(valued.Quantity),
		cliio.FormatMoney(valued.AverageCost, nativeCurrency),
		cliio.FormatMoney(valued.CurrentPriceLocal, localCurrency),
		cliio.FormatMoney(valued.Invested, localCurrency),
		cliio.FormatMoney(valued.Current, localCurrency),
		cliio.FormatSignedMoney(valued.Profit, localCurrency),
		cliio.FormatSignedPercent(valued.ProfitPercent),
		dayChange,
	}
}
