// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package portfolioperformance implements the "portfolio performance" command.
package portfolioperformance

import (
	"context"
	"strconv"

	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/invctl/cmd/invctl/internal/invctlcmd"
	"github.com/bufdev/invctl/internal/invctl/invctlperformance"
	"github.com/bufdev/invctl/internal/invctl/invctlvaluation"
	"github.com/bufdev/invctl/internal/pkg/cliio"
	"github.com/spf13/pflag"
)

const categoriesFlagName = "categories"

// NewCommand returns a new portfolio performance command.
func NewCommand(name string, builder appext.SubCommandBuilder) *appcmd.Command {
	flags := newFlags()
	return &appcmd.Command{
		Use:   name,
		Short: "Display the best and worst performing holdings",
		Long: `Display the best and worst performing holdings by profit percentage.

Only holdings with a positive invested amount and average cost are ranked.
With fewer than six ranked holdings the best and worst lists overlap.

With --categories, display profit per asset type instead.`,
		Args: appcmd.NoArgs,
		Run: builder.NewRunFunc(
			func(ctx context.Context, container appext.Container) error {
				return run(ctx, container, flags)
			},
		),
		BindFlags: flags.Bind,
	}
}

type flags struct {
	Dir        string
	Format     string
	Categories bool
}

func newFlags() *flags {
	return &flags{}
}

// Bind registers the flag definitions with the given flag set.
func (f *flags) Bind(flagSet *pflag.FlagSet) {
	invctlcmd.BindDirFlag(flagSet, &f.Dir)
	invctlcmd.BindFormatFlag(flagSet, &f.Format)
	flagSet.BoolVar(&f.Categories, categoriesFlagName, false, "Display profit per asset type")
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
	if flags.Categories {
		categories := invctlperformance.CategoryBreakdown(snapshot.Valued)
		table := cliio.Table{
			Headers: []string{"CATEGORY", "HOLDINGS", "INVESTED", "CURRENT", "PROFIT", "PROFIT %", "ALLOCATION"},
		}
		for _, category := range categories {
			table.Rows = append(table.Rows, []string{
				category.Name,
				strconv.Itoa(category.Count),
				cliio.FormatMoney(category.Invested, localCurrency),
				cliio.FormatMoney(category.Current, localCurrency),
				cliio.FormatSignedMoney(category.Profit, localCurrency),
				cliio.FormatSignedPercent(category.ProfitPercent),
				cliio.FormatPercent(category.AllocationPercent),
			})
		}
		return cliio.Write(container.Stdout(), format, table, categories)
	}
	ranking := invctlperformance.Rank(snapshot.Valued)
	table := cliio.Table{
		Headers: []string{"RANK", "TICKER", "NAME", "INVESTED", "CURRENT", "PROFIT", "PROFIT %"},
	}
	for _, valued := range ranking.Top {
		table.Rows = append(table.Rows, toRow("top", valued, localCurrency))
	}
	for _, valued := range ranking.Bottom {
		table.Rows = append(table.Rows, toRow("bottom", valued, localCurrency))
	}
	table.Totals = []string{"AVERAGE", "", "", "", "", "", cliio.FormatSignedPercent(ranking.Average)}
	return cliio.Write(container.Stdout(), format, table, []invctlperformance.Ranking{ranking})
}

func toRow(rank string, valued invctlvaluation.ValuedHolding, localCurrency string) []string {
	return []string{
		rank,
		valued.Ticker,
		valued.Name,
		cliio.FormatMoney(valued.Invested, localCurrency),
		cliio.FormatMoney(valued.Current, localCurrency),
		cliio.FormatSignedMoney(valued.Profit, localCurrency),
		cliio.FormatSignedPercent(valued.ProfitPercent),
	}
}
