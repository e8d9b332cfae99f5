// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package holdingsclosed implements the "holdings closed" command.
package holdingsclosed

import (
	"context"
	"strconv"
	"time"

	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/invctl/cmd/invctl/internal/invctlcmd"
	"github.com/bufdev/invctl/internal/invctl/invctlholdings"
	"github.com/bufdev/invctl/internal/invctl/invctlstore"
	"github.com/bufdev/invctl/internal/pkg/cliio"
	"github.com/spf13/pflag"
)

const (
	startFlagName = "start"
	endFlagName   = "end"
)

// NewCommand returns a new holdings closed command.
func NewCommand(name string, builder appext.SubCommandBuilder) *appcmd.Command {
	flags := newFlags()
	return &appcmd.Command{
		Use:   name,
		Short: "Display closed positions and realized profit",
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
	Dir    string
	Format string
	Start  string
	End    string
}

func newFlags() *flags {
	return &flags{}
}

// Bind registers the flag definitions with the given flag set.
func (f *flags) Bind(flagSet *pflag.FlagSet) {
	invctlcmd.BindDirFlag(flagSet, &f.Dir)
	invctlcmd.BindFormatFlag(flagSet, &f.Format)
	flagSet.StringVar(&f.Start, startFlagName, "", "Only count sales on or after this date (YYYY-MM-DD)")
	flagSet.StringVar(&f.End, endFlagName, "", "Only count sales before this date (YYYY-MM-DD)")
}

// closedHolding is the JSON output for one closed position.
type closedHolding struct {
	Ticker         string  `json:"ticker"`
	Name           string  `json:"name,omitempty"`
	AssetType      string  `json:"asset_type,omitempty"`
	Sales          int     `json:"sales"`
	RealizedProfit float64 `json:"realized_profit"`
}

func run(_ context.Context, container appext.Container, flags *flags) error {
	format, err := cliio.ParseFormat(flags.Format)
	if err != nil {
		return appcmd.NewInvalidArgumentError(err.Error())
	}
	start, err := parseOptionalDate(startFlagName, flags.Start)
	if err != nil {
		return err
	}
	end, err := parseOptionalDate(endFlagName, flags.End)
	if err != nil {
		return err
	}
	snapshot, err := invctlcmd.LoadPortfolio(container, flags.Dir)
	if err != nil {
		return err
	}
	closed := invctlholdings.ApplyOverrides(snapshot.Result.Closed(), snapshot.Config.SymbolOverrides)
	salesByTicker := make(map[string][]invctlholdings.Sale)
	for _, sale := range snapshot.Result.SalesBetween(start, end) {
		salesByTicker[sale.Ticker] = append(salesByTicker[sale.Ticker], sale)
	}
	localCurrency := snapshot.Config.LocalCurrency
	table := cliio.Table{
		Headers: []string{"TICKER", "NAME", "CURRENCY", "SALES", "REALIZED PROFIT"},
	}
	closedHoldings := make([]closedHolding, 0, len(closed))
	for _, holding := range closed {
		sales := salesByTicker[holding.Ticker]
		var realizedProfit float64
		for _, sale := range sales {
			realizedProfit += sale.RealizedProfit
		}
		currency := holding.Currency
		if currency == "" {
			currency = localCurrency
		}
		table.Rows = append(table.Rows, []string{
			holding.Ticker,
			holding.Name,
			currency,
			strconv.Itoa(len(sales)),
			cliio.FormatSignedMoney(realizedProfit, currency),
		})
		closedHoldings = append(closedHoldings, closedHolding{
			Ticker:         holding.Ticker,
			Name:           holding.Name,
			AssetType:      holding.AssetType,
			Sales:          len(sales),
			RealizedProfit: realizedProfit,
		})
	}
	// The totals row covers every sale in the period, including partial sales
	// of positions that are still open.
	table.Totals = []string{
		"TOTAL",
		"",
		"",
		"",
		cliio.FormatSignedMoney(snapshot.Result.RealizedProfitBetween(start, end), localCurrency),
	}
	return cliio.Write(container.Stdout(), format, table, closedHoldings)
}

func parseOptionalDate(flagName string, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	date, err := invctlstore.ParseDate(value)
	if err != nil {
		return time.Time{}, appcmd.NewInvalidArgumentErrorf("invalid --%s: %v", flagName, err)
	}
	return date, nil
}
