// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package portfoliostats implements the "portfolio stats" command.
package portfoliostats

import (
	"context"
	"strconv"

	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/invctl/cmd/invctl/internal/invctlcmd"
	"github.com/bufdev/invctl/internal/invctl/invctlledger"
	"github.com/bufdev/invctl/internal/invctl/invctlstats"
	"github.com/bufdev/invctl/internal/pkg/cliio"
	"github.com/spf13/pflag"
)

const (
	assetTypeFlagName = "asset-type"
	sectorFlagName    = "sector"
	currencyFlagName  = "currency"
	tickerFlagName    = "ticker"
)

// NewCommand returns a new portfolio stats command.
func NewCommand(name string, builder appext.SubCommandBuilder) *appcmd.Command {
	flags := newFlags()
	return &appcmd.Command{
		Use:   name,
		Short: "Display aggregated portfolio statistics",
		Long: `Display aggregated portfolio statistics.

Filters may be repeated or comma-separated and match case-insensitively.
Percentages are relative to the filtered holdings.`,
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
	AssetTypes []string
	Sectors    []string
	Currencies []string
	Tickers    []string
}

func newFlags() *flags {
	return &flags{}
}

// Bind registers the flag definitions with the given flag set.
func (f *flags) Bind(flagSet *pflag.FlagSet) {
	invctlcmd.BindDirFlag(flagSet, &f.Dir)
	invctlcmd.BindFormatFlag(flagSet, &f.Format)
	flagSet.StringSliceVar(&f.AssetTypes, assetTypeFlagName, nil, "Only include holdings of these asset types")
	flagSet.StringSliceVar(&f.Sectors, sectorFlagName, nil, "Only include holdings in these sectors")
	flagSet.StringSliceVar(&f.Currencies, currencyFlagName, nil, "Only include holdings in these native currencies")
	flagSet.StringSliceVar(&f.Tickers, tickerFlagName, nil, "Only include these tickers")
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
	stats := invctlstats.AggregateFiltered(
		snapshot.Valued,
		invctlstats.Filter{
			AssetTypes: flags.AssetTypes,
			Sectors:    flags.Sectors,
			Currencies: flags.Currencies,
			Tickers:    flags.Tickers,
		},
	)
	localCurrency := snapshot.Config.LocalCurrency
	table := cliio.Table{
		Headers: []string{"METRIC", "VALUE"},
		Rows: [][]string{
			{"Total invested", cliio.FormatMoney(stats.TotalInvested, localCurrency)},
			{"Current value", cliio.FormatMoney(stats.TotalCurrent, localCurrency)},
			{"Profit", cliio.FormatSignedMoney(stats.Profit, localCurrency)},
			{"Profit %", cliio.FormatSignedPercent(stats.ProfitPercent)},
			{"Holdings", strconv.Itoa(stats.DiversificationCount)},
			{"Monthly dividends", cliio.FormatMoney(stats.TotalMonthlyDividends, localCurrency)},
			{"Stocks %", cliio.FormatPercent(stats.StocksPercent)},
			{"Crypto %", cliio.FormatPercent(stats.CryptoPercent)},
			{"Invested in USD", cliio.FormatMoney(stats.InvestedUSD, invctlledger.CurrencyUSD)},
			{"Daily profit (USD holdings)", cliio.FormatSignedMoney(stats.DailyProfitLocal, localCurrency)},
			{"USD rate", cliio.FormatQuantity(snapshot.FXRate)},
		},
	}
	return cliio.Write(container.Stdout(), format, table, []invctlstats.Stats{stats})
}
