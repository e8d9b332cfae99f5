// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package quotelist implements the "quote list" command.
package quotelist

import (
	"context"
	"slices"
	"strconv"

	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/invctl/cmd/invctl/internal/invctlcmd"
	"github.com/bufdev/invctl/internal/invctl/invctlpath"
	"github.com/bufdev/invctl/internal/invctl/invctlstore"
	"github.com/bufdev/invctl/internal/invctl/invctlvaluation"
	"github.com/bufdev/invctl/internal/pkg/cliio"
	"github.com/spf13/pflag"
)

// NewCommand returns a new quote list command.
func NewCommand(name string, builder appext.SubCommandBuilder) *appcmd.Command {
	flags := newFlags()
	return &appcmd.Command{
		Use:   name,
		Short: "List the stored quotes",
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
}

func newFlags() *flags {
	return &flags{}
}

// Bind registers the flag definitions with the given flag set.
func (f *flags) Bind(flagSet *pflag.FlagSet) {
	invctlcmd.BindDirFlag(flagSet, &f.Dir)
	invctlcmd.BindFormatFlag(flagSet, &f.Format)
}

type tickerQuote struct {
	Ticker string `json:"ticker"`
	invctlvaluation.Quote
}

func run(_ context.Context, container appext.Container, flags *flags) error {
	format, err := cliio.ParseFormat(flags.Format)
	if err != nil {
		return appcmd.NewInvalidArgumentError(err.Error())
	}
	quotes, err := invctlstore.ReadQuotes(invctlpath.QuotesFilePath(flags.Dir))
	if err != nil {
		return err
	}
	for _, parseWarning := range quotes.ParseWarnings {
		container.Logger().Warn("unparseable quote value coerced to zero", "warning", parseWarning.String())
	}
	tickers := make([]string, 0, len(quotes.Quotes))
	for ticker := range quotes.Quotes {
		tickers = append(tickers, ticker)
	}
	slices.Sort(tickers)
	table := cliio.Table{
		Headers: []string{"TICKER", "PRICE", "PREVIOUS CLOSE", "CHANGE", "DAY %", "MOCK"},
	}
	tickerQuotes := make([]tickerQuote, 0, len(tickers))
	for _, ticker := range tickers {
		quote := quotes.Quotes[ticker]
		tickerQuotes = append(tickerQuotes, tickerQuote{Ticker: ticker, Quote: quote})
		table.Rows = append(table.Rows, []string{
			ticker,
			cliio.FormatQuantity(quote.Price),
			cliio.FormatQuantity(quote.PreviousClose),
			cliio.FormatQuantity(quote.Change),
			cliio.FormatSignedPercent(invctlvaluation.DailyChangePercent(quote)),
			strconv.FormatBool(quote.IsMock),
		})
	}
	return cliio.Write(container.Stdout(), format, table, tickerQuotes)
}
