// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package quoteset implements the "quote set" command.
package quoteset

import (
	"context"
	"fmt"

	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/invctl/cmd/invctl/internal/invctlcmd"
	"github.com/bufdev/invctl/internal/invctl/invctlledger"
	"github.com/bufdev/invctl/internal/invctl/invctlpath"
	"github.com/bufdev/invctl/internal/invctl/invctlstore"
	"github.com/bufdev/invctl/internal/invctl/invctlvaluation"
	"github.com/bufdev/invctl/internal/pkg/cliio"
	"github.com/spf13/pflag"
)

const (
	priceFlagName         = "price"
	previousCloseFlagName = "previous-close"
	changeFlagName        = "change"
	changePercentFlagName = "change-percent"
	mockFlagName          = "mock"
)

// NewCommand returns a new quote set command.
func NewCommand(name string, builder appext.SubCommandBuilder) *appcmd.Command {
	flags := newFlags()
	return &appcmd.Command{
		Use:   name + " <ticker>",
		Short: "Set the quote for a ticker",
		Long: `Set the quote for a ticker in quotes.yaml, replacing any existing quote.

Prices are per unit in the ticker's native currency.`,
		Args: appcmd.ExactArgs(1),
		Run: builder.NewRunFunc(
			func(ctx context.Context, container appext.Container) error {
				return run(ctx, container, flags)
			},
		),
		BindFlags: flags.Bind,
	}
}

type flags struct {
	Dir           string
	Price         string
	PreviousClose string
	Change        string
	ChangePercent string
	Mock          bool
}

func newFlags() *flags {
	return &flags{}
}

// Bind registers the flag definitions with the given flag set.
func (f *flags) Bind(flagSet *pflag.FlagSet) {
	invctlcmd.BindDirFlag(flagSet, &f.Dir)
	flagSet.StringVar(&f.Price, priceFlagName, "", "The current price (required)")
	flagSet.StringVar(&f.PreviousClose, previousCloseFlagName, "", "The previous close")
	flagSet.StringVar(&f.Change, changeFlagName, "", "The absolute change since the previous close")
	flagSet.StringVar(&f.ChangePercent, changePercentFlagName, "", "The percentage change since the previous close")
	flagSet.BoolVar(&f.Mock, mockFlagName, false, "Mark the quote as synthesized")
}

func run(_ context.Context, container appext.Container, flags *flags) error {
	ticker := invctlledger.NormalizeTicker(container.Arg(0))
	if ticker == "" {
		return appcmd.NewInvalidArgumentError("ticker is required")
	}
	if flags.Price == "" {
		return appcmd.NewInvalidArgumentErrorf("--%s is required", priceFlagName)
	}
	var quote invctlvaluation.Quote
	for _, field := range []struct {
		name  string
		value string
		out   *float64
	}{
		{name: priceFlagName, value: flags.Price, out: &quote.Price},
		{name: previousCloseFlagName, value: flags.PreviousClose, out: &quote.PreviousClose},
		{name: changeFlagName, value: flags.Change, out: &quote.Change},
		{name: changePercentFlagName, value: flags.ChangePercent, out: &quote.ChangePercent},
	} {
		value, err := invctlstore.ParseDecimal(field.value)
		if err != nil {
			return appcmd.NewInvalidArgumentErrorf("invalid --%s %q: %v", field.name, field.value, err)
		}
		*field.out = value
	}
	if quote.Price <= 0 {
		return appcmd.NewInvalidArgumentErrorf("--%s must be positive", priceFlagName)
	}
	if quote.PreviousClose < 0 {
		return appcmd.NewInvalidArgumentErrorf("--%s must not be negative", previousCloseFlagName)
	}
	if flags.Change == "" && quote.PreviousClose > 0 {
		quote.Change = quote.Price - quote.PreviousClose
	}
	if flags.ChangePercent == "" && quote.PreviousClose > 0 {
		quote.ChangePercent = quote.Change / quote.PreviousClose * 100
	}
	quote.IsMock = flags.Mock
	filePath := invctlpath.QuotesFilePath(flags.Dir)
	quotes, err := invctlstore.ReadQuotes(filePath)
	if err != nil {
		return err
	}
	quotes.Quotes[ticker] = quote
	if err := invctlstore.WriteQuotes(filePath, quotes.Quotes); err != nil {
		return err
	}
	_, err = fmt.Fprintf(
		container.Stdout(),
		"%s: %s (%s)\n",
		ticker,
		cliio.FormatQuantity(quote.Price),
		cliio.FormatSignedPercent(invctlvaluation.DailyChangePercent(quote)),
	)
	return err
}
