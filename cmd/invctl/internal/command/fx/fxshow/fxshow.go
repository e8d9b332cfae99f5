// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package fxshow implements the "fx show" command.
package fxshow

import (
	"context"
	"fmt"

	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/invctl/cmd/invctl/internal/invctlcmd"
	"github.com/bufdev/invctl/internal/invctl/invctlconfig"
	"github.com/bufdev/invctl/internal/invctl/invctlledger"
	"github.com/bufdev/invctl/internal/invctl/invctlpath"
	"github.com/bufdev/invctl/internal/invctl/invctlstore"
	"github.com/bufdev/invctl/internal/pkg/cliio"
	"github.com/spf13/pflag"
)

// NewCommand returns a new fx show command.
func NewCommand(name string, builder appext.SubCommandBuilder) *appcmd.Command {
	flags := newFlags()
	return &appcmd.Command{
		Use:   name,
		Short: "Display the USD rate used for valuation",
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
	Dir string
}

func newFlags() *flags {
	return &flags{}
}

// Bind registers the flag definitions with the given flag set.
func (f *flags) Bind(flagSet *pflag.FlagSet) {
	invctlcmd.BindDirFlag(flagSet, &f.Dir)
}

func run(_ context.Context, container appext.Container, flags *flags) error {
	config, err := invctlconfig.ReadConfig(flags.Dir)
	if err != nil {
		return err
	}
	if invctlledger.IsUSD(config.LocalCurrency) {
		_, err := fmt.Fprintln(container.Stdout(), "local currency is USD")
		return err
	}
	cached, err := invctlstore.ReadFXRate(
		invctlpath.CacheFXFilePath(flags.Dir, invctlledger.CurrencyUSD, config.LocalCurrency),
	)
	if err != nil {
		return err
	}
	switch {
	case cached != nil:
		_, err = fmt.Fprintf(
			container.Stdout(),
			"1 %s = %s %s (cached, rate date %s, fetched %s)\n",
			invctlledger.CurrencyUSD,
			cliio.FormatQuantity(cached.Rate),
			config.LocalCurrency,
			cached.Date.Format("2006-01-02"),
			cached.FetchedAt.Format("2006-01-02 15:04:05 MST"),
		)
	case config.FXRate > 0:
		_, err = fmt.Fprintf(
			container.Stdout(),
			"1 %s = %s %s (%s)\n",
			invctlledger.CurrencyUSD,
			cliio.FormatQuantity(config.FXRate),
			config.LocalCurrency,
			invctlpath.ConfigFileName,
		)
	default:
		_, err = fmt.Fprintf(container.Stdout(), "no rate available, run \"invctl fx fetch\" or set fx_rate in %s\n", invctlpath.ConfigFileName)
	}
	return err
}
