// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package fxfetch implements the "fx fetch" command.
package fxfetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/invctl/cmd/invctl/internal/invctlcmd"
	"github.com/bufdev/invctl/internal/invctl/invctlconfig"
	"github.com/bufdev/invctl/internal/invctl/invctlledger"
	"github.com/bufdev/invctl/internal/invctl/invctlpath"
	"github.com/bufdev/invctl/internal/invctl/invctlstore"
	"github.com/bufdev/invctl/internal/pkg/backoff"
	"github.com/bufdev/invctl/internal/pkg/cliio"
	"github.com/bufdev/invctl/internal/pkg/frankfurter"
	"github.com/spf13/pflag"
)

const baseURLFlagName = "base-url"

// NewCommand returns a new fx fetch command.
func NewCommand(name string, builder appext.SubCommandBuilder) *appcmd.Command {
	flags := newFlags()
	return &appcmd.Command{
		Use:   name,
		Short: "Download the latest USD to local currency rate",
		Long: `Download the latest USD to local currency rate from the Frankfurter API
and cache it under cache/fx in the invctl directory.

The cached rate takes precedence over fx_rate in invctl.yaml.`,
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
	Dir     string
	BaseURL string
}

func newFlags() *flags {
	return &flags{}
}

// Bind registers the flag definitions with the given flag set.
func (f *flags) Bind(flagSet *pflag.FlagSet) {
	invctlcmd.BindDirFlag(flagSet, &f.Dir)
	flagSet.StringVar(&f.BaseURL, baseURLFlagName, frankfurter.DefaultBaseURL, "The Frankfurter API base URL")
	_ = flagSet.MarkHidden(baseURLFlagName)
}

func run(ctx context.Context, container appext.Container, flags *flags) error {
	config, err := invctlconfig.ReadConfig(flags.Dir)
	if err != nil {
		return err
	}
	logger := container.Logger()
	if invctlledger.IsUSD(config.LocalCurrency) {
		logger.Info("local currency is USD, no rate needed")
		return nil
	}
	client := frankfurter.NewClient(frankfurter.WithBaseURL(flags.BaseURL))
	rate, err := backoff.Retry(
		ctx,
		backoff.DefaultPolicy(),
		func(ctx context.Context, attempt int) (frankfurter.Rate, error) {
			if attempt > 0 {
				logger.Debug("retrying fx fetch", "attempt", attempt+1)
			}
			rate, err := client.GetLatestRate(ctx, invctlledger.CurrencyUSD, config.LocalCurrency)
			if err != nil {
				var statusError *frankfurter.StatusError
				if errors.As(err, &statusError) && !statusError.Temporary() {
					return frankfurter.Rate{}, backoff.Permanent(err)
				}
				return frankfurter.Rate{}, err
			}
			return rate, nil
		},
	)
	if err != nil {
		return fmt.Errorf("fetching USD to %s rate: %w", config.LocalCurrency, err)
	}
	filePath := invctlpath.CacheFXFilePath(flags.Dir, invctlledger.CurrencyUSD, config.LocalCurrency)
	if err := invctlstore.WriteFXRate(filePath, invctlstore.FXRate{
		Base:      rate.Base,
		Quote:     rate.Quote,
		Rate:      rate.Value,
		Date:      rate.Date,
		FetchedAt: time.Now().UTC(),
	}); err != nil {
		return err
	}
	logger.Debug("cached fx rate", "path", filePath)
	_, err = fmt.Fprintf(
		container.Stdout(),
		"1 %s = %s %s (%s)\n",
		rate.Base,
		cliio.FormatQuantity(rate.Value),
		rate.Quote,
		rate.Date.Format("2006-01-02"),
	)
	return err
}
