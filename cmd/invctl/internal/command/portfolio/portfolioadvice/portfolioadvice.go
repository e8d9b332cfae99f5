// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package portfolioadvice implements the "portfolio advice" command.
package portfolioadvice

import (
	"context"

	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/invctl/cmd/invctl/internal/invctlcmd"
	"github.com/bufdev/invctl/internal/invctl/invctladvisor"
	"github.com/bufdev/invctl/internal/invctl/invctlperformance"
	"github.com/bufdev/invctl/internal/invctl/invctlstats"
	"github.com/bufdev/invctl/internal/pkg/cliio"
	"github.com/spf13/pflag"
)

// NewCommand returns a new portfolio advice command.
func NewCommand(name string, builder appext.SubCommandBuilder) *appcmd.Command {
	flags := newFlags()
	return &appcmd.Command{
		Use:   name,
		Short: "Display rule-based recommendations for the portfolio",
		Long: `Display rule-based recommendations for the portfolio.

Thresholds are read from the advisor section of invctl.yaml.`,
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

func run(_ context.Context, container appext.Container, flags *flags) error {
	format, err := cliio.ParseFormat(flags.Format)
	if err != nil {
		return appcmd.NewInvalidArgumentError(err.Error())
	}
	snapshot, err := invctlcmd.LoadPortfolio(container, flags.Dir)
	if err != nil {
		return err
	}
	recommendations := invctladvisor.Advise(
		invctlstats.Aggregate(snapshot.Valued),
		invctlperformance.Rank(snapshot.Valued),
		snapshot.Config.Thresholds,
	)
	table := cliio.Table{
		Headers: []string{"PRIORITY", "ICON", "TITLE", "DESCRIPTION"},
	}
	for _, recommendation := range recommendations {
		table.Rows = append(table.Rows, []string{
			recommendation.Priority.String(),
			recommendation.Icon,
			recommendation.Title,
			recommendation.Description,
		})
	}
	return cliio.Write(container.Stdout(), format, table, recommendations)
}
