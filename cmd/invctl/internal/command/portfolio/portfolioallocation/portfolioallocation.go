// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package portfolioallocation implements the "portfolio allocation" command.
package portfolioallocation

import (
	"context"
	"strconv"
	"strings"

	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/invctl/cmd/invctl/internal/invctlcmd"
	"github.com/bufdev/invctl/internal/invctl/invctlstats"
	"github.com/bufdev/invctl/internal/pkg/cliio"
	"github.com/spf13/pflag"
)

const (
	byFlagName = "by"

	byCategory = "category"
	bySector   = "sector"
)

// NewCommand returns a new portfolio allocation command.
func NewCommand(name string, builder appext.SubCommandBuilder) *appcmd.Command {
	flags := newFlags()
	return &appcmd.Command{
		Use:   name,
		Short: "Display the allocation of current value by asset type or sector",
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
	By     string
}

func newFlags() *flags {
	return &flags{}
}

// Bind registers the flag definitions with the given flag set.
func (f *flags) Bind(flagSet *pflag.FlagSet) {
	invctlcmd.BindDirFlag(flagSet, &f.Dir)
	invctlcmd.BindFormatFlag(flagSet, &f.Format)
	flagSet.StringVar(&f.By, byFlagName, byCategory, "Group by category or sector")
}

func run(_ context.Context, container appext.Container, flags *flags) error {
	format, err := cliio.ParseFormat(flags.Format)
	if err != nil {
		return appcmd.NewInvalidArgumentError(err.Error())
	}
	by := strings.ToLower(strings.TrimSpace(flags.By))
	if by != byCategory && by != bySector {
		return appcmd.NewInvalidArgumentErrorf("--%s must be one of: %s, %s", byFlagName, byCategory, bySector)
	}
	snapshot, err := invctlcmd.LoadPortfolio(container, flags.Dir)
	if err != nil {
		return err
	}
	localCurrency := snapshot.Config.LocalCurrency
	if by == byCategory {
		allocations := invctlstats.CategoryAllocation(snapshot.Valued)
		table := cliio.Table{
			Headers: []string{"CATEGORY", "HOLDINGS", "CURRENT", "ALLOCATION"},
		}
		for _, allocation := range allocations {
			table.Rows = append(table.Rows, toRow(allocation, localCurrency))
		}
		return cliio.Write(container.Stdout(), format, table, allocations)
	}
	sectors := invctlstats.SectorDistribution(snapshot.Valued)
	table := cliio.Table{
		Headers: []string{"SECTOR", "HOLDINGS", "CURRENT", "ALLOCATION", "TICKERS"},
	}
	for _, sector := range sectors {
		table.Rows = append(table.Rows, append(toRow(sector.Allocation, localCurrency), strings.Join(sector.Tickers, ",")))
	}
	return cliio.Write(container.Stdout(), format, table, sectors)
}

func toRow(allocation invctlstats.Allocation, localCurrency string) []string {
	return []string{
		allocation.Name,
		strconv.Itoa(allocation.Count),
		cliio.FormatMoney(allocation.Current, localCurrency),
		cliio.FormatPercent(allocation.Percent),
	}
}
