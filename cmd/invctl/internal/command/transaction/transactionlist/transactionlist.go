// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package transactionlist implements the "transaction list" command.
package transactionlist

import (
	"context"

	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/invctl/cmd/invctl/internal/invctlcmd"
	"github.com/bufdev/invctl/internal/invctl/invctlledger"
	"github.com/bufdev/invctl/internal/pkg/cliio"
	"github.com/spf13/pflag"
)

const tickerFlagName = "ticker"

// NewCommand returns a new transaction list command.
func NewCommand(name string, builder appext.SubCommandBuilder) *appcmd.Command {
	flags := newFlags()
	return &appcmd.Command{
		Use:   name,
		Short: "List transactions from every ledger in chronological order",
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
	Ticker string
}

func newFlags() *flags {
	return &flags{}
}

// Bind registers the flag definitions with the given flag set.
func (f *flags) Bind(flagSet *pflag.FlagSet) {
	invctlcmd.BindDirFlag(flagSet, &f.Dir)
	invctlcmd.BindFormatFlag(flagSet, &f.Format)
	flagSet.StringVar(&f.Ticker, tickerFlagName, "", "Only list transactions for this ticker")
}

func run(_ context.Context, container appext.Container, flags *flags) error {
	format, err := cliio.ParseFormat(flags.Format)
	if err != nil {
		return appcmd.NewInvalidArgumentError(err.Error())
	}
	transactions, err := invctlcmd.LoadTransactions(container.Logger(), flags.Dir)
	if err != nil {
		return err
	}
	if flags.Ticker != "" {
		ticker := invctlledger.NormalizeTicker(flags.Ticker)
		var filtered []invctlledger.Transaction
		for _, transaction := range transactions {
			if transaction.Ticker == ticker {
				filtered = append(filtered, transaction)
			}
		}
		transactions = filtered
	}
	table := cliio.Table{
		Headers: []string{"ID", "DATE", "TICKER", "KIND", "QUANTITY", "PRICE", "TOTAL", "CURRENCY", "ASSET TYPE"},
	}
	for _, transaction := range transactions {
		table.Rows = append(table.Rows, []string{
			transaction.ID,
			transaction.Date.Format("2006-01-02"),
			transaction.Ticker,
			transaction.Kind.String(),
			cliio.FormatQuantity(transaction.Quantity),
			cliio.FormatQuantity(transaction.UnitPrice),
			cliio.FormatMoney(transaction.Quantity*transaction.UnitPrice, transaction.Currency),
			transaction.Currency,
			invctlledger.BucketKey(transaction.AssetType),
		})
	}
	return cliio.Write(container.Stdout(), format, table, transactions)
}
