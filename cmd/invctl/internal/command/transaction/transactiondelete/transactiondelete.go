// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package transactiondelete implements the "transaction delete" command.
package transactiondelete

import (
	"context"
	"fmt"

	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/invctl/cmd/invctl/internal/invctlcmd"
	"github.com/bufdev/invctl/internal/invctl/invctlledger"
	"github.com/bufdev/invctl/internal/invctl/invctlpath"
	"github.com/bufdev/invctl/internal/invctl/invctlstore"
	"github.com/spf13/pflag"
)

// NewCommand returns a new transaction delete command.
func NewCommand(name string, builder appext.SubCommandBuilder) *appcmd.Command {
	flags := newFlags()
	return &appcmd.Command{
		Use:   name + " <id>",
		Short: "Delete a transaction from ledger.yaml by id",
		Args:  appcmd.ExactArgs(1),
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
	id := container.Arg(0)
	ledgerFilePath := invctlpath.LedgerFilePath(flags.Dir)
	ledger, err := invctlstore.ReadLedger(ledgerFilePath)
	if err != nil {
		return err
	}
	deleted, ok := invctlledger.Find(ledger.Transactions, id)
	if !ok {
		return appcmd.NewInvalidArgumentErrorf("no transaction with id %q in %s", id, ledgerFilePath)
	}
	remaining, _ := invctlledger.Delete(ledger.Transactions, id)
	// Deleting a buy can turn a later sell into an over-sell.
	if err := invctlledger.Validate(remaining); err != nil {
		container.Logger().Warn("ledger is inconsistent after delete", "error", err)
	}
	ledger.Transactions = remaining
	if err := ledger.Write(ledgerFilePath); err != nil {
		return err
	}
	_, err = fmt.Fprintf(
		container.Stdout(),
		"deleted %s %s %s %s\n",
		deleted.ID,
		deleted.Kind,
		deleted.Ticker,
		deleted.Date.Format("2006-01-02"),
	)
	return err
}
