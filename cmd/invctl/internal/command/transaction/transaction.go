// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package transaction implements the "transaction" command group.
package transaction

import (
	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/invctl/cmd/invctl/internal/command/transaction/transactionadd"
	"github.com/bufdev/invctl/cmd/invctl/internal/command/transaction/transactiondelete"
	"github.com/bufdev/invctl/cmd/invctl/internal/command/transaction/transactionlist"
)

// NewCommand returns a new transaction command group.
func NewCommand(name string, builder appext.SubCommandBuilder) *appcmd.Command {
	return &appcmd.Command{
		Use:   name,
		Short: "Record, list, and delete transactions",
		SubCommands: []*appcmd.Command{
			transactionadd.NewCommand("add", builder),
			transactionlist.NewCommand("list", builder),
			transactiondelete.NewCommand("delete", builder),
		},
	}
}
