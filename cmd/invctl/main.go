// Copyright 2026 Peter Edge
//
// All rights reserved.

package main

import (
	"context"

	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/invctl/cmd/invctl/internal/command/config"
	"github.com/bufdev/invctl/cmd/invctl/internal/command/fx"
	"github.com/bufdev/invctl/cmd/invctl/internal/command/holdings"
	"github.com/bufdev/invctl/cmd/invctl/internal/command/portfolio"
	"github.com/bufdev/invctl/cmd/invctl/internal/command/quote"
	"github.com/bufdev/invctl/cmd/invctl/internal/command/transaction"
)

func main() {
	appcmd.Main(context.Background(), newRootCommand("invctl"))
}

// newRootCommand creates the root invctl command with all sub-commands.
func newRootCommand(name string) *appcmd.Command {
	builder := appext.NewBuilder(name)
	return &appcmd.Command{
		Use:                 name,
		Short:               "Track investment transactions and analyze the resulting portfolio",
		BindPersistentFlags: builder.BindRoot,
		SubCommands: []*appcmd.Command{
			config.NewCommand("config", builder),
			transaction.NewCommand("transaction", builder),
			holdings.NewCommand("holdings", builder),
			portfolio.NewCommand("portfolio", builder),
			quote.NewCommand("quote", builder),
			fx.NewCommand("fx", builder),
		},
	}
}
