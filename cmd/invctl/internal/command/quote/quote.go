// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package quote implements the "quote" command group.
package quote

import (
	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/invctl/cmd/invctl/internal/command/quote/quotelist"
	"github.com/bufdev/invctl/cmd/invctl/internal/command/quote/quoteset"
)

// NewCommand returns a new quote command group.
func NewCommand(name string, builder appext.SubCommandBuilder) *appcmd.Command {
	return &appcmd.Command{
		Use:   name,
		Short: "Manage market quotes used for valuation",
		SubCommands: []*appcmd.Command{
			quotelist.NewCommand("list", builder),
			quoteset.NewCommand("set", builder),
		},
	}
}
