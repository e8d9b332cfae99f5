// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package fx implements the "fx" command group.
package fx

import (
	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/invctl/cmd/invctl/internal/command/fx/fxfetch"
	"github.com/bufdev/invctl/cmd/invctl/internal/command/fx/fxshow"
)

// NewCommand returns a new fx command group.
func NewCommand(name string, builder appext.SubCommandBuilder) *appcmd.Command {
	return &appcmd.Command{
		Use:   name,
		Short: "Manage the cached USD exchange rate",
		SubCommands: []*appcmd.Command{
			fxfetch.NewCommand("fetch", builder),
			fxshow.NewCommand("show", builder),
		},
	}
}
