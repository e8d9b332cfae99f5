// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package holdings implements the "holdings" command group.
package holdings

import (
	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/invctl/cmd/invctl/internal/command/holdings/holdingsclosed"
	"github.com/bufdev/invctl/cmd/invctl/internal/command/holdings/holdingsoverview"
)

// NewCommand returns a new holdings command group.
func NewCommand(name string, builder appext.SubCommandBuilder) *appcmd.Command {
	return &appcmd.Command{
		Use:   name,
		Short: "Display open and closed holdings",
		SubCommands: []*appcmd.Command{
			holdingsoverview.NewCommand("overview", builder),
			holdingsclosed.NewCommand("closed", builder),
		},
	}
}
