// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package portfolio implements the "portfolio" command group.
package portfolio

import (
	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/invctl/cmd/invctl/internal/command/portfolio/portfolioadvice"
	"github.com/bufdev/invctl/cmd/invctl/internal/command/portfolio/portfolioallocation"
	"github.com/bufdev/invctl/cmd/invctl/internal/command/portfolio/portfolioperformance"
	"github.com/bufdev/invctl/cmd/invctl/internal/command/portfolio/portfoliostats"
)

// NewCommand returns a new portfolio command group.
func NewCommand(name string, builder appext.SubCommandBuilder) *appcmd.Command {
	return &appcmd.Command{
		Use:   name,
		Short: "Analyze the valued portfolio",
		SubCommands: []*appcmd.Command{
			portfoliostats.NewCommand("stats", builder),
			portfolioallocation.NewCommand("allocation", builder),
			portfolioperformance.NewCommand("performance", builder),
			portfolioadvice.NewCommand("advice", builder),
		},
	}
}
