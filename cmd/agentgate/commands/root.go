// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands assembles the agentgate command tree.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/agentgate-foundation/agentgate/cmd/agentgate/cli"
	"github.com/agentgate-foundation/agentgate/cmd/agentgate/model"
)

// Root returns the top-level agentgate command.
func Root() *cli.Command {
	return &cli.Command{
		Name:    "agentgate",
		Summary: "Operator CLI for the agentgate gateway",
		Description: "agentgate manages the model configuration and restart\n" +
			"lifecycle of a long-running agent gateway service.",
		Subcommands: []*cli.Command{
			model.Command(),
			versionCommand(),
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:    "version",
		Summary: "Print build information",
		Usage:   "agentgate version",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			info, ok := debug.ReadBuildInfo()
			if !ok {
				fmt.Println("agentgate (unknown build)")
				return nil
			}
			fmt.Printf("agentgate %s (%s)\n", info.Main.Version, info.GoVersion)
			return nil
		},
	}
}
