// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

// The agentgate command is the operator CLI for the agentgate gateway:
// it switches the gateway's model with backup, restart verification,
// and automatic rollback, and maintains the model registry behind
// token resolution.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/agentgate-foundation/agentgate/cmd/agentgate/cli"
	"github.com/agentgate-foundation/agentgate/cmd/agentgate/commands"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := cli.NewCommandLogger()

	// A signal cancels the context. A canceled health check fails the
	// switch, and the rollback path runs detached from cancellation,
	// so an interrupt mid-switch still lands on the backup config.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := commands.Root().Execute(ctx, os.Args[1:], logger)
	if err == nil {
		return cli.ExitSuccess
	}

	var exit *cli.ExitError
	if errors.As(err, &exit) {
		if exit.Err != nil {
			fmt.Fprintf(os.Stderr, "agentgate: %v\n", err)
		}
		return exit.Code
	}

	fmt.Fprintf(os.Stderr, "agentgate: %v\n", err)

	var tool *cli.ToolError
	if errors.As(err, &tool) && tool.Category == cli.CategoryForbidden {
		return cli.ExitUnauthorized
	}
	return cli.ExitFailure
}
