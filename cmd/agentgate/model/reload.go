// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/agentgate-foundation/agentgate/cmd/agentgate/cli"
	"github.com/agentgate-foundation/agentgate/lib/health"
)

type reloadParams struct {
	cli.JSONOutput
	Config string `json:"-" flag:"config" desc:"agentgate config file"`
	As     string `json:"-" flag:"as" desc:"caller identity for authorization"`
}

type reloadResult struct {
	Unit   string `json:"unit"`
	Status string `json:"status"`
}

func reloadCommand() *cli.Command {
	params := &reloadParams{}
	return &cli.Command{
		Name:    "reload",
		Summary: "Restart the gateway without changing its configuration",
		Usage:   "agentgate model reload [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("reload", params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			return runReload(ctx, args, params, logger)
		},
	}
}

func runReload(ctx context.Context, args []string, params *reloadParams, logger *slog.Logger) error {
	if len(args) != 0 {
		return cli.Validation("reload takes no arguments")
	}

	env, err := loadEnvironment(params.Config, logger)
	if err != nil {
		return err
	}
	if err := env.authorize(params.As, actionReload); err != nil {
		return err
	}

	if err := env.observer.Supervisor.Restart(ctx, env.observer.Unit); err != nil {
		return err
	}
	env.switcher.Clock.Sleep(env.switcher.SettleDelay)

	status := env.observer.Supervisor.Status(ctx, env.observer.Unit)
	logger.Info("gateway restarted", "unit", env.observer.Unit, "status", status)

	result := reloadResult{Unit: env.observer.Unit, Status: status}
	if done, err := params.EmitJSON(result); done {
		return err
	}
	fmt.Printf("%s restarted; status %s\n", result.Unit, result.Status)

	if !health.IsActiveStatus(status) {
		return cli.Transient("gateway did not come back up (status %s)", status)
	}
	return nil
}
