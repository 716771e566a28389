// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/agentgate-foundation/agentgate/cmd/agentgate/cli"
	"github.com/agentgate-foundation/agentgate/lib/switcher"
)

type switchParams struct {
	cli.JSONOutput
	Config   string `json:"-" flag:"config" desc:"agentgate config file"`
	As       string `json:"-" flag:"as" desc:"caller identity for authorization"`
	Validate string `json:"-" flag:"validate" desc:"validation mode: none, local, or remote"`
	DryRun   bool   `json:"-" flag:"dry-run" desc:"resolve and validate only; change nothing"`
}

func setCommand() *cli.Command {
	params := &switchParams{}
	return &cli.Command{
		Name:    "set",
		Summary: "Switch the gateway to a model, with backup and rollback",
		Usage:   "agentgate model set <model> [flags]",
		Examples: []cli.Example{
			{
				Description: "Switch to an alias from the registry",
				Command:     "agentgate model set sonnet --as alice",
			},
			{
				Description: "See what a token resolves to without touching anything",
				Command:     "agentgate model set qwen/qwen-3-coder --dry-run",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("set", params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly one model token, got %d arguments", len(args))
			}
			return runSwitch(ctx, args[0], actionSet, params, logger)
		},
	}
}

func resetCommand() *cli.Command {
	params := &switchParams{}
	return &cli.Command{
		Name:    "reset",
		Summary: "Switch the gateway back to the configured default model",
		Usage:   "agentgate model reset [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("reset", params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 0 {
				return cli.Validation("reset takes no arguments")
			}
			// Resolved after the environment loads; empty means "use
			// the configured default".
			return runSwitch(ctx, "", actionReset, params, logger)
		},
	}
}

// runSwitch drives a guarded switch and renders its result. An empty
// token switches to the configured default model.
func runSwitch(ctx context.Context, token, action string, params *switchParams, logger *slog.Logger) error {
	env, err := loadEnvironment(params.Config, logger)
	if err != nil {
		return err
	}
	if err := env.authorize(params.As, action); err != nil {
		return err
	}
	mode, err := env.validationMode(params.Validate)
	if err != nil {
		return err
	}

	opts := switcher.Options{Mode: mode, DryRun: params.DryRun}
	if token == "" {
		token = env.switcher.DefaultModel
	}

	result, err := env.switcher.Switch(ctx, token, opts)
	if err != nil {
		var validation *switcher.ValidationError
		var rollback *switcher.RollbackError
		switch {
		case errors.As(err, &validation):
			return &cli.ExitError{Code: cli.ExitValidationFailed, Err: err}
		case errors.As(err, &rollback):
			printSwitchResult(params, result)
			return &cli.ExitError{Code: cli.ExitRolledBack, Err: err}
		default:
			return err
		}
	}

	printSwitchResult(params, result)
	return nil
}

func printSwitchResult(params *switchParams, result switcher.Result) {
	if done, _ := params.EmitJSON(result); done {
		return
	}

	switch result.Outcome {
	case switcher.OutcomeDryRun:
		fmt.Printf("dry run: would switch to %s (currently %s)\n", result.ModelID, result.Previous)
	case switcher.OutcomeSwitched:
		fmt.Printf("switched to %s (was %s)\n", result.ModelID, result.Previous)
		fmt.Printf("backup: %s\n", result.Backup)
	case switcher.OutcomeRolledBack:
		fmt.Printf("switch to %s failed: %s\n", result.ModelID, result.Reason)
		fmt.Printf("restored %s\n", result.Backup)
	}
	if result.Warning != "" {
		fmt.Printf("warning: %s\n", result.Warning)
	}
}
