// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/agentgate-foundation/agentgate/cmd/agentgate/cli"
	"github.com/agentgate-foundation/agentgate/lib/registry"
)

type validateParams struct {
	cli.JSONOutput
	Config   string `json:"-" flag:"config" desc:"agentgate config file"`
	Validate string `json:"-" flag:"validate" desc:"validation mode: none, local, or remote"`
}

type validateResult struct {
	Token  string `json:"token"`
	Model  string `json:"model"`
	Valid  bool   `json:"valid"`
	Reason string `json:"reason"`
}

func validateCommand() *cli.Command {
	params := &validateParams{}
	return &cli.Command{
		Name:    "validate",
		Summary: "Resolve a model token and check it without switching",
		Usage:   "agentgate model validate <model> [flags]",
		Examples: []cli.Example{
			{
				Description: "Check an alias against the live provider catalog",
				Command:     "agentgate model validate sonnet --validate remote",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("validate", params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			return runValidate(ctx, args, params, logger)
		},
	}
}

func runValidate(ctx context.Context, args []string, params *validateParams, logger *slog.Logger) error {
	if len(args) != 1 {
		return cli.Validation("expected exactly one model token, got %d arguments", len(args))
	}

	env, err := loadEnvironment(params.Config, logger)
	if err != nil {
		return err
	}
	mode, err := env.validationMode(params.Validate)
	if err != nil {
		return err
	}

	id := registry.Normalize(args[0], env.index)
	if id == "" {
		return cli.Validation("empty model token")
	}

	verdict := env.switcher.Validator.Validate(ctx, id, env.index, mode)
	result := validateResult{
		Token:  args[0],
		Model:  id,
		Valid:  verdict.Valid,
		Reason: verdict.Reason,
	}

	if done, err := params.EmitJSON(result); done {
		if err != nil {
			return err
		}
	} else if verdict.Valid {
		fmt.Printf("%s is valid: %s\n", id, verdict.Reason)
	} else {
		fmt.Printf("%s is not valid: %s\n", id, verdict.Reason)
	}

	if !verdict.Valid {
		return &cli.ExitError{Code: cli.ExitValidationFailed}
	}
	return nil
}
