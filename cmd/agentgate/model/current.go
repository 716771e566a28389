// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/agentgate-foundation/agentgate/cmd/agentgate/cli"
)

type currentParams struct {
	cli.JSONOutput
	Config string `json:"-" flag:"config" desc:"agentgate config file"`
}

type currentResult struct {
	Model string `json:"model"`
}

func currentCommand() *cli.Command {
	params := &currentParams{}
	return &cli.Command{
		Name:    "current",
		Summary: "Print the model the gateway configuration declares",
		Usage:   "agentgate model current [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("current", params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			return runCurrent(params, logger)
		},
	}
}

func runCurrent(params *currentParams, logger *slog.Logger) error {
	env, err := loadEnvironment(params.Config, logger)
	if err != nil {
		return err
	}

	model, err := env.store.CurrentModel()
	if err != nil {
		return err
	}

	if done, err := params.EmitJSON(currentResult{Model: model}); done {
		return err
	}
	fmt.Println(model)
	return nil
}
