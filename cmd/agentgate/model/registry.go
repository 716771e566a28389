// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"github.com/agentgate-foundation/agentgate/cmd/agentgate/cli"
	"github.com/agentgate-foundation/agentgate/lib/registry"
)

type addParams struct {
	cli.JSONOutput
	Config  string   `json:"-" flag:"config" desc:"agentgate config file"`
	As      string   `json:"-" flag:"as" desc:"caller identity for authorization"`
	Aliases []string `json:"-" flag:"alias" desc:"alias for the model (repeatable)"`
}

func addCommand() *cli.Command {
	params := &addParams{}
	return &cli.Command{
		Name:    "add",
		Summary: "Register a model in the local registry",
		Usage:   "agentgate model add <provider> <id> [flags]",
		Examples: []cli.Example{
			{
				Description: "Register a model with an alias",
				Command:     "agentgate model add anthropic anthropic/claude-opus-4-6 --alias opus --as alice",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("add", params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			return runAdd(args, params, logger)
		},
	}
}

func runAdd(args []string, params *addParams, logger *slog.Logger) error {
	if len(args) != 2 {
		return cli.Validation("expected <provider> and <id>, got %d arguments", len(args))
	}
	provider, id := args[0], args[1]

	env, err := loadEnvironment(params.Config, logger)
	if err != nil {
		return err
	}
	if err := env.authorize(params.As, actionAdd); err != nil {
		return err
	}

	if err := env.registry.Add(provider, id, params.Aliases); err != nil {
		return cli.Conflict("%v", err)
	}
	if err := registry.Save(env.cfg.Paths.Registry, env.registry); err != nil {
		return err
	}
	logger.Info("model registered", "provider", provider, "model", id, "aliases", params.Aliases)

	result := struct {
		Provider string   `json:"provider"`
		Model    string   `json:"model"`
		Aliases  []string `json:"aliases"`
	}{provider, id, params.Aliases}
	if done, err := params.EmitJSON(result); done {
		return err
	}
	if len(params.Aliases) > 0 {
		fmt.Printf("added %s under %s (aliases: %s)\n", id, provider, strings.Join(params.Aliases, ", "))
	} else {
		fmt.Printf("added %s under %s\n", id, provider)
	}
	return nil
}

type removeParams struct {
	cli.JSONOutput
	Config string `json:"-" flag:"config" desc:"agentgate config file"`
	As     string `json:"-" flag:"as" desc:"caller identity for authorization"`
}

func removeCommand() *cli.Command {
	params := &removeParams{}
	return &cli.Command{
		Name:    "remove",
		Summary: "Remove a model from the local registry",
		Usage:   "agentgate model remove <id> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("remove", params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			return runRemove(args, params, logger)
		},
	}
}

func runRemove(args []string, params *removeParams, logger *slog.Logger) error {
	if len(args) != 1 {
		return cli.Validation("expected exactly one model id, got %d arguments", len(args))
	}

	env, err := loadEnvironment(params.Config, logger)
	if err != nil {
		return err
	}
	if err := env.authorize(params.As, actionRemove); err != nil {
		return err
	}

	if err := env.registry.Remove(args[0]); err != nil {
		return cli.NotFound("%v", err)
	}
	if err := registry.Save(env.cfg.Paths.Registry, env.registry); err != nil {
		return err
	}
	logger.Info("model removed", "model", args[0])

	result := struct {
		Model string `json:"model"`
	}{args[0]}
	if done, err := params.EmitJSON(result); done {
		return err
	}
	fmt.Printf("removed %s\n", args[0])
	return nil
}

type exportParams struct {
	Config string `json:"-" flag:"config" desc:"agentgate config file"`
	As     string `json:"-" flag:"as" desc:"caller identity for authorization"`
}

func exportCommand() *cli.Command {
	params := &exportParams{}
	return &cli.Command{
		Name:    "export",
		Summary: "Print the registry document",
		Usage:   "agentgate model export [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("export", params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			return runExport(args, params, logger)
		},
	}
}

func runExport(args []string, params *exportParams, logger *slog.Logger) error {
	if len(args) != 0 {
		return cli.Validation("export takes no arguments")
	}

	env, err := loadEnvironment(params.Config, logger)
	if err != nil {
		return err
	}
	if err := env.authorize(params.As, actionExport); err != nil {
		return err
	}

	// The export is the registry document itself; it is always JSON.
	return cli.WriteJSON(env.registry)
}
