// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"errors"
	"log/slog"

	"github.com/agentgate-foundation/agentgate/cmd/agentgate/cli"
	"github.com/agentgate-foundation/agentgate/lib/authorization"
	"github.com/agentgate-foundation/agentgate/lib/catalog"
	"github.com/agentgate-foundation/agentgate/lib/clock"
	"github.com/agentgate-foundation/agentgate/lib/config"
	"github.com/agentgate-foundation/agentgate/lib/gatewayconfig"
	"github.com/agentgate-foundation/agentgate/lib/health"
	"github.com/agentgate-foundation/agentgate/lib/registry"
	"github.com/agentgate-foundation/agentgate/lib/switcher"
)

// environment is everything a model subcommand needs, assembled from
// the configuration once per invocation.
type environment struct {
	cfg      *config.Config
	registry *registry.Registry
	index    registry.Index
	store    *gatewayconfig.Store
	observer *health.Observer
	switcher *switcher.Switcher
}

func loadEnvironment(configPath string, logger *slog.Logger) (*environment, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	reg, err := registry.Load(cfg.Paths.Registry)
	if err != nil {
		return nil, err
	}
	overrides, err := registry.LoadOverrides(cfg.Paths.AliasOverrides)
	if err != nil {
		return nil, err
	}
	index := registry.BuildIndex(reg, overrides)

	store := &gatewayconfig.Store{
		Path:      cfg.Paths.GatewayConfig,
		BackupDir: cfg.Paths.Backups,
	}

	real := clock.Real()
	observer := &health.Observer{
		Supervisor:   &health.Systemd{UserScope: cfg.Gateway.UserScope},
		Log:          &health.FileLog{Dir: cfg.Paths.LogDir, Prefix: "agentgate", Clock: real},
		Clock:        real,
		Logger:       logger,
		Unit:         cfg.Gateway.Unit,
		PollInterval: cfg.PollInterval(),
		Deadline:     cfg.Deadline(),
	}

	return &environment{
		cfg:      cfg,
		registry: reg,
		index:    index,
		store:    store,
		observer: observer,
		switcher: &switcher.Switcher{
			Store: store,
			Index: index,
			Validator: &catalog.Validator{
				Remote: catalog.NewOpenRouter(cfg.Catalog.BaseURL, cfg.CatalogTimeout()),
			},
			Observer:     observer,
			Clock:        real,
			Logger:       logger,
			DefaultModel: cfg.Gateway.DefaultModel,
			SettleDelay:  cfg.SettleDelay(),
		},
	}, nil
}

// validationMode resolves the --validate flag against the configured
// default.
func (e *environment) validationMode(flagValue string) (catalog.Mode, error) {
	value := flagValue
	if value == "" {
		value = e.cfg.Validation.DefaultMode
	}
	mode, err := catalog.ParseMode(value)
	if err != nil {
		return "", cli.Validation("%v", err)
	}
	return mode, nil
}

// authorize gates a mutating subcommand. It must run before any side
// effect. Both refusal kinds exit with the authorization code; they
// stay distinct categories so --json consumers can tell "supply an
// identity" from "ask for access".
func (e *environment) authorize(asFlag, action string) error {
	policy, err := authorization.LoadPolicy(e.cfg.Paths.Policy)
	if err != nil {
		return err
	}

	identity := authorization.ResolveIdentity(asFlag)
	if err := policy.Authorize(identity, action); err != nil {
		var denied *authorization.DeniedError
		switch {
		case errors.Is(err, authorization.ErrMissingIdentity):
			return &cli.ExitError{Code: cli.ExitUnauthorized, Err: cli.Validation("%v", err)}
		case errors.As(err, &denied):
			return &cli.ExitError{Code: cli.ExitUnauthorized, Err: cli.Forbidden("%v", err)}
		default:
			return &cli.ExitError{Code: cli.ExitUnauthorized, Err: err}
		}
	}
	return nil
}
