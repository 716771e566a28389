// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

// Package model implements the `agentgate model` command tree: inspect,
// validate, and switch the gateway's active model, and maintain the
// model registry behind it.
package model

import (
	"github.com/agentgate-foundation/agentgate/cmd/agentgate/cli"
)

// Authorization action names, one per mutating subcommand. Policy
// patterns match against these ("model/**" grants them all).
const (
	actionSet      = "model/set"
	actionReset    = "model/reset"
	actionRollback = "model/rollback"
	actionAdd      = "model/add"
	actionRemove   = "model/remove"
	actionExport   = "model/export"
	actionReload   = "model/reload"
)

// Command returns the `agentgate model` command tree.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "model",
		Summary: "Inspect and switch the gateway's active model",
		Description: "Inspect and switch the gateway's active model.\n\n" +
			"A switch is guarded: the configuration is backed up before the\n" +
			"patch, the service is restarted, and the logs are watched until\n" +
			"the new model is confirmed. A failed confirmation restores the\n" +
			"backup and restarts again.",
		Subcommands: []*cli.Command{
			currentCommand(),
			validateCommand(),
			setCommand(),
			resetCommand(),
			rollbackCommand(),
			addCommand(),
			removeCommand(),
			exportCommand(),
			reloadCommand(),
		},
	}
}
