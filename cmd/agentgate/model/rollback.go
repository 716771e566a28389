// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/agentgate-foundation/agentgate/cmd/agentgate/cli"
	"github.com/agentgate-foundation/agentgate/lib/gatewayconfig"
)

type rollbackParams struct {
	cli.JSONOutput
	Config string `json:"-" flag:"config" desc:"agentgate config file"`
	As     string `json:"-" flag:"as" desc:"caller identity for authorization"`
	List   bool   `json:"-" flag:"list" desc:"list available backups instead of restoring"`
}

func rollbackCommand() *cli.Command {
	params := &rollbackParams{}
	return &cli.Command{
		Name:    "rollback",
		Summary: "Restore a configuration backup and restart the gateway",
		Usage:   "agentgate model rollback [backup] [flags]",
		Description: "Restore a configuration backup and restart the gateway.\n\n" +
			"With no argument the most recent backup is restored. The restart\n" +
			"is not health-verified; check the service afterwards.",
		Examples: []cli.Example{
			{
				Description: "Restore the most recent backup",
				Command:     "agentgate model rollback --as alice",
			},
			{
				Description: "Restore a specific backup",
				Command:     "agentgate model rollback agentgate.json.1766500000.bak --as alice",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("rollback", params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			return runRollback(ctx, args, params, logger)
		},
	}
}

func runRollback(ctx context.Context, args []string, params *rollbackParams, logger *slog.Logger) error {
	if len(args) > 1 {
		return cli.Validation("expected at most one backup name, got %d arguments", len(args))
	}

	env, err := loadEnvironment(params.Config, logger)
	if err != nil {
		return err
	}

	if params.List {
		return listBackups(env, params)
	}

	if err := env.authorize(params.As, actionRollback); err != nil {
		return err
	}

	var backup gatewayconfig.Backup
	if len(args) == 1 {
		backup, err = resolveBackup(env, args[0])
	} else {
		backup, err = env.store.LatestBackup()
	}
	if err != nil {
		return cli.NotFound("%v", err)
	}

	result, err := env.switcher.Rollback(ctx, backup)
	if err != nil {
		return err
	}

	if done, err := params.EmitJSON(result); done {
		return err
	}
	fmt.Println(result.Reason)
	if result.Warning != "" {
		fmt.Printf("warning: %s\n", result.Warning)
	}
	return nil
}

// resolveBackup accepts either a path or a bare file name relative to
// the backup directory.
func resolveBackup(env *environment, name string) (gatewayconfig.Backup, error) {
	path := name
	if _, err := os.Stat(path); err != nil {
		path = filepath.Join(env.store.BackupDir, name)
	}
	return gatewayconfig.OpenBackup(path)
}

type backupListing struct {
	Path      string `json:"path"`
	CreatedAt string `json:"created_at"`
	Model     string `json:"model"`
}

func listBackups(env *environment, params *rollbackParams) error {
	backups, err := env.store.ListBackups()
	if err != nil {
		return err
	}

	listing := make([]backupListing, 0, len(backups))
	for _, backup := range backups {
		listing = append(listing, backupListing{
			Path:      backup.Path,
			CreatedAt: backup.Manifest.CreatedAt.Format("2006-01-02 15:04:05 MST"),
			Model:     backup.Manifest.Model,
		})
	}

	if done, err := params.EmitJSON(listing); done {
		return err
	}
	if len(listing) == 0 {
		fmt.Println("no backups")
		return nil
	}
	for _, entry := range listing {
		fmt.Printf("%s  %s  %s\n", entry.CreatedAt, entry.Model, entry.Path)
	}
	return nil
}
