// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

package switcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/agentgate-foundation/agentgate/lib/catalog"
	"github.com/agentgate-foundation/agentgate/lib/clock"
	"github.com/agentgate-foundation/agentgate/lib/gatewayconfig"
	"github.com/agentgate-foundation/agentgate/lib/health"
	"github.com/agentgate-foundation/agentgate/lib/registry"
)

// Outcome names the terminal state of an orchestration run.
type Outcome string

const (
	// OutcomeSwitched means the new model was patched in and confirmed.
	OutcomeSwitched Outcome = "switched"

	// OutcomeDryRun means validation passed and nothing was mutated.
	OutcomeDryRun Outcome = "dry-run"

	// OutcomeRolledBack means the health check failed and the backup
	// was restored.
	OutcomeRolledBack Outcome = "rolled-back"
)

// Result reports what an orchestration run did.
type Result struct {
	Outcome  Outcome `json:"outcome"`
	ModelID  string  `json:"model_id"`
	Previous string  `json:"previous,omitempty"`
	Backup   string  `json:"backup,omitempty"`
	Reason   string  `json:"reason,omitempty"`

	// Warning is set when the run ended in a state the tool could not
	// verify, e.g. after the unchecked recovery restart.
	Warning string `json:"warning,omitempty"`
}

// ValidationError means the requested model failed validation; nothing
// was mutated.
type ValidationError struct {
	ModelID string
	Reason  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("model %s failed validation: %s", e.ModelID, e.Reason)
}

// RollbackError means the switch was attempted, failed its health
// check, and the backup configuration was restored.
type RollbackError struct {
	ModelID string
	Reason  string
}

func (e *RollbackError) Error() string {
	return fmt.Sprintf("switch to %s rolled back: %s", e.ModelID, e.Reason)
}

// Options tunes one switch run.
type Options struct {
	// Mode selects the validation depth.
	Mode catalog.Mode

	// DryRun stops after validation: report the resolved id, mutate
	// nothing.
	DryRun bool
}

// Switcher wires the orchestration's collaborators together.
type Switcher struct {
	Store     *gatewayconfig.Store
	Index     registry.Index
	Validator *catalog.Validator
	Observer  *health.Observer
	Clock     clock.Clock
	Logger    *slog.Logger

	// DefaultModel is the id Reset switches back to.
	DefaultModel string

	// SettleDelay is the pause after a recovery restart before the
	// final status read.
	SettleDelay time.Duration
}

// Switch runs the guarded switch sequence for a raw model token.
//
// The returned Result is meaningful even alongside a non-nil error:
// a [RollbackError] still carries the backup path and reason in its
// Result. Errors other than [ValidationError] and [RollbackError] are
// input or I/O problems from before any service disruption.
func (s *Switcher) Switch(ctx context.Context, rawToken string, opts Options) (Result, error) {
	id := registry.Normalize(rawToken, s.Index)
	if id == "" {
		return Result{}, fmt.Errorf("empty model token")
	}
	s.Logger.Info("model token resolved", "token", rawToken, "model", id)

	validation := s.Validator.Validate(ctx, id, s.Index, opts.Mode)
	if !validation.Valid {
		return Result{}, &ValidationError{ModelID: id, Reason: validation.Reason}
	}

	previous, err := s.Store.CurrentModel()
	if err != nil {
		return Result{}, err
	}

	if opts.DryRun {
		return Result{
			Outcome:  OutcomeDryRun,
			ModelID:  id,
			Previous: previous,
			Reason:   validation.Reason,
		}, nil
	}

	backup, err := s.Store.Backup(s.Clock.Now())
	if err != nil {
		return Result{}, err
	}
	s.Logger.Info("configuration backed up", "backup", backup.Path)

	if _, err := s.Store.Patch(id); err != nil {
		return Result{}, err
	}

	verdict := s.Observer.RestartAndVerify(ctx, id)
	if verdict.Healthy {
		s.Logger.Info("switch confirmed", "model", id, "previous", previous)
		return Result{
			Outcome:  OutcomeSwitched,
			ModelID:  id,
			Previous: previous,
			Backup:   backup.Path,
			Reason:   verdict.Reason,
		}, nil
	}

	s.Logger.Warn("health check failed, rolling back", "model", id, "reason", verdict.Reason)
	warning, err := s.recover(ctx, backup)
	if err != nil {
		// The live document may now be the failed configuration.
		// Surface everything; the operator has to intervene.
		return Result{}, fmt.Errorf(
			"health check failed (%s) and rollback also failed: %w", verdict.Reason, err)
	}

	return Result{
		Outcome: OutcomeRolledBack,
		ModelID: id,
		Backup:  backup.Path,
		Reason:  verdict.Reason,
		Warning: warning,
	}, &RollbackError{ModelID: id, Reason: verdict.Reason}
}

// Reset switches back to the configured default model.
func (s *Switcher) Reset(ctx context.Context, opts Options) (Result, error) {
	return s.Switch(ctx, s.DefaultModel, opts)
}

// Rollback restores a backup and restarts the service without health
// verification, mirroring the recovery half of a failed switch.
func (s *Switcher) Rollback(ctx context.Context, backup gatewayconfig.Backup) (Result, error) {
	warning, err := s.recover(ctx, backup)
	if err != nil {
		return Result{}, err
	}

	status := s.Observer.Supervisor.Status(ctx, s.Observer.Unit)
	return Result{
		Outcome: OutcomeRolledBack,
		ModelID: backup.Manifest.Model,
		Backup:  backup.Path,
		Reason:  fmt.Sprintf("restored %s; service status %s", backup.Path, status),
		Warning: warning,
	}, nil
}

// recover restores the backup, restarts the service, and lets it
// settle. The restart is not re-verified. Recovery ignores caller
// cancellation: once a switch has mutated state it must reach a safe
// terminal state, and "service restarted on the backup" is that state.
func (s *Switcher) recover(ctx context.Context, backup gatewayconfig.Backup) (warning string, err error) {
	ctx = context.WithoutCancel(ctx)
	if err := s.Store.Restore(backup); err != nil {
		return "", err
	}
	if err := s.Observer.Supervisor.Restart(ctx, s.Observer.Unit); err != nil {
		return "", fmt.Errorf("restarting after restore: %w", err)
	}
	s.Clock.Sleep(s.SettleDelay)
	return "recovery restart was not re-verified; check the service before relying on it", nil
}
