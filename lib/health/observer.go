// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

package health

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/agentgate-foundation/agentgate/lib/clock"
)

// Verdict is the observer's conclusion about one restart.
type Verdict struct {
	// Healthy is true only when the confirmation line for the
	// requested model appeared in the logs.
	Healthy bool `json:"healthy"`

	// Reason explains the verdict in operator terms.
	Reason string `json:"reason"`
}

// Observer restarts a unit and verifies the new model took effect.
type Observer struct {
	Supervisor Supervisor
	Log        LogStore
	Clock      clock.Clock
	Logger     *slog.Logger

	// Unit is the service unit to restart and watch.
	Unit string

	// PollInterval is the sleep between log reads.
	PollInterval time.Duration

	// Deadline bounds the whole verification wait, measured from the
	// restart.
	Deadline time.Duration
}

// RestartAndVerify restarts the unit and polls its logs until the
// confirmation line for modelID appears, a failure phrase appears, the
// unit stops running, or the deadline passes. Only a log-confirmed
// model counts as healthy.
func (o *Observer) RestartAndVerify(ctx context.Context, modelID string) Verdict {
	offset, err := o.Log.Size()
	if err != nil {
		o.Logger.Warn("cannot read log size, watching from start", "error", err)
		offset = 0
	}

	restartedAt := o.Clock.Now()
	if err := o.Supervisor.Restart(ctx, o.Unit); err != nil {
		return Verdict{Reason: fmt.Sprintf("restart failed: %v", err)}
	}
	o.Logger.Info("service restarted, watching logs",
		"unit", o.Unit, "model", modelID, "deadline", o.Deadline)

	marker := ConfirmationMarker(modelID)
	deadline := restartedAt.Add(o.Deadline)

	for {
		o.Clock.Sleep(o.PollInterval)

		if err := ctx.Err(); err != nil {
			return Verdict{Reason: fmt.Sprintf("verification canceled: %v", err)}
		}

		appended, err := o.Log.ReadFrom(offset)
		if err != nil {
			o.Logger.Warn("cannot read service log", "error", err)
		}
		journal, err := o.Supervisor.Journal(ctx, o.Unit, restartedAt)
		if err != nil {
			o.Logger.Warn("cannot read journal", "error", err)
		}
		combined := appended + "\n" + journal

		if phrase, found := matchFailure(combined); found {
			return Verdict{Reason: fmt.Sprintf("service rejected the model: %q in logs", phrase)}
		}
		if strings.Contains(combined, marker) {
			return Verdict{Healthy: true, Reason: fmt.Sprintf("confirmed %q in logs", marker)}
		}

		if status := o.Supervisor.Status(ctx, o.Unit); !IsActiveStatus(status) {
			return Verdict{Reason: fmt.Sprintf("service is not active (status %s)", status)}
		}

		if !o.Clock.Now().Before(deadline) {
			break
		}
	}

	// One final status check so the reason tells the operator whether
	// the service died or merely never confirmed.
	status := o.Supervisor.Status(ctx, o.Unit)
	if IsActiveStatus(status) {
		return Verdict{Reason: fmt.Sprintf(
			"service is active but %q never appeared in logs within %s", marker, o.Deadline)}
	}
	return Verdict{Reason: fmt.Sprintf("service is not active (status %s)", status)}
}
