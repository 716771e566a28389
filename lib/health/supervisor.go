// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

package health

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Supervisor is the process-manager surface the observer needs: restart
// a unit, read its status, and pull a recent journal window. Any
// supervisor with a textual journal and a binary active state fits.
type Supervisor interface {
	// Restart restarts the unit and returns once the restart command
	// has been accepted. It does not wait for the service to settle.
	Restart(ctx context.Context, unit string) error

	// Status reports the unit's current state ("active", "inactive",
	// "failed", ...). A supervisor that cannot be queried reports
	// "unknown".
	Status(ctx context.Context, unit string) string

	// Journal returns the unit's journal entries since the given time.
	Journal(ctx context.Context, unit string, since time.Time) (string, error)
}

// IsActiveStatus reports whether a status string counts as running.
func IsActiveStatus(status string) bool {
	return status == "active" || status == "activating"
}

// Systemd shells out to systemctl and journalctl.
type Systemd struct {
	// UserScope adds --user to every invocation; the gateway runs as a
	// user service by default.
	UserScope bool
}

func (s *Systemd) scoped(args ...string) []string {
	if s.UserScope {
		return append([]string{"--user"}, args...)
	}
	return args
}

func (s *Systemd) Restart(ctx context.Context, unit string) error {
	args := s.scoped("restart", unit)
	output, err := exec.CommandContext(ctx, "systemctl", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("systemctl %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(output)))
	}
	return nil
}

func (s *Systemd) Status(ctx context.Context, unit string) string {
	args := s.scoped("is-active", unit)
	output, err := exec.CommandContext(ctx, "systemctl", args...).Output()
	status := strings.TrimSpace(string(output))
	if status == "" {
		if err != nil {
			return "unknown"
		}
		return "inactive"
	}
	// is-active exits non-zero for any state but "active"; the printed
	// state is still the answer.
	return status
}

func (s *Systemd) Journal(ctx context.Context, unit string, since time.Time) (string, error) {
	args := s.scoped(
		"-u", unit,
		"--since", since.Format("2006-01-02 15:04:05"),
		"-n", "100",
		"--no-pager",
	)
	output, err := exec.CommandContext(ctx, "journalctl", args...).Output()
	if err != nil {
		return "", fmt.Errorf("journalctl -u %s: %w", unit, err)
	}
	return string(output), nil
}
