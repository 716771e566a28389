// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/agentgate-foundation/agentgate/lib/registry"
)

// Mode selects how much validation a model id gets before a switch.
type Mode string

const (
	// ModeNone skips validation entirely.
	ModeNone Mode = "none"

	// ModeLocal requires the id to be reachable through the alias
	// index.
	ModeLocal Mode = "local"

	// ModeRemote requires the local check plus, where the provider
	// exposes a catalog, a live listing query.
	ModeRemote Mode = "remote"
)

// ParseMode converts a config or flag string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeNone:
		return ModeNone, nil
	case ModeLocal:
		return ModeLocal, nil
	case ModeRemote:
		return ModeRemote, nil
	}
	return "", fmt.Errorf("unknown validation mode %q (want none, local, or remote)", s)
}

// Result reports a validation verdict with a human-readable reason.
type Result struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason"`
}

// Remote is a provider catalog that can be queried for a model id.
type Remote interface {
	// Has reports whether the catalog lists the id. Ids are matched
	// case-insensitively. A query failure is an error, not a verdict.
	Has(ctx context.Context, id string) (bool, error)
}

// Validator checks model ids against the alias index and, in remote
// mode, the aggregator catalog.
type Validator struct {
	// Remote is consulted in ModeRemote for ids routed through the
	// default provider. Nil disables the live check; such ids then
	// pass on the local check alone.
	Remote Remote
}

// Validate checks a canonical (already normalized) model id.
func (v *Validator) Validate(ctx context.Context, id string, index registry.Index, mode Mode) Result {
	if mode == ModeNone {
		return Result{Valid: true, Reason: "validation skipped"}
	}

	if !index.Has(id) {
		return Result{Valid: false, Reason: fmt.Sprintf("model %s is not in the registry", id)}
	}
	if mode == ModeLocal {
		return Result{Valid: true, Reason: "model is registered"}
	}

	// Remote mode. Only aggregator-routed ids have a live catalog to
	// ask; direct-provider ids are valid once registered.
	remoteID, routed := strings.CutPrefix(id, registry.DefaultProvider+"/")
	if !routed || v.Remote == nil {
		return Result{Valid: true, Reason: "model is registered (no live catalog for provider)"}
	}

	listed, err := v.Remote.Has(ctx, remoteID)
	if err != nil {
		// Fail closed: an unreachable catalog cannot vouch for the id.
		return Result{Valid: false, Reason: fmt.Sprintf("catalog query failed: %v", err)}
	}
	if !listed {
		return Result{Valid: false, Reason: fmt.Sprintf("model %s is not listed by the catalog", remoteID)}
	}
	return Result{Valid: true, Reason: "model is registered and listed by the catalog"}
}
