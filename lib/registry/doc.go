// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

// Package registry holds the model registry document, the alias index
// derived from it, and identifier normalization.
//
// The registry is the local source of truth for which models exist:
// providers, canonical model ids, and their aliases. It is loaded from
// disk at the start of every invocation and persisted immediately after
// any mutation — no in-memory-only state survives a process.
//
// The alias index is ephemeral: rebuilt from the registry plus the
// alias-override document on every resolution, never persisted.
package registry
