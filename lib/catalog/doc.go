// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

// Package catalog validates model identifiers before they are written
// into the gateway configuration.
//
// Validation runs in one of three modes: none (skip), local (the id
// must be reachable through the alias index), or remote (local check
// plus a live catalog query for providers that expose one). The remote
// path fails closed: a catalog that cannot be reached reports the
// model as absent rather than letting an unverifiable id through.
package catalog
