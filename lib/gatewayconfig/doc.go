// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

// Package gatewayconfig reads, patches, backs up, and restores the
// gateway's JSON configuration document.
//
// The document is operator-owned: it may carry comments, trailing
// commas, and fields this tool knows nothing about. Reads are tolerant
// of the former; patches preserve the latter by decoding into a
// generic map and touching only the model fields. Every write goes
// through an atomic rename, and the read-modify-write cycle holds an
// advisory lock so concurrent invocations serialize instead of
// clobbering each other.
//
// Backups are timestamped copies with a manifest sidecar recording the
// source path and a BLAKE3 digest; restore refuses a backup whose
// bytes no longer match its manifest.
package gatewayconfig
