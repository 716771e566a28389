// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

// Package atomicfile writes files via write-to-temporary, fsync,
// rename. Readers never observe a partial document. Both the gateway
// configuration store and the model registry persist through this
// path, so an interrupted switch can corrupt neither.
package atomicfile
