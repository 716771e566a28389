// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

// Package switcher orchestrates a guarded model switch: normalize the
// requested token, validate it, back up the gateway configuration,
// patch it, restart the service, and verify the new model took effect
// — restoring the backup and restarting again if it did not.
//
// Each step gates the next; after the patch the only remaining paths
// are verified success or rollback, so the terminal state is always
// either "new model confirmed" or "service restarted on the backup
// configuration". The recovery restart itself is not re-verified;
// results carry an explicit warning when that gap is exercised.
package switcher
