// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

// Package health restarts the gateway service and watches its logs
// until the new model configuration takes observable effect.
//
// The observer is a bounded poll loop, not an event subscription: it
// records the log offset, restarts the unit, then every interval reads
// the bytes appended since the offset plus a recent journal window and
// scans them for a confirmation line or a known failure phrase. The
// loop ends at the first conclusive signal or at a hard deadline.
// Keeping the loop synchronous and bounded makes the timeout semantics
// auditable; all waiting goes through lib/clock so tests run it in
// microseconds.
package health
