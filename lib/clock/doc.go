// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts time operations for testability. Production
// code injects Real(); tests inject Fake() with deterministic time
// control.
//
// The health observer's poll loop is the only long wait in agentgate
// (up to the full verification deadline). Routing its sleeps through a
// Clock lets the loop's tests run in microseconds while exercising the
// real deadline arithmetic.
package clock
