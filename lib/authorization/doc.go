// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

// Package authorization gates mutating commands behind an allow-list
// policy.
//
// The policy file names identities and the action patterns each may
// perform. Actions form a slash-separated namespace ("model/set",
// "model/rollback"); patterns use glob wildcards, so "model/**" grants
// the whole model surface. The caller's identity comes from the --as
// flag or the AGENTGATE_IDENTITY environment variable. Everything is
// default-deny: no policy file, no identity entry, or no matching
// pattern all refuse the action.
package authorization
