// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command framework for the agentgate binary:
// a dispatch tree of [Command] values, struct-tag flag binding over
// pflag, categorized errors, and exit-code plumbing.
//
// Commands return errors rather than calling os.Exit. The main function
// inspects the returned error — [ToolError] categories and [ExitError]
// codes — and maps it to a process exit code. Core packages stay free
// of process-level concerns.
package cli
