// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// Process exit codes. The main function is the only place that maps
// errors to these codes; command handlers signal outcomes with
// [ToolError] categories or an explicit [ExitError].
const (
	// ExitSuccess: the command completed normally.
	ExitSuccess = 0

	// ExitFailure: input error or unexpected failure.
	ExitFailure = 1

	// ExitValidationFailed: the requested model did not pass registry
	// or catalog validation. No mutation was performed.
	ExitValidationFailed = 2

	// ExitRolledBack: the switch was applied but the health check
	// failed, so the previous configuration was restored and the
	// gateway restarted with it.
	ExitRolledBack = 3

	// ExitUnauthorized: the caller identity was missing or not in the
	// allow-list. Nothing was executed.
	ExitUnauthorized = 4
)

// ExitError signals a specific non-zero exit code. When Err is set,
// the main function prints it before exiting; when Err is nil, the
// command is expected to have already written its own output and main
// stays silent.
//
// This is how "rollback performed" surfaces: the set command prints the
// full rollback narrative itself, then returns ExitError{Code:
// ExitRolledBack, Err: err}.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

// Unwrap exposes the underlying error to errors.Is and errors.As.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit code. The main function checks for this
// interface on returned errors to distinguish "handled non-zero exit"
// from "unexpected error to display".
func (e *ExitError) ExitCode() int {
	return e.Code
}
