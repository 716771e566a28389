// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock abstracts the time operations agentgate uses. Every production
// function that calls time.Now or time.Sleep should accept a Clock
// parameter (or be a method on a struct with a Clock field) instead of
// calling the time package directly.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Sleep pauses the current goroutine for at least duration d.
	// Equivalent to time.Sleep. Sleeping for d <= 0 returns
	// immediately.
	Sleep(d time.Duration)
}
