// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

package health

import "regexp"

// failurePatterns are log phrases that prove the gateway rejected the
// configured model. Matching any of them ends the poll loop early;
// waiting out the deadline would only delay the rollback. These are
// heuristics over the gateway's log text, so they are kept few and
// specific.
var failurePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Unknown model:`),
	regexp.MustCompile(`(?i)model not found`),
	regexp.MustCompile(`(?i)404.*model`),
}

// matchFailure returns the first failure phrase found in text.
func matchFailure(text string) (string, bool) {
	for _, pattern := range failurePatterns {
		if match := pattern.FindString(text); match != "" {
			return match, true
		}
	}
	return "", false
}

// ConfirmationMarker is the literal log line fragment that proves the
// gateway loaded the requested model.
func ConfirmationMarker(modelID string) string {
	return "agent model: " + modelID
}
