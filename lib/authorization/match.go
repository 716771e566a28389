// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

package authorization

import (
	"path"
	"strings"
)

// matchPattern checks an action name against one glob pattern over the
// slash-separated action namespace:
//
//   - Exact: "model/set" matches only "model/set"
//   - Single segment: "model/*" matches "model/set" but not "model/a/b"
//   - Recursive: "model/**" matches every action under model/
//   - Universal: "**" matches everything
//   - "?" matches one non-slash character
//
// A malformed pattern matches nothing: a broken policy entry must
// never grant access.
func matchPattern(pattern, action string) bool {
	if pattern == "**" {
		return true
	}

	if !strings.Contains(pattern, "**") {
		return matchGlob(pattern, action)
	}

	if rest, ok := strings.CutSuffix(pattern, "/**"); ok && !strings.Contains(rest, "**") {
		// "model/**": the prefix alone, or the prefix plus one or
		// more further segments.
		if matchGlob(rest, action) {
			return true
		}
		depth := strings.Count(rest, "/") + 1
		segments := strings.SplitN(action, "/", depth+1)
		if len(segments) <= depth {
			return false
		}
		return matchGlob(rest, strings.Join(segments[:depth], "/"))
	}

	// Other ** placements are not part of the policy language.
	return false
}

// matchAny reports whether any pattern matches; an empty pattern list
// denies.
func matchAny(patterns []string, action string) bool {
	for _, pattern := range patterns {
		if matchPattern(pattern, action) {
			return true
		}
	}
	return false
}

func matchGlob(pattern, s string) bool {
	matched, err := path.Match(pattern, s)
	return err == nil && matched
}
