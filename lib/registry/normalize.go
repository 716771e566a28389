// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"regexp"
	"strings"
)

// DefaultProvider is prefixed onto path-like ids that name no known
// provider. The gateway routes such ids through its aggregator.
const DefaultProvider = "openrouter"

// knownProviders are the recognized provider prefixes. An id whose
// first path segment is one of these is already fully qualified.
var knownProviders = map[string]bool{
	"openrouter": true,
	"anthropic":  true,
	"openai":     true,
	"google":     true,
	"meta":       true,
	"mistral":    true,
}

// dottedVersion matches a dotted minor-version token ("4.6") inside a
// model name.
var dottedVersion = regexp.MustCompile(`(\d+)\.(\d+)`)

// Normalize resolves a raw user token to a canonical model id.
//
//   - Whitespace is trimmed; an empty token stays empty (the caller
//     rejects it downstream).
//   - The lowercase token is resolved through the alias index; a miss
//     passes the token through unchanged.
//   - A path-like id whose first segment is not a known provider is
//     prefixed with [DefaultProvider].
//   - Anthropic model names with a dotted minor version are rewritten
//     to the dashed form the catalog uses ("4.6" → "4-6"). This rule is
//     provider-specific: other providers do publish dotted versions.
//
// Normalize is idempotent: applying it to its own output is a no-op.
func Normalize(raw string, index Index) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}

	if resolved, ok := index.Resolve(token); ok {
		token = resolved
	}

	token = qualifyProvider(token)

	if provider, rest, found := strings.Cut(token, "/"); found && provider == "anthropic" {
		token = provider + "/" + dottedVersion.ReplaceAllString(rest, "$1-$2")
	}

	return token
}

// qualifyProvider prefixes DefaultProvider onto path-like ids that lack
// a known provider prefix. Ids without a path separator are left alone:
// a bare name that survived alias resolution is not ours to guess a
// provider for.
func qualifyProvider(id string) string {
	first, _, found := strings.Cut(id, "/")
	if !found {
		return id
	}
	if knownProviders[strings.ToLower(first)] {
		return id
	}
	return DefaultProvider + "/" + id
}
