// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/jsonc"
)

// Index maps lowercase alias tokens to canonical model ids. It is
// derived state: built fresh from the registry plus the alias-override
// document on every resolution, never persisted.
type Index map[string]string

// BuildIndex derives the alias index from a registry and an override
// map. Precedence, lowest to highest:
//
//  1. base names (id stripped of its provider prefix) — only where no
//     other key claims the token
//  2. canonical ids mapping to themselves
//  3. explicit registry aliases
//  4. external overrides
//
// All keys are lowercased; resolution is case-insensitive.
func BuildIndex(registry *Registry, overrides map[string]string) Index {
	index := Index{}

	// Base names first so any explicit mapping shadows them.
	for _, provider := range registry.Providers {
		for _, model := range provider.Models {
			if _, base, found := strings.Cut(model.ID, "/"); found {
				key := strings.ToLower(base)
				if _, taken := index[key]; !taken {
					index[key] = model.ID
				}
			}
		}
	}

	// Canonical ids map to themselves: normalization of an
	// already-canonical id is a lookup hit, not a pass-through.
	for _, provider := range registry.Providers {
		for _, model := range provider.Models {
			index[strings.ToLower(model.ID)] = model.ID
		}
	}

	for _, provider := range registry.Providers {
		for _, model := range provider.Models {
			for _, alias := range model.Aliases {
				index[strings.ToLower(alias)] = model.ID
			}
		}
	}

	for alias, id := range overrides {
		index[strings.ToLower(alias)] = id
	}

	return index
}

// Resolve looks up a token case-insensitively.
func (x Index) Resolve(token string) (string, bool) {
	id, ok := x[strings.ToLower(token)]
	return id, ok
}

// Has reports whether a canonical id is reachable through the index.
func (x Index) Has(id string) bool {
	_, ok := x[strings.ToLower(id)]
	return ok
}

// LoadOverrides reads the flat alias → canonical id override document.
// A missing file yields an empty map; overrides are optional.
func LoadOverrides(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading alias overrides %s: %w", path, err)
	}

	overrides := map[string]string{}
	if err := json.Unmarshal(jsonc.ToJSON(data), &overrides); err != nil {
		return nil, fmt.Errorf("parsing alias overrides %s: %w", path, err)
	}
	return overrides, nil
}
