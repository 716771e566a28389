// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/agentgate-foundation/agentgate/lib/atomicfile"
)

// Registry is the model registry document: providers keyed by name,
// each with a display label and an ordered list of models.
type Registry struct {
	Providers map[string]*Provider `json:"providers"`
}

// Provider groups the models of one upstream provider.
type Provider struct {
	// Label is the human-readable provider name shown in listings.
	Label string `json:"label"`

	// Models is the ordered list of registered models.
	Models []Model `json:"models"`
}

// Model is a single registry entry.
type Model struct {
	// ID is the canonical model identifier, globally unique within the
	// registry.
	ID string `json:"id"`

	// Aliases are alternate spellings that resolve to ID.
	Aliases []string `json:"aliases,omitempty"`
}

// Load reads the registry document at path. The document may contain
// comments and trailing commas (operators hand-edit it); both are
// stripped before parsing. A missing file yields an empty registry, so
// a fresh installation can add its first model.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Registry{Providers: map[string]*Provider{}}, nil
		}
		return nil, fmt.Errorf("reading registry %s: %w", path, err)
	}

	var registry Registry
	if err := json.Unmarshal(jsonc.ToJSON(data), &registry); err != nil {
		return nil, fmt.Errorf("parsing registry %s: %w", path, err)
	}
	if registry.Providers == nil {
		registry.Providers = map[string]*Provider{}
	}
	return &registry, nil
}

// Save persists the registry document atomically.
func Save(path string, registry *Registry) error {
	data, err := json.MarshalIndent(registry, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling registry: %w", err)
	}
	data = append(data, '\n')

	if err := atomicfile.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing registry %s: %w", path, err)
	}
	return nil
}

// Lookup returns the model entry for a canonical id (case-insensitive)
// and the provider name holding it.
func (r *Registry) Lookup(id string) (providerName string, model *Model, ok bool) {
	lowered := strings.ToLower(id)
	for name, provider := range r.Providers {
		for i := range provider.Models {
			if strings.ToLower(provider.Models[i].ID) == lowered {
				return name, &provider.Models[i], true
			}
		}
	}
	return "", nil, false
}

// Add registers a model under the named provider, creating the provider
// on first use. The id must not already exist anywhere in the registry.
func (r *Registry) Add(providerName, id string, aliases []string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("model id is empty")
	}
	if existingProvider, _, ok := r.Lookup(id); ok {
		return fmt.Errorf("model %s already registered under provider %s", id, existingProvider)
	}

	provider := r.Providers[providerName]
	if provider == nil {
		provider = &Provider{Label: providerName}
		r.Providers[providerName] = provider
	}
	provider.Models = append(provider.Models, Model{ID: id, Aliases: aliases})
	return nil
}

// Remove deletes a model entry by canonical id (case-insensitive).
// Providers left without models are removed as well.
func (r *Registry) Remove(id string) error {
	lowered := strings.ToLower(id)
	for name, provider := range r.Providers {
		for i := range provider.Models {
			if strings.ToLower(provider.Models[i].ID) == lowered {
				provider.Models = append(provider.Models[:i], provider.Models[i+1:]...)
				if len(provider.Models) == 0 {
					delete(r.Providers, name)
				}
				return nil
			}
		}
	}
	return fmt.Errorf("model %s not found in registry", id)
}
