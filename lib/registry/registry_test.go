// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"os"
	"path/filepath"
	"testing"
)

func testRegistry() *Registry {
	return &Registry{Providers: map[string]*Provider{
		"anthropic": {
			Label: "Anthropic",
			Models: []Model{
				{ID: "anthropic/claude-sonnet-4-6", Aliases: []string{"sonnet"}},
				{ID: "anthropic/claude-opus-4-6", Aliases: []string{"opus"}},
			},
		},
		"openrouter": {
			Label: "OpenRouter",
			Models: []Model{
				{ID: "openrouter/meta-llama/llama-4-scout", Aliases: []string{"scout"}},
			},
		},
	}}
}

func TestLoadMissingFileYieldsEmptyRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.json")

	registry, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(registry.Providers) != 0 {
		t.Errorf("Providers = %v, want empty", registry.Providers)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.json")

	if err := Save(path, testRegistry()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	provider, model, ok := loaded.Lookup("anthropic/claude-sonnet-4-6")
	if !ok {
		t.Fatal("Lookup should find saved model")
	}
	if provider != "anthropic" {
		t.Errorf("provider = %q, want %q", provider, "anthropic")
	}
	if len(model.Aliases) != 1 || model.Aliases[0] != "sonnet" {
		t.Errorf("Aliases = %v, want [sonnet]", model.Aliases)
	}
}

func TestLoadToleratesCommentsAndTrailingCommas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.json")
	content := `{
  // hand-maintained registry
  "providers": {
    "anthropic": {
      "label": "Anthropic",
      "models": [
        {"id": "anthropic/claude-sonnet-4-6", "aliases": ["sonnet"],},
      ],
    },
  },
}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	registry, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, _, ok := registry.Lookup("anthropic/claude-sonnet-4-6"); !ok {
		t.Error("Lookup should find the model from the commented document")
	}
}

func TestLookupCaseInsensitive(t *testing.T) {
	registry := testRegistry()

	if _, _, ok := registry.Lookup("Anthropic/Claude-Sonnet-4-6"); !ok {
		t.Error("Lookup should be case-insensitive")
	}
}

func TestAddNewProvider(t *testing.T) {
	registry := testRegistry()

	if err := registry.Add("mistral", "mistral/mistral-large-3", []string{"large"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	provider, _, ok := registry.Lookup("mistral/mistral-large-3")
	if !ok {
		t.Fatal("Lookup should find added model")
	}
	if provider != "mistral" {
		t.Errorf("provider = %q, want %q", provider, "mistral")
	}
}

func TestAddDuplicateRejected(t *testing.T) {
	registry := testRegistry()

	err := registry.Add("openrouter", "ANTHROPIC/claude-sonnet-4-6", nil)
	if err == nil {
		t.Fatal("Add should reject a duplicate id regardless of case")
	}
}

func TestAddEmptyIDRejected(t *testing.T) {
	registry := testRegistry()

	if err := registry.Add("anthropic", "  ", nil); err == nil {
		t.Fatal("Add should reject an empty id")
	}
}

func TestRemove(t *testing.T) {
	registry := testRegistry()

	if err := registry.Remove("anthropic/claude-opus-4-6"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, _, ok := registry.Lookup("anthropic/claude-opus-4-6"); ok {
		t.Error("Lookup should miss after Remove")
	}
	// The provider keeps its other model.
	if _, _, ok := registry.Lookup("anthropic/claude-sonnet-4-6"); !ok {
		t.Error("Remove should not disturb sibling models")
	}
}

func TestRemoveLastModelDropsProvider(t *testing.T) {
	registry := testRegistry()

	if err := registry.Remove("openrouter/meta-llama/llama-4-scout"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok := registry.Providers["openrouter"]; ok {
		t.Error("provider with no models should be dropped")
	}
}

func TestRemoveMissing(t *testing.T) {
	registry := testRegistry()

	if err := registry.Remove("nobody/nothing"); err == nil {
		t.Fatal("Remove of unknown id should fail")
	}
}
