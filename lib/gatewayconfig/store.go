// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

package gatewayconfig

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/agentgate-foundation/agentgate/lib/atomicfile"
)

// UnknownModel is reported when the document declares no model at all.
const UnknownModel = "(unknown)"

// MainAgentID is the agent whose model follows the default on a switch.
const MainAgentID = "main"

// Store operates on one gateway configuration document.
type Store struct {
	// Path is the live document.
	Path string

	// BackupDir receives timestamped copies. Created on first backup.
	BackupDir string
}

// Load decodes the document into a generic map, stripping comments and
// trailing commas first. Unknown fields survive a later [Store.Patch]
// because nothing here binds the document to a struct.
func (s *Store) Load() (map[string]any, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading gateway config %s: %w", s.Path, err)
	}

	var document map[string]any
	if err := json.Unmarshal(jsonc.ToJSON(data), &document); err != nil {
		return nil, fmt.Errorf("parsing gateway config %s: %w", s.Path, err)
	}
	return document, nil
}

// CurrentModel reports the model the document declares: the main
// agent's override when present, else the default, else
// [UnknownModel].
func (s *Store) CurrentModel() (string, error) {
	document, err := s.Load()
	if err != nil {
		return "", err
	}
	return declaredModel(document), nil
}

func declaredModel(document map[string]any) string {
	if agent := findAgent(document, MainAgentID); agent != nil {
		if model, ok := nestedString(agent, "model", "primary"); ok && model != "" {
			return model
		}
	}
	if model, ok := nestedString(document, "agents", "defaults", "model", "primary"); ok && model != "" {
		return model
	}
	return UnknownModel
}

// Patch sets the default model and, when a main agent entry exists,
// its override, then writes the document back atomically. The whole
// read-modify-write runs under the store lock. Returns the model the
// document declared before the patch.
func (s *Store) Patch(id string) (previous string, err error) {
	unlock, err := s.lock()
	if err != nil {
		return "", err
	}
	defer unlock()

	document, err := s.Load()
	if err != nil {
		return "", err
	}
	previous = declaredModel(document)

	setNested(document, id, "agents", "defaults", "model", "primary")
	if agent := findAgent(document, MainAgentID); agent != nil {
		setNested(agent, id, "model", "primary")
	}

	if err := s.write(document); err != nil {
		return "", err
	}
	return previous, nil
}

func (s *Store) write(document map[string]any) error {
	data, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling gateway config: %w", err)
	}
	data = append(data, '\n')

	if err := atomicfile.WriteFile(s.Path, data, 0644); err != nil {
		return fmt.Errorf("writing gateway config %s: %w", s.Path, err)
	}
	return nil
}

// findAgent returns the agents.list entry with the given id, or nil.
func findAgent(document map[string]any, id string) map[string]any {
	agents, ok := document["agents"].(map[string]any)
	if !ok {
		return nil
	}
	list, ok := agents["list"].([]any)
	if !ok {
		return nil
	}
	for _, entry := range list {
		agent, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if agentID, _ := agent["id"].(string); agentID == id {
			return agent
		}
	}
	return nil
}

// nestedString walks a map path and returns the string at its end.
func nestedString(document map[string]any, path ...string) (string, bool) {
	current := document
	for _, key := range path[:len(path)-1] {
		next, ok := current[key].(map[string]any)
		if !ok {
			return "", false
		}
		current = next
	}
	value, ok := current[path[len(path)-1]].(string)
	return value, ok
}

// setNested writes a string at a map path, creating intermediate maps.
// A non-map value blocking the path is replaced; the model fields are
// ours to own.
func setNested(document map[string]any, value string, path ...string) {
	current := document
	for _, key := range path[:len(path)-1] {
		next, ok := current[key].(map[string]any)
		if !ok {
			next = map[string]any{}
			current[key] = next
		}
		current = next
	}
	current[path[len(path)-1]] = value
}
