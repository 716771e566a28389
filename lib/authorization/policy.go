// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

package authorization

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvIdentity is consulted for the caller identity when --as is not
// given.
const EnvIdentity = "AGENTGATE_IDENTITY"

// Policy is the allow-list document.
type Policy struct {
	Identities map[string]IdentityPolicy `yaml:"identities"`
}

// IdentityPolicy lists what one identity may do.
type IdentityPolicy struct {
	Allow []string `yaml:"allow"`
}

// LoadPolicy reads the policy file. A missing file yields an empty
// policy, which denies every action.
func LoadPolicy(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Policy{}, nil
		}
		return nil, fmt.Errorf("reading policy %s: %w", path, err)
	}

	var policy Policy
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return nil, fmt.Errorf("parsing policy %s: %w", path, err)
	}
	return &policy, nil
}

// Allows reports whether the identity may perform the action.
func (p *Policy) Allows(identity, action string) bool {
	entry, ok := p.Identities[identity]
	if !ok {
		return false
	}
	return matchAny(entry.Allow, action)
}

// ErrMissingIdentity means no caller identity was supplied at all.
// This is an input problem, distinct from a known identity being
// denied; both refuse the action.
var ErrMissingIdentity = errors.New(
	"no caller identity: pass --as or set " + EnvIdentity)

// DeniedError means the policy does not grant the action to the
// identity.
type DeniedError struct {
	Identity string
	Action   string
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("identity %q is not allowed to perform %s", e.Identity, e.Action)
}

// ResolveIdentity picks the caller identity: the flag value when set,
// else the environment.
func ResolveIdentity(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(EnvIdentity)
}

// Authorize checks one action against the policy. It runs before any
// side effect of a mutating command.
func (p *Policy) Authorize(identity, action string) error {
	if identity == "" {
		return ErrMissingIdentity
	}
	if !p.Allows(identity, action) {
		return &DeniedError{Identity: identity, Action: action}
	}
	return nil
}
