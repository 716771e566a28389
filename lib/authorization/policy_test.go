// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

package authorization

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestMatchPattern(t *testing.T) {
	cases := []struct {
		pattern string
		action  string
		want    bool
	}{
		{"model/set", "model/set", true},
		{"model/set", "model/reset", false},
		{"model/*", "model/set", true},
		{"model/*", "model/a/b", false},
		{"model/**", "model/set", true},
		{"model/**", "model/registry/add", true},
		{"model/**", "registry/add", false},
		{"**", "anything/at/all", true},
		{"model/se?", "model/set", true},
		{"model/[", "model/set", false}, // malformed: deny
		{"model/**/x", "model/a/x", false},
	}
	for _, c := range cases {
		if got := matchPattern(c.pattern, c.action); got != c.want {
			t.Errorf("matchPattern(%q, %q) = %v, want %v", c.pattern, c.action, got, c.want)
		}
	}
}

func TestLoadPolicyMissingFileDeniesAll(t *testing.T) {
	policy, err := LoadPolicy(filepath.Join(t.TempDir(), "policy.yaml"))
	if err != nil {
		t.Fatalf("LoadPolicy: %v", err)
	}
	if policy.Allows("alice", "model/set") {
		t.Error("an absent policy must deny")
	}
}

func TestLoadPolicyAndAuthorize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	content := `identities:
  alice:
    allow:
      - model/**
  deploy-bot:
    allow:
      - model/set
      - model/reload
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	policy, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("LoadPolicy: %v", err)
	}

	if err := policy.Authorize("alice", "model/rollback"); err != nil {
		t.Errorf("alice should hold model/**: %v", err)
	}
	if err := policy.Authorize("deploy-bot", "model/set"); err != nil {
		t.Errorf("deploy-bot should hold model/set: %v", err)
	}

	err = policy.Authorize("deploy-bot", "model/rollback")
	var denied *DeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("err = %v, want DeniedError", err)
	}
	if denied.Identity != "deploy-bot" || denied.Action != "model/rollback" {
		t.Errorf("denied = %+v", denied)
	}

	if err := policy.Authorize("mallory", "model/set"); err == nil {
		t.Error("unknown identity must be denied")
	}
}

func TestAuthorizeMissingIdentity(t *testing.T) {
	policy := &Policy{}

	if err := policy.Authorize("", "model/set"); !errors.Is(err, ErrMissingIdentity) {
		t.Errorf("err = %v, want ErrMissingIdentity", err)
	}
}

func TestLoadPolicyRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(path, []byte(":\n  - ["), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := LoadPolicy(path); err == nil {
		t.Fatal("LoadPolicy should reject unparseable YAML")
	}
}

func TestResolveIdentityFlagWinsOverEnvironment(t *testing.T) {
	t.Setenv(EnvIdentity, "from-env")

	if got := ResolveIdentity("from-flag"); got != "from-flag" {
		t.Errorf("ResolveIdentity = %q, want flag value", got)
	}
	if got := ResolveIdentity(""); got != "from-env" {
		t.Errorf("ResolveIdentity = %q, want environment value", got)
	}
}
