// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agentgate-foundation/agentgate/lib/registry"
)

func testIndex() registry.Index {
	return registry.Index{
		"anthropic/claude-sonnet-4-6":         "anthropic/claude-sonnet-4-6",
		"openrouter/meta-llama/llama-4-scout": "openrouter/meta-llama/llama-4-scout",
	}
}

type fakeRemote struct {
	listed map[string]bool
	err    error
	asked  []string
}

func (f *fakeRemote) Has(ctx context.Context, id string) (bool, error) {
	f.asked = append(f.asked, id)
	if f.err != nil {
		return false, f.err
	}
	return f.listed[id], nil
}

func TestParseMode(t *testing.T) {
	for input, want := range map[string]Mode{
		"none":    ModeNone,
		"local":   ModeLocal,
		" Remote": ModeRemote,
	} {
		got, err := ParseMode(input)
		if err != nil {
			t.Errorf("ParseMode(%q): %v", input, err)
		}
		if got != want {
			t.Errorf("ParseMode(%q) = %q, want %q", input, got, want)
		}
	}

	if _, err := ParseMode("paranoid"); err == nil {
		t.Error("ParseMode should reject unknown modes")
	}
}

func TestValidateModeNone(t *testing.T) {
	v := &Validator{}

	result := v.Validate(context.Background(), "anything/at-all", testIndex(), ModeNone)
	if !result.Valid {
		t.Errorf("ModeNone should always pass, got %+v", result)
	}
}

func TestValidateLocalHit(t *testing.T) {
	v := &Validator{}

	result := v.Validate(context.Background(), "anthropic/claude-sonnet-4-6", testIndex(), ModeLocal)
	if !result.Valid {
		t.Errorf("registered id should pass local validation, got %+v", result)
	}
}

func TestValidateLocalMiss(t *testing.T) {
	v := &Validator{}

	result := v.Validate(context.Background(), "anthropic/claude-haiku-5", testIndex(), ModeLocal)
	if result.Valid {
		t.Fatal("unregistered id should fail local validation")
	}
	if !strings.Contains(result.Reason, "anthropic/claude-haiku-5") {
		t.Errorf("reason should name the id, got %q", result.Reason)
	}
}

func TestValidateRemoteListed(t *testing.T) {
	remote := &fakeRemote{listed: map[string]bool{"meta-llama/llama-4-scout": true}}
	v := &Validator{Remote: remote}

	result := v.Validate(context.Background(), "openrouter/meta-llama/llama-4-scout", testIndex(), ModeRemote)
	if !result.Valid {
		t.Errorf("listed id should pass remote validation, got %+v", result)
	}
	// The provider prefix is stripped before the catalog query.
	if len(remote.asked) != 1 || remote.asked[0] != "meta-llama/llama-4-scout" {
		t.Errorf("asked = %v, want [meta-llama/llama-4-scout]", remote.asked)
	}
}

func TestValidateRemoteUnlisted(t *testing.T) {
	remote := &fakeRemote{listed: map[string]bool{}}
	v := &Validator{Remote: remote}

	result := v.Validate(context.Background(), "openrouter/meta-llama/llama-4-scout", testIndex(), ModeRemote)
	if result.Valid {
		t.Fatal("unlisted id should fail remote validation")
	}
}

func TestValidateRemoteQueryFailureFailsClosed(t *testing.T) {
	remote := &fakeRemote{err: errors.New("connection refused")}
	v := &Validator{Remote: remote}

	result := v.Validate(context.Background(), "openrouter/meta-llama/llama-4-scout", testIndex(), ModeRemote)
	if result.Valid {
		t.Fatal("catalog failure must fail closed")
	}
	if !strings.Contains(result.Reason, "connection refused") {
		t.Errorf("reason should carry the query error, got %q", result.Reason)
	}
}

func TestValidateRemoteDirectProviderSkipsCatalog(t *testing.T) {
	remote := &fakeRemote{}
	v := &Validator{Remote: remote}

	// Direct-provider ids have no live catalog; registration suffices.
	result := v.Validate(context.Background(), "anthropic/claude-sonnet-4-6", testIndex(), ModeRemote)
	if !result.Valid {
		t.Errorf("direct-provider id should pass on registration, got %+v", result)
	}
	if len(remote.asked) != 0 {
		t.Errorf("catalog should not be queried for direct-provider ids, asked %v", remote.asked)
	}
}

func TestValidateRemoteStillChecksRegistryFirst(t *testing.T) {
	remote := &fakeRemote{listed: map[string]bool{"qwen/qwen-3-coder": true}}
	v := &Validator{Remote: remote}

	result := v.Validate(context.Background(), "openrouter/qwen/qwen-3-coder", testIndex(), ModeRemote)
	if result.Valid {
		t.Fatal("remote mode must not bypass the registry check")
	}
	if len(remote.asked) != 0 {
		t.Errorf("catalog should not be asked about unregistered ids, asked %v", remote.asked)
	}
}

func TestOpenRouterHas(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":"meta-llama/llama-4-scout"},{"id":"qwen/qwen-3-coder"}]}`))
	}))
	defer server.Close()

	catalog := NewOpenRouter(server.URL, time.Second)

	listed, err := catalog.Has(context.Background(), "Meta-Llama/Llama-4-Scout")
	if err != nil {
		t.Fatalf("Has: %v", err)
	}
	if !listed {
		t.Error("Has should match listed ids case-insensitively")
	}

	listed, err = catalog.Has(context.Background(), "nobody/nothing")
	if err != nil {
		t.Fatalf("Has: %v", err)
	}
	if listed {
		t.Error("Has should miss ids absent from the listing")
	}
}

func TestOpenRouterHasServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer server.Close()

	catalog := NewOpenRouter(server.URL, time.Second)

	if _, err := catalog.Has(context.Background(), "meta-llama/llama-4-scout"); err == nil {
		t.Fatal("Has should surface non-200 responses as errors")
	}
}

func TestOpenRouterHasBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	catalog := NewOpenRouter(server.URL, time.Second)

	if _, err := catalog.Has(context.Background(), "meta-llama/llama-4-scout"); err == nil {
		t.Fatal("Has should surface unparseable responses as errors")
	}
}
