// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"set", "set", 0},
		{"set", "sett", 1},
		{"reste", "reset", 2},
		{"current", "curent", 1},
		{"model", "rollback", 8},
	}
	for _, c := range cases {
		if got := levenshtein(c.a, c.b); got != c.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{
		{Name: "set"},
		{Name: "reset"},
		{Name: "rollback"},
		{Name: "current"},
	}

	if got := suggestCommand("curent", commands); got != "current" {
		t.Errorf("suggestCommand(curent) = %q", got)
	}
	if got := suggestCommand("rollbck", commands); got != "rollback" {
		t.Errorf("suggestCommand(rollbck) = %q", got)
	}
	if got := suggestCommand("zzzzzzzzzz", commands); got != "" {
		t.Errorf("suggestCommand far from everything = %q, want no suggestion", got)
	}
}

func TestSuggestFlag(t *testing.T) {
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flagSet.String("validate", "", "")
	flagSet.Bool("dry-run", false, "")

	if got := suggestFlag([]string{"--validte", "remote"}, flagSet); got != "--validate" {
		t.Errorf("suggestFlag = %q, want --validate", got)
	}
	if got := suggestFlag([]string{"--dryrun"}, flagSet); got != "--dry-run" {
		t.Errorf("suggestFlag = %q, want --dry-run", got)
	}
	if got := suggestFlag([]string{"--completely-different"}, flagSet); got != "" {
		t.Errorf("suggestFlag = %q, want no suggestion", got)
	}
}
