// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestExecuteDispatchesSubcommand(t *testing.T) {
	var ran []string
	leaf := &Command{
		Name: "set",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			ran = args
			return nil
		},
	}
	root := &Command{Name: "agentgate", Subcommands: []*Command{
		{Name: "model", Subcommands: []*Command{leaf}},
	}}

	err := root.Execute(context.Background(), []string{"model", "set", "sonnet"}, testLogger())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(ran) != 1 || ran[0] != "sonnet" {
		t.Errorf("leaf args = %v, want [sonnet]", ran)
	}
}

func TestExecuteUnknownSubcommandSuggests(t *testing.T) {
	root := &Command{Name: "agentgate", Subcommands: []*Command{
		{Name: "model"},
	}}

	err := root.Execute(context.Background(), []string{"modle"}, testLogger())
	if err == nil {
		t.Fatal("unknown subcommand should error")
	}
	if !strings.Contains(err.Error(), `did you mean "model"`) {
		t.Errorf("error = %q, want a suggestion", err)
	}
}

func TestExecuteParsesFlagsBeforeRun(t *testing.T) {
	var dryRun bool
	var positional []string
	command := &Command{
		Name: "set",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("set", pflag.ContinueOnError)
			flagSet.BoolVar(&dryRun, "dry-run", false, "")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			positional = args
			return nil
		},
	}

	err := command.Execute(context.Background(), []string{"--dry-run", "sonnet"}, testLogger())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !dryRun {
		t.Error("--dry-run did not parse")
	}
	if len(positional) != 1 || positional[0] != "sonnet" {
		t.Errorf("positional = %v", positional)
	}
}

func TestExecuteUnknownFlagSuggests(t *testing.T) {
	command := &Command{
		Name: "set",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("set", pflag.ContinueOnError)
			flagSet.Bool("dry-run", false, "")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			return nil
		},
	}

	err := command.Execute(context.Background(), []string{"--dryrun"}, testLogger())
	if err == nil {
		t.Fatal("unknown flag should error")
	}
	if !strings.Contains(err.Error(), "--dry-run") {
		t.Errorf("error = %q, want a flag suggestion", err)
	}
}

func TestExecuteSubcommandRequired(t *testing.T) {
	root := &Command{Name: "agentgate", Subcommands: []*Command{{Name: "model"}}}

	if err := root.Execute(context.Background(), nil, testLogger()); err == nil {
		t.Fatal("missing subcommand should error")
	}
}

func TestPrintHelpListsSubcommandsAndExamples(t *testing.T) {
	root := &Command{
		Name:    "model",
		Summary: "Model operations",
		Examples: []Example{
			{Description: "switch", Command: "agentgate model set sonnet"},
		},
		Subcommands: []*Command{
			{Name: "set", Summary: "Switch the model"},
			{Name: "current", Summary: "Show the model"},
		},
	}

	var help strings.Builder
	root.PrintHelp(&help)
	out := help.String()
	for _, want := range []string{"set", "Switch the model", "current", "agentgate model set sonnet"} {
		if !strings.Contains(out, want) {
			t.Errorf("help output missing %q:\n%s", want, out)
		}
	}
}
