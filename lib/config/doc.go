// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the agentgate CLI.
//
// Configuration is loaded from a single YAML file specified by:
//   - the --config flag passed to the command, or
//   - the AGENTGATE_CONFIG environment variable, or
//   - ~/.agentgate/config.yaml when it exists.
//
// When no file is found the built-in defaults apply, so a fresh
// installation works without writing any configuration. The file never
// merges with environment variables — the loaded file plus defaults is
// the whole truth, which keeps a switch run auditable.
package config
