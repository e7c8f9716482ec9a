// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the bootspec
// tool.
//
// Configuration is loaded from a single file named by either the
// BOOTSPEC_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no ~/.config discovery and no automatic
// file search; when neither is given the CLI uses [Default].
//
// The file supports environment-specific sections (development,
// staging, production) that override base values when
// [Config].Environment matches. Production is stricter by default:
// every bootspec path must lie in the Nix store.
//
// Variable expansion is performed on policy.store_dir after loading:
// ${VAR} and ${VAR:-default} patterns are expanded. No environment
// variables override config values.
//
// Key exports:
//
//   - [Config] -- master struct with Policy and Log sections
//   - [Default] -- returns a Config with development defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
package config
