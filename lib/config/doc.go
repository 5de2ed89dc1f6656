// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the rocksniffer configuration file.
//
// Configuration comes from a single file named by:
//   - the ROCKSNIFFER_CONFIG environment variable, or
//   - the --config flag passed to the binary.
//
// Files ending in .yaml or .yml are parsed as YAML. Files ending in .json
// or .jsonc are parsed as JSON and may carry // and /* */ comments and
// trailing commas, which is the format the overlay community shares
// output presets in. Values absent from the file keep their defaults.
//
// The configuration is loaded once at startup and passed by value to the
// components that need it. Nothing in this package holds global state.
package config
