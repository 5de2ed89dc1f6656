// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides entrypoint helpers for the rocksniffer
// binary. These functions centralize the two ways the program ends
// abnormally:
//
//   - Fatal reports a startup error to stderr, where the structured
//     logger may not be initialized yet, and exits with status 1.
//   - Repanic logs a recovered panic with its stack through the
//     structured logger and panics again. Unexpected failures are never
//     swallowed; the program is expected to be restarted by whatever
//     launched it.
package process
