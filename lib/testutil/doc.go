// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for rocksniffer
// packages.
//
// [RequireReceive] and [RequireClosed] encapsulate the timeout safety
// valve pattern (select with time.After fallback) so that individual
// tests do not need direct time.After calls. [Eventually] polls a
// condition that is reached by another goroutine, such as a file
// written by the render loop. These are the only place in the test
// suite where real wall-clock time is used; everything else drives time
// through a fake clock.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no rocksniffer-internal dependencies.
package testutil
