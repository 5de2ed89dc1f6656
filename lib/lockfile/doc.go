// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package lockfile writes output artifacts in place under an exclusive
// lock so overlay readers never observe a torn file.
//
// Overlay software opens the artifacts by a fixed path and often holds
// them open, so a write cannot go through a temporary file and rename:
// the reader would keep the old inode. Instead the writer:
//
//  1. creates the file empty if it does not exist yet,
//  2. opens it for writing without truncating,
//  3. takes an exclusive non-blocking lock,
//  4. truncates, writes the payload and, for Exclusive writes, syncs,
//  5. releases the lock and closes on every path.
//
// A lock held by another process is reported as a failed write rather
// than waited for; the next render tick retries.
//
// Write never returns an error. Failures are logged with the path and
// the caller carries on, because one unwritable artifact must not stop
// the others from updating. The destination exists after any write
// attempt whose directory exists, even when the attempt failed.
package lockfile
