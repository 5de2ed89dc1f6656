// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package proctable finds a running process by name and returns a
// handle that tracks whether it is still alive.
//
// On Linux the table is read from /proc. A process matches when its comm
// equals the wanted name (truncated to the kernel's 15-byte comm limit)
// or when the basename of argv[0], with any ".exe" suffix removed,
// equals the wanted name. The second form matches Windows games running
// under Wine or Proton, whose comm is the truncated executable name.
//
// Processes that cannot make progress are skipped during lookup: zombies
// (Z), dead tasks (X) and stopped or traced tasks (T, t). This is how
// "not responding" is judged on Linux.
//
// The returned [Process] holds a pidfd where the kernel supports one, so
// HasExited can never be fooled by the PID being reused by an unrelated
// process. Older kernels fall back to signal-zero probing.
package proctable
