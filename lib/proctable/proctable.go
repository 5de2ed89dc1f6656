// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package proctable

import "errors"

// ErrNotFound reports that no live, responsive process matched.
var ErrNotFound = errors.New("process not found")

// ErrUnsupported reports that process lookup is not implemented on this
// platform.
var ErrUnsupported = errors.New("process lookup not supported on this platform")

// Handle is a live reference to a found process.
type Handle interface {
	// PID returns the process ID.
	PID() int

	// HasExited reports whether the process has terminated.
	HasExited() bool

	// Close releases the handle. The process is not affected.
	Close() error
}

// commLimit is the longest name the kernel stores in comm (TASK_COMM_LEN
// minus the terminator).
const commLimit = 15
