// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !unix

package lockfile

import "os"

// lock is a no-op where flock is unavailable. Writes are still
// truncate-in-place and never leave the destination missing.
func lock(*os.File) (unlock func(), err error) {
	return func() {}, nil
}
