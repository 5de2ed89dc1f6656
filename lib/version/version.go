// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for the rocksniffer
// binary.
//
// Version information is injected at build time via -ldflags, for example:
//
//	go build -ldflags "-X github.com/bureau-foundation/rocksniffer/lib/version.GitCommit=$(git rev-parse --short HEAD)"
package version

import (
	"fmt"
	"runtime"
	"strconv"
)

// These variables are set via -ldflags at build time.
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.3"
)

// Info returns a formatted version string suitable for --version output.
func Info() string {
	return fmt.Sprintf("%s (%s)", Version, GitCommit)
}

// PointerBits returns the pointer width of the running binary, 32 or 64.
func PointerBits() int {
	return strconv.IntSize
}

// Banner is the startup line naming the version and platform.
func Banner() string {
	return fmt.Sprintf("rocksniffer %s (%dbits, %s/%s)", Info(), PointerBits(), runtime.GOOS, runtime.GOARCH)
}
