// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	original := GitCommit
	t.Cleanup(func() { GitCommit = original })

	GitCommit = "abc1234"
	if got, want := Info(), Version+" (abc1234)"; got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
}

func TestBanner(t *testing.T) {
	banner := Banner()
	if !strings.HasPrefix(banner, "rocksniffer "+Version) {
		t.Errorf("Banner() = %q", banner)
	}
	if bits := PointerBits(); bits != 32 && bits != 64 {
		t.Errorf("PointerBits() = %d", bits)
	}
}
