// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestRepanicLogsAndPanicsAgain(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	defer func() {
		recovered := recover()
		if recovered != "boom" {
			t.Fatalf("recovered %v, want the original panic value", recovered)
		}
		output := logs.String()
		for _, want := range []string{"unhandled panic", "where=\"test loop\"", "panic=boom", "stack="} {
			if !strings.Contains(output, want) {
				t.Errorf("log missing %q: %s", want, output)
			}
		}
	}()

	func() {
		defer func() {
			if recovered := recover(); recovered != nil {
				Repanic(logger, recovered, "test loop")
			}
		}()
		panic("boom")
	}()
}
