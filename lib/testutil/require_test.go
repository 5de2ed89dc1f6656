// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

// recorder captures Fatalf instead of failing the enclosing test.
// Fatalf panics to stop the helper, as testing.T.Fatalf stops the
// goroutine.
type recorder struct {
	message string
}

func (r *recorder) Helper() {}

func (r *recorder) Fatalf(format string, args ...any) {
	r.message = fmt.Sprintf(format, args...)
	panic(r)
}

func capture(run func(r *recorder)) (message string) {
	r := &recorder{}
	defer func() {
		if recovered := recover(); recovered != nil && recovered != r {
			panic(recovered)
		}
		message = r.message
	}()
	run(r)
	return ""
}

func TestRequireReceive(t *testing.T) {
	ch := make(chan int, 1)
	ch <- 7
	if got := RequireReceive(t, ch, time.Second, "value"); got != 7 {
		t.Errorf("RequireReceive = %d, want 7", got)
	}
}

func TestRequireReceiveClosed(t *testing.T) {
	ch := make(chan int)
	close(ch)
	message := capture(func(r *recorder) { RequireReceive(r, ch, time.Second, "reading %s", "ch") })
	if !strings.Contains(message, "channel closed") || !strings.Contains(message, "reading ch") {
		t.Errorf("unexpected failure message %q", message)
	}
}

func TestRequireClosedTimeout(t *testing.T) {
	message := capture(func(r *recorder) { RequireClosed(r, make(chan struct{}), 10*time.Millisecond) })
	if !strings.Contains(message, "timed out") || !strings.Contains(message, "(no message)") {
		t.Errorf("unexpected failure message %q", message)
	}
}

func TestEventually(t *testing.T) {
	calls := 0
	Eventually(t, time.Second, func() bool {
		calls++
		return calls >= 3
	})
	if calls != 3 {
		t.Errorf("condition called %d times, want 3", calls)
	}

	message := capture(func(r *recorder) {
		Eventually(r, 10*time.Millisecond, func() bool { return false }, "never")
	})
	if !strings.Contains(message, "condition not met") {
		t.Errorf("unexpected failure message %q", message)
	}
}
