// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source for the supervisor and
// render loop.
//
// Production code holds a Clock field and waits through it instead of
// calling time.After directly:
//
//	s := &Supervisor{clock: clock.Real()}
//
// Tests inject a FakeClock. Time stands still until Advance is called, and
// WaitForTimers blocks until the goroutine under test has registered its
// wait, which removes the race between registering a timer and advancing
// past it:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	go supervisor.Run(ctx)
//	c.WaitForTimers(1)
//	c.Advance(time.Second)
package clock
