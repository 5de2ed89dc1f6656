// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sniff defines the boundary between the supervisor and the
// sniffing subsystem that reads telemetry out of the game's memory.
//
// A [Source] is created per supervised process by a [Factory] and starts
// emitting events immediately. Any number of subscribers may register
// callbacks; callbacks for one channel are invoked in emission order,
// possibly from a goroutine owned by the source. Callbacks must not
// block for long, as they hold up the memory reader.
package sniff

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/bureau-foundation/rocksniffer/lib/proctable"
	"github.com/bureau-foundation/rocksniffer/lib/snapshot"
)

// Source emits telemetry for one supervised process.
type Source interface {
	// OnSongChanged registers a callback for song identity changes.
	OnSongChanged(func(snapshot.SongIdentity))

	// OnPerformanceUpdated registers a callback for performance
	// readouts.
	OnPerformanceUpdated(func(snapshot.LivePerformance))

	// Stop ends emission. No callback starts after Stop returns.
	Stop()
}

// Factory creates a running Source attached to a process.
type Factory func(process proctable.Handle) (Source, error)

// Notifier is the optional side-channel that forwards telemetry to
// overlay widgets. It is handed each new Source so it can subscribe to
// the same events the render loop consumes.
type Notifier interface {
	SetSource(Source)
}

// Options carries the debug switches forwarded to the memory reader.
// The supervisor applies its own StateMachine and SongDetails logging;
// the reader applies the rest. Idle has no reader and only reports
// which switches it was asked for.
type Options struct {
	DebugStateMachine         bool
	DebugSongDetails          bool
	DebugMemoryReadout        bool
	DebugSystemHandleQuery    bool
	DebugFileDetailQuery      bool
	DisableFileHandleSniffing bool
}

// Requested returns the config names of the switches that are set.
func (o Options) Requested() []string {
	switches := []struct {
		name string
		set  bool
	}{
		{"state_machine", o.DebugStateMachine},
		{"song_details", o.DebugSongDetails},
		{"memory_readout", o.DebugMemoryReadout},
		{"system_handle_query", o.DebugSystemHandleQuery},
		{"file_detail_query", o.DebugFileDetailQuery},
		{"disable_file_handle_sniffing", o.DisableFileHandleSniffing},
	}
	var requested []string
	for _, s := range switches {
		if s.set {
			requested = append(requested, s.name)
		}
	}
	return requested
}

// Idle is the Source used when the binary is built without a memory
// reader. It never emits; outputs stay at their "no song" rendering
// while the process is supervised.
type Idle struct {
	mu      sync.Mutex
	stopped bool
}

// IdleFactory returns a Factory producing Idle sources. The first
// source created logs that no memory reader is linked.
func IdleFactory(logger *slog.Logger, options Options) Factory {
	var once sync.Once
	return func(process proctable.Handle) (Source, error) {
		once.Do(func() {
			logger.Warn("no memory reader linked into this build; outputs will show no song",
				"pid", process.PID(),
				"unapplied_switches", strings.Join(options.Requested(), ","),
			)
		})
		return &Idle{}, nil
	}
}

// OnSongChanged implements Source. Idle never calls it.
func (*Idle) OnSongChanged(func(snapshot.SongIdentity)) {}

// OnPerformanceUpdated implements Source. Idle never calls it.
func (*Idle) OnPerformanceUpdated(func(snapshot.LivePerformance)) {}

// Stop implements Source.
func (s *Idle) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
}

// Stopped reports whether Stop has been called.
func (s *Idle) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}
