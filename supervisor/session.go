// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package supervisor

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/bureau-foundation/rocksniffer/lib/process"
	"github.com/bureau-foundation/rocksniffer/lib/proctable"
	"github.com/bureau-foundation/rocksniffer/lib/snapshot"
)

// session is one supervised run of the process. It gates sniffer
// callbacks so events delivered after the session ended cannot
// overwrite the cleared outputs.
type session struct {
	supervisor *Supervisor
	logger     *slog.Logger

	mu    sync.RWMutex
	ended bool
}

// supervise runs the render loop for handle and tears the session down
// once the process exits or ctx is cancelled.
func (s *Supervisor) supervise(ctx context.Context, handle proctable.Handle) {
	sessionID := uuid.NewString()
	logger := s.logger.With("session_id", sessionID, "pid", handle.PID())

	s.transition(Supervising, handle.PID(), sessionID)
	logger.Info("process found, sniffing", "process", s.processName)

	s.store.Reset()
	s.clearOutputs(logger)

	current := &session{supervisor: s, logger: logger}
	source, err := s.sources(handle)
	if err != nil {
		// Keep polling liveness so the same process is not reacquired
		// every poll interval.
		logger.Error("unable to start sniffer", "error", err)
	} else {
		source.OnSongChanged(guarded(logger, "song changed callback", current.songChanged))
		source.OnPerformanceUpdated(guarded(logger, "performance callback", current.performanceUpdated))
		if s.notifier != nil {
			s.notifier.SetSource(source)
		}
	}

	s.renderLoop(ctx, handle)

	current.end()
	if source != nil {
		source.Stop()
	}
	if err := handle.Close(); err != nil {
		logger.Warn("unable to release process handle", "error", err)
	}

	s.store.Reset()
	s.clearOutputs(logger)

	if ctx.Err() == nil {
		logger.Info("process vanished", "process", s.processName)
	}
}

// renderLoop renders every output, waits one tick, and repeats until the
// process has exited or ctx is cancelled.
func (s *Supervisor) renderLoop(ctx context.Context, handle proctable.Handle) {
	for {
		s.renderOutputs(s.store.Snapshot())

		select {
		case <-ctx.Done():
			return
		case <-s.clock.After(s.tickInterval):
		}

		if handle.HasExited() {
			return
		}
	}
}

func (c *session) songChanged(song snapshot.SongIdentity) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.ended {
		return
	}

	c.supervisor.store.SetSong(song)
	if c.supervisor.debug.SongDetails {
		c.logger.Debug("song changed",
			"song_id", song.SongID,
			"artist", song.ArtistName,
			"song", song.SongName,
			"valid", song.Valid(),
		)
	}
	c.supervisor.writeAlbumArt(song, c.logger)
}

func (c *session) performanceUpdated(performance snapshot.LivePerformance) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.ended {
		return
	}

	c.supervisor.store.SetPerformance(performance)
}

// end waits for in-flight callbacks and rejects later ones.
func (c *session) end() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ended = true
}

// guarded wraps a sniffer callback so a panic inside it is logged with
// its stack before it propagates.
func guarded[T any](logger *slog.Logger, where string, callback func(T)) func(T) {
	return func(value T) {
		defer func() {
			if recovered := recover(); recovered != nil {
				process.Repanic(logger, recovered, where)
			}
		}()
		callback(value)
	}
}
