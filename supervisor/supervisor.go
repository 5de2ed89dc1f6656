// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package supervisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/bureau-foundation/rocksniffer/lib/clock"
	"github.com/bureau-foundation/rocksniffer/lib/config"
	"github.com/bureau-foundation/rocksniffer/lib/lockfile"
	"github.com/bureau-foundation/rocksniffer/lib/process"
	"github.com/bureau-foundation/rocksniffer/lib/proctable"
	"github.com/bureau-foundation/rocksniffer/lib/sniff"
	"github.com/bureau-foundation/rocksniffer/lib/snapshot"
	"github.com/bureau-foundation/rocksniffer/lib/statusfile"
	"github.com/bureau-foundation/rocksniffer/lib/template"
)

// State is the supervisor's lifecycle position.
type State int32

const (
	// Searching means no process is attached.
	Searching State = iota

	// Supervising means a process is attached and outputs are rendered
	// every tick.
	Supervising
)

func (s State) String() string {
	switch s {
	case Searching:
		return "searching"
	case Supervising:
		return "supervising"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Finder looks up the target process. It returns an error wrapping
// proctable.ErrNotFound when no live, responsive process matches.
type Finder interface {
	Find(name string) (proctable.Handle, error)
}

// ArtCache stores encoded album art by song ID. Get returns an error
// wrapping artcache.ErrMiss when nothing usable is stored.
type ArtCache interface {
	Get(songID string) ([]byte, error)
	Put(songID string, jpeg []byte) error
}

// Config holds the dependencies and settings of a Supervisor.
type Config struct {
	// ProcessName is the process to supervise.
	ProcessName string

	// PollInterval is the wait between lookups while searching.
	PollInterval time.Duration

	// TickInterval is the render period while supervising.
	TickInterval time.Duration

	// OutputDirectory receives every artifact.
	OutputDirectory string

	// Outputs are the text artifacts rendered each tick.
	Outputs []config.OutputSpec

	Renderer *template.Renderer
	Writer   *lockfile.Writer
	Finder   Finder
	Sources  sniff.Factory

	// Notifier is optional. It receives each new sniffer source.
	Notifier sniff.Notifier

	// ArtCache is optional.
	ArtCache ArtCache

	// StatusPath is optional. When set, every transition is recorded
	// there with statusfile.Write.
	StatusPath string

	Clock  clock.Clock
	Logger *slog.Logger

	// Debug selects which subsystems log at debug level.
	Debug DebugOptions
}

// DebugOptions gates the supervisor's debug logging per subsystem. The
// logger's level must also admit debug records.
type DebugOptions struct {
	// StateMachine logs every lookup attempt and state transition.
	StateMachine bool

	// SongDetails logs each song change.
	SongDetails bool

	// Cache logs album-art cache hits, misses and stores.
	Cache bool
}

// Supervisor runs the search and supervise loop.
type Supervisor struct {
	processName     string
	pollInterval    time.Duration
	tickInterval    time.Duration
	outputDirectory string
	outputs         []config.OutputSpec
	renderer        *template.Renderer
	writer          *lockfile.Writer
	finder          Finder
	sources         sniff.Factory
	notifier        sniff.Notifier
	artCache        ArtCache
	statusPath      string
	clock           clock.Clock
	logger          *slog.Logger
	debug           DebugOptions

	store *snapshot.Store
	state atomic.Int32
}

// New validates cfg and returns a Supervisor in the Searching state.
func New(cfg Config) (*Supervisor, error) {
	var errs []error
	if cfg.ProcessName == "" {
		errs = append(errs, errors.New("process name is required"))
	}
	if cfg.PollInterval <= 0 || cfg.TickInterval <= 0 {
		errs = append(errs, errors.New("poll and tick intervals must be positive"))
	}
	if cfg.OutputDirectory == "" {
		errs = append(errs, errors.New("output directory is required"))
	}
	if cfg.Renderer == nil || cfg.Writer == nil || cfg.Finder == nil || cfg.Sources == nil {
		errs = append(errs, errors.New("renderer, writer, finder and sources are required"))
	}
	if cfg.Clock == nil || cfg.Logger == nil {
		errs = append(errs, errors.New("clock and logger are required"))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("configuring supervisor: %w", err)
	}

	return &Supervisor{
		processName:     cfg.ProcessName,
		pollInterval:    cfg.PollInterval,
		tickInterval:    cfg.TickInterval,
		outputDirectory: cfg.OutputDirectory,
		outputs:         cfg.Outputs,
		renderer:        cfg.Renderer,
		writer:          cfg.Writer,
		finder:          cfg.Finder,
		sources:         cfg.Sources,
		notifier:        cfg.Notifier,
		artCache:        cfg.ArtCache,
		statusPath:      cfg.StatusPath,
		clock:           cfg.Clock,
		logger:          cfg.Logger,
		debug:           cfg.Debug,
		store:           snapshot.NewStore(),
	}, nil
}

// State returns the current lifecycle state.
func (s *Supervisor) State() State {
	return State(s.state.Load())
}

// Snapshot returns the telemetry currently visible to the renderer.
func (s *Supervisor) Snapshot() snapshot.Snapshot {
	return s.store.Snapshot()
}

// Run searches for and supervises the process until ctx is cancelled.
// It returns nil on cancellation and does not return otherwise.
func (s *Supervisor) Run(ctx context.Context) error {
	defer func() {
		if recovered := recover(); recovered != nil {
			process.Repanic(s.logger, recovered, "supervisor")
		}
	}()

	s.clearOutputs(s.logger)

	for {
		s.transition(Searching, 0, "")
		s.logger.Info("waiting for process",
			"process", s.processName,
			"platform", runtime.GOOS,
		)

		handle, err := s.Acquire(ctx)
		if err != nil {
			s.logger.Info("supervisor stopped")
			return nil
		}

		s.supervise(ctx, handle)
		if ctx.Err() != nil {
			s.logger.Info("supervisor stopped")
			return nil
		}
	}
}

// Acquire blocks until a live process is found, polling once per poll
// interval. It returns ctx.Err() if ctx is cancelled first.
func (s *Supervisor) Acquire(ctx context.Context) (proctable.Handle, error) {
	warned := false
	for attempt := 1; ; attempt++ {
		if s.debug.StateMachine {
			s.logger.Debug("looking for process", "process", s.processName, "attempt", attempt)
		}

		handle, err := s.finder.Find(s.processName)
		switch {
		case err == nil && !handle.HasExited():
			return handle, nil
		case err == nil:
			if err := handle.Close(); err != nil {
				s.logger.Debug("unable to release exited process handle", "pid", handle.PID(), "error", err)
			}
		case errors.Is(err, proctable.ErrNotFound):
		case !warned:
			// Lookup errors repeat every poll; report the first one.
			s.logger.Warn("process lookup failed", "process", s.processName, "error", err)
			warned = true
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-s.clock.After(s.pollInterval):
		}
	}
}

// transition records a state change in memory and in the status file.
func (s *Supervisor) transition(state State, pid int, sessionID string) {
	previous := State(s.state.Swap(int32(state)))
	if s.debug.StateMachine {
		s.logger.Debug("state transition", "from", previous.String(), "to", state.String(), "pid", pid)
	}
	if s.statusPath == "" {
		return
	}
	err := statusfile.Write(s.statusPath, statusfile.State{
		State:       state.String(),
		ProcessName: s.processName,
		PID:         pid,
		SessionID:   sessionID,
		Since:       s.clock.Now().UTC(),
	})
	if err != nil {
		s.logger.Warn("unable to write status file", "path", s.statusPath, "error", err)
	}
}

func (s *Supervisor) outputPath(filename string) string {
	return filepath.Join(s.outputDirectory, filename)
}
