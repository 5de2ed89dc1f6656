// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/rocksniffer/lib/artcache"
	"github.com/bureau-foundation/rocksniffer/lib/clock"
	"github.com/bureau-foundation/rocksniffer/lib/config"
	"github.com/bureau-foundation/rocksniffer/lib/lockfile"
	"github.com/bureau-foundation/rocksniffer/lib/process"
	"github.com/bureau-foundation/rocksniffer/lib/proctable"
	"github.com/bureau-foundation/rocksniffer/lib/sniff"
	"github.com/bureau-foundation/rocksniffer/lib/statusfile"
	"github.com/bureau-foundation/rocksniffer/lib/template"
	"github.com/bureau-foundation/rocksniffer/lib/version"
	"github.com/bureau-foundation/rocksniffer/supervisor"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		process.Fatal(err)
	}
}

// exitCode ends the process with a status and no error message.
type exitCode int

func (e exitCode) Error() string { return fmt.Sprintf("exit status %d", int(e)) }
func (e exitCode) ExitCode() int { return int(e) }

type options struct {
	configPath   string
	debug        bool
	logFormat    string
	status       bool
	statusMaxAge time.Duration
	showVersion  bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	flagSet := pflag.NewFlagSet("rocksniffer", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&opts.configPath, "config", "", "path to a .yaml or .jsonc config file (default: $ROCKSNIFFER_CONFIG, then built-in defaults)")
	flagSet.BoolVar(&opts.debug, "debug", false, "log at debug level with the state machine, song and cache switches on")
	flagSet.StringVar(&opts.logFormat, "log-format", "auto", "log format: text, json, or auto (text on a terminal, json otherwise)")
	flagSet.BoolVar(&opts.status, "status", false, "print the status of a running instance and exit")
	flagSet.DurationVar(&opts.statusMaxAge, "status-max-age", 0, "with --status, ignore status files older than this (0 disables)")
	flagSet.BoolVar(&opts.showVersion, "version", false, "print version information and exit")

	if err := flagSet.Parse(args); err != nil {
		return options{}, err
	}
	if extra := flagSet.Args(); len(extra) > 0 {
		return options{}, fmt.Errorf("unexpected argument: %s", extra[0])
	}
	switch opts.logFormat {
	case "auto", "text", "json":
	default:
		return options{}, fmt.Errorf("--log-format must be text, json or auto, got %q", opts.logFormat)
	}
	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if opts.showVersion {
		fmt.Fprintln(stdout, version.Banner())
		return nil
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	if opts.status {
		return printStatus(stdout, cfg.Paths.Status, opts.statusMaxAge, time.Now())
	}

	if opts.debug {
		cfg.Debug.StateMachine = true
		cfg.Debug.SongDetails = true
		cfg.Debug.Cache = true
	}

	level := slog.LevelInfo
	if cfg.Debug.Any() {
		level = slog.LevelDebug
	}
	logger := newLogger(stderr, resolveLogFormat(opts.logFormat, stderr), level)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return supervise(ctx, cfg, logger)
}

func loadConfig(path string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// resolveLogFormat picks text when w is a terminal and json when it is
// piped or redirected, matching what log collectors expect.
func resolveLogFormat(format string, w io.Writer) string {
	if format != "auto" {
		return format
	}
	if file, ok := w.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		return "text"
	}
	return "json"
}

func newLogger(w io.Writer, format string, level slog.Level) *slog.Logger {
	handlerOptions := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOptions))
	}
	return slog.New(slog.NewTextHandler(w, handlerOptions))
}

// supervise wires the configured components together and runs the
// supervisor until ctx is cancelled.
func supervise(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting", "version", version.Banner())

	if err := os.MkdirAll(cfg.Paths.Output, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	cache, err := artcache.Open(cfg.Paths.Cache, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := cache.Close(); err != nil {
			logger.Warn("unable to close album art cache", "error", err)
		}
	}()

	if cfg.Addons.Enable {
		logger.Warn("addons are enabled but no addon service is linked into this build",
			"ip_address", cfg.Addons.IPAddress,
			"port", cfg.Addons.Port,
		)
	}

	if cfg.Paths.Status != "" {
		defer func() {
			if err := statusfile.Clear(cfg.Paths.Status); err != nil {
				logger.Warn("unable to remove status file", "error", err)
			}
		}()
	}

	sup, err := supervisor.New(supervisor.Config{
		ProcessName:     cfg.Process.Name,
		PollInterval:    time.Duration(cfg.Process.PollInterval),
		TickInterval:    time.Duration(cfg.Process.TickInterval),
		OutputDirectory: cfg.Paths.Output,
		Outputs:         cfg.Output,
		Renderer:        template.New(template.FormatsFromConfig(cfg.Format, cfg.Locale())),
		Writer:          lockfile.New(logger),
		Finder:          proctable.Table{},
		Sources: sniff.IdleFactory(logger, sniff.Options{
			DebugStateMachine:         cfg.Debug.StateMachine,
			DebugSongDetails:          cfg.Debug.SongDetails,
			DebugMemoryReadout:        cfg.Debug.MemoryReadout,
			DebugSystemHandleQuery:    cfg.Debug.SystemHandleQuery,
			DebugFileDetailQuery:      cfg.Debug.FileDetailQuery,
			DisableFileHandleSniffing: cfg.Debug.DisableFileHandleSniffing,
		}),
		ArtCache:   cache,
		StatusPath: cfg.Paths.Status,
		Clock:      clock.Real(),
		Logger:     logger,
		Debug: supervisor.DebugOptions{
			StateMachine: cfg.Debug.StateMachine,
			SongDetails:  cfg.Debug.SongDetails,
			Cache:        cfg.Debug.Cache,
		},
	})
	if err != nil {
		return err
	}

	return sup.Run(ctx)
}

// printStatus reports the state recorded by a running instance.
func printStatus(w io.Writer, path string, maxAge time.Duration, now time.Time) error {
	if path == "" {
		return fmt.Errorf("no status file configured (set paths.status)")
	}

	state, ok, err := statusfile.Check(path, maxAge, now)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(w, "rocksniffer is not running")
		return exitCode(1)
	}

	since := state.Since.Local().Format(time.DateTime)
	if state.State != supervisor.Supervising.String() {
		fmt.Fprintf(w, "%s: waiting for %s since %s\n", state.State, state.ProcessName, since)
		return exitCode(3)
	}
	fmt.Fprintf(w, "%s: %s (pid %d, session %s) since %s\n",
		state.State, state.ProcessName, state.PID, state.SessionID, since)
	return nil
}
