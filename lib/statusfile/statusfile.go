// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package statusfile records the supervisor's lifecycle state in a small
// JSON file so tooling outside the process (status bars, the
// "rocksniffer --status" command, stream health checks) can tell whether
// the game is being tracked without parsing logs.
//
// The supervisor writes the file on every transition:
//
//  1. On startup and whenever the game disappears: state "searching".
//  2. When the game is found: state "supervising" with the PID and the
//     session ID that also tags that session's log lines.
//
// The file is written atomically (write to temporary file, fsync,
// rename) so readers never see a partial or corrupt state. Check
// ignores files older than a caller-chosen age, so a status file left
// behind by a crashed or killed supervisor is not reported as live.
package statusfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// State records the supervisor's lifecycle position.
type State struct {
	// State is "searching" or "supervising".
	State string `json:"state"`

	// ProcessName is the process name being looked for.
	ProcessName string `json:"process_name"`

	// PID is the supervised process ID. Zero while searching.
	PID int `json:"pid,omitempty"`

	// SessionID identifies one supervised run of the game. Empty while
	// searching.
	SessionID string `json:"session_id,omitempty"`

	// Since is when the supervisor entered this state. Check uses it to
	// discard stale files.
	Since time.Time `json:"since"`
}

// Write atomically writes a status file. The file is written to a
// temporary location in the same directory, fsynced, and renamed into
// place. The parent directory must already exist.
func Write(path string, state State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling status: %w", err)
	}
	data = append(data, '\n')

	temporaryPath := path + ".tmp"

	file, err := os.OpenFile(temporaryPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating temporary status file: %w", err)
	}

	// Write, sync, close in that order. If any step fails, remove the
	// temporary file and report the first error.
	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("writing temporary status file: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("syncing temporary status file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("closing temporary status file: %w", err)
	}

	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("renaming status file into place: %w", err)
	}

	parentDirectory, err := os.Open(filepath.Dir(path))
	if err == nil {
		parentDirectory.Sync()
		parentDirectory.Close()
	}

	return nil
}

// Read reads and parses a status file. When the file does not exist, the
// returned error wraps os.ErrNotExist.
func Read(path string) (State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return State{}, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, fmt.Errorf("parsing status file %s: %w", path, err)
	}
	return state, nil
}

// Check reads a status file and reports whether it is recent enough to
// describe a running supervisor. Returns false when the file does not
// exist or its Since is older than maxAge relative to now. A maxAge of
// zero disables the age check.
//
// Any other error (permission denied, corrupt JSON) is returned as-is so
// the caller can distinguish "no supervisor" from "status unreadable."
func Check(path string, maxAge time.Duration, now time.Time) (State, bool, error) {
	state, err := Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, false, nil
		}
		return State{}, false, err
	}

	if maxAge > 0 && now.Sub(state.Since) > maxAge {
		return State{}, false, nil
	}

	return state, true, nil
}

// Clear removes a status file. Returns nil when the file does not exist.
func Clear(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing status file: %w", err)
	}
	return nil
}
