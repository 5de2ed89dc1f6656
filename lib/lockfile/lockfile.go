// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lockfile

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// Mode selects the sharing semantics of a write.
type Mode int

const (
	// SharedRead is used for text artifacts. Readers may hold the file
	// open while it is rewritten.
	SharedRead Mode = iota

	// Exclusive is used for binary artifacts such as album art. The
	// payload is synced to disk before the lock is released so a
	// reader that waits on the lock sees a complete image.
	Exclusive
)

func (m Mode) String() string {
	switch m {
	case SharedRead:
		return "shared-read"
	case Exclusive:
		return "exclusive"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ErrLocked reports that another process holds the lock on a
// destination.
var ErrLocked = errors.New("file is locked by another process")

// Writer performs locked writes and logs failures.
type Writer struct {
	logger *slog.Logger
}

// New returns a Writer logging failures to logger.
func New(logger *slog.Logger) *Writer {
	return &Writer{logger: logger}
}

// Write replaces the content of path with data. It returns false when
// the write failed; the failure has already been logged and the file
// keeps its previous content.
func (w *Writer) Write(path string, data []byte, mode Mode) bool {
	if err := writeLocked(path, data, mode); err != nil {
		w.logger.Error("unable to write output file",
			"path", path,
			"mode", mode.String(),
			"error", err,
		)
		return false
	}
	return true
}

// WriteString is Write for text payloads, encoded as UTF-8.
func (w *Writer) WriteString(path, text string) bool {
	return w.Write(path, []byte(text), SharedRead)
}

// writeLocked performs the create, lock, truncate, write sequence.
func writeLocked(path string, data []byte, mode Mode) (err error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("opening: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing: %w", closeErr)
		}
	}()

	unlock, err := lock(file)
	if err != nil {
		return err
	}
	defer unlock()

	if err := file.Truncate(0); err != nil {
		return fmt.Errorf("truncating: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("writing: %w", err)
	}
	if mode == Exclusive {
		if err := file.Sync(); err != nil {
			return fmt.Errorf("syncing: %w", err)
		}
	}
	return nil
}
