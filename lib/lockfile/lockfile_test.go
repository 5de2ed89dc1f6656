// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lockfile

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestWriter(t *testing.T) (*Writer, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	return New(logger), &logs
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func TestWriteCreatesMissingFile(t *testing.T) {
	writer, _ := newTestWriter(t)
	path := filepath.Join(t.TempDir(), "song_details.txt")

	if !writer.WriteString(path, "Bar - Foo") {
		t.Fatal("WriteString reported failure")
	}
	if got := readFile(t, path); got != "Bar - Foo" {
		t.Errorf("content = %q, want %q", got, "Bar - Foo")
	}
}

func TestWriteTruncatesLongerContent(t *testing.T) {
	writer, _ := newTestWriter(t)
	path := filepath.Join(t.TempDir(), "song_details.txt")

	writer.WriteString(path, "a much longer previous line")
	writer.WriteString(path, "short")

	if got := readFile(t, path); got != "short" {
		t.Errorf("content = %q, want %q", got, "short")
	}
}

func TestWriteEmptyPayload(t *testing.T) {
	writer, _ := newTestWriter(t)
	path := filepath.Join(t.TempDir(), "notes.txt")

	writer.WriteString(path, "42/50")
	if !writer.WriteString(path, "") {
		t.Fatal("empty write reported failure")
	}
	if got := readFile(t, path); got != "" {
		t.Errorf("content = %q, want empty", got)
	}
}

func TestWriteExclusiveBinary(t *testing.T) {
	writer, _ := newTestWriter(t)
	path := filepath.Join(t.TempDir(), "album_cover.jpeg")
	payload := []byte{0xFF, 0xD8, 0xFF, 0x00, 0x01, 0xFF, 0xD9}

	if !writer.Write(path, payload, Exclusive) {
		t.Fatal("Write reported failure")
	}
	if got := readFile(t, path); got != string(payload) {
		t.Errorf("content = %x, want %x", got, payload)
	}
}

func TestWriteFailureIsLoggedNotRaised(t *testing.T) {
	writer, logs := newTestWriter(t)
	path := filepath.Join(t.TempDir(), "missing-dir", "notes.txt")

	if writer.WriteString(path, "x") {
		t.Fatal("write into a missing directory should fail")
	}
	output := logs.String()
	if !strings.Contains(output, "unable to write output file") || !strings.Contains(output, "notes.txt") {
		t.Errorf("failure not logged with path: %q", output)
	}
}

func TestModeString(t *testing.T) {
	if SharedRead.String() != "shared-read" || Exclusive.String() != "exclusive" {
		t.Errorf("unexpected mode names %q %q", SharedRead, Exclusive)
	}
	if got := Mode(7).String(); got != "Mode(7)" {
		t.Errorf("Mode(7).String() = %q", got)
	}
}
