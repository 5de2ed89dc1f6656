// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package proctable

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"
)

// fakeProc builds a procfs-shaped directory. Entries use real PIDs so
// the handle returned by Find refers to a live process.
type fakeProc struct {
	t    *testing.T
	root string
}

func newFakeProc(t *testing.T) *fakeProc {
	return &fakeProc{t: t, root: t.TempDir()}
}

func (f *fakeProc) add(pid int, comm, cmdline, state string) {
	f.t.Helper()
	directory := filepath.Join(f.root, strconv.Itoa(pid))
	if err := os.MkdirAll(directory, 0755); err != nil {
		f.t.Fatalf("creating %s: %v", directory, err)
	}
	files := map[string]string{
		"comm":    comm + "\n",
		"cmdline": cmdline,
		"stat":    strconv.Itoa(pid) + " (" + comm + ") " + state + " 1 1 1 0 -1",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(directory, name), []byte(content), 0644); err != nil {
			f.t.Fatalf("writing %s: %v", name, err)
		}
	}
}

func TestFindByComm(t *testing.T) {
	proc := newFakeProc(t)
	proc.add(os.Getpid(), "Rocksmith2014", "/opt/game/Rocksmith2014\x00", "S")

	handle, err := Table{Root: proc.root}.Find("Rocksmith2014")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	defer handle.Close()

	if handle.PID() != os.Getpid() {
		t.Errorf("PID = %d, want %d", handle.PID(), os.Getpid())
	}
	if handle.HasExited() {
		t.Error("HasExited() = true for the test process")
	}
}

func TestFindByWineCmdline(t *testing.T) {
	proc := newFakeProc(t)
	proc.add(os.Getpid(), "Rocksmith2014.e", `Z:\games\Rocksmith2014\Rocksmith2014.exe`+"\x00-uplay_steam_mode\x00", "R")

	handle, err := Table{Root: proc.root}.Find("Rocksmith2014")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	handle.Close()
}

func TestFindTruncatedComm(t *testing.T) {
	proc := newFakeProc(t)
	proc.add(os.Getpid(), "AVeryLongProces", "\x00", "S")

	handle, err := Table{Root: proc.root}.Find("AVeryLongProcessName")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	handle.Close()
}

func TestFindSkipsUnresponsive(t *testing.T) {
	for _, state := range []string{"Z", "X", "T", "t"} {
		t.Run(state, func(t *testing.T) {
			proc := newFakeProc(t)
			proc.add(os.Getpid(), "Rocksmith2014", "Rocksmith2014\x00", state)

			_, err := Table{Root: proc.root}.Find("Rocksmith2014")
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("Find error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestFindNotFound(t *testing.T) {
	proc := newFakeProc(t)
	proc.add(os.Getpid(), "bash", "/bin/bash\x00", "S")

	_, err := Table{Root: proc.root}.Find("Rocksmith2014")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Find error = %v, want ErrNotFound", err)
	}
}

func TestFindMissingRoot(t *testing.T) {
	_, err := Table{Root: filepath.Join(t.TempDir(), "absent")}.Find("Rocksmith2014")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("Find error = %v, want a read error", err)
	}
}

func TestHasExitedAfterChildExits(t *testing.T) {
	child := exec.Command("sleep", "60")
	if err := child.Start(); err != nil {
		t.Skipf("cannot start child: %v", err)
	}
	defer child.Process.Kill()

	proc := newFakeProc(t)
	proc.add(child.Process.Pid, "sleep", "sleep\x0060\x00", "S")

	handle, err := Table{Root: proc.root}.Find("sleep")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	defer handle.Close()

	if handle.HasExited() {
		t.Fatal("HasExited() = true before the child was killed")
	}
	if err := child.Process.Kill(); err != nil {
		t.Fatalf("killing child: %v", err)
	}
	child.Wait()

	if !handle.HasExited() {
		t.Error("HasExited() = false after the child was reaped")
	}
}

func TestCloseMarksExited(t *testing.T) {
	proc := newFakeProc(t)
	proc.add(os.Getpid(), "Rocksmith2014", "\x00", "S")

	handle, err := Table{Root: proc.root}.Find("Rocksmith2014")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if err := handle.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := handle.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if !handle.HasExited() {
		t.Error("closed handle should report exited")
	}
}
