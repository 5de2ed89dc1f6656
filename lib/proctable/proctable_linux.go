// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package proctable

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sys/unix"
)

// Table looks processes up in a procfs mount.
type Table struct {
	// Root is the procfs mount point. Empty means /proc.
	Root string
}

func (t Table) root() string {
	if t.Root == "" {
		return "/proc"
	}
	return t.Root
}

// Find returns a handle to the lowest-PID live, responsive process
// named name. It returns an error wrapping ErrNotFound when none
// matches.
func (t Table) Find(name string) (Handle, error) {
	entries, err := os.ReadDir(t.root())
	if err != nil {
		return nil, fmt.Errorf("reading process table: %w", err)
	}

	var pids []int
	for _, entry := range entries {
		pid, err := strconv.Atoi(entry.Name())
		if err != nil || pid <= 0 || !entry.IsDir() {
			continue
		}
		pids = append(pids, pid)
	}
	sort.Ints(pids)

	for _, pid := range pids {
		directory := filepath.Join(t.root(), strconv.Itoa(pid))
		if !matches(directory, name) || !responsive(directory) {
			continue
		}
		process, err := open(pid)
		if err != nil {
			// Exited between the scan and the open.
			continue
		}
		return process, nil
	}
	return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
}

// matches reports whether the process in directory is named name.
func matches(directory, name string) bool {
	comm, err := os.ReadFile(filepath.Join(directory, "comm"))
	if err == nil {
		want := name
		if len(want) > commLimit {
			want = want[:commLimit]
		}
		if strings.TrimRight(string(comm), "\n") == want {
			return true
		}
	}

	cmdline, err := os.ReadFile(filepath.Join(directory, "cmdline"))
	if err != nil || len(cmdline) == 0 {
		return false
	}
	argv0, _, _ := bytes.Cut(cmdline, []byte{0})
	base := filepath.Base(strings.ReplaceAll(string(argv0), `\`, "/"))
	return strings.EqualFold(strings.TrimSuffix(strings.TrimSuffix(base, ".exe"), ".EXE"), name)
}

// responsive reports whether the process state allows it to run. The
// state is the first field after the parenthesised comm in stat; comm
// may itself contain spaces and parentheses, so the last ')' is used.
func responsive(directory string) bool {
	stat, err := os.ReadFile(filepath.Join(directory, "stat"))
	if err != nil {
		return false
	}
	closing := bytes.LastIndexByte(stat, ')')
	if closing < 0 || closing+2 >= len(stat) {
		return false
	}
	switch stat[closing+2] {
	case 'Z', 'X', 'x', 'T', 't':
		return false
	default:
		return true
	}
}

// Process is a handle to a process found by Find.
type Process struct {
	pid int

	mu     sync.Mutex
	pidfd  int // -1 when pidfd is unavailable
	exited bool
	closed bool
}

// open returns a handle for pid, preferring a pidfd.
func open(pid int) (*Process, error) {
	fd, err := unix.PidfdOpen(pid, 0)
	switch {
	case err == nil:
		return &Process{pid: pid, pidfd: fd}, nil
	case errors.Is(err, unix.ESRCH):
		return nil, err
	default:
		// ENOSYS on kernels before 5.3, EPERM under some seccomp
		// profiles. Fall back to probing by PID.
		if err := unix.Kill(pid, 0); errors.Is(err, unix.ESRCH) {
			return nil, err
		}
		return &Process{pid: pid, pidfd: -1}, nil
	}
}

// PID returns the process ID.
func (p *Process) PID() int { return p.pid }

// HasExited reports whether the process has terminated. Once true it
// stays true.
func (p *Process) HasExited() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.exited || p.closed {
		return true
	}

	if p.pidfd >= 0 {
		// A pidfd becomes readable when the process exits.
		fds := []unix.PollFd{{Fd: int32(p.pidfd), Events: unix.POLLIN}}
		for {
			n, err := unix.Poll(fds, 0)
			if errors.Is(err, unix.EINTR) {
				continue
			}
			p.exited = err == nil && n > 0
			return p.exited
		}
	}

	err := unix.Kill(p.pid, 0)
	p.exited = errors.Is(err, unix.ESRCH)
	return p.exited
}

// Close releases the pidfd. Close is idempotent.
func (p *Process) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	if p.pidfd >= 0 {
		return unix.Close(p.pidfd)
	}
	return nil
}
