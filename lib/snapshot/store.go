// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import "sync/atomic"

// Store holds the current value of each channel. Writers publish a new
// value with SetSong or SetPerformance; readers take a Snapshot. The
// zero Store is not ready for use; call NewStore.
type Store struct {
	song        atomic.Pointer[SongIdentity]
	performance atomic.Pointer[LivePerformance]
}

// NewStore returns a Store holding the default (empty) values.
func NewStore() *Store {
	store := &Store{}
	store.Reset()
	return store
}

// SetSong publishes a new song identity, replacing the previous one.
func (s *Store) SetSong(song SongIdentity) {
	s.song.Store(&song)
}

// SetPerformance publishes a new performance readout, replacing the
// previous one.
func (s *Store) SetPerformance(performance LivePerformance) {
	s.performance.Store(&performance)
}

// Reset publishes the default value on both channels.
func (s *Store) Reset() {
	s.song.Store(&SongIdentity{})
	s.performance.Store(&LivePerformance{})
}

// Song returns the current song identity.
func (s *Store) Song() SongIdentity {
	return *s.song.Load()
}

// Snapshot returns the current value of both channels.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Song:        *s.song.Load(),
		Performance: *s.performance.Load(),
	}
}
