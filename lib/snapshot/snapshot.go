// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import "image"

// ToolkitInfo is the packaging metadata embedded in custom songs built
// with the community toolkit. Official songs carry none.
type ToolkitInfo struct {
	Version        string
	Author         string
	PackageVersion string
	Comment        string
}

// SongIdentity is the static metadata of the loaded song.
type SongIdentity struct {
	SongID     string
	ArtistName string
	SongName   string
	AlbumName  string
	AlbumYear  int

	// SongLength is the song duration in seconds.
	SongLength float64

	// Toolkit is nil for songs without toolkit metadata.
	Toolkit *ToolkitInfo

	// AlbumArt is nil when the sniffer could not extract artwork.
	AlbumArt image.Image
}

// Valid reports whether the identity describes a loaded song. The zero
// value, which the sniffer emits when the player leaves a song, is not
// valid.
func (s SongIdentity) Valid() bool {
	return s.SongName != "" && s.ArtistName != ""
}

// LivePerformance is one readout of the in-game performance counters.
// The zero value is the safe default used before any readout arrives.
type LivePerformance struct {
	// SongTimer is the playback position in seconds.
	SongTimer float64

	NotesHit         int
	NotesMissed      int
	HitStreak        int
	MissStreak       int
	HighestHitStreak int
}

// TotalNotes is the number of notes judged so far.
func (p LivePerformance) TotalNotes() int {
	return p.NotesHit + p.NotesMissed
}

// CurrentStreak is the signed running streak: positive while hitting,
// negative while missing.
func (p LivePerformance) CurrentStreak() int {
	return p.HitStreak - p.MissStreak
}

// Accuracy is the fraction of judged notes that were hit, in [0, 1].
// Returns 0 until at least one note has been hit.
func (p LivePerformance) Accuracy() float64 {
	total := p.TotalNotes()
	if p.NotesHit <= 0 || total <= 0 {
		return 0
	}
	return float64(p.NotesHit) / float64(total)
}

// Snapshot pairs the current value of both channels as seen by one
// render.
type Snapshot struct {
	Song        SongIdentity
	Performance LivePerformance
}
