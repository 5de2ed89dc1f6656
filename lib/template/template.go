// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/bureau-foundation/rocksniffer/lib/config"
	"github.com/bureau-foundation/rocksniffer/lib/snapshot"
)

// Formats configures how durations and percentages are rendered.
type Formats struct {
	// TimeLayout is a Go reference-time layout applied to the zero time
	// plus the duration being formatted.
	TimeLayout string

	// Percentage is a printf pattern with one float verb receiving the
	// value in percent.
	Percentage string

	// Locale selects the decimal separator used for percentages.
	Locale language.Tag
}

// FormatsFromConfig builds Formats from the loaded configuration.
func FormatsFromConfig(cfg config.FormatConfig, locale language.Tag) Formats {
	return Formats{
		TimeLayout: cfg.TimeLayout,
		Percentage: cfg.Percentage,
		Locale:     locale,
	}
}

// Renderer renders OutputSpecs against snapshots. It holds no mutable
// state and is safe for concurrent use.
type Renderer struct {
	formats Formats
	printer *message.Printer
}

// New returns a Renderer using the given formats.
func New(formats Formats) *Renderer {
	return &Renderer{
		formats: formats,
		printer: message.NewPrinter(formats.Locale),
	}
}

// Render returns the content for spec given the snapshot. The result is
// empty when the clearing rule applies.
func (r *Renderer) Render(spec config.OutputSpec, snap snapshot.Snapshot) []byte {
	text, ok := r.identityPass(spec.Template, snap.Song)
	if !ok {
		return []byte{}
	}
	return []byte(r.performancePass(text, snap.Performance))
}

// identityPass substitutes song tokens. It returns false when the
// template asked for song data while no valid song is loaded.
func (r *Renderer) identityPass(text string, song snapshot.SongIdentity) (string, bool) {
	tokens := identityTokens
	if song.Toolkit != nil {
		tokens = append(tokens[:len(tokens):len(tokens)], toolkitTokens...)
	}

	result, matched := substitute(r, text, tokens, song)
	if matched && !song.Valid() {
		return "", false
	}
	return result, true
}

// performancePass substitutes live performance tokens.
func (r *Renderer) performancePass(text string, performance snapshot.LivePerformance) string {
	result, _ := substitute(r, text, performanceTokens, performance)
	return result
}

// token maps one placeholder name to the value it is replaced with.
type token[T any] struct {
	name  string
	value func(r *Renderer, source T) string
}

// substitute replaces every placeholder from tokens present in text in
// a single left-to-right scan. Values are computed only for tokens that
// appear. matched reports whether any placeholder was found.
func substitute[T any](r *Renderer, text string, tokens []token[T], source T) (result string, matched bool) {
	var pairs []string
	for _, tok := range tokens {
		placeholder := "%" + tok.name + "%"
		if strings.Contains(text, placeholder) {
			pairs = append(pairs, placeholder, tok.value(r, source))
		}
	}
	if len(pairs) == 0 {
		return text, false
	}
	return strings.NewReplacer(pairs...).Replace(text), true
}

var identityTokens = []token[snapshot.SongIdentity]{
	{"SONG_ID", func(_ *Renderer, s snapshot.SongIdentity) string { return s.SongID }},
	{"SONG_ARTIST", func(_ *Renderer, s snapshot.SongIdentity) string { return s.ArtistName }},
	{"SONG_NAME", func(_ *Renderer, s snapshot.SongIdentity) string { return s.SongName }},
	{"SONG_ALBUM", func(_ *Renderer, s snapshot.SongIdentity) string { return s.AlbumName }},
	{"ALBUM_YEAR", func(_ *Renderer, s snapshot.SongIdentity) string { return strconv.Itoa(s.AlbumYear) }},
	{"SONG_LENGTH", func(r *Renderer, s snapshot.SongIdentity) string { return r.formatTime(s.SongLength) }},
}

var toolkitTokens = []token[snapshot.SongIdentity]{
	{"TOOLKIT_VERSION", func(_ *Renderer, s snapshot.SongIdentity) string { return s.Toolkit.Version }},
	{"TOOLKIT_AUTHOR", func(_ *Renderer, s snapshot.SongIdentity) string { return s.Toolkit.Author }},
	{"TOOLKIT_PACKAGE_VERSION", func(_ *Renderer, s snapshot.SongIdentity) string { return s.Toolkit.PackageVersion }},
	{"TOOLKIT_COMMENT", func(_ *Renderer, s snapshot.SongIdentity) string { return s.Toolkit.Comment }},
}

var performanceTokens = []token[snapshot.LivePerformance]{
	{"SONG_TIMER", func(r *Renderer, p snapshot.LivePerformance) string { return r.formatTime(p.SongTimer) }},
	{"NOTES_HIT", func(_ *Renderer, p snapshot.LivePerformance) string { return strconv.Itoa(p.NotesHit) }},
	{"CURRENT_STREAK", func(_ *Renderer, p snapshot.LivePerformance) string { return strconv.Itoa(p.CurrentStreak()) }},
	{"HIGHEST_STREAK", func(_ *Renderer, p snapshot.LivePerformance) string { return strconv.Itoa(p.HighestHitStreak) }},
	{"NOTES_MISSED", func(_ *Renderer, p snapshot.LivePerformance) string { return strconv.Itoa(p.NotesMissed) }},
	{"TOTAL_NOTES", func(_ *Renderer, p snapshot.LivePerformance) string { return strconv.Itoa(p.TotalNotes()) }},
	{"CURRENT_ACCURACY", func(r *Renderer, p snapshot.LivePerformance) string { return r.formatPercentage(p.Accuracy()) }},
}

// maxSeconds keeps the conversion to time.Duration from overflowing.
const maxSeconds = float64(math.MaxInt64 / int64(time.Second))

// formatTime rounds seconds up to a whole second and formats the result
// with the time layout. Negative and NaN values render as zero.
func (r *Renderer) formatTime(seconds float64) string {
	whole := math.Ceil(seconds)
	switch {
	case whole < 0 || math.IsNaN(whole):
		whole = 0
	case whole > maxSeconds:
		whole = maxSeconds
	}
	duration := time.Duration(whole) * time.Second
	return time.Time{}.Add(duration).Format(r.formats.TimeLayout)
}

// formatPercentage renders a fraction in [0, 1] as a percentage.
func (r *Renderer) formatPercentage(fraction float64) string {
	return r.printer.Sprintf(r.formats.Percentage, fraction*100)
}
