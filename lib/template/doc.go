// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package template renders output templates against a telemetry
// snapshot.
//
// A template is plain text containing placeholders of the form %NAME%
// drawn from a fixed token table. There is no expression language and
// unknown placeholders are left untouched, so a template with no known
// token renders to itself.
//
// Rendering runs two passes:
//
//  1. The identity pass substitutes song tokens (SONG_ID, SONG_ARTIST,
//     SONG_NAME, SONG_ALBUM, ALBUM_YEAR, SONG_LENGTH) and, when the song
//     carries toolkit metadata, the TOOLKIT_* tokens.
//  2. The performance pass substitutes the live tokens (SONG_TIMER,
//     NOTES_HIT, NOTES_MISSED, TOTAL_NOTES, CURRENT_STREAK,
//     HIGHEST_STREAK, CURRENT_ACCURACY) into the identity pass output.
//
// Between the passes the clearing rule applies: if the identity pass
// matched any token and no valid song is loaded, the whole output is
// empty and the performance pass does not run. An overlay line such as
// "%SONG_NAME% - %NOTES_HIT%" therefore disappears between songs instead
// of showing " - 0". Templates built only from live tokens are not
// gated and keep rendering the last readout.
package template
