// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package snapshot defines the telemetry records the sniffer emits and
// the Store the render loop reads them from.
//
// There are two independent channels. [SongIdentity] describes the song
// currently loaded and changes when the player picks a new song.
// [LivePerformance] is the running readout of timer, notes and streaks
// and changes many times per second. The sniffer replaces a channel's
// value wholesale on every event. Values are never mutated after they
// are published, so a reader holding one sees a consistent record.
//
// [Store] publishes each channel through its own atomic pointer. A
// reader always observes a complete value per channel. No ordering is
// promised across channels, because the two are produced by unrelated
// events.
package snapshot
