// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package supervisor keeps the output artifacts in step with the game
// process across its whole lifetime.
//
// The [Supervisor] is a two-state machine:
//
//   - Searching: poll the process table once per poll interval until a
//     live, responsive process with the configured name appears. There
//     is no backoff and no retry limit; the game may simply not have
//     been started yet.
//   - Supervising: attach a sniffer to the process, publish its events
//     into a snapshot.Store, and render every output once per tick until
//     the process exits. Then return to Searching.
//
// Outputs are rendered against the empty snapshot when the supervisor
// starts and on every entry to and exit from Supervising, so overlays
// never show data left over from a previous game session.
//
// Song changes also rewrite album_cover.jpeg immediately instead of
// waiting for the tick. The art comes from the event when the sniffer
// extracted it, from the album-art cache when it did not, and otherwise
// the blank placeholder is written.
//
// Run is the only blocking entry point and returns only when its
// context is cancelled. Per-file write failures are logged by the
// writer and never stop a tick. A panic anywhere in the loop or in a
// sniffer callback is logged with its stack and re-raised.
package supervisor
