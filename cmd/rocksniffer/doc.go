// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Rocksniffer watches for the Rocksmith 2014 game process and keeps a
// directory of small text files and an album_cover.jpeg up to date with
// what the game is playing. Streaming software reads those files as
// overlay sources.
//
// Configuration comes from --config, or from ROCKSNIFFER_CONFIG when
// the flag is not given, and falls back to built-in defaults. See
// lib/config for the file format.
//
// With --status the binary does not supervise anything: it reads the
// status file written by a running instance, prints it, and exits 0
// when that instance is tracking the game, 3 when it is still
// searching, and 1 when no recent status exists.
package main
