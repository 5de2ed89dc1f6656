// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package artcache keeps encoded album art keyed by song ID.
//
// The sniffer reads artwork out of the song archive the first time a
// song is loaded, which is slow and does not always succeed. Caching the
// encoded JPEG lets the render loop write the right cover immediately on
// later loads of the same song, including across game restarts.
//
// Entries live in a badger store under the key "art/<songID>". Each
// value is a CBOR record holding the JPEG bytes, their BLAKE3-256 digest
// and the time they were stored. Get verifies the digest, and an entry
// that fails verification is treated as a miss and overwritten by the
// next Put.
package artcache
