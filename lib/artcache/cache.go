// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package artcache

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/rocksniffer/lib/codec"
)

// ErrMiss reports that no usable entry exists for a song ID.
var ErrMiss = errors.New("album art not cached")

// maxArtBytes bounds one cached cover. Album art above this size is not
// something the game ships, so larger payloads are refused on Put and
// read back as misses.
var maxArtBytes = 16 << 20

// keyPrefix namespaces art entries within the store.
const keyPrefix = "art/"

// entry is the persisted record for one song.
type entry struct {
	JPEG     []byte    `cbor:"jpeg"`
	Digest   [32]byte  `cbor:"digest"`
	StoredAt time.Time `cbor:"stored_at"`
}

// Cache is a persistent album-art cache. It is safe for concurrent use.
type Cache struct {
	db     *badger.DB
	logger *slog.Logger
	now    func() time.Time
}

// Open opens the cache in directory, creating it if needed. An empty
// directory opens an in-memory cache that is discarded on Close.
func Open(directory string, logger *slog.Logger) (*Cache, error) {
	options := badger.DefaultOptions(directory).WithLogger(nil)
	if directory == "" {
		options = options.WithInMemory(true)
	}

	db, err := badger.Open(options)
	if err != nil {
		return nil, fmt.Errorf("opening album art cache %q: %w", directory, err)
	}
	return &Cache{db: db, logger: logger, now: time.Now}, nil
}

// Close releases the underlying store.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Put stores the encoded album art for songID, replacing any previous
// entry.
func (c *Cache) Put(songID string, jpeg []byte) error {
	if songID == "" {
		return errors.New("caching album art: empty song ID")
	}
	if len(jpeg) > maxArtBytes {
		return fmt.Errorf("caching album art for %q: %d bytes exceeds the %d byte limit", songID, len(jpeg), maxArtBytes)
	}

	value, err := codec.Marshal(entry{
		JPEG:     jpeg,
		Digest:   blake3.Sum256(jpeg),
		StoredAt: c.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encoding album art entry for %q: %w", songID, err)
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+songID), value)
	})
	if err != nil {
		return fmt.Errorf("storing album art for %q: %w", songID, err)
	}
	return nil
}

// Get returns the encoded album art stored for songID. It returns an
// error wrapping ErrMiss when there is no entry or the entry is corrupt.
func (c *Cache) Get(songID string) ([]byte, error) {
	if songID == "" {
		return nil, ErrMiss
	}

	var value []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + songID))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("song %q: %w", songID, ErrMiss)
	}
	if err != nil {
		return nil, fmt.Errorf("reading album art for %q: %w", songID, err)
	}

	var stored entry
	if err := codec.Unmarshal(value, &stored); err != nil {
		c.logger.Warn("discarding undecodable album art entry", "song_id", songID, "error", err)
		return nil, fmt.Errorf("song %q: %w", songID, ErrMiss)
	}
	if len(stored.JPEG) > maxArtBytes {
		c.logger.Warn("discarding oversized album art entry", "song_id", songID, "bytes", len(stored.JPEG))
		return nil, fmt.Errorf("song %q: %w", songID, ErrMiss)
	}
	if blake3.Sum256(stored.JPEG) != stored.Digest {
		c.logger.Warn("discarding album art entry with digest mismatch", "song_id", songID)
		return nil, fmt.Errorf("song %q: %w", songID, ErrMiss)
	}
	return stored.JPEG, nil
}
