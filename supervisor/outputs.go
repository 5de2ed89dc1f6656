// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package supervisor

import (
	"errors"
	"log/slog"

	"github.com/bureau-foundation/rocksniffer/lib/artcache"
	"github.com/bureau-foundation/rocksniffer/lib/artwork"
	"github.com/bureau-foundation/rocksniffer/lib/config"
	"github.com/bureau-foundation/rocksniffer/lib/lockfile"
	"github.com/bureau-foundation/rocksniffer/lib/snapshot"
)

// renderOutputs renders and writes every text output for snap. Outputs
// are independent: a failed write leaves that file as it was and the
// rest are still written.
func (s *Supervisor) renderOutputs(snap snapshot.Snapshot) {
	for _, output := range s.outputs {
		s.writer.Write(s.outputPath(output.Filename), s.renderer.Render(output, snap), lockfile.SharedRead)
	}
}

// clearOutputs renders every output against the empty snapshot and
// writes the placeholder album art.
func (s *Supervisor) clearOutputs(logger *slog.Logger) {
	s.renderOutputs(snapshot.Snapshot{})
	s.writeAlbumArt(snapshot.SongIdentity{}, logger)
}

// writeAlbumArt writes the cover for song to album_cover.jpeg.
func (s *Supervisor) writeAlbumArt(song snapshot.SongIdentity, logger *slog.Logger) {
	s.writer.Write(s.outputPath(config.AlbumCoverFilename), s.albumArt(song, logger), lockfile.Exclusive)
}

// albumArt picks the encoded cover for song: the art carried by the
// event, then the cached art for its song ID, then the placeholder.
// Freshly extracted art is cached for later loads of the same song.
func (s *Supervisor) albumArt(song snapshot.SongIdentity, logger *slog.Logger) []byte {
	if song.AlbumArt != nil {
		encoded, err := artwork.Encode(song.AlbumArt)
		if err == nil {
			if s.artCache != nil && song.SongID != "" {
				if err := s.artCache.Put(song.SongID, encoded); err != nil {
					logger.Warn("unable to cache album art", "song_id", song.SongID, "error", err)
				} else if s.debug.Cache {
					logger.Debug("album art cached", "song_id", song.SongID, "bytes", len(encoded))
				}
			}
			return encoded
		}
		logger.Error("unable to encode album art", "song_id", song.SongID, "error", err)
	} else if s.artCache != nil && song.SongID != "" {
		cached, err := s.artCache.Get(song.SongID)
		switch {
		case err == nil:
			if s.debug.Cache {
				logger.Debug("album art cache hit", "song_id", song.SongID, "bytes", len(cached))
			}
			return cached
		case errors.Is(err, artcache.ErrMiss):
			if s.debug.Cache {
				logger.Debug("album art cache miss", "song_id", song.SongID)
			}
		default:
			logger.Warn("unable to read cached album art", "song_id", song.SongID, "error", err)
		}
	}

	placeholder, err := artwork.PlaceholderJPEG()
	if err != nil {
		logger.Error("unable to encode placeholder album art", "error", err)
	}
	return placeholder
}
