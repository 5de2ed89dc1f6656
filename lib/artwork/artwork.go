// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package artwork encodes album art for the album_cover.jpeg artifact.
package artwork

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"sync"
)

// PlaceholderSize is the edge length of the blank placeholder cover.
const PlaceholderSize = 256

// Quality is the JPEG quality used for album art.
const Quality = 90

// Placeholder returns the blank cover written when no album art is
// available, so readers never find the artifact missing.
func Placeholder() image.Image {
	return image.NewRGBA(image.Rect(0, 0, PlaceholderSize, PlaceholderSize))
}

var (
	placeholderOnce sync.Once
	placeholderJPEG []byte
	placeholderErr  error
)

// PlaceholderJPEG returns the encoded placeholder. The encoding is
// computed once; callers must not modify the returned slice.
func PlaceholderJPEG() ([]byte, error) {
	placeholderOnce.Do(func() {
		placeholderJPEG, placeholderErr = Encode(Placeholder())
	})
	return placeholderJPEG, placeholderErr
}

// Encode encodes img as JPEG. A nil image encodes the placeholder.
func Encode(img image.Image) ([]byte, error) {
	if img == nil {
		img = Placeholder()
	}
	var buffer bytes.Buffer
	if err := jpeg.Encode(&buffer, img, &jpeg.Options{Quality: Quality}); err != nil {
		return nil, fmt.Errorf("encoding album art: %w", err)
	}
	return buffer.Bytes(), nil
}
