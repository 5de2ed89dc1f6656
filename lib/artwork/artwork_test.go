// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package artwork

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
)

func decode(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding JPEG: %v", err)
	}
	return img
}

func TestPlaceholderJPEG(t *testing.T) {
	data, err := PlaceholderJPEG()
	if err != nil {
		t.Fatalf("PlaceholderJPEG: %v", err)
	}
	bounds := decode(t, data).Bounds()
	if bounds.Dx() != PlaceholderSize || bounds.Dy() != PlaceholderSize {
		t.Errorf("placeholder is %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), PlaceholderSize, PlaceholderSize)
	}

	again, _ := PlaceholderJPEG()
	if !bytes.Equal(data, again) {
		t.Error("placeholder encoding should be stable")
	}
}

func TestEncodeNilIsPlaceholder(t *testing.T) {
	data, err := Encode(nil)
	if err != nil {
		t.Fatalf("Encode(nil): %v", err)
	}
	if bounds := decode(t, data).Bounds(); bounds.Dx() != PlaceholderSize {
		t.Errorf("Encode(nil) width = %d, want %d", bounds.Dx(), PlaceholderSize)
	}
}

func TestEncodeKeepsDimensions(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 32))
	for x := range 64 {
		for y := range 32 {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}

	data, err := Encode(img)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded := decode(t, data)
	if bounds := decoded.Bounds(); bounds.Dx() != 64 || bounds.Dy() != 32 {
		t.Errorf("decoded bounds %v, want 64x32", bounds)
	}
	r, _, _, _ := decoded.At(10, 10).RGBA()
	if r>>8 < 150 {
		t.Errorf("red channel %d lost in encoding", r>>8)
	}
}
