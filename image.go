// Copyright 2026 The reel Authors
// SPDX-License-Identifier: MIT

package reel

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	// Formats accepted by NewImageClip beyond the stdlib ones.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// imageSource serves one static frame for the clip's whole duration. It is
// also the backing source for color fills.
type imageSource struct {
	frame *Frame
}

// NewImageClip loads an image file as a still clip of the given duration.
// PNG, JPEG, GIF, BMP, TIFF and WebP are accepted. Fully opaque images are
// stored as 3-channel frames, which keeps them eligible for the
// background-fill fast path.
func NewImageClip(path string, duration float64) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResource, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrResource, path, err)
	}
	return NewImageClipFromImage(img, duration), nil
}

// NewImageClipFromImage wraps an in-memory image as a still clip.
func NewImageClipFromImage(img image.Image, duration float64) *Clip {
	frame := FrameFromImage(img)
	if opaque(frame) {
		frame = dropAlpha(frame)
	}
	return newClip(&imageSource{frame: frame}, 0, duration)
}

// NewColorClip creates a solid-color still clip. An alpha below 255 yields a
// 4-channel translucent frame; a fully opaque color yields a 3-channel one.
func NewColorClip(w, h int, c color.Color, duration float64) *Clip {
	nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
	ch := 3
	if nrgba.A < 255 {
		ch = 4
	}
	frame := NewFrame(w, h, ch)
	for i := 0; i < len(frame.Pix); i += ch {
		frame.Pix[i+0] = nrgba.R
		frame.Pix[i+1] = nrgba.G
		frame.Pix[i+2] = nrgba.B
		if ch == 4 {
			frame.Pix[i+3] = nrgba.A
		}
	}
	return newClip(&imageSource{frame: frame}, 0, duration)
}

func (s *imageSource) Frame(float64) (*Frame, error) { return s.frame, nil }
func (s *imageSource) Size() (int, int)              { return s.frame.W, s.frame.H }
func (s *imageSource) Channels() int                 { return s.frame.C }
func (s *imageSource) Clone() Source                 { return s }
func (s *imageSource) Close() error                  { return nil }

// slice is trivially satisfied: a still frame is time-invariant.
func (s *imageSource) slice(float64) Source { return s }

// opaque reports whether every alpha byte of a 4-channel frame is 255.
func opaque(f *Frame) bool {
	if f.C != 4 {
		return true
	}
	for i := 3; i < len(f.Pix); i += 4 {
		if f.Pix[i] != 0xff {
			return false
		}
	}
	return true
}

// dropAlpha converts an opaque 4-channel frame to 3 channels.
func dropAlpha(f *Frame) *Frame {
	if f.C != 4 {
		return f
	}
	out := NewFrame(f.W, f.H, 3)
	for i, j := 0, 0; j < len(f.Pix); i, j = i+3, j+4 {
		out.Pix[i+0] = f.Pix[j+0]
		out.Pix[i+1] = f.Pix[j+1]
		out.Pix[i+2] = f.Pix[j+2]
	}
	return out
}
