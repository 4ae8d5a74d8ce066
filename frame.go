// Copyright 2026 The reel Authors
// SPDX-License-Identifier: MIT

package reel

import (
	"image"
	"image/draw"
)

// Frame is a rectangular pixel buffer holding an 8-bit source frame.
// Pixels are stored row-major in a single contiguous slice, C bytes per
// pixel: RGB when C == 3, straight (non-premultiplied) RGBA when C == 4.
type Frame struct {
	W, H, C int
	Pix     []uint8
}

// NewFrame creates a zeroed frame. c must be 3 or 4; a zeroed 3-channel
// frame is opaque black, a zeroed 4-channel frame is fully transparent.
func NewFrame(w, h, c int) *Frame {
	return &Frame{W: w, H: h, C: c, Pix: make([]uint8, w*h*c)}
}

// FrameFromImage converts any image.Image into a 4-channel frame with
// straight alpha.
func FrameFromImage(img image.Image) *Frame {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Stride != w*4 || !b.Min.Eq(image.Point{}) {
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		nrgba = dst
	}
	return &Frame{W: w, H: h, C: 4, Pix: nrgba.Pix}
}

// toNRGBA exposes a 4-channel frame as an image without copying, expanding
// 3-channel frames with an opaque alpha byte.
func (f *Frame) toNRGBA() *image.NRGBA {
	if f.C == 4 {
		return &image.NRGBA{Pix: f.Pix, Stride: f.W * 4, Rect: image.Rect(0, 0, f.W, f.H)}
	}
	out := image.NewNRGBA(image.Rect(0, 0, f.W, f.H))
	for i, j := 0, 0; i < len(f.Pix); i, j = i+3, j+4 {
		out.Pix[j+0] = f.Pix[i+0]
		out.Pix[j+1] = f.Pix[i+1]
		out.Pix[j+2] = f.Pix[i+2]
		out.Pix[j+3] = 0xff
	}
	return out
}

// frameFromNRGBA converts back to the requested channel count, dropping the
// alpha byte when c == 3.
func frameFromNRGBA(img *image.NRGBA, c int) *Frame {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if c == 4 {
		return &Frame{W: w, H: h, C: 4, Pix: img.Pix}
	}
	out := NewFrame(w, h, 3)
	for i, j := 0, 0; j < len(img.Pix); i, j = i+3, j+4 {
		out.Pix[i+0] = img.Pix[j+0]
		out.Pix[i+1] = img.Pix[j+1]
		out.Pix[i+2] = img.Pix[j+2]
	}
	return out
}

// Canvas is the floating-point composition target. Source frames are 8-bit,
// but the background accumulator stays in float32 so repeated blend passes
// do not quantize into each other and the associated-alpha division has
// headroom. C is 3 for the opaque output canvas and 4 for the transparent
// canvases used by composite clips.
type Canvas struct {
	W, H, C int
	Pix     []float32
}

// NewCanvas creates a zeroed canvas.
func NewCanvas(w, h, c int) *Canvas {
	return &Canvas{W: w, H: h, C: c, Pix: make([]float32, w*h*c)}
}

// Zero resets every component to 0 (black for C == 3, fully transparent for
// C == 4) without reallocating.
func (c *Canvas) Zero() {
	clear(c.Pix)
}

// SetFrame loads an 8-bit frame of identical geometry directly into the
// canvas, bypassing the blend kernels. This is the background-fill fast
// path; the caller guarantees matching size and channel count.
func (c *Canvas) SetFrame(f *Frame) {
	for i, v := range f.Pix {
		c.Pix[i] = float32(v)
	}
}

// Encode quantizes the canvas into dst as packed 8-bit pixels in channel
// order (rgb24 or rgba for the encoder). Values are truncated after
// clamping, matching the quantization the blend kernels were written
// against. dst must hold W*H*C bytes.
func (c *Canvas) Encode(dst []byte) {
	for i, v := range c.Pix {
		if v <= 0 {
			dst[i] = 0
		} else if v >= 255 {
			dst[i] = 255
		} else {
			dst[i] = uint8(v)
		}
	}
}

// Frame quantizes the canvas into a fresh 8-bit frame of the same geometry.
func (c *Canvas) Frame() *Frame {
	f := NewFrame(c.W, c.H, c.C)
	c.Encode(f.Pix)
	return f
}

// Clone returns an independent copy of the canvas.
func (c *Canvas) Clone() *Canvas {
	out := &Canvas{W: c.W, H: c.H, C: c.C, Pix: make([]float32, len(c.Pix))}
	copy(out.Pix, c.Pix)
	return out
}
