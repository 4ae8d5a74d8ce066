// Copyright 2026 The reel Authors
// SPDX-License-Identifier: MIT

package reel

// Stock effects. Fades compose with whatever opacity the clip already has,
// so a faded clip can still carry its own time-varying opacity; color
// effects are FrameTransforms that mutate the frame in place.

// FadeIn ramps the clip's opacity from 0 to its configured value over the
// first d seconds of the clip.
func FadeIn(c *Clip, d float64) *Clip {
	if d <= 0 {
		return c
	}
	prev := c.opacity
	return c.SetOpacity(TimeFunc(func(t float64) float64 {
		o := prev.At(t)
		if t < d {
			return o * (t / d)
		}
		return o
	}))
}

// FadeOut ramps the clip's opacity down to 0 over its last d seconds.
func FadeOut(c *Clip, d float64) *Clip {
	if d <= 0 {
		return c
	}
	prev := c.opacity
	end := c.duration
	return c.SetOpacity(TimeFunc(func(t float64) float64 {
		o := prev.At(t)
		if rem := end - t; rem < d {
			return o * (rem / d)
		}
		return o
	}))
}

// CrossFade overlaps next with the tail of prev: next is moved to start
// overlap seconds before prev ends and fades in across the overlap. Returns
// next for chaining.
func CrossFade(prev, next *Clip, overlap float64) *Clip {
	next.SetStart(prev.End() - overlap)
	return FadeIn(next, overlap)
}

// Grayscale converts frames to luma in place using BT.601 weights.
func Grayscale() FrameTransform {
	return func(f *Frame, _ float64) *Frame {
		n := f.W * f.H
		for i := 0; i < n; i++ {
			p := i * f.C
			y := uint8(0.299*float32(f.Pix[p+0]) + 0.587*float32(f.Pix[p+1]) + 0.114*float32(f.Pix[p+2]) + 0.5)
			f.Pix[p+0], f.Pix[p+1], f.Pix[p+2] = y, y, y
		}
		return f
	}
}

// Sepia applies the classic sepia tone matrix in place.
func Sepia() FrameTransform {
	return func(f *Frame, _ float64) *Frame {
		n := f.W * f.H
		for i := 0; i < n; i++ {
			p := i * f.C
			r := float32(f.Pix[p+0])
			g := float32(f.Pix[p+1])
			b := float32(f.Pix[p+2])
			f.Pix[p+0] = clampByte(0.393*r + 0.769*g + 0.189*b)
			f.Pix[p+1] = clampByte(0.349*r + 0.686*g + 0.168*b)
			f.Pix[p+2] = clampByte(0.272*r + 0.534*g + 0.131*b)
		}
		return f
	}
}

// Brightness scales all color channels by factor (1.0 is identity), clamping
// to the byte range.
func Brightness(factor float64) FrameTransform {
	k := float32(factor)
	return func(f *Frame, _ float64) *Frame {
		n := f.W * f.H
		for i := 0; i < n; i++ {
			p := i * f.C
			f.Pix[p+0] = clampByte(float32(f.Pix[p+0]) * k)
			f.Pix[p+1] = clampByte(float32(f.Pix[p+1]) * k)
			f.Pix[p+2] = clampByte(float32(f.Pix[p+2]) * k)
		}
		return f
	}
}

func clampByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
