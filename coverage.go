// Copyright 2026 The reel Authors
// SPDX-License-Identifier: MIT

package reel

// Coverage is a single-channel alpha coverage array used for mask
// compositing. Values range from 0 (fully transparent) to 255 (fully
// opaque). Reads outside the array bounds return 0: a foreground pixel that
// falls outside its mask's placed rectangle is invisible.
type Coverage struct {
	width  int
	height int
	data   []uint8
}

// NewCoverage creates an empty coverage array with the given dimensions.
// All values are initialized to 0.
func NewCoverage(width, height int) *Coverage {
	return &Coverage{
		width:  width,
		height: height,
		data:   make([]uint8, width*height),
	}
}

// coverageFromFrame reduces a rendered mask frame to coverage using the
// luma rule: BT.601 luma of the color channels, further scaled by the alpha
// channel when the frame carries one.
func coverageFromFrame(f *Frame) *Coverage {
	cov := NewCoverage(f.W, f.H)
	n := f.W * f.H
	for i := 0; i < n; i++ {
		p := i * f.C
		luma := 0.299*float32(f.Pix[p+0]) + 0.587*float32(f.Pix[p+1]) + 0.114*float32(f.Pix[p+2])
		if f.C == 4 {
			luma *= float32(f.Pix[p+3]) / 255.0
		}
		cov.data[i] = uint8(luma + 0.5)
	}
	return cov
}

// Width returns the coverage width.
func (m *Coverage) Width() int { return m.width }

// Height returns the coverage height.
func (m *Coverage) Height() int { return m.height }

// At returns the coverage value at (x, y), or 0 outside the bounds.
func (m *Coverage) At(x, y int) uint8 {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0
	}
	return m.data[y*m.width+x]
}

// Set sets the coverage value at (x, y). Out-of-bounds writes are ignored.
func (m *Coverage) Set(x, y int, value uint8) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.data[y*m.width+x] = value
}

// Fill fills the entire array with a value.
func (m *Coverage) Fill(value uint8) {
	for i := range m.data {
		m.data[i] = value
	}
}
