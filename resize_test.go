// Copyright 2026 The reel Authors
// SPDX-License-Identifier: MIT

package reel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResizeIdentityReturnsSameFrame(t *testing.T) {
	f := solidFrame(4, 4, 1, 2, 3)
	assert.Same(t, f, resizeFrame(f, 4, 4))
}

func TestResizeClampsToOnePixel(t *testing.T) {
	f := solidFrame(4, 4, 9, 9, 9)
	out := resizeFrame(f, 0, -3)
	assert.Equal(t, 1, out.W)
	assert.Equal(t, 1, out.H)
}

func TestResizeAreaAveragesUniformRegion(t *testing.T) {
	// A solid frame must stay solid under area shrink.
	f := solidFrame(8, 8, 40, 80, 120)
	out := resizeFrame(f, 2, 2)
	require.Equal(t, 2, out.W)
	for i := 0; i < len(out.Pix); i += 3 {
		assert.Equal(t, uint8(40), out.Pix[i+0])
		assert.Equal(t, uint8(80), out.Pix[i+1])
		assert.Equal(t, uint8(120), out.Pix[i+2])
	}
}

func TestResizeAreaExactBoxAverage(t *testing.T) {
	// 2x2 -> 1x1 averages the four pixels exactly.
	f := NewFrame(2, 2, 3)
	vals := []uint8{0, 0, 0, 100, 100, 100, 200, 200, 200, 100, 100, 100}
	copy(f.Pix, vals)

	out := resizeFrame(f, 1, 1)
	assert.Equal(t, uint8(100), out.Pix[0])
}

func TestResizeAreaFractionalFootprint(t *testing.T) {
	// 3 -> 2: each output pixel integrates 1.5 source pixels with a half
	// weight on the shared one.
	f := NewFrame(3, 1, 3)
	copy(f.Pix, []uint8{0, 0, 0, 90, 90, 90, 180, 180, 180})

	out := resizeFrame(f, 2, 1)
	require.Equal(t, 2, out.W)
	// (0*1 + 90*0.5) / 1.5 = 30, (90*0.5 + 180*1) / 1.5 = 150
	assert.Equal(t, uint8(30), out.Pix[0])
	assert.Equal(t, uint8(150), out.Pix[3])
}

func TestResizeCubicGrowsUniformRegion(t *testing.T) {
	f := solidFrame(2, 2, 50, 100, 150)
	out := resizeFrame(f, 8, 8)
	require.Equal(t, 8, out.W)
	require.Equal(t, 8, out.H)
	for i := 0; i < len(out.Pix); i += 3 {
		assert.Equal(t, uint8(50), out.Pix[i+0])
		assert.Equal(t, uint8(100), out.Pix[i+1])
		assert.Equal(t, uint8(150), out.Pix[i+2])
	}
}

func TestResizePreservesChannelCount(t *testing.T) {
	rgba := solidFrame(4, 4, 10, 20, 30, 128)
	out := resizeFrame(rgba, 8, 8)
	assert.Equal(t, 4, out.C)

	rgb := solidFrame(4, 4, 10, 20, 30)
	out = resizeFrame(rgb, 2, 2)
	assert.Equal(t, 3, out.C)
}
