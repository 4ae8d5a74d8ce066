// Copyright 2026 The reel Authors
// SPDX-License-Identifier: MIT

package reel

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompositeDurationCoversLatestChild(t *testing.T) {
	comp := NewCompositeClip(8, 8)
	comp.AddClip(NewColorClip(8, 8, color.White, 3.0))
	comp.AddClip(NewColorClip(8, 8, color.Black, 4.0))
	comp.AddClip(NewColorClip(8, 8, color.White, 3.5))

	assert.Equal(t, 4.0, comp.Duration())

	// A child placed later than the current end extends it further.
	comp.AddClip(NewColorClip(8, 8, color.White, 2.0).SetStart(3.0))
	assert.Equal(t, 5.0, comp.Duration())
}

func TestCompositePainterOrder(t *testing.T) {
	comp := NewCompositeClip(2, 2)
	comp.AddClip(NewColorClip(2, 2, color.NRGBA{R: 255, A: 255}, 1.0))
	comp.AddClip(NewColorClip(2, 2, color.NRGBA{G: 255, A: 255}, 1.0))

	f, err := comp.src.Frame(0.5)
	require.NoError(t, err)
	require.Equal(t, 4, f.C)
	// The later child draws on top.
	assert.Equal(t, uint8(0), f.Pix[0])
	assert.Equal(t, uint8(255), f.Pix[1])
	assert.Equal(t, uint8(255), f.Pix[3])
}

func TestCompositeRendersTransparentWhereEmpty(t *testing.T) {
	comp := NewCompositeClip(4, 4)
	comp.AddClip(NewColorClip(2, 2, color.White, 1.0))

	f, err := comp.src.Frame(0.5)
	require.NoError(t, err)

	// Covered quadrant is opaque, the rest fully transparent.
	assert.Equal(t, uint8(255), f.Pix[3])
	i := (3*4 + 3) * 4
	assert.Equal(t, uint8(0), f.Pix[i+3])
}

func TestCompositeChildTimesAreRelative(t *testing.T) {
	comp := NewCompositeClip(1, 1)
	comp.AddClip(NewColorClip(1, 1, color.White, 1.0)) // child visible over [0,1)
	comp.SetStart(10)

	bg := NewCanvas(1, 1, 3)
	comp.Render(bg, 10.5) // composite-relative t = 0.5
	assert.Equal(t, float32(255), bg.Pix[0])

	bg.Zero()
	comp.Render(bg, 11.5) // composite ended
	assert.Equal(t, float32(0), bg.Pix[0])
}

func TestCompositeAsMask(t *testing.T) {
	// A composite can serve as a mask like any other clip.
	maskComp := NewCompositeClip(2, 2)
	maskComp.AddClip(NewColorClip(1, 1, color.White, 1.0))

	fg := NewColorClip(2, 2, color.White, 1.0).SetMask(maskComp)

	bg := NewCanvas(2, 2, 3)
	fg.Render(bg, 0.5)

	assert.Equal(t, float32(255), bg.Pix[0]) // under the mask's white pixel
	assert.Equal(t, float32(0), bg.Pix[3*3]) // transparent mask area
}

func TestAddClipOnNonCompositeFails(t *testing.T) {
	clip := NewColorClip(1, 1, color.White, 1.0)
	clip.AddClip(NewColorClip(1, 1, color.White, 1.0))
	assert.ErrorIs(t, clip.Err(), ErrConfiguration)
}

func TestCompositeCloneClonesChildren(t *testing.T) {
	comp := NewCompositeClip(2, 2)
	child := NewColorClip(2, 2, color.White, 2.0)
	comp.AddClip(child)

	cp := comp.Clone()
	src := cp.src.(*compositeSource)
	require.Len(t, src.clips, 1)
	assert.NotSame(t, child, src.clips[0])
}

func TestCompositePropagatesChildError(t *testing.T) {
	comp := NewCompositeClip(2, 2)
	bad := NewColorClip(2, 2, color.White, 1.0).SetDuration(-1)
	comp.AddClip(bad)
	assert.ErrorIs(t, comp.Err(), ErrConfiguration)
}
