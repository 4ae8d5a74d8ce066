// Copyright 2026 The reel Authors
// SPDX-License-Identifier: MIT

package reel

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcatenateLaysClipsEndToEnd(t *testing.T) {
	a := NewColorClip(2, 2, color.NRGBA{R: 255, A: 255}, 2.0)
	b := NewColorClip(4, 4, color.NRGBA{G: 255, A: 255}, 3.0)

	seq := Concatenate(a, b)
	require.NoError(t, seq.Err())

	// Composite canvas covers the largest clip and the whole sequence.
	w, h := seq.Size()
	assert.Equal(t, 4, w)
	assert.Equal(t, 4, h)
	assert.Equal(t, 5.0, seq.Duration())

	// During the first clip, its color shows; afterwards the second's.
	f, err := seq.src.Frame(1.0)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), f.Pix[0])
	assert.Equal(t, uint8(0), f.Pix[1])

	f, err = seq.src.Frame(3.0)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), f.Pix[0])
	assert.Equal(t, uint8(255), f.Pix[1])

	// Inputs keep their original placement.
	assert.Equal(t, 0.0, b.Start())
}

func TestConcatenateAudio(t *testing.T) {
	a := NewAudioTrackSpan("a.mp3", 0, 4)
	b := NewAudioTrackSpan("b.mp3", 0, 6)

	out := ConcatenateAudio(a, b)
	require.Len(t, out, 2)
	assert.Equal(t, 0.0, out[0].Start())
	assert.Equal(t, 4.0, out[1].Start())
	assert.Equal(t, 10.0, out[1].End())
	assert.Equal(t, 0.0, b.Start())
}
