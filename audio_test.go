// Copyright 2026 The reel Authors
// SPDX-License-Identifier: MIT

package reel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAudioGainDB(t *testing.T) {
	tests := []struct {
		name   string
		volume float64
		want   float64
	}{
		{"unity", 1.0, 0},
		{"double", 2.0, 20 * math.Log10(2)},
		{"half", 0.5, 20 * math.Log10(0.5)},
		{"silent", 0, -100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr := NewAudioTrackSpan("song.mp3", 0, 10).SetVolume(tc.volume)
			assert.InDelta(t, tc.want, tr.GainDB(), 1e-9)
		})
	}
}

func TestAudioTrackSpanValidation(t *testing.T) {
	assert.ErrorIs(t, NewAudioTrackSpan("a.mp3", -1, 5).Err(), ErrConfiguration)
	assert.ErrorIs(t, NewAudioTrackSpan("a.mp3", 0, 0).Err(), ErrConfiguration)
	assert.NoError(t, NewAudioTrackSpan("a.mp3", 0, 5).Err())
}

func TestAudioTrackSetterValidation(t *testing.T) {
	tr := NewAudioTrackSpan("a.mp3", 0, 5)
	tr.SetVolume(-0.1)
	assert.ErrorIs(t, tr.Err(), ErrConfiguration)

	tr = NewAudioTrackSpan("a.mp3", 0, 5)
	tr.SetStart(-2)
	assert.ErrorIs(t, tr.Err(), ErrConfiguration)
}

func TestAudioSubclip(t *testing.T) {
	tr := NewAudioTrackSpan("a.mp3", 2, 10).SetVolume(0.8)
	tr.SetStart(7)

	sub, err := tr.Subclip(1, 4)
	require.NoError(t, err)
	assert.Equal(t, 0.0, sub.Start())
	assert.Equal(t, 3.0, sub.Duration())
	assert.Equal(t, 3.0, sub.mixTrack().Offset) // 2 + 1 into the source
	assert.InDelta(t, tr.GainDB(), sub.GainDB(), 1e-9)

	_, err = tr.Subclip(5, 15)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestAudioMixTrackConversion(t *testing.T) {
	tr := NewAudioTrackSpan("a.mp3", 1.5, 6).SetVolume(2)
	tr.SetStart(3)

	m := tr.mixTrack()
	assert.Equal(t, "a.mp3", m.Path)
	assert.Equal(t, 3.0, m.StartSec)
	assert.Equal(t, 1.5, m.Offset)
	assert.Equal(t, 6.0, m.Duration)
	assert.InDelta(t, 20*math.Log10(2), m.GainDB, 1e-9)
}
