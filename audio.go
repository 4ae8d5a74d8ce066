// Copyright 2026 The reel Authors
// SPDX-License-Identifier: MIT

package reel

import (
	"fmt"
	"math"

	"github.com/reelkit/reel/internal/ffkit"
)

// AudioTrack is one audio source placed on the timeline. Tracks carry no
// sample data in-process; trimming, gain and placement are resolved into an
// ffmpeg filter graph when the Writer mixes the final soundtrack.
type AudioTrack struct {
	path     string
	start    float64 // placement on the timeline
	offset   float64 // trim start within the source
	duration float64 // trim length within the source
	volume   float64 // linear gain, 1.0 = unity
	err      error
}

// NewAudioTrack opens an audio file as a track spanning the file's full
// probed duration, placed at timeline position 0 with unity gain.
func NewAudioTrack(path string) (*AudioTrack, error) {
	d, err := ffkit.ProbeAudio(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResource, err)
	}
	return &AudioTrack{path: path, duration: d, volume: 1.0}, nil
}

// NewAudioTrackSpan opens a slice of an audio file without probing it:
// offset seconds into the source, for duration seconds. Invalid spans are
// reported by Err and rejected by the Writer.
func NewAudioTrackSpan(path string, offset, duration float64) *AudioTrack {
	t := &AudioTrack{path: path, offset: offset, duration: duration, volume: 1.0}
	if offset < 0 || duration <= 0 {
		t.err = fmt.Errorf("%w: invalid audio span (offset %v, duration %v)",
			ErrConfiguration, offset, duration)
	}
	return t
}

// Path returns the source file path.
func (t *AudioTrack) Path() string { return t.path }

// Start returns the track's timeline placement in seconds.
func (t *AudioTrack) Start() float64 { return t.start }

// Duration returns the track's trimmed duration in seconds.
func (t *AudioTrack) Duration() float64 { return t.duration }

// End returns start + duration on the timeline.
func (t *AudioTrack) End() float64 { return t.start + t.duration }

// Err returns the first configuration error recorded on the track.
func (t *AudioTrack) Err() error { return t.err }

// SetStart places the track at a timeline position.
func (t *AudioTrack) SetStart(start float64) *AudioTrack {
	if start < 0 {
		t.fail(fmt.Errorf("%w: audio start must be >= 0, got %v", ErrConfiguration, start))
		return t
	}
	t.start = start
	return t
}

// SetVolume sets the track's linear gain. 1.0 is unity, 0 silences the
// track. Negative values are a configuration error.
func (t *AudioTrack) SetVolume(v float64) *AudioTrack {
	if v < 0 {
		t.fail(fmt.Errorf("%w: volume must be >= 0, got %v", ErrConfiguration, v))
		return t
	}
	t.volume = v
	return t
}

// Subclip extracts [start, end) of the track's own media as a new track
// placed at timeline position 0, keeping the gain.
func (t *AudioTrack) Subclip(start, end float64) (*AudioTrack, error) {
	if start < 0 || end > t.duration || start >= end {
		return nil, fmt.Errorf("%w: invalid subclip range (%v, %v) for track duration %v",
			ErrConfiguration, start, end, t.duration)
	}
	return &AudioTrack{
		path:     t.path,
		offset:   t.offset + start,
		duration: end - start,
		volume:   t.volume,
	}, nil
}

// GainDB converts the linear volume to decibels for ffmpeg's volume filter.
// Zero (or pathological negative) volume maps to -100 dB, which is silence
// for any practical program material.
func (t *AudioTrack) GainDB() float64 {
	if t.volume <= 0 {
		return -100
	}
	return 20 * math.Log10(t.volume)
}

// mixTrack converts the track to the ffkit mixing description.
func (t *AudioTrack) mixTrack() ffkit.Track {
	return ffkit.Track{
		Path:     t.path,
		StartSec: t.start,
		Offset:   t.offset,
		Duration: t.duration,
		GainDB:   t.GainDB(),
	}
}

func (t *AudioTrack) fail(err error) {
	if t.err == nil {
		t.err = err
	}
}
