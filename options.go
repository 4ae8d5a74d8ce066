// Copyright 2026 The reel Authors
// SPDX-License-Identifier: MIT

package reel

import (
	"github.com/rs/zerolog"
)

// WriterOption configures a Writer during creation.
//
// Example:
//
//	w := reel.NewWriter("out.mp4",
//	    reel.WithSize(1280, 720),
//	    reel.WithFPS(30),
//	    reel.WithWorkers(4),
//	    reel.WithQuality(reel.QualityHigh),
//	)
type WriterOption func(*writerConfig)

// writerConfig holds the resolved render settings.
type writerConfig struct {
	fps      float64
	width    int
	height   int
	duration float64 // 0 means derive from the latest clip end
	workers  int
	quality  Quality
	gpu      bool
	normAud  bool
	tempDir  string // "" means alongside the output file
	log      zerolog.Logger
}

func defaultWriterConfig() writerConfig {
	return writerConfig{
		fps:     30,
		width:   1920,
		height:  1080,
		workers: 1,
		quality: QualityMiddle,
		normAud: true,
		log:     zerolog.Nop(),
	}
}

// WithFPS sets the output frame rate. Default 30.
func WithFPS(fps float64) WriterOption {
	return func(c *writerConfig) { c.fps = fps }
}

// WithSize sets the output canvas size in pixels. Default 1920x1080.
func WithSize(w, h int) WriterOption {
	return func(c *writerConfig) { c.width, c.height = w, h }
}

// WithDuration fixes the output duration in seconds instead of deriving it
// from the latest clip end time.
func WithDuration(d float64) WriterOption {
	return func(c *writerConfig) { c.duration = d }
}

// WithWorkers sets how many frame chunks render and encode concurrently.
// Default 1 (a single sequential pass).
func WithWorkers(n int) WriterOption {
	return func(c *writerConfig) { c.workers = n }
}

// WithQuality selects the encoder quality level. Default QualityMiddle.
func WithQuality(q Quality) WriterOption {
	return func(c *writerConfig) { c.quality = q }
}

// WithGPUEncoder requests encoding with h264_nvenc. When the local ffmpeg
// build does not carry the encoder, the Writer logs a warning and falls back
// to libx264 instead of failing.
func WithGPUEncoder() WriterOption {
	return func(c *writerConfig) { c.gpu = true }
}

// WithoutAudioNormalization skips the loudness normalization pass that
// normally runs over the mixed soundtrack, keeping the raw mix levels.
func WithoutAudioNormalization() WriterOption {
	return func(c *writerConfig) { c.normAud = false }
}

// WithTempDir sets the directory for intermediate chunk files. By default
// they are created next to the output file.
func WithTempDir(dir string) WriterOption {
	return func(c *writerConfig) { c.tempDir = dir }
}

// WithLogger injects a logger for render progress and warnings. The default
// logger discards everything.
func WithLogger(log zerolog.Logger) WriterOption {
	return func(c *writerConfig) { c.log = log }
}
