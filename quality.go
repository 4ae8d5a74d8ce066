// Copyright 2026 The reel Authors
// SPDX-License-Identifier: MIT

package reel

// Quality selects the encoder speed/size trade-off. Each level maps to a
// preset and rate-control value for the active encoder; the mappings for
// the software (libx264) and hardware (h264_nvenc) paths are chosen to land
// at visually comparable output.
type Quality int

const (
	// QualityLow is the fastest encode at the largest size for the visual
	// quality. Intended for previews.
	QualityLow Quality = iota
	// QualityMiddle is the default draft/delivery balance.
	QualityMiddle
	// QualityHigh is for final delivery.
	QualityHigh
	// QualityVeryHigh trades significant encode time for the best output.
	QualityVeryHigh
)

func (q Quality) String() string {
	switch q {
	case QualityLow:
		return "low"
	case QualityMiddle:
		return "middle"
	case QualityHigh:
		return "high"
	case QualityVeryHigh:
		return "very_high"
	default:
		return "unknown"
	}
}

// x264 returns the libx264 preset and CRF for the quality level.
func (q Quality) x264() (preset string, crf int) {
	switch q {
	case QualityLow:
		return "ultrafast", 23
	case QualityMiddle:
		return "veryfast", 21
	case QualityHigh:
		return "fast", 19
	case QualityVeryHigh:
		return "slow", 17
	default:
		return "fast", 19
	}
}

// nvenc returns the h264_nvenc preset and CQ for the quality level.
func (q Quality) nvenc() (preset string, cq int) {
	switch q {
	case QualityLow:
		return "p1", 32
	case QualityMiddle:
		return "p4", 28
	case QualityHigh:
		return "p5", 24
	case QualityVeryHigh:
		return "p7", 19
	default:
		return "p5", 24
	}
}
