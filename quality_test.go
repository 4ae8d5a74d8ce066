// Copyright 2026 The reel Authors
// SPDX-License-Identifier: MIT

package reel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualityMappings(t *testing.T) {
	tests := []struct {
		q           Quality
		x264Preset  string
		crf         int
		nvencPreset string
		cq          int
	}{
		{QualityLow, "ultrafast", 23, "p1", 32},
		{QualityMiddle, "veryfast", 21, "p4", 28},
		{QualityHigh, "fast", 19, "p5", 24},
		{QualityVeryHigh, "slow", 17, "p7", 19},
	}
	for _, tc := range tests {
		t.Run(tc.q.String(), func(t *testing.T) {
			preset, crf := tc.q.x264()
			assert.Equal(t, tc.x264Preset, preset)
			assert.Equal(t, tc.crf, crf)

			preset, cq := tc.q.nvenc()
			assert.Equal(t, tc.nvencPreset, preset)
			assert.Equal(t, tc.cq, cq)
		})
	}
}

func TestQualityUnknownFallsBackToHigh(t *testing.T) {
	q := Quality(99)
	preset, crf := q.x264()
	assert.Equal(t, "fast", preset)
	assert.Equal(t, 19, crf)
	assert.Equal(t, "unknown", q.String())
}
