// Copyright 2026 The reel Authors
// SPDX-License-Identifier: MIT

package reel

import (
	"context"
	"image/color"
	"io"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelkit/reel/internal/ffkit"
)

// TestChunkedRenderMatchesSequential renders the same timeline once with a
// single worker and once chunked across three, then decodes both outputs and
// compares them frame by frame. Chunk boundaries restart the encoder, so the
// files are not byte-identical; the decoded pictures must still agree within
// the codec's error at a near-lossless setting.
func TestChunkedRenderMatchesSequential(t *testing.T) {
	if err := ffkit.Available(); err != nil {
		t.Skipf("ffmpeg not on PATH: %v", err)
	}
	if testing.Short() {
		t.Skip("spawns ffmpeg processes")
	}

	dir := t.TempDir()
	render := func(out string, workers int) error {
		background := NewColorClip(32, 32, color.NRGBA{R: 20, G: 40, B: 60, A: 255}, 1.0)
		overlay := NewColorClip(16, 8, color.NRGBA{R: 220, G: 30, B: 30, A: 255}, 0.4).
			SetStart(0.3).
			SetOpacity(Constant(0.5)).
			SetPosition(Constant(Pt(4, 4)))

		w := NewWriter(out,
			WithSize(32, 32),
			WithFPS(10),
			WithWorkers(workers),
			WithQuality(QualityVeryHigh),
		)
		w.AddClips(background, overlay)
		return w.Write(context.Background())
	}

	single := filepath.Join(dir, "single.mp4")
	chunked := filepath.Join(dir, "chunked.mp4")
	require.NoError(t, render(single, 1))
	require.NoError(t, render(chunked, 3))

	sm, err := ffkit.Probe(single)
	require.NoError(t, err)
	cm, err := ffkit.Probe(chunked)
	require.NoError(t, err)
	assert.InDelta(t, sm.Duration, cm.Duration, 0.05)

	decode := func(path string) [][]byte {
		s, err := ffkit.OpenFrameStream(context.Background(), path, 32, 32, 0, zerolog.Nop())
		require.NoError(t, err)
		defer s.Close()

		var frames [][]byte
		for {
			buf := make([]byte, s.FrameSize())
			err := s.Read(buf)
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
			frames = append(frames, buf)
		}
		return frames
	}

	sf := decode(single)
	cf := decode(chunked)
	require.Len(t, sf, 10)
	require.Equal(t, len(sf), len(cf))

	for i := range sf {
		for j := range sf[i] {
			d := int(sf[i][j]) - int(cf[i][j])
			if d < 0 {
				d = -d
			}
			require.LessOrEqualf(t, d, 16,
				"frame %d byte %d: %d vs %d", i, j, sf[i][j], cf[i][j])
		}
	}
}
