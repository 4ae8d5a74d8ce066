// Copyright 2026 The reel Authors
// SPDX-License-Identifier: MIT

package reel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/reelkit/reel/internal/ffkit"
)

// Writer renders a timeline of clips and audio tracks into a video file.
// Clips composite in the order they were added (later clips draw on top);
// frames are encoded through ffmpeg, in parallel chunks when configured,
// then concatenated losslessly and muxed with the mixed soundtrack.
//
// A Writer renders once. Configure, add clips and tracks, call Write.
type Writer struct {
	path   string
	cfg    writerConfig
	clips  []*Clip
	tracks []*AudioTrack

	written bool
}

// NewWriter creates a writer for the output path with the given options.
func NewWriter(path string, opts ...WriterOption) *Writer {
	cfg := defaultWriterConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Writer{path: path, cfg: cfg}
}

// AddClip appends a clip to the timeline. Later clips draw on top.
func (w *Writer) AddClip(c *Clip) *Writer {
	w.clips = append(w.clips, c)
	return w
}

// AddClips appends several clips in the given order.
func (w *Writer) AddClips(clips ...*Clip) *Writer {
	w.clips = append(w.clips, clips...)
	return w
}

// AddAudioTrack appends an audio track to the soundtrack mix.
func (w *Writer) AddAudioTrack(t *AudioTrack) *Writer {
	w.tracks = append(w.tracks, t)
	return w
}

// Write renders the timeline to the output file. It validates the full
// configuration before spawning any process, renders all frame chunks
// concurrently, concatenates the encoded parts with a stream copy and muxes
// in the audio. The context cancels every child ffmpeg process.
func (w *Writer) Write(ctx context.Context) error {
	if w.written {
		return fmt.Errorf("%w: writer has already rendered", ErrConfiguration)
	}
	w.written = true
	log := w.cfg.log

	duration, err := w.validate(ctx)
	if err != nil {
		return err
	}

	totalFrames := int(duration * w.cfg.fps)
	if totalFrames < 1 {
		return fmt.Errorf("%w: duration %vs at %v fps yields no frames",
			ErrConfiguration, duration, w.cfg.fps)
	}

	tempDir := w.cfg.tempDir
	if tempDir == "" {
		tempDir = filepath.Dir(w.path)
	}
	workDir, err := os.MkdirTemp(tempDir, "reel-*")
	if err != nil {
		return fmt.Errorf("%w: temp dir: %v", ErrResource, err)
	}
	defer os.RemoveAll(workDir)

	chunks := splitFrames(totalFrames, w.cfg.workers)
	log.Info().
		Int("frames", totalFrames).
		Float64("duration", duration).
		Int("chunks", len(chunks)).
		Str("quality", w.cfg.quality.String()).
		Bool("gpu", w.cfg.gpu).
		Msg("render started")

	parts := make([]string, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	for i, ch := range chunks {
		ch := ch
		part := filepath.Join(workDir, fmt.Sprintf("part_%03d.mp4", i))
		parts[i] = part
		g.Go(func() error {
			return w.renderChunk(gctx, part, ch)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	videoOnly := w.path
	if len(w.tracks) > 0 {
		videoOnly = filepath.Join(workDir, "video.mp4")
	}
	if len(parts) == 1 {
		if err := os.Rename(parts[0], videoOnly); err != nil {
			return fmt.Errorf("%w: %v", ErrEncode, err)
		}
	} else if err := ffkit.Concat(ctx, parts, videoOnly, log); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	if len(w.tracks) > 0 {
		if err := w.mixAndMux(ctx, videoOnly, workDir, duration); err != nil {
			return err
		}
	}

	log.Info().Str("path", w.path).Msg("render finished")
	return nil
}

// validate checks the whole configuration up front and resolves the output
// duration. Misconfiguration is reported before any rendering starts.
func (w *Writer) validate(ctx context.Context) (float64, error) {
	if w.cfg.fps <= 0 {
		return 0, fmt.Errorf("%w: fps must be > 0, got %v", ErrConfiguration, w.cfg.fps)
	}
	if w.cfg.width <= 0 || w.cfg.height <= 0 {
		return 0, fmt.Errorf("%w: invalid output size %dx%d",
			ErrConfiguration, w.cfg.width, w.cfg.height)
	}
	if w.cfg.workers < 1 {
		return 0, fmt.Errorf("%w: workers must be >= 1, got %d",
			ErrConfiguration, w.cfg.workers)
	}
	for i, c := range w.clips {
		if c.err != nil {
			return 0, fmt.Errorf("clip %d: %w", i, c.err)
		}
		if c.duration <= 0 {
			return 0, fmt.Errorf("%w: clip %d has no duration", ErrConfiguration, i)
		}
	}
	for i, t := range w.tracks {
		if t.err != nil {
			return 0, fmt.Errorf("audio track %d: %w", i, t.err)
		}
	}
	if w.cfg.gpu && !ffkit.HasEncoder(ctx, "h264_nvenc") {
		w.cfg.log.Warn().Msg("h264_nvenc not available in this ffmpeg build, falling back to libx264")
		w.cfg.gpu = false
	}

	// An empty timeline is fine as long as the duration is explicit: every
	// frame comes out black. Without clips there is nothing to derive a
	// duration from.
	duration := w.cfg.duration
	if duration == 0 {
		if len(w.clips) == 0 {
			return 0, fmt.Errorf("%w: no clips on the timeline and no explicit duration",
				ErrConfiguration)
		}
		for _, c := range w.clips {
			if end := c.End(); end > duration {
				duration = end
			}
		}
	}
	if duration <= 0 {
		return 0, fmt.Errorf("%w: output duration must be > 0, got %v",
			ErrConfiguration, duration)
	}
	return duration, nil
}

// frameChunk is a contiguous half-open frame index range [from, to).
type frameChunk struct {
	from, to int
}

// splitFrames divides totalFrames into up to workers contiguous chunks of
// ceil(total/workers) frames each. The final chunk absorbs the remainder; a
// worker count above the frame count collapses to one chunk per frame.
func splitFrames(totalFrames, workers int) []frameChunk {
	if workers > totalFrames {
		workers = totalFrames
	}
	size := (totalFrames + workers - 1) / workers
	var chunks []frameChunk
	for from := 0; from < totalFrames; from += size {
		to := from + size
		if to > totalFrames {
			to = totalFrames
		}
		chunks = append(chunks, frameChunk{from: from, to: to})
	}
	return chunks
}

// renderChunk renders frames [ch.from, ch.to) into one encoded part file.
// Each chunk works on its own clip clones, so decoder state never crosses
// goroutines, and feeds its own encoder process.
func (w *Writer) renderChunk(ctx context.Context, part string, ch frameChunk) error {
	log := w.cfg.log.With().Int("from", ch.from).Int("to", ch.to).Logger()

	clips := make([]*Clip, len(w.clips))
	for i, c := range w.clips {
		clips[i] = c.Clone()
		clips[i].withLogger(log)
	}
	defer func() {
		for _, c := range clips {
			c.Close()
		}
	}()

	codec, nv := "libx264", false
	preset, quality := w.cfg.quality.x264()
	if w.cfg.gpu {
		codec, nv = "h264_nvenc", true
		preset, quality = w.cfg.quality.nvenc()
	}
	enc, err := ffkit.NewEncoder(ctx, ffkit.EncoderConfig{
		Path:   part,
		Width:  w.cfg.width,
		Height: w.cfg.height,
		FPS:    w.cfg.fps,
		Codec:  codec,
		Preset: preset,
		CRF:    quality,
		NVENC:  nv,
	}, log)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	canvas := NewCanvas(w.cfg.width, w.cfg.height, 3)
	buf := make([]byte, canvas.W*canvas.H*3)

	for f := ch.from; f < ch.to; f++ {
		if err := ctx.Err(); err != nil {
			enc.Abort()
			return err
		}
		t := float64(f) / w.cfg.fps

		bg, rest := planFrame(clips, t, w.cfg.width, w.cfg.height)
		if bg != nil {
			canvas.SetFrame(bg.sourceFrame(t - bg.start))
		} else {
			canvas.Zero()
		}
		for _, c := range rest {
			c.Render(canvas, t)
		}

		canvas.Encode(buf)
		if err := enc.WriteFrame(buf); err != nil {
			enc.Abort()
			return fmt.Errorf("%w: frame %d: %v", ErrEncode, f, err)
		}
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return nil
}

// planFrame splits the z-ordered clip list for one frame into an optional
// background-fill clip and the list still needing a blend pass. The prefix
// scan stops at the first clip that is visible but not a full-canvas opaque
// cover; the last candidate before that point becomes the background, since
// each candidate would have completely overwritten everything below it.
// Clips in the prefix that are not visible at t are no-ops either way and
// are dropped.
func planFrame(clips []*Clip, t float64, canvasW, canvasH int) (bg *Clip, rest []*Clip) {
	i := 0
	for ; i < len(clips); i++ {
		c := clips[i]
		if c.backgroundCandidate(t, canvasW, canvasH) {
			bg = c
			continue
		}
		if t >= c.start && t < c.End() {
			break
		}
	}
	return bg, clips[i:]
}

// mixAndMux renders the soundtrack and replaces the silent video file with
// the final muxed output. Tracks that fail to mix are skipped one at a time
// with a warning; only a failure of the final mix or mux aborts the write.
func (w *Writer) mixAndMux(ctx context.Context, videoOnly, workDir string, duration float64) error {
	log := w.cfg.log

	tracks := make([]ffkit.Track, 0, len(w.tracks))
	for i, t := range w.tracks {
		if _, err := ffkit.ProbeAudio(t.path); err != nil {
			log.Warn().Err(err).Int("track", i).Str("path", t.path).
				Msg("skipping unreadable audio track")
			continue
		}
		tracks = append(tracks, t.mixTrack())
	}

	wav := filepath.Join(workDir, "audio.wav")
	if err := ffkit.MixTracks(ctx, tracks, duration, w.cfg.normAud, wav, log); err != nil {
		return fmt.Errorf("%w: %v", ErrAudioTrack, err)
	}
	if err := ffkit.Mux(ctx, videoOnly, wav, w.path, log); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return nil
}

// FrameAt composites the timeline at time t without encoding, returning the
// quantized frame. Useful for previews and tests; it renders on the calling
// goroutine against the writer's configured canvas.
func (w *Writer) FrameAt(t float64) (*Frame, error) {
	if w.cfg.width <= 0 || w.cfg.height <= 0 {
		return nil, fmt.Errorf("%w: invalid output size %dx%d",
			ErrConfiguration, w.cfg.width, w.cfg.height)
	}
	canvas := NewCanvas(w.cfg.width, w.cfg.height, 3)
	bg, rest := planFrame(w.clips, t, w.cfg.width, w.cfg.height)
	if bg != nil {
		canvas.SetFrame(bg.sourceFrame(t - bg.start))
	} else {
		canvas.Zero()
	}
	for _, c := range rest {
		c.Render(canvas, t)
	}
	return canvas.Frame(), nil
}

// Clips returns the timeline clips in z-order. The slice is the writer's
// own; callers must not mutate it during a render.
func (w *Writer) Clips() []*Clip { return w.clips }
