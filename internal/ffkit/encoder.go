// Copyright 2026 The reel Authors
// SPDX-License-Identifier: MIT

package ffkit

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"

	"github.com/rs/zerolog"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// EncoderConfig specifies one ffmpeg encode process fed with raw frames.
type EncoderConfig struct {
	Path    string // output file
	Width   int
	Height  int
	FPS     float64
	Codec   string // "libx264" or "h264_nvenc"
	Preset  string
	CRF     int  // x264 crf, or nvenc cq when NVENC is true
	NVENC   bool // selects rate control flag (-crf vs -cq)
	Threads int  // 0 lets ffmpeg decide
}

// Encoder is a running ffmpeg process consuming raw rgb24 frames on stdin
// and writing an encoded video file. Any write error is fatal for the
// encode; there is no partial recovery.
type Encoder struct {
	cmd       *exec.Cmd
	in        io.WriteCloser
	stderr    *bytes.Buffer
	cancel    context.CancelFunc
	frameSize int
	closed    bool
}

// NewEncoder starts the encode process. The caller must feed exactly
// Width*Height*3 bytes per WriteFrame and Close when done.
func NewEncoder(ctx context.Context, cfg EncoderConfig, log zerolog.Logger) (*Encoder, error) {
	out := ffmpeg.KwArgs{
		"c:v":     cfg.Codec,
		"preset":  cfg.Preset,
		"pix_fmt": "yuv420p",
	}
	if cfg.NVENC {
		out["cq"] = strconv.Itoa(cfg.CRF)
	} else {
		out["crf"] = strconv.Itoa(cfg.CRF)
	}
	if cfg.Threads > 0 {
		out["threads"] = strconv.Itoa(cfg.Threads)
	}

	args := ffmpeg.Input("pipe:0", ffmpeg.KwArgs{
		"format":    "rawvideo",
		"pix_fmt":   "rgb24",
		"s":         fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"framerate": fmt.Sprintf("%.6f", cfg.FPS),
	}).
		Output(cfg.Path, out).
		OverWriteOutput().
		GetArgs()

	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, "ffmpeg", append([]string{"-hide_banner", "-loglevel", "error"}, args...)...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("encode %s: %w", cfg.Path, err)
	}
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr

	log.Debug().
		Str("path", cfg.Path).
		Str("codec", cfg.Codec).
		Str("preset", cfg.Preset).
		Int("quality", cfg.CRF).
		Msg("starting encoder")
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("encode %s: start ffmpeg: %w", cfg.Path, err)
	}

	return &Encoder{
		cmd:       cmd,
		in:        stdin,
		stderr:    stderr,
		cancel:    cancel,
		frameSize: cfg.Width * cfg.Height * 3,
	}, nil
}

// FrameSize returns the byte length of one raw input frame.
func (e *Encoder) FrameSize() int { return e.frameSize }

// WriteFrame sends one raw frame to the encoder. A broken pipe means the
// encoder died; the error carries ffmpeg's last stderr line.
func (e *Encoder) WriteFrame(frame []byte) error {
	if len(frame) != e.frameSize {
		return fmt.Errorf("encode: frame is %d bytes, want %d", len(frame), e.frameSize)
	}
	if _, err := e.in.Write(frame); err != nil {
		return fmt.Errorf("encode: %w (ffmpeg: %s)", err, lastLine(e.stderr))
	}
	return nil
}

// Close signals end of input and waits for the encoder to finish the file.
// A nonzero exit is an error.
func (e *Encoder) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	defer e.cancel()
	if err := e.in.Close(); err != nil {
		return fmt.Errorf("encode: close stdin: %w", err)
	}
	if err := e.cmd.Wait(); err != nil {
		return fmt.Errorf("encode: ffmpeg: %w (%s)", err, lastLine(e.stderr))
	}
	return nil
}

// Abort kills the encoder without waiting for a clean finish. Used when a
// sibling chunk failed and the whole render is being torn down.
func (e *Encoder) Abort() {
	if e.closed {
		return
	}
	e.closed = true
	e.cancel()
	_ = e.in.Close()
	_ = e.cmd.Wait()
}
