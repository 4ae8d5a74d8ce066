// Copyright 2026 The reel Authors
// SPDX-License-Identifier: MIT

package ffkit

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/rs/zerolog"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// FrameStream decodes a video file into a sequence of raw rgb24 frames,
// scaled to a fixed size, delivered strictly in order over a pipe. Random
// access is done by the caller opening a new stream at an offset; within a
// stream every Read returns the next frame.
type FrameStream struct {
	cmd       *exec.Cmd
	out       *bufio.Reader
	stderr    *bytes.Buffer
	cancel    context.CancelFunc
	frameSize int
	closed    bool
}

// OpenFrameStream starts an ffmpeg decode process for path, seeking to
// offset seconds and scaling the output to w x h. The returned stream must
// be closed.
func OpenFrameStream(ctx context.Context, path string, w, h int, offset float64, log zerolog.Logger) (*FrameStream, error) {
	inArgs := ffmpeg.KwArgs{}
	if offset > 0 {
		inArgs["ss"] = fmt.Sprintf("%.6f", offset)
	}
	args := ffmpeg.Input(path, inArgs).
		Output("pipe:1", ffmpeg.KwArgs{
			"format":  "rawvideo",
			"pix_fmt": "rgb24",
			"s":       fmt.Sprintf("%dx%d", w, h),
			"an":      "",
		}).
		GetArgs()

	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, "ffmpeg", append([]string{"-hide_banner", "-loglevel", "error"}, args...)...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr

	log.Debug().Str("path", path).Float64("offset", offset).Msg("starting decoder")
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("decode %s: start ffmpeg: %w", path, err)
	}

	return &FrameStream{
		cmd:       cmd,
		out:       bufio.NewReaderSize(stdout, 1<<16),
		stderr:    stderr,
		cancel:    cancel,
		frameSize: w * h * 3,
	}, nil
}

// FrameSize returns the byte length of one decoded frame.
func (s *FrameStream) FrameSize() int { return s.frameSize }

// Read fills dst with the next frame. dst must be FrameSize bytes. At end of
// stream it returns io.EOF; a short trailing frame is reported as an error
// carrying ffmpeg's stderr.
func (s *FrameStream) Read(dst []byte) error {
	if len(dst) != s.frameSize {
		return fmt.Errorf("decode: frame buffer is %d bytes, want %d", len(dst), s.frameSize)
	}
	_, err := io.ReadFull(s.out, dst)
	switch err {
	case nil:
		return nil
	case io.EOF:
		return io.EOF
	default:
		return fmt.Errorf("decode: %w (ffmpeg: %s)", err, lastLine(s.stderr))
	}
}

// Close terminates the decoder process. Safe to call more than once; the
// decoder is usually abandoned mid-stream, so a nonzero exit is not an error.
func (s *FrameStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.cancel()
	_ = s.cmd.Wait()
	return nil
}

// lastLine extracts the final non-empty stderr line, which for ffmpeg is the
// line that says what actually went wrong.
func lastLine(buf *bytes.Buffer) string {
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) == 0 {
		return ""
	}
	return string(bytes.TrimSpace(lines[len(lines)-1]))
}
