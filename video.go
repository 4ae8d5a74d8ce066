// Copyright 2026 The reel Authors
// SPDX-License-Identifier: MIT

package reel

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/reelkit/reel/internal/ffkit"
)

// seekSkipMax is the largest forward gap bridged by reading and discarding
// frames from the open decoder. Beyond it, reopening with a container seek
// is cheaper than decoding the gap.
const seekSkipMax = 5

// loggable lets a source receive the render invocation's logger. Sources
// that spawn processes implement it; static sources do not.
type loggable interface {
	setLogger(log zerolog.Logger)
}

// videoSource decodes frames from a video file through a sequential ffmpeg
// raw stream. It is tuned for the renderer's access pattern: monotonically
// increasing timestamps with occasional small gaps. The decoder opens
// lazily on first use, so a freshly constructed or cloned source holds no
// process.
type videoSource struct {
	path   string
	meta   *ffkit.Meta
	offset float64 // media-time shift applied by subclips

	stream *ffkit.FrameStream
	next   int    // index the next sequential read returns
	last   int    // index of the cached frame
	frame  *Frame // last decoded frame, reused across reads

	log zerolog.Logger
}

// NewVideoClip opens a video file as a timeline clip. The clip's duration is
// the file's probed duration and its start defaults to 0. The decode process
// is not started until the first frame is requested.
func NewVideoClip(path string) (*Clip, error) {
	meta, err := ffkit.Probe(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResource, err)
	}
	if meta.FPS <= 0 {
		return nil, fmt.Errorf("%w: %s: no frame rate", ErrResource, path)
	}
	src := &videoSource{path: path, meta: meta, last: -1, log: zerolog.Nop()}
	return newClip(src, 0, meta.Duration), nil
}

func (s *videoSource) Size() (int, int) { return s.meta.Width, s.meta.Height }
func (s *videoSource) Channels() int    { return 3 }

func (s *videoSource) setLogger(log zerolog.Logger) { s.log = log }

// Frame returns the decoded frame for tRel. Repeated requests for the same
// frame index (common when the timeline fps exceeds the source fps) hit the
// cache without touching the decoder.
func (s *videoSource) Frame(tRel float64) (*Frame, error) {
	idx := int((tRel + s.offset) * s.meta.FPS)
	if idx < 0 {
		idx = 0
	}
	if maxIdx := int(s.meta.Duration*s.meta.FPS) - 1; maxIdx >= 0 && idx > maxIdx {
		idx = maxIdx
	}
	if s.frame != nil && idx == s.last {
		return s.frame, nil
	}

	if s.stream == nil || idx < s.next || idx-s.next > seekSkipMax {
		if err := s.reopen(idx); err != nil {
			return nil, err
		}
	}
	if s.frame == nil {
		s.frame = NewFrame(s.meta.Width, s.meta.Height, 3)
	}
	for s.next <= idx {
		if err := s.stream.Read(s.frame.Pix); err != nil {
			if err == io.EOF && s.last >= 0 {
				// Probed duration slightly past the last decodable frame:
				// hold the final frame instead of failing the render.
				s.last = idx
				s.next = idx + 1
				return s.frame, nil
			}
			return nil, fmt.Errorf("%w: %s: frame %d: %v", ErrDecode, s.path, s.next, err)
		}
		s.next++
	}
	s.last = idx
	return s.frame, nil
}

// reopen restarts the decoder seeking to frame idx.
func (s *videoSource) reopen(idx int) error {
	if s.stream != nil {
		s.stream.Close()
		s.stream = nil
	}
	stream, err := ffkit.OpenFrameStream(context.Background(), s.path,
		s.meta.Width, s.meta.Height, float64(idx)/s.meta.FPS, s.log)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	s.stream = stream
	s.next = idx
	s.last = -1
	return nil
}

func (s *videoSource) Clone() Source {
	return &videoSource{path: s.path, meta: s.meta, offset: s.offset, last: -1, log: s.log}
}

func (s *videoSource) slice(offset float64) Source {
	return &videoSource{path: s.path, meta: s.meta, offset: s.offset + offset, last: -1, log: s.log}
}

func (s *videoSource) Close() error {
	if s.stream != nil {
		err := s.stream.Close()
		s.stream = nil
		return err
	}
	return nil
}
