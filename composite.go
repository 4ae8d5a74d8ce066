// Copyright 2026 The reel Authors
// SPDX-License-Identifier: MIT

package reel

import (
	"fmt"

	"github.com/rs/zerolog"
)

// compositeSource renders a nested timeline onto a private transparent
// canvas. The result is an RGBA frame, so a composite participates in its
// parent timeline exactly like any other clip: it can be positioned, faded,
// scaled and masked as one unit.
type compositeSource struct {
	w, h  int
	clips []*Clip

	canvas *Canvas
	frame  *Frame
	log    zerolog.Logger
}

// NewCompositeClip creates an empty nested composition of the given canvas
// size. Children are added with AddClip; the composite's duration grows to
// cover the latest child end time. Child times are relative to the
// composite's own start.
func NewCompositeClip(w, h int) *Clip {
	if w <= 0 || h <= 0 {
		c := newClip(&compositeSource{w: 1, h: 1, log: zerolog.Nop()}, 0, 1)
		c.fail(fmt.Errorf("%w: invalid composite size %dx%d", ErrConfiguration, w, h))
		return c
	}
	src := &compositeSource{w: w, h: h, log: zerolog.Nop()}
	return &Clip{
		src:      src,
		position: Constant(Point{}),
		opacity:  Constant(1.0),
		scale:    Constant(1.0),
		log:      zerolog.Nop(),
	}
}

// AddClip appends a child to a composite clip in painter order (later
// children draw on top) and extends the composite's duration to cover the
// child. Calling it on a non-composite clip records a configuration error.
func (c *Clip) AddClip(child *Clip) *Clip {
	src, ok := c.src.(*compositeSource)
	if !ok {
		c.fail(fmt.Errorf("%w: AddClip on a non-composite clip", ErrConfiguration))
		return c
	}
	if child.err != nil {
		c.fail(child.err)
		return c
	}
	src.clips = append(src.clips, child)
	if end := child.End(); end > c.duration {
		c.duration = end
	}
	return c
}

// Frame renders all children onto a transparent canvas at tRel and returns
// the quantized RGBA frame. The canvas and frame are reused between calls.
func (s *compositeSource) Frame(tRel float64) (*Frame, error) {
	if s.canvas == nil {
		s.canvas = NewCanvas(s.w, s.h, 4)
		s.frame = NewFrame(s.w, s.h, 4)
	} else {
		s.canvas.Zero()
	}
	for _, clip := range s.clips {
		clip.Render(s.canvas, tRel)
	}
	s.canvas.Encode(s.frame.Pix)
	return s.frame, nil
}

func (s *compositeSource) Size() (int, int) { return s.w, s.h }
func (s *compositeSource) Channels() int    { return 4 }

func (s *compositeSource) setLogger(log zerolog.Logger) {
	s.log = log
	for _, clip := range s.clips {
		clip.withLogger(log)
	}
}

func (s *compositeSource) Clone() Source {
	out := &compositeSource{w: s.w, h: s.h, log: s.log}
	out.clips = make([]*Clip, len(s.clips))
	for i, clip := range s.clips {
		out.clips[i] = clip.Clone()
	}
	return out
}

func (s *compositeSource) Close() error {
	var err error
	for _, clip := range s.clips {
		if cerr := clip.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
