// Copyright 2026 The reel Authors
// SPDX-License-Identifier: MIT

package reel

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Source supplies raw frames for a clip. The closed set of implementations
// is videoSource, imageSource, textSource and Composite; everything above a
// Source (timing, transforms, masking, blending) lives in Clip and is shared
// by all of them.
type Source interface {
	// Frame returns the raw frame at a relative time within the clip, at
	// native resolution, without any transformation applied. Implementations
	// optimized for sequential access may retain the returned frame until
	// the next call.
	Frame(tRel float64) (*Frame, error)

	// Size returns the native frame dimensions.
	Size() (w, h int)

	// Channels returns the channel count of produced frames (3 or 4).
	Channels() int

	// Clone returns an independent copy with any decode resource reset to
	// unopened, safe to hand to another render worker.
	Clone() Source

	// Close releases any decode resource. Closing a source that holds none
	// is a no-op.
	Close() error
}

// sliceable is implemented by sources that can shift their media offset,
// which is what Clip.Subclip needs.
type sliceable interface {
	slice(offset float64) Source
}

// FrameTransform is a custom per-frame mutator applied at render time. It
// receives the frame after any fixed-size resize and the clip-relative time,
// and returns the transformed frame. The input is not a copy: a transform
// that modifies pixels in place must return the same frame, and transforms
// on clips shared between compositions must not mutate retained state.
type FrameTransform func(f *Frame, t float64) *Frame

// Clip is a visual element on the timeline: a Source plus timing, transform
// and blending state. All clip kinds (video, image, text, composite) are
// Clips over different sources and share one render pipeline.
//
// Clips are built with chainable setters and must be fully configured before
// rendering begins; they are never mutated during a render.
type Clip struct {
	src      Source
	start    float64
	duration float64

	position Prop[Point]
	opacity  Prop[float64]
	scale    Prop[float64]

	targetW, targetH int
	transforms       []FrameTransform
	mask             *Clip

	// transformed records that any setter ran, disqualifying the clip as a
	// background-fill candidate even if the configured value is an identity.
	transformed bool

	log zerolog.Logger
	err error
}

// newClip wraps a source with default properties: position (0,0), opacity 1,
// scale 1, no target size, no mask.
func newClip(src Source, start, duration float64) *Clip {
	c := &Clip{
		src:      src,
		start:    start,
		duration: duration,
		position: Constant(Point{}),
		opacity:  Constant(1.0),
		scale:    Constant(1.0),
		log:      zerolog.Nop(),
	}
	if duration <= 0 {
		c.err = fmt.Errorf("%w: clip duration must be > 0, got %v", ErrConfiguration, duration)
	}
	return c
}

// Start returns the clip's start time on the timeline, in seconds.
func (c *Clip) Start() float64 { return c.start }

// Duration returns the clip's duration in seconds.
func (c *Clip) Duration() float64 { return c.duration }

// End returns start + duration. The clip is visible over [Start, End).
func (c *Clip) End() float64 { return c.start + c.duration }

// Size returns the size the clip renders at before scaling: the fixed target
// size when one is set, otherwise the source's native size.
func (c *Clip) Size() (w, h int) {
	if c.targetW > 0 && c.targetH > 0 {
		return c.targetW, c.targetH
	}
	return c.src.Size()
}

// Err returns the first configuration error recorded by a constructor or
// setter, if any. The Writer refuses to render clips with a pending error.
func (c *Clip) Err() error { return c.err }

// SetStart moves the clip to a new start time on the timeline.
func (c *Clip) SetStart(start float64) *Clip {
	c.start = start
	return c
}

// SetDuration overrides the clip's duration.
func (c *Clip) SetDuration(d float64) *Clip {
	if d <= 0 {
		c.fail(fmt.Errorf("%w: clip duration must be > 0, got %v", ErrConfiguration, d))
		return c
	}
	c.duration = d
	return c
}

// SetPosition sets the clip's canvas position. Coordinates are evaluated at
// render time and truncated to integer pixels.
func (c *Clip) SetPosition(p Prop[Point]) *Clip {
	c.position = p
	c.transformed = true
	return c
}

// SetOpacity sets the clip's opacity in [0, 1].
func (c *Clip) SetOpacity(p Prop[float64]) *Clip {
	c.opacity = p
	c.transformed = true
	return c
}

// SetScale sets the clip's scale factor (> 0), applied after the fixed
// target size and the custom transforms.
func (c *Clip) SetScale(p Prop[float64]) *Clip {
	c.scale = p
	c.transformed = true
	return c
}

// SetSize sets a fixed target size, resized lazily at render. Passing 0 for
// one dimension derives it from the source aspect ratio; passing 0 for both
// is a configuration error.
func (c *Clip) SetSize(width, height int) *Clip {
	sw, sh := c.src.Size()
	switch {
	case width <= 0 && height <= 0:
		c.fail(fmt.Errorf("%w: invalid target size %dx%d", ErrConfiguration, width, height))
		return c
	case width <= 0:
		width = height * sw / sh
	case height <= 0:
		height = width * sh / sw
	}
	c.targetW, c.targetH = width, height
	c.transformed = true
	return c
}

// SetMask attaches another clip as an alpha coverage source. The mask is a
// non-owning reference: it keeps its own transform pipeline and locates
// itself in absolute canvas coordinates through its own position, but it is
// never composited directly — only its derived coverage is read.
func (c *Clip) SetMask(mask *Clip) *Clip {
	c.mask = mask
	c.transformed = true
	return c
}

// AddTransform appends a custom frame transform. Transforms run in the
// order they were added, after the fixed-size resize and before scaling.
func (c *Clip) AddTransform(fn FrameTransform) *Clip {
	c.transforms = append(c.transforms, fn)
	c.transformed = true
	return c
}

// Subclip extracts [start, end) of the clip's own media as a new clip
// placed at timeline position 0. Properties and transforms are carried
// over; decode resources start unopened. start must be >= 0, end must not
// exceed the clip duration, and start must be < end.
func (c *Clip) Subclip(start, end float64) (*Clip, error) {
	if start < 0 || end > c.duration || start >= end {
		return nil, fmt.Errorf("%w: invalid subclip range (%v, %v) for clip duration %v",
			ErrConfiguration, start, end, c.duration)
	}
	src, ok := c.src.(sliceable)
	if !ok {
		return nil, fmt.Errorf("%w: clip source does not support subclips", ErrConfiguration)
	}
	out := c.Clone()
	out.src = src.slice(start)
	out.start = 0
	out.duration = end - start
	return out, nil
}

// Clone returns an independent copy of the clip: same timing, properties,
// transform list and mask reference, with all decode resources reset to
// unopened. Prop functions and transforms are shared, not copied; they must
// be stateless.
func (c *Clip) Clone() *Clip {
	out := *c
	out.src = c.src.Clone()
	out.transforms = append([]FrameTransform(nil), c.transforms...)
	if c.mask != nil {
		out.mask = c.mask.Clone()
	}
	return &out
}

// Close releases the clip's decode resources, and its mask's. Safe to call
// more than once.
func (c *Clip) Close() error {
	err := c.src.Close()
	if c.mask != nil {
		if merr := c.mask.Close(); err == nil {
			err = merr
		}
	}
	return err
}

// withLogger hands the render invocation's logger to the clip and its mask.
// Called on clones by the Writer so decode warnings reach the render log.
func (c *Clip) withLogger(log zerolog.Logger) {
	c.log = log
	if l, ok := c.src.(loggable); ok {
		l.setLogger(log)
	}
	if c.mask != nil {
		c.mask.withLogger(log)
	}
}

// Render composites the clip onto bg at global time tGlobal and returns bg.
// Outside the clip's [start, end) interval this is a defined no-op that
// returns the background untouched, before any source or kernel work.
// The background is modified in place.
func (c *Clip) Render(bg *Canvas, tGlobal float64) *Canvas {
	tRel := tGlobal - c.start
	if tRel < 0 || tRel >= c.duration {
		return bg
	}

	frame := c.sourceFrame(tRel)
	frame = c.applyTransforms(frame, tRel)

	var cov *Coverage
	var covX, covY int
	covOpacity := 1.0
	if c.mask != nil {
		mf := c.mask.sourceFrame(tRel)
		mf = c.mask.applyTransforms(mf, tRel)
		cov = coverageFromFrame(mf)
		mp := c.mask.position.At(tRel)
		covX, covY = mp.X, mp.Y
		covOpacity = c.mask.opacity.At(tRel)
	}

	p := c.position.At(tRel)
	opacity := c.opacity.At(tRel)

	if bg.C == 3 {
		blendOverOpaque(bg, frame, p.X, p.Y, opacity, cov, covX, covY, covOpacity)
	} else {
		blendOverAlpha(bg, frame, p.X, p.Y, opacity, cov, covX, covY, covOpacity)
	}
	return bg
}

// sourceFrame fetches the raw frame, recovering decode failures locally by
// substituting an opaque blank frame so one bad read never aborts a render.
func (c *Clip) sourceFrame(tRel float64) *Frame {
	frame, err := c.src.Frame(tRel)
	if err != nil {
		c.log.Warn().Err(err).Float64("t", tRel).Msg("frame decode failed, substituting blank frame")
		w, h := c.src.Size()
		return NewFrame(w, h, 3)
	}
	return frame
}

// applyTransforms runs steps 2-4 of the pipeline: fixed target size, custom
// transforms in registration order, then the time-varying scale. Masks run
// through the same steps before coverage extraction.
func (c *Clip) applyTransforms(frame *Frame, tRel float64) *Frame {
	if c.targetW > 0 && c.targetH > 0 {
		frame = resizeFrame(frame, c.targetW, c.targetH)
	}
	for _, fn := range c.transforms {
		frame = fn(frame, tRel)
	}
	if s := c.scale.At(tRel); s != 1.0 && s > 0 {
		frame = resizeFrame(frame, int(float64(frame.W)*s), int(float64(frame.H)*s))
	}
	return frame
}

// backgroundCandidate reports whether the clip can serve directly as the
// frame background at time t: visible, opaque source frames exactly matching
// the canvas size, and no transform of any kind ever configured. The blend
// kernel for such a clip degenerates to a full-frame copy, which is what the
// background-fill optimization elides.
func (c *Clip) backgroundCandidate(t float64, canvasW, canvasH int) bool {
	if c.transformed || c.mask != nil || len(c.transforms) > 0 {
		return false
	}
	if t < c.start || t >= c.End() {
		return false
	}
	if c.src.Channels() != 3 {
		return false
	}
	w, h := c.src.Size()
	return w == canvasW && h == canvasH
}

func (c *Clip) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}
