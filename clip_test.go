// Copyright 2026 The reel Authors
// SPDX-License-Identifier: MIT

package reel

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSource is a test source with scripted frames and failures.
type stubSource struct {
	frame *Frame
	err   error
	calls int
}

func (s *stubSource) Frame(float64) (*Frame, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.frame, nil
}
func (s *stubSource) Size() (int, int) { return s.frame.W, s.frame.H }
func (s *stubSource) Channels() int    { return s.frame.C }
func (s *stubSource) Clone() Source    { return &stubSource{frame: s.frame, err: s.err} }
func (s *stubSource) Close() error     { return nil }

func TestRenderOutsideIntervalIsNoop(t *testing.T) {
	src := &stubSource{frame: solidFrame(2, 2, 255, 0, 0)}
	clip := newClip(src, 2.0, 3.0) // visible over [2, 5)

	bg := solidCanvas(2, 2, 3, 42)
	want := bg.Clone()

	for _, tt := range []float64{0, 1.999, 5.0, 5.1, 100} {
		clip.Render(bg, tt)
		assert.Equal(t, want.Pix, bg.Pix, "t=%v", tt)
	}
	// The source must never have been touched.
	assert.Zero(t, src.calls)

	clip.Render(bg, 2.0)
	assert.Equal(t, 1, src.calls)
	assert.Equal(t, float32(255), bg.Pix[0])
}

func TestRenderIntervalIsHalfOpen(t *testing.T) {
	src := &stubSource{frame: solidFrame(1, 1, 9, 9, 9)}
	clip := newClip(src, 0, 1.0)

	bg := NewCanvas(1, 1, 3)
	clip.Render(bg, 1.0) // exactly at end: excluded
	assert.Equal(t, float32(0), bg.Pix[0])

	clip.Render(bg, 0.0) // exactly at start: included
	assert.Equal(t, float32(9), bg.Pix[0])
}

func TestRenderDecodeFailureSubstitutesBlackFrame(t *testing.T) {
	src := &stubSource{frame: solidFrame(2, 2, 1, 2, 3), err: errors.New("broken stream")}
	clip := newClip(src, 0, 1.0)

	bg := solidCanvas(2, 2, 3, 200)
	clip.Render(bg, 0.5)

	// The blank substitute is opaque black and still composites.
	for i := 0; i < len(bg.Pix); i += 3 {
		assert.Equal(t, float32(0), bg.Pix[i])
	}
}

func TestClipConstructorRejectsNonPositiveDuration(t *testing.T) {
	clip := newClip(&stubSource{frame: solidFrame(1, 1, 0, 0, 0)}, 0, 0)
	assert.ErrorIs(t, clip.Err(), ErrConfiguration)
}

func TestSettersRecordFirstError(t *testing.T) {
	clip := NewColorClip(4, 4, color.Black, 2.0)
	clip.SetDuration(-1).SetSize(0, 0)

	err := clip.Err()
	require.ErrorIs(t, err, ErrConfiguration)
	assert.Contains(t, err.Error(), "duration")
}

func TestSetSizeDerivesFromAspectRatio(t *testing.T) {
	clip := NewColorClip(100, 50, color.White, 1.0)

	clip.SetSize(40, 0)
	w, h := clip.Size()
	assert.Equal(t, 40, w)
	assert.Equal(t, 20, h)

	clip = NewColorClip(100, 50, color.White, 1.0).SetSize(0, 100)
	w, h = clip.Size()
	assert.Equal(t, 200, w)
	assert.Equal(t, 100, h)
}

func TestSubclipValidation(t *testing.T) {
	clip := NewColorClip(2, 2, color.White, 10.0)

	tests := []struct {
		name       string
		start, end float64
	}{
		{"negative start", -1, 5},
		{"end past duration", 0, 10.5},
		{"start at end", 3, 3},
		{"inverted", 5, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := clip.Subclip(tc.start, tc.end)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestSubclipResetsTimelinePlacement(t *testing.T) {
	clip := NewColorClip(2, 2, color.White, 10.0)
	clip.SetStart(4.0)

	sub, err := clip.Subclip(2.0, 6.5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, sub.Start())
	assert.InDelta(t, 4.5, sub.Duration(), 1e-9)

	// The original is untouched.
	assert.Equal(t, 4.0, clip.Start())
	assert.Equal(t, 10.0, clip.Duration())
}

func TestCloneIsIndependent(t *testing.T) {
	clip := NewColorClip(2, 2, color.White, 5.0)
	clip.AddTransform(Grayscale())

	cp := clip.Clone()
	cp.SetStart(9).AddTransform(Brightness(2))

	assert.Equal(t, 0.0, clip.Start())
	assert.Len(t, clip.transforms, 1)
	assert.Len(t, cp.transforms, 2)
}

func TestBackgroundCandidate(t *testing.T) {
	mk := func() *Clip { return NewColorClip(4, 4, color.White, 10.0) }

	t.Run("plain full-canvas clip qualifies", func(t *testing.T) {
		assert.True(t, mk().backgroundCandidate(5, 4, 4))
	})
	t.Run("outside interval", func(t *testing.T) {
		assert.False(t, mk().backgroundCandidate(10, 4, 4))
	})
	t.Run("size mismatch", func(t *testing.T) {
		assert.False(t, mk().backgroundCandidate(5, 8, 8))
	})
	t.Run("alpha source", func(t *testing.T) {
		c := NewColorClip(4, 4, color.NRGBA{R: 255, A: 128}, 10.0)
		assert.False(t, c.backgroundCandidate(5, 4, 4))
	})
	t.Run("identity setter still disqualifies", func(t *testing.T) {
		c := mk().SetOpacity(Constant(1.0))
		assert.False(t, c.backgroundCandidate(5, 4, 4))
	})
	t.Run("mask disqualifies", func(t *testing.T) {
		c := mk().SetMask(NewColorClip(4, 4, color.White, 10.0))
		assert.False(t, c.backgroundCandidate(5, 4, 4))
	})
}

func TestRenderWithMaskHidesUncoveredArea(t *testing.T) {
	fg := NewColorClip(4, 4, color.White, 1.0)
	mask := NewColorClip(2, 2, color.White, 1.0)
	fg.SetMask(mask)

	bg := NewCanvas(4, 4, 3)
	fg.Render(bg, 0.5)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			i := (y*4 + x) * 3
			if x < 2 && y < 2 {
				assert.Equal(t, float32(255), bg.Pix[i], "(%d,%d)", x, y)
			} else {
				assert.Equal(t, float32(0), bg.Pix[i], "(%d,%d)", x, y)
			}
		}
	}
}

func TestRenderMaskUsesOwnPosition(t *testing.T) {
	fg := NewColorClip(4, 4, color.White, 1.0)
	mask := NewColorClip(2, 2, color.White, 1.0)
	mask.SetPosition(Constant(Pt(2, 2)))
	fg.SetMask(mask)

	bg := NewCanvas(4, 4, 3)
	fg.Render(bg, 0.5)

	// Coverage now sits over the bottom-right quadrant.
	assert.Equal(t, float32(0), bg.Pix[0])
	i := (3*4 + 3) * 3
	assert.Equal(t, float32(255), bg.Pix[i])
}

func TestRenderTimeVaryingPosition(t *testing.T) {
	clip := NewColorClip(1, 1, color.White, 10.0)
	clip.SetPosition(TimeFunc(func(t float64) Point { return Pt(int(t), 0) }))

	bg := NewCanvas(4, 1, 3)
	clip.Render(bg, 2.0)

	assert.Equal(t, float32(0), bg.Pix[0])
	assert.Equal(t, float32(255), bg.Pix[2*3])
}

func TestRenderScaleResizesFrame(t *testing.T) {
	clip := NewColorClip(4, 4, color.White, 1.0)
	clip.SetScale(Constant(0.5))

	bg := NewCanvas(4, 4, 3)
	clip.Render(bg, 0)

	// Scaled to 2x2 at the origin.
	assert.Equal(t, float32(255), bg.Pix[0])
	i := (3*4 + 3) * 3
	assert.Equal(t, float32(0), bg.Pix[i])
}

func TestTransformsRunInOrder(t *testing.T) {
	var order []string
	clip := NewColorClip(1, 1, color.White, 1.0)
	clip.AddTransform(func(f *Frame, _ float64) *Frame {
		order = append(order, "first")
		return f
	})
	clip.AddTransform(func(f *Frame, _ float64) *Frame {
		order = append(order, "second")
		return f
	})

	clip.Render(NewCanvas(1, 1, 3), 0)
	assert.Equal(t, []string{"first", "second"}, order)
}
