// Copyright 2026 The reel Authors
// SPDX-License-Identifier: MIT

package reel

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// TextStyle controls text rasterization. The zero value renders white
// 32-point Go Regular with 1.2 line spacing.
type TextStyle struct {
	TTF         []byte      // raw font bytes; nil selects Go Regular
	Size        float64     // point size; <= 0 selects 32
	Color       color.Color // nil selects white
	LineSpacing float64     // line height multiplier; <= 0 selects 1.2
	DPI         float64     // <= 0 selects 72
	Padding     int         // transparent pixels around the text block
}

// textSource holds the rasterized text frame. Text renders once at
// construction; afterwards it behaves like a still image with alpha.
type textSource struct {
	frame *Frame
}

// NewTextClip rasterizes text into a still clip of the given duration.
// Lines are split on '\n' and left-aligned; the frame is sized to fit the
// rendered text exactly. The frame always carries an alpha channel, so text
// composites cleanly over any background.
func NewTextClip(text string, style TextStyle, duration float64) (*Clip, error) {
	frame, err := rasterizeText(text, style)
	if err != nil {
		return nil, err
	}
	return newClip(&textSource{frame: frame}, 0, duration), nil
}

func (s *textSource) Frame(float64) (*Frame, error) { return s.frame, nil }
func (s *textSource) Size() (int, int)              { return s.frame.W, s.frame.H }
func (s *textSource) Channels() int                 { return 4 }
func (s *textSource) Clone() Source                 { return s }
func (s *textSource) Close() error                  { return nil }
func (s *textSource) slice(float64) Source          { return s }

func rasterizeText(text string, style TextStyle) (*Frame, error) {
	ttf := style.TTF
	if ttf == nil {
		ttf = goregular.TTF
	}
	size := style.Size
	if size <= 0 {
		size = 32
	}
	col := style.Color
	if col == nil {
		col = color.White
	}
	spacing := style.LineSpacing
	if spacing <= 0 {
		spacing = 1.2
	}
	dpi := style.DPI
	if dpi <= 0 {
		dpi = 72
	}

	parsed, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("%w: parse font: %v", ErrConfiguration, err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: font face: %v", ErrConfiguration, err)
	}
	defer face.Close()

	lines := strings.Split(text, "\n")
	metrics := face.Metrics()
	lineHeight := int(float64(metrics.Height.Ceil()) * spacing)

	pad := style.Padding
	if pad < 0 {
		pad = 0
	}
	width := 1
	for _, line := range lines {
		if w := font.MeasureString(face, line).Ceil(); w > width {
			width = w
		}
	}
	height := lineHeight * len(lines)
	if height < 1 {
		height = 1
	}

	img := image.NewNRGBA(image.Rect(0, 0, width+2*pad, height+2*pad))
	drawer := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
	}
	for i, line := range lines {
		drawer.Dot = fixed.P(pad, pad+i*lineHeight+metrics.Ascent.Ceil())
		drawer.DrawString(line)
	}
	return FrameFromImage(img), nil
}
