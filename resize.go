// Copyright 2026 The reel Authors
// SPDX-License-Identifier: MIT

package reel

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// resizeFrame resizes a frame with the standard interpolation policy:
// shrinking uses area averaging (every source pixel contributes, so detail
// is filtered rather than skipped), growing uses Catmull-Rom cubic
// interpolation. The direction is decided by comparing the target width
// against the source width. Target dimensions below 1 are clamped to 1.
func resizeFrame(f *Frame, w, h int) *Frame {
	w, h = max(w, 1), max(h, 1)
	if w == f.W && h == f.H {
		return f
	}
	if w < f.W {
		return resizeArea(f, w, h)
	}
	return resizeCubic(f, w, h)
}

// resizeCubic scales up through x/image's Catmull-Rom kernel, operating on
// straight-alpha NRGBA so transparency is interpolated without premultiply
// darkening at the edges.
func resizeCubic(f *Frame, w, h int) *Frame {
	src := f.toNRGBA()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return frameFromNRGBA(dst, f.C)
}

// resizeArea shrinks by integrating the source over each destination
// pixel's footprint, with fractional weights at the footprint edges.
// x/image/draw ships no area filter, so this is a direct implementation of
// the weighted box average.
func resizeArea(f *Frame, w, h int) *Frame {
	out := NewFrame(w, h, f.C)
	scaleX := float64(f.W) / float64(w)
	scaleY := float64(f.H) / float64(h)
	acc := make([]float64, f.C)

	for dy := 0; dy < h; dy++ {
		sy0 := float64(dy) * scaleY
		sy1 := min(float64(dy+1)*scaleY, float64(f.H))
		for dx := 0; dx < w; dx++ {
			sx0 := float64(dx) * scaleX
			sx1 := min(float64(dx+1)*scaleX, float64(f.W))

			for c := range acc {
				acc[c] = 0
			}
			total := 0.0

			for sy := int(sy0); sy < f.H && float64(sy) < sy1; sy++ {
				wy := rowWeight(float64(sy), sy0, sy1)
				row := sy * f.W * f.C
				for sx := int(sx0); sx < f.W && float64(sx) < sx1; sx++ {
					wx := rowWeight(float64(sx), sx0, sx1)
					wgt := wy * wx
					p := row + sx*f.C
					for c := 0; c < f.C; c++ {
						acc[c] += wgt * float64(f.Pix[p+c])
					}
					total += wgt
				}
			}

			p := (dy*w + dx) * f.C
			for c := 0; c < f.C; c++ {
				out.Pix[p+c] = uint8(acc[c]/total + 0.5)
			}
		}
	}
	return out
}

// rowWeight returns how much of the unit source cell starting at v lies
// inside [lo, hi).
func rowWeight(v, lo, hi float64) float64 {
	return min(v+1, hi) - max(v, lo)
}
