// Copyright 2026 The reel Authors
// SPDX-License-Identifier: MIT

package reel

// Blending kernels. These are the hottest loops in the renderer: they run
// once per clip per frame over the overlap rectangle, so both kernels are
// written as flat double loops over the raw slices with no per-pixel calls
// or allocations.
//
// The foreground is an 8-bit frame (RGB or RGBA, straight alpha) placed at
// (fgX, fgY) in canvas coordinates. The background is the float32 canvas.
// The effective per-pixel alpha is
//
//	source alpha (1.0 for RGB) x opacity x coverage
//
// where coverage is looked up in absolute canvas coordinates translated into
// the mask's local space; coordinates outside the mask's placed rectangle
// read as 0.

// blendOverOpaque composites fg onto a 3-channel canvas with source-over
// blending: out = fg*a + bg*(1-a). a <= 0 skips the pixel, a >= 1 copies the
// foreground directly without touching the float math.
func blendOverOpaque(bg *Canvas, fg *Frame, fgX, fgY int, opacity float64, cov *Coverage, covX, covY int, covOpacity float64) {
	x0, y0, x1, y1 := overlap(bg.W, bg.H, fg.W, fg.H, fgX, fgY)
	if x0 >= x1 || y0 >= y1 {
		return
	}
	op := float32(opacity)
	covOp := float32(covOpacity)

	for y := y0; y < y1; y++ {
		bgRow := y * bg.W * 3
		fgRow := (y - fgY) * fg.W * fg.C
		for x := x0; x < x1; x++ {
			bi := bgRow + x*3
			fi := fgRow + (x-fgX)*fg.C

			a := op
			if fg.C == 4 {
				a *= float32(fg.Pix[fi+3]) / 255.0
			}
			if cov != nil {
				a *= float32(cov.At(x-covX, y-covY)) / 255.0 * covOp
			}
			if a <= 0 {
				continue
			}
			if a >= 1 {
				bg.Pix[bi+0] = float32(fg.Pix[fi+0])
				bg.Pix[bi+1] = float32(fg.Pix[fi+1])
				bg.Pix[bi+2] = float32(fg.Pix[fi+2])
				continue
			}

			inv := 1.0 - a
			bg.Pix[bi+0] = clamp255(float32(fg.Pix[fi+0])*a + bg.Pix[bi+0]*inv)
			bg.Pix[bi+1] = clamp255(float32(fg.Pix[fi+1])*a + bg.Pix[bi+1]*inv)
			bg.Pix[bi+2] = clamp255(float32(fg.Pix[fi+2])*a + bg.Pix[bi+2]*inv)
		}
	}
}

// blendAlphaEpsilon is the combined-alpha threshold below which the
// associated-alpha kernel emits fully transparent black instead of dividing.
// The value is load-bearing: do not change it without revisiting every
// render that layers near-transparent clips on transparent canvases.
const blendAlphaEpsilon = 1e-6

// blendOverAlpha composites fg onto a 4-channel canvas using associated
// (premultiplied-correct) alpha: the background's own transparency
// participates in the blend and the result is un-premultiplied back into
// straight alpha. A combined alpha under blendAlphaEpsilon hard-zeroes the
// pixel rather than amplifying noise through the division.
func blendOverAlpha(bg *Canvas, fg *Frame, fgX, fgY int, opacity float64, cov *Coverage, covX, covY int, covOpacity float64) {
	x0, y0, x1, y1 := overlap(bg.W, bg.H, fg.W, fg.H, fgX, fgY)
	if x0 >= x1 || y0 >= y1 {
		return
	}
	op := float32(opacity)
	covOp := float32(covOpacity)

	for y := y0; y < y1; y++ {
		bgRow := y * bg.W * 4
		fgRow := (y - fgY) * fg.W * fg.C
		for x := x0; x < x1; x++ {
			bi := bgRow + x*4
			fi := fgRow + (x-fgX)*fg.C

			a := op
			if fg.C == 4 {
				a *= float32(fg.Pix[fi+3]) / 255.0
			}
			if cov != nil {
				a *= float32(cov.At(x-covX, y-covY)) / 255.0 * covOp
			}
			if a <= 0 {
				continue
			}
			if a >= 1 {
				bg.Pix[bi+0] = float32(fg.Pix[fi+0])
				bg.Pix[bi+1] = float32(fg.Pix[fi+1])
				bg.Pix[bi+2] = float32(fg.Pix[fi+2])
				bg.Pix[bi+3] = 255.0
				continue
			}

			inv := 1.0 - a
			bgA := bg.Pix[bi+3] / 255.0
			outA := a + bgA*inv
			if outA < blendAlphaEpsilon {
				bg.Pix[bi+0] = 0
				bg.Pix[bi+1] = 0
				bg.Pix[bi+2] = 0
				bg.Pix[bi+3] = 0
				continue
			}

			bg.Pix[bi+0] = clamp255((float32(fg.Pix[fi+0])*a + bg.Pix[bi+0]*bgA*inv) / outA)
			bg.Pix[bi+1] = clamp255((float32(fg.Pix[fi+1])*a + bg.Pix[bi+1]*bgA*inv) / outA)
			bg.Pix[bi+2] = clamp255((float32(fg.Pix[fi+2])*a + bg.Pix[bi+2]*bgA*inv) / outA)
			bg.Pix[bi+3] = outA * 255.0
		}
	}
}

// overlap clips the placed foreground rectangle against the canvas bounds,
// returning the overlap in canvas coordinates. An empty overlap comes back
// with x0 >= x1 or y0 >= y1.
func overlap(bgW, bgH, fgW, fgH, fgX, fgY int) (x0, y0, x1, y1 int) {
	x0, y0 = max(fgX, 0), max(fgY, 0)
	x1, y1 = min(fgX+fgW, bgW), min(fgY+fgH, bgH)
	return
}

func clamp255(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
