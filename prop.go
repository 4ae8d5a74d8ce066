// Copyright 2026 The reel Authors
// SPDX-License-Identifier: MIT

package reel

// Prop is a time-valued clip property: either a constant or a function of
// time relative to the clip's start. Both variants are evaluated through the
// single At call site, so render code never inspects which variant it holds.
type Prop[T any] struct {
	value T
	fn    func(t float64) T
}

// Constant returns a Prop that evaluates to v at every instant.
func Constant[T any](v T) Prop[T] {
	return Prop[T]{value: v}
}

// TimeFunc returns a Prop whose value is computed from the clip-relative
// time at render. fn must be safe to call from multiple goroutines and must
// not retain or mutate shared state: it is shared by all clones of a clip.
func TimeFunc[T any](fn func(t float64) T) Prop[T] {
	return Prop[T]{fn: fn}
}

// At evaluates the property at relative time t.
func (p Prop[T]) At(t float64) T {
	if p.fn != nil {
		return p.fn(t)
	}
	return p.value
}

// Point is an integer pixel coordinate on the canvas. X grows right, Y grows
// down, origin at the top-left.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }
