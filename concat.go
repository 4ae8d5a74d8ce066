// Copyright 2026 The reel Authors
// SPDX-License-Identifier: MIT

package reel

// Concatenate lays clips end to end inside a new composite clip: each input
// is cloned and restarted where the previous one ends, beginning at t = 0.
// The composite canvas is sized to the largest clip, so differently sized
// inputs render at their own size on a shared transparent background. The
// inputs are not modified.
func Concatenate(clips ...*Clip) *Clip {
	w, h := 1, 1
	for _, c := range clips {
		cw, ch := c.Size()
		w, h = max(w, cw), max(h, ch)
	}
	comp := NewCompositeClip(w, h)
	t := 0.0
	for _, c := range clips {
		comp.AddClip(c.Clone().SetStart(t))
		t += c.duration
	}
	return comp
}

// ConcatenateAudio lays audio tracks end to end starting at t = 0, returning
// repositioned copies.
func ConcatenateAudio(tracks ...*AudioTrack) []*AudioTrack {
	out := make([]*AudioTrack, len(tracks))
	t := 0.0
	for i, tr := range tracks {
		cp := *tr
		cp.start = t
		out[i] = &cp
		t += tr.duration
	}
	return out
}
