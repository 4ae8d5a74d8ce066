// Copyright 2026 The reel Authors
// SPDX-License-Identifier: MIT

package reel

import "errors"

// Sentinel errors for the failure taxonomy. Wrap with fmt.Errorf("%w: ...")
// and test with errors.Is.
var (
	// ErrConfiguration reports an invalid setup: bad canvas size, an empty
	// clip set with no explicit duration, or an invalid subclip range.
	ErrConfiguration = errors.New("reel: invalid configuration")

	// ErrResource reports a missing or unreadable source file.
	ErrResource = errors.New("reel: resource unavailable")

	// ErrDecode reports a frame fetch failure at a given timestamp. Decode
	// failures are recovered locally: the renderer substitutes a blank frame
	// and logs a warning, so this error never aborts a render on its own.
	ErrDecode = errors.New("reel: frame decode failed")

	// ErrEncode reports an encoder process failure (broken pipe or non-zero
	// exit). Encode failures are fatal and abort Write.
	ErrEncode = errors.New("reel: encoder failed")

	// ErrAudioTrack reports a per-track audio failure. The failing track is
	// skipped with a warning; the remaining mix proceeds.
	ErrAudioTrack = errors.New("reel: audio track failed")
)
