// Copyright 2026 The reel Authors
// SPDX-License-Identifier: MIT

// Package ffkit wraps the ffmpeg and ffprobe executables behind a small,
// typed surface: stream probing, raw frame decoding, raw frame encoding,
// lossless concatenation and audio mixing. Command lines are assembled with
// the ffmpeg-go filter graph builder and executed as child processes; all
// long-running invocations take a context and die with it.
//
// Nothing in this package knows about clips or timelines. It moves bytes
// between the renderer and ffmpeg, and reports what ffmpeg said when things
// go wrong.
package ffkit
