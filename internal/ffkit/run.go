// Copyright 2026 The reel Authors
// SPDX-License-Identifier: MIT

package ffkit

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// runFFmpeg executes a one-shot ffmpeg invocation with the given ffmpeg-go
// argument list, returning an error that carries the last stderr line on
// failure.
func runFFmpeg(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg", append([]string{"-hide_banner", "-loglevel", "error"}, args...)...)
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg: %w (%s)", err, lastLine(stderr))
	}
	return nil
}
