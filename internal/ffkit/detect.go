// Copyright 2026 The reel Authors
// SPDX-License-Identifier: MIT

package ffkit

import (
	"bytes"
	"context"
	"os/exec"
)

// HasEncoder reports whether the local ffmpeg build lists the named encoder.
// Used to verify hardware encoders (h264_nvenc) before committing a render
// to them.
func HasEncoder(ctx context.Context, name string) bool {
	cmd := exec.CommandContext(ctx, "ffmpeg", "-hide_banner", "-encoders")
	out, err := cmd.Output()
	if err != nil {
		return false
	}
	return bytes.Contains(out, []byte(" "+name+" "))
}
