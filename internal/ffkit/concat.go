// Copyright 2026 The reel Authors
// SPDX-License-Identifier: MIT

package ffkit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Concat joins identically-encoded parts into out with the concat demuxer,
// stream-copying so no re-encode (and no generation loss) occurs. The list
// file is written next to the output and removed afterwards.
func Concat(ctx context.Context, parts []string, out string, log zerolog.Logger) error {
	if len(parts) == 0 {
		return fmt.Errorf("concat: no parts")
	}

	listPath := filepath.Join(filepath.Dir(out), ".concat-"+filepath.Base(out)+".txt")
	var list strings.Builder
	for _, p := range parts {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("concat: %w", err)
		}
		// Single quotes in the path would break the demuxer's quoting.
		fmt.Fprintf(&list, "file '%s'\n", strings.ReplaceAll(abs, "'", `'\''`))
	}
	if err := os.WriteFile(listPath, []byte(list.String()), 0o644); err != nil {
		return fmt.Errorf("concat: write list: %w", err)
	}
	defer os.Remove(listPath)

	log.Debug().Int("parts", len(parts)).Str("out", out).Msg("concatenating")
	args := ffmpeg.Input(listPath, ffmpeg.KwArgs{"f": "concat", "safe": "0"}).
		Output(out, ffmpeg.KwArgs{"c": "copy"}).
		OverWriteOutput().
		GetArgs()
	if err := runFFmpeg(ctx, args); err != nil {
		return fmt.Errorf("concat: %w", err)
	}
	return nil
}
