// Copyright 2026 The reel Authors
// SPDX-License-Identifier: MIT

package ffkit

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Meta describes the streams of a media file, as reported by ffprobe.
type Meta struct {
	Duration float64
	Width    int
	Height   int
	FPS      float64
	HasAudio bool
}

// Available reports whether the ffmpeg and ffprobe binaries can be found on
// PATH. Callers that are going to spawn many processes should check once up
// front instead of failing mid-render.
func Available() error {
	for _, bin := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(bin); err != nil {
			return fmt.Errorf("%s not found on PATH: %w", bin, err)
		}
	}
	return nil
}

// probeStream and probeData mirror the subset of ffprobe's JSON we read.
type probeStream struct {
	CodecType  string `json:"codec_type"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Duration   string `json:"duration"`
	RFrameRate string `json:"r_frame_rate"`
	NbFrames   string `json:"nb_frames"`
}

type probeData struct {
	Streams []probeStream `json:"streams"`
	Format  struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe inspects a media file and returns its stream metadata. It fails when
// the file has no video stream or no determinable duration.
func Probe(path string) (*Meta, error) {
	data, err := runProbe(path)
	if err != nil {
		return nil, err
	}

	meta := &Meta{}
	var video *probeStream
	for i := range data.Streams {
		switch data.Streams[i].CodecType {
		case "video":
			if video == nil {
				video = &data.Streams[i]
			}
		case "audio":
			meta.HasAudio = true
		}
	}
	if video == nil {
		return nil, fmt.Errorf("probe %s: no video stream", path)
	}

	meta.Width = video.Width
	meta.Height = video.Height
	meta.FPS = parseRate(video.RFrameRate)

	meta.Duration = parseSeconds(video.Duration)
	if meta.Duration == 0 {
		meta.Duration = parseSeconds(data.Format.Duration)
	}
	if meta.Duration == 0 && meta.FPS > 0 {
		// Some containers only carry a frame count.
		if frames := parseSeconds(video.NbFrames); frames > 0 {
			meta.Duration = frames / meta.FPS
		}
	}
	if meta.Duration == 0 {
		return nil, fmt.Errorf("probe %s: could not determine duration", path)
	}
	return meta, nil
}

// ProbeAudio returns the duration of a file's audio, requiring an audio
// stream but not a video one.
func ProbeAudio(path string) (float64, error) {
	data, err := runProbe(path)
	if err != nil {
		return 0, err
	}
	hasAudio := false
	for _, s := range data.Streams {
		if s.CodecType == "audio" {
			hasAudio = true
			break
		}
	}
	if !hasAudio {
		return 0, fmt.Errorf("probe %s: no audio stream", path)
	}
	d := parseSeconds(data.Format.Duration)
	if d == 0 {
		return 0, fmt.Errorf("probe %s: could not determine duration", path)
	}
	return d, nil
}

func runProbe(path string) (*probeData, error) {
	raw, err := ffmpeg.Probe(path)
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", path, err)
	}
	var data probeData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("probe %s: parse: %w", path, err)
	}
	return &data, nil
}

func parseSeconds(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// parseRate parses ffprobe's rational frame rates ("30000/1001").
func parseRate(s string) float64 {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return parseSeconds(s)
	}
	n := parseSeconds(num)
	d := parseSeconds(den)
	if d == 0 {
		return 0
	}
	return n / d
}
