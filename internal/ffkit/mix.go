// Copyright 2026 The reel Authors
// SPDX-License-Identifier: MIT

package ffkit

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Track is one audio source to lay onto the mix.
type Track struct {
	Path     string
	StartSec float64 // placement on the timeline
	Offset   float64 // trim start within the source
	Duration float64 // trim length within the source
	GainDB   float64
}

const (
	mixSampleRate = 44100
	// loudnorm targets, matching common streaming loudness practice.
	loudnormI   = -14.0
	loudnormTP  = -1.5
	loudnormLRA = 11.0
)

// MixTracks renders all tracks into a single WAV of exactly totalDur
// seconds. The mix starts from a silent stereo base so gaps and an empty
// track list are well defined. When normalize is set, a loudnorm pass runs
// over the final mix.
func MixTracks(ctx context.Context, tracks []Track, totalDur float64, normalize bool, outWav string, log zerolog.Logger) error {
	base := ffmpeg.Input(
		fmt.Sprintf("anullsrc=channel_layout=stereo:sample_rate=%d", mixSampleRate),
		ffmpeg.KwArgs{"f": "lavfi", "t": fmt.Sprintf("%.6f", totalDur)},
	)

	streams := []*ffmpeg.Stream{base}
	for _, t := range tracks {
		a := ffmpeg.Input(t.Path).Audio().
			Filter("atrim", ffmpeg.Args{}, ffmpeg.KwArgs{
				"start":    fmt.Sprintf("%.6f", t.Offset),
				"duration": fmt.Sprintf("%.6f", t.Duration),
			}).
			Filter("asetpts", ffmpeg.Args{"PTS-STARTPTS"}).
			Filter("volume", ffmpeg.Args{fmt.Sprintf("%.4fdB", t.GainDB)})
		if ms := int(t.StartSec * 1000); ms > 0 {
			a = a.Filter("adelay", ffmpeg.Args{fmt.Sprintf("%d|%d", ms, ms)})
		}
		streams = append(streams, a)
	}

	mixed := ffmpeg.Filter(streams, "amix", ffmpeg.Args{}, ffmpeg.KwArgs{
		"inputs":    len(streams),
		"duration":  "first",
		"normalize": 0,
	})
	if normalize {
		mixed = mixed.Filter("loudnorm", ffmpeg.Args{}, ffmpeg.KwArgs{
			"I":   loudnormI,
			"TP":  loudnormTP,
			"LRA": loudnormLRA,
		})
	}

	log.Debug().Int("tracks", len(tracks)).Bool("normalize", normalize).Msg("mixing audio")
	args := mixed.Output(outWav, ffmpeg.KwArgs{
		"c:a": "pcm_s16le",
		"ar":  mixSampleRate,
		"ac":  2,
	}).OverWriteOutput().GetArgs()
	if err := runFFmpeg(ctx, args); err != nil {
		return fmt.Errorf("mix: %w", err)
	}
	return nil
}

// Mux combines an encoded video file and a mixed audio file into out,
// copying the video stream untouched and encoding the audio to AAC.
func Mux(ctx context.Context, videoPath, audioPath, out string, log zerolog.Logger) error {
	video := ffmpeg.Input(videoPath)
	audio := ffmpeg.Input(audioPath)

	log.Debug().Str("out", out).Msg("muxing audio into video")
	args := ffmpeg.Output([]*ffmpeg.Stream{video.Video(), audio.Audio()}, out, ffmpeg.KwArgs{
		"c:v":      "copy",
		"c:a":      "aac",
		"b:a":      "192k",
		"shortest": "",
	}).OverWriteOutput().GetArgs()
	if err := runFFmpeg(ctx, args); err != nil {
		return fmt.Errorf("mux: %w", err)
	}
	return nil
}
