// Copyright 2026 The reel Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"image/color"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/reelkit/reel"
)

// project is the YAML schema of a render job.
type project struct {
	Output         string  `yaml:"output"`
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	FPS            float64 `yaml:"fps"`
	Duration       float64 `yaml:"duration"`
	Workers        int     `yaml:"workers"`
	Quality        string  `yaml:"quality"`
	GPU            bool    `yaml:"gpu"`
	NormalizeAudio *bool   `yaml:"normalize_audio"` // nil keeps the default (on)

	Clips []projectClip  `yaml:"clips"`
	Audio []projectAudio `yaml:"audio"`
}

// projectClip is one timeline entry. Exactly one of Video, Image, Text or
// Color selects the clip kind.
type projectClip struct {
	Video string `yaml:"video"`
	Image string `yaml:"image"`
	Text  string `yaml:"text"`
	Color string `yaml:"color"` // hex, e.g. "#1e90ff"

	Start    float64  `yaml:"start"`
	Duration float64  `yaml:"duration"`
	Subclip  *span    `yaml:"subclip"`
	X        int      `yaml:"x"`
	Y        int      `yaml:"y"`
	Opacity  *float64 `yaml:"opacity"`
	Scale    *float64 `yaml:"scale"`
	Width    int      `yaml:"width"`
	Height   int      `yaml:"height"`
	FadeIn   float64  `yaml:"fade_in"`
	FadeOut  float64  `yaml:"fade_out"`
	FontSize float64  `yaml:"font_size"`
}

type projectAudio struct {
	Path   string  `yaml:"path"`
	Start  float64 `yaml:"start"`
	Volume *float64 `yaml:"volume"`
}

type span struct {
	From float64 `yaml:"from"`
	To   float64 `yaml:"to"`
}

func loadProject(data []byte) (*project, error) {
	var p project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	if p.Output == "" {
		return nil, fmt.Errorf("project has no output path")
	}
	if len(p.Clips) == 0 {
		return nil, fmt.Errorf("project has no clips")
	}
	return &p, nil
}

func parseQuality(s string) (reel.Quality, error) {
	switch s {
	case "", "middle":
		return reel.QualityMiddle, nil
	case "low":
		return reel.QualityLow, nil
	case "high":
		return reel.QualityHigh, nil
	case "very_high":
		return reel.QualityVeryHigh, nil
	default:
		return 0, fmt.Errorf("unknown quality %q", s)
	}
}

// buildWriter translates the project into a configured Writer.
func (p *project) buildWriter(log zerolog.Logger) (*reel.Writer, error) {
	quality, err := parseQuality(p.Quality)
	if err != nil {
		return nil, err
	}

	opts := []reel.WriterOption{
		reel.WithQuality(quality),
		reel.WithLogger(log),
	}
	if p.Width > 0 && p.Height > 0 {
		opts = append(opts, reel.WithSize(p.Width, p.Height))
	}
	if p.FPS > 0 {
		opts = append(opts, reel.WithFPS(p.FPS))
	}
	if p.Duration > 0 {
		opts = append(opts, reel.WithDuration(p.Duration))
	}
	if p.Workers > 0 {
		opts = append(opts, reel.WithWorkers(p.Workers))
	}
	if p.GPU {
		opts = append(opts, reel.WithGPUEncoder())
	}
	if p.NormalizeAudio != nil && !*p.NormalizeAudio {
		opts = append(opts, reel.WithoutAudioNormalization())
	}

	w := reel.NewWriter(p.Output, opts...)
	for i := range p.Clips {
		clip, err := p.Clips[i].build(p)
		if err != nil {
			return nil, fmt.Errorf("clip %d: %w", i, err)
		}
		w.AddClip(clip)
	}
	for i, a := range p.Audio {
		track, err := reel.NewAudioTrack(a.Path)
		if err != nil {
			return nil, fmt.Errorf("audio %d: %w", i, err)
		}
		track.SetStart(a.Start)
		if a.Volume != nil {
			track.SetVolume(*a.Volume)
		}
		w.AddAudioTrack(track)
	}
	return w, nil
}

func (pc *projectClip) build(p *project) (*reel.Clip, error) {
	clip, err := pc.newClip(p)
	if err != nil {
		return nil, err
	}
	if pc.Subclip != nil {
		clip, err = clip.Subclip(pc.Subclip.From, pc.Subclip.To)
		if err != nil {
			return nil, err
		}
	}
	clip.SetStart(pc.Start)
	if pc.X != 0 || pc.Y != 0 {
		clip.SetPosition(reel.Constant(reel.Pt(pc.X, pc.Y)))
	}
	if pc.Opacity != nil {
		clip.SetOpacity(reel.Constant(*pc.Opacity))
	}
	if pc.Scale != nil {
		clip.SetScale(reel.Constant(*pc.Scale))
	}
	if pc.Width > 0 || pc.Height > 0 {
		clip.SetSize(pc.Width, pc.Height)
	}
	if pc.FadeIn > 0 {
		reel.FadeIn(clip, pc.FadeIn)
	}
	if pc.FadeOut > 0 {
		reel.FadeOut(clip, pc.FadeOut)
	}
	return clip, clip.Err()
}

func (pc *projectClip) newClip(p *project) (*reel.Clip, error) {
	switch {
	case pc.Video != "":
		clip, err := reel.NewVideoClip(pc.Video)
		if err != nil {
			return nil, err
		}
		if pc.Duration > 0 {
			clip.SetDuration(pc.Duration)
		}
		return clip, nil
	case pc.Image != "":
		if pc.Duration <= 0 {
			return nil, fmt.Errorf("image clip needs a duration")
		}
		return reel.NewImageClip(pc.Image, pc.Duration)
	case pc.Text != "":
		if pc.Duration <= 0 {
			return nil, fmt.Errorf("text clip needs a duration")
		}
		return reel.NewTextClip(pc.Text, reel.TextStyle{Size: pc.FontSize}, pc.Duration)
	case pc.Color != "":
		if pc.Duration <= 0 {
			return nil, fmt.Errorf("color clip needs a duration")
		}
		c, err := parseHexColor(pc.Color)
		if err != nil {
			return nil, err
		}
		w, h := p.Width, p.Height
		if pc.Width > 0 && pc.Height > 0 {
			w, h = pc.Width, pc.Height
		}
		if w <= 0 || h <= 0 {
			return nil, fmt.Errorf("color clip needs a size")
		}
		return reel.NewColorClip(w, h, c, pc.Duration), nil
	default:
		return nil, fmt.Errorf("clip needs one of video, image, text or color")
	}
}

func parseHexColor(s string) (color.NRGBA, error) {
	c := color.NRGBA{A: 0xff}
	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 9:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	default:
		err = fmt.Errorf("bad length")
	}
	if err != nil {
		return c, fmt.Errorf("invalid color %q", s)
	}
	return c, nil
}
