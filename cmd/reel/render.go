// Copyright 2026 The reel Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reelkit/reel"
)

var renderOutput string

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <project.yaml>",
		Short: "Render a project file to video",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,
	}
	cmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Override the project's output path")
	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	log := newLogger()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	proj, err := loadProject(data)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	if renderOutput != "" {
		proj.Output = renderOutput
	}

	w, err := proj.buildWriter(log)
	if err != nil {
		return err
	}
	return w.Write(ctx)
}

func newProbeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe <media>",
		Short: "Print stream metadata for a media file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clip, err := reel.NewVideoClip(args[0])
			if err != nil {
				return err
			}
			defer clip.Close()
			w, h := clip.Size()
			fmt.Printf("%s: %dx%d, %.3fs\n", args[0], w, h, clip.Duration())
			return nil
		},
	}
}
