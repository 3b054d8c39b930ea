package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tubesort/puzzlefile"
	"github.com/katalvlaran/tubesort/render"
	"github.com/katalvlaran/tubesort/scan"
)

func newScanCmd(a *app) *cobra.Command {
	var full, empty, out string
	var palette bool
	cmd := &cobra.Command{
		Use:   "scan IMAGE",
		Short: "Read a puzzle from a screenshot",
		Long: `Locates tubes in a level screenshot by matching a full-tube and an
empty-tube picture, then samples the color of each layer.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("palette") {
				a.cfg.Scan.Palette = palette
			}
			level, err := scan.LoadImage(args[0])
			if err != nil {
				return err
			}
			fullImg, err := scan.LoadImage(full)
			if err != nil {
				return err
			}
			emptyImg, err := scan.LoadImage(empty)
			if err != nil {
				return err
			}

			s, centers, err := scan.Scan(level, fullImg, emptyImg, scanOptions(a)...)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			a.log.Info("scanned puzzle", "file", args[0], "tubes", len(centers))
			if err := s.Census(); err != nil {
				a.log.Warn("scanned puzzle cannot be solved", "err", err)
			}

			name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			if out != "" {
				return puzzlefile.Save(out, name, s)
			}
			grid, err := render.Grid(s, render.WithProfile(colorProfile(cmd)))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.ErrOrStderr(), grid)
			return puzzlefile.Encode(cmd.OutOrStdout(), puzzlefile.YAML, name, s)
		},
	}
	cmd.Flags().StringVar(&full, "full", "", "picture of a full tube (required)")
	cmd.Flags().StringVar(&empty, "empty", "", "picture of an empty tube (required)")
	cmd.Flags().StringVar(&out, "out", "", "write the puzzle to this file instead of stdout")
	cmd.Flags().BoolVar(&palette, "palette", false, "snap sampled colors to the known palette")
	_ = cmd.MarkFlagRequired("full")
	_ = cmd.MarkFlagRequired("empty")
	return cmd
}

func scanOptions(a *app) []scan.Option {
	c := a.cfg.Scan
	opts := []scan.Option{
		scan.WithScale(c.Scale),
		scan.WithThreshold(uint8(c.Threshold)),
		scan.WithRadius(c.Radius),
		scan.WithGrayTolerance(c.GrayTolerance),
		scan.WithLogger(a.log),
	}
	if c.Palette {
		opts = append(opts, scan.WithPalette(c.PaletteTolerance))
	}
	return opts
}

