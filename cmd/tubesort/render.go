package main

import (
	"fmt"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/tubesort/puzzlefile"
	"github.com/katalvlaran/tubesort/render"
)

func newRenderCmd(a *app) *cobra.Command {
	var noIndex bool
	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Draw a puzzle file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, s, err := puzzlefile.Load(args[0])
			if err != nil {
				return err
			}
			if err := s.Census(); err != nil {
				a.log.Warn("puzzle cannot be solved", "file", args[0], "err", err)
			}
			out := cmd.OutOrStdout()
			grid, err := render.Grid(s, render.WithProfile(colorProfile(cmd)), render.WithIndex(!noIndex))
			if err != nil {
				return err
			}
			if doc.Name != "" {
				fmt.Fprintln(out, doc.Name)
			}
			fmt.Fprint(out, grid)
			return nil
		},
	}
	cmd.Flags().BoolVar(&noIndex, "no-index", false, "omit the tube index row")
	return cmd
}

// colorProfile detects what the command's output supports; pipes and
// buffers get plain text.
func colorProfile(cmd *cobra.Command) termenv.Profile {
	return termenv.NewOutput(cmd.OutOrStdout()).Profile
}
