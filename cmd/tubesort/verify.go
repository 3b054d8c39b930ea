package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tubesort/puzzlefile"
	"github.com/katalvlaran/tubesort/verify"
)

func newVerifyCmd(a *app) *cobra.Command {
	var moves int
	var solution string
	var minimum bool
	cmd := &cobra.Command{
		Use:   "verify FILE",
		Short: "Check a puzzle's move bound or a saved solution",
		Long: `With --moves K, exhaustively decides whether FILE can be solved in at most
K pours; --min also reports the exact minimum. With --solution, replays a
saved solution against FILE. Exits with status 2 when the answer is no.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := puzzlefile.Load(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			ctx := cmd.Context()

			if solution != "" {
				doc, err := puzzlefile.LoadSolution(solution)
				if err != nil {
					return err
				}
				res, err := doc.Result()
				if err != nil {
					return err
				}
				if err := verify.Check(s, res); err != nil {
					return fmt.Errorf("%s: %w", solution, err)
				}
				fmt.Fprintf(out, "%s: valid, %d moves, solved=%t\n", solution, res.Moves(), res.Solved)
				if !res.Solved {
					return fmt.Errorf("%w: %s", errUnsolvable, args[0])
				}
				return nil
			}

			if !cmd.Flags().Changed("moves") {
				return fmt.Errorf("one of --moves or --solution is required")
			}
			if minimum {
				n, found, err := verify.MinMoves(s, moves, verify.WithContext(ctx))
				if err != nil {
					return err
				}
				if !found {
					fmt.Fprintf(out, "%s: no solution within %d moves\n", args[0], moves)
					return fmt.Errorf("%w within %d moves: %s", errUnsolvable, moves, args[0])
				}
				fmt.Fprintf(out, "%s: minimum %d moves\n", args[0], n)
				return nil
			}
			ok, err := verify.SolvableWithin(s, moves, verify.WithContext(ctx))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(out, "%s: no solution within %d moves\n", args[0], moves)
				return fmt.Errorf("%w within %d moves: %s", errUnsolvable, moves, args[0])
			}
			fmt.Fprintf(out, "%s: solvable within %d moves\n", args[0], moves)
			a.log.Debug("bound verified", "file", args[0], "moves", moves)
			return nil
		},
	}
	cmd.Flags().IntVarP(&moves, "moves", "k", 0, "move bound to check")
	cmd.Flags().BoolVar(&minimum, "min", false, "report the minimum number of moves up to --moves")
	cmd.Flags().StringVar(&solution, "solution", "", "solution file to replay")
	return cmd
}
