package verify

import (
	"fmt"

	"github.com/katalvlaran/tubesort/liquid"
	"github.com/katalvlaran/tubesort/solver"
)

// Replay applies actions to initial in order and returns the final state.
func Replay(initial liquid.State, actions []liquid.Action) (liquid.State, error) {
	cur := initial
	for i, a := range actions {
		next, err := liquid.Apply(cur, a)
		if err != nil {
			return initial, fmt.Errorf("%w: step %d: %v", ErrIllegalAction, i, err)
		}
		cur = next
	}
	return cur, nil
}

// Check replays res from initial and confirms it ends at res.Final, that a
// solved Result really is solved, and that an unsolved one carries no pours.
func Check(initial liquid.State, res *solver.Result) error {
	final, err := Replay(initial, res.Actions)
	if err != nil {
		return err
	}
	if !final.Equal(res.Final) {
		return fmt.Errorf("%w: replay gives %v, result has %v", ErrFinalMismatch, final, res.Final)
	}
	if res.Solved && !final.IsSolved() {
		return fmt.Errorf("%w: %v", ErrNotSolved, final)
	}
	if !res.Solved && len(res.Actions) > 0 {
		return fmt.Errorf("%w: unsolved result carries %d actions", ErrFinalMismatch, len(res.Actions))
	}
	return nil
}
