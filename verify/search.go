package verify

import (
	"fmt"

	"github.com/katalvlaran/tubesort/liquid"
)

// dfsWalker encapsulates state during one bounded search.
type dfsWalker struct {
	opts Options
	best map[string]int // state key → largest budget already searched
}

// SolvableWithin reports whether some sequence of at most maxMoves legal
// pours turns initial into a solved state. The search is exhaustive: a
// false answer means no such sequence exists.
func SolvableWithin(initial liquid.State, maxMoves int, opts ...Option) (bool, error) {
	if maxMoves < 0 {
		return false, fmt.Errorf("%w: %d", ErrNegativeBudget, maxMoves)
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	w := &dfsWalker{opts: o, best: make(map[string]int)}
	return w.search(initial, 0, maxMoves)
}

// MinMoves returns the length of the shortest solving sequence of at most
// limit pours, deepening the bound one pour at a time. found is false when
// no sequence within limit exists.
func MinMoves(initial liquid.State, limit int, opts ...Option) (moves int, found bool, err error) {
	if limit < 0 {
		return 0, false, fmt.Errorf("%w: %d", ErrNegativeBudget, limit)
	}
	for k := 0; k <= limit; k++ {
		ok, err := SolvableWithin(initial, k, opts...)
		if err != nil {
			return 0, false, err
		}
		if ok {
			return k, true, nil
		}
	}
	return 0, false, nil
}

// search explores s with budget pours left.
func (w *dfsWalker) search(s liquid.State, depth, budget int) (bool, error) {
	// 1. Cancellation check
	select {
	case <-w.opts.Ctx.Done():
		return false, w.opts.Ctx.Err()
	default:
	}

	// 2. Goal and budget
	if s.IsSolved() {
		return true, nil
	}
	if budget == 0 {
		return false, nil
	}

	// 3. Transposition: skip if already searched with at least this budget
	key := s.Key()
	if prev, ok := w.best[key]; ok && prev >= budget {
		return false, nil
	}
	w.best[key] = budget

	// 4. Pre-order hook
	if w.opts.OnVisit != nil {
		if err := w.opts.OnVisit(s, depth); err != nil {
			return false, fmt.Errorf("verify: OnVisit hook at depth %d: %w", depth, err)
		}
	}

	// 5. Explore each pour
	for _, m := range liquid.Neighbors(s) {
		found, err := w.search(m.State, depth+1, budget-1)
		if err != nil || found {
			return found, err
		}
	}
	return false, nil
}
