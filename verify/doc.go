// Package verify checks pour sequences independently of the solver.
//
// Replay and Check re-run a sequence of Actions through liquid.Apply.
// SolvableWithin answers "is there any solving sequence of at most k
// pours?" with an exhaustive depth-limited depth-first search, and
// MinMoves deepens that bound one pour at a time. Together they confirm
// that a breadth-first answer of k pours is optimal: SolvableWithin(k-1)
// must be false.
//
// The depth-first search keeps a transposition map from state Key to the
// largest remaining budget already searched from that state, so a state is
// only re-entered with strictly more pours left.
//
// Errors:
//
//   - ErrIllegalAction   a replayed Action is out of range or forbidden.
//   - ErrFinalMismatch   replay ends somewhere other than Result.Final.
//   - ErrNotSolved       a Result claims success but its Final is unsolved.
//   - ErrNegativeBudget  a negative move budget was requested.
//   - context errors     from WithContext.
//   - any error returned by OnVisit, wrapped.
package verify
