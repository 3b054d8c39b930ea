// Package solver finds a shortest pour sequence for a liquid.State with a
// breadth-first search over the implicit transfer graph.
//
// What
//
//   - Nodes are liquid.State values, edges are legal single pours produced
//     by liquid.Neighbors.
//   - A FIFO frontier holds nodes with a parent link and the Action that
//     reached them; the explored set holds the Key of every state ever
//     enqueued, the initial state included.
//   - The first solved state popped ends the search; its Actions are
//     rebuilt by walking parent links back to the root.
//
// Outcomes
//
//   - Solved == true, len(Actions) == 0   the initial state was already solved.
//   - Solved == true, len(Actions) == k   k is the minimum number of pours.
//   - Solved == false, Actions == nil     the reachable graph holds no solved
//     state (within MaxDepth, when set). Final is the initial state.
//
// An unsolvable puzzle is a Result, not an error.
//
// Determinism
//
//	Neighbors are enqueued send index ascending, then receive index
//	ascending, so among equally short solutions the first one in that order
//	is returned on every run.
//
// Complexity (S = reachable states, n = tubes)
//
//   - Time:   O(S · n²) transfers, plus one Key per generated neighbor.
//   - Memory: O(S) for the explored set and parent links.
//
// Usage
//
//	res, err := solver.Solve(initial,
//	    solver.WithContext(ctx),
//	    solver.WithMaxStates(1_000_000),
//	    solver.WithLogger(logger),
//	)
//	if err != nil {
//	    // ErrOptionViolation, ErrStateLimit, ctx.Err() or a hook error
//	}
//	if !res.Solved {
//	    // no sequence of pours sorts this puzzle
//	}
//
// Options
//
//   - WithContext(ctx):   cancellation, checked once per frontier pop.
//   - WithMaxDepth(d):    do not enqueue states deeper than d pours (0 = no limit).
//   - WithMaxStates(n):   abort with ErrStateLimit past n explored states (0 = no limit).
//   - WithOnEnqueue(fn), WithOnDequeue(fn), WithOnVisit(fn): search hooks;
//     an OnVisit error aborts the search.
//   - WithLogger(l):      slog logger for depth progress and a summary line.
//
// Every Solve runs in an OpenTelemetry span named "solver.Solve" taken from
// the global tracer provider.
package solver
