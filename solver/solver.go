package solver

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/tubesort/liquid"
)

var tracer = otel.Tracer("github.com/katalvlaran/tubesort/solver")

// node is one frontier entry: a state, the pour that produced it and a
// link to the state it was poured from. The root has no parent.
type node struct {
	state  liquid.State
	parent *node
	action liquid.Action
	depth  int
}

// walker encapsulates mutable search state.
type walker struct {
	opts     Options
	ctx      context.Context
	log      *slog.Logger
	queue    []*node
	explored map[string]struct{}
	expanded int
	maxDepth int // deepest depth dequeued so far, for progress logging
}

// Solve runs breadth-first search from initial, applying any number of
// functional Options. It returns ErrOptionViolation for bad options,
// ErrStateLimit when MaxStates is exceeded, the context error on
// cancellation, or a wrapped OnVisit error. Exhausting the frontier is not
// an error: the Result then reports Solved == false.
func Solve(initial liquid.State, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	ctx, span := tracer.Start(o.Ctx, "solver.Solve",
		trace.WithAttributes(attribute.Int("tubesort.tubes", initial.Len())))
	defer span.End()

	w := &walker{
		opts:     o,
		ctx:      ctx,
		log:      o.Logger,
		queue:    make([]*node, 0, 64),
		explored: make(map[string]struct{}, 1024),
	}
	w.markExplored(initial)
	w.enqueue(&node{state: initial})

	res, err := w.loop(initial)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		w.log.Warn("solve aborted", "explored", len(w.explored), "expanded", w.expanded, "error", err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Bool("tubesort.solved", res.Solved),
		attribute.Int("tubesort.moves", res.Moves()),
		attribute.Int("tubesort.explored", res.Explored),
	)
	w.log.Info("solve finished",
		"solved", res.Solved,
		"moves", res.Moves(),
		"explored", res.Explored,
		"expanded", res.Expanded,
	)
	return res, nil
}

// loop processes the frontier until a solved state, exhaustion, error or
// cancellation.
func (w *walker) loop(initial liquid.State) (*Result, error) {
	for len(w.queue) > 0 {
		// cancellation check (once per pop)
		select {
		case <-w.ctx.Done():
			return nil, w.ctx.Err()
		default:
		}

		n := w.dequeue()
		if err := w.visit(n); err != nil {
			return nil, err
		}
		if n.state.IsSolved() {
			return w.solved(n), nil
		}
		if err := w.enqueueNeighbors(n); err != nil {
			return nil, err
		}
	}

	return &Result{
		Solved:   false,
		Final:    initial,
		Explored: len(w.explored),
		Expanded: w.expanded,
	}, nil
}

func (w *walker) markExplored(s liquid.State) {
	w.explored[s.Key()] = struct{}{}
}

// enqueue calls OnEnqueue and appends n to the frontier.
func (w *walker) enqueue(n *node) {
	w.opts.OnEnqueue(n.state, n.depth)
	w.queue = append(w.queue, n)
}

// dequeue pops the head, invokes OnDequeue, and returns it.
func (w *walker) dequeue() *node {
	n := w.queue[0]
	w.queue[0] = nil
	w.queue = w.queue[1:]
	w.expanded++
	w.opts.OnDequeue(n.state, n.depth)
	if n.depth > w.maxDepth {
		w.maxDepth = n.depth
		w.log.Debug("frontier advanced", "depth", n.depth, "explored", len(w.explored), "frontier", len(w.queue))
	}
	return n
}

// visit calls OnVisit.
func (w *walker) visit(n *node) error {
	if err := w.opts.OnVisit(n.state, n.depth); err != nil {
		return fmt.Errorf("solver: OnVisit error at depth %d: %w", n.depth, err)
	}
	return nil
}

// enqueueNeighbors applies MaxDepth and MaxStates and enqueues every
// neighbor not seen before.
func (w *walker) enqueueNeighbors(n *node) error {
	nextDepth := n.depth + 1
	if w.opts.MaxDepth > 0 && nextDepth > w.opts.MaxDepth {
		return nil
	}
	for _, m := range liquid.Neighbors(n.state) {
		key := m.State.Key()
		if _, seen := w.explored[key]; seen {
			continue
		}
		if w.opts.MaxStates > 0 && len(w.explored) >= w.opts.MaxStates {
			return fmt.Errorf("%w: %d states", ErrStateLimit, len(w.explored))
		}
		w.explored[key] = struct{}{}
		w.enqueue(&node{state: m.State, parent: n, action: m.Action, depth: nextDepth})
	}
	return nil
}

// solved rebuilds the action path of n by walking parent links.
func (w *walker) solved(n *node) *Result {
	actions := make([]liquid.Action, 0, n.depth)
	for cur := n; cur.parent != nil; cur = cur.parent {
		actions = append(actions, cur.action)
	}
	slices.Reverse(actions)
	return &Result{
		Solved:   true,
		Actions:  actions,
		Final:    n.state,
		Explored: len(w.explored),
		Expanded: w.expanded,
	}
}
