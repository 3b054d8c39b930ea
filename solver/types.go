package solver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/tubesort/liquid"
)

// Sentinel errors for solver execution.
var (
	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("solver: invalid option supplied")

	// ErrStateLimit is returned when the explored set outgrows MaxStates.
	ErrStateLimit = errors.New("solver: explored state limit reached")
)

// Option configures Solve via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds parameters and callbacks to customize a search.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnEnqueue is called when a state joins the frontier.
	OnEnqueue func(s liquid.State, depth int)

	// OnDequeue is called when a state leaves the frontier.
	OnDequeue func(s liquid.State, depth int)

	// OnVisit is called for every dequeued state before the solved check.
	// Returning an error aborts the search.
	OnVisit func(s liquid.State, depth int) error

	// MaxDepth, if > 0, keeps states deeper than this many pours out of
	// the frontier.
	MaxDepth int

	// MaxStates, if > 0, caps the explored set.
	MaxStates int

	// Logger receives progress records. Defaults to a discarding logger.
	Logger *slog.Logger

	err error
}

// DefaultOptions returns Options with a background context, no limits,
// no-op hooks and a discarding logger.
func DefaultOptions() Options {
	return Options{
		Ctx:       context.Background(),
		OnEnqueue: func(liquid.State, int) {},
		OnDequeue: func(liquid.State, int) {},
		OnVisit:   func(liquid.State, int) error { return nil },
		Logger:    slog.New(slog.DiscardHandler),
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnEnqueue registers a callback to run on enqueue.
func WithOnEnqueue(fn func(s liquid.State, depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnEnqueue = fn
		}
	}
}

// WithOnDequeue registers a callback to run on dequeue.
func WithOnDequeue(fn func(s liquid.State, depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnDequeue = fn
		}
	}
}

// WithOnVisit registers a callback to run on visit; an error stops the search.
func WithOnVisit(fn func(s liquid.State, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth limits the search to d pours.
//
//	d > 0: limit to depth d
//	d == 0: explicit no depth limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithMaxStates caps the explored set at n states (0 = no cap).
func WithMaxStates(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxStates cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxStates = n
	}
}

// WithLogger routes progress records to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// Result holds the outcome of a search.
//   - Solved:   whether a solved state was reached.
//   - Actions:  the pours, in order; empty when already solved, nil when unsolved.
//   - Final:    the solved state, or the initial state when unsolved.
//   - Explored: number of distinct states ever enqueued.
//   - Expanded: number of states popped from the frontier.
type Result struct {
	Solved   bool
	Actions  []liquid.Action
	Final    liquid.State
	Explored int
	Expanded int
}

// Moves returns the number of pours in the solution.
func (r *Result) Moves() int { return len(r.Actions) }

// Path replays Actions from initial and returns every state along the way,
// initial first. It fails when an action is illegal on the replayed state;
// it does not check that initial is the state the Result came from.
func (r *Result) Path(initial liquid.State) ([]liquid.State, error) {
	path := make([]liquid.State, 0, len(r.Actions)+1)
	path = append(path, initial)
	cur := initial
	for i, a := range r.Actions {
		next, err := liquid.Apply(cur, a)
		if err != nil {
			return nil, fmt.Errorf("solver: step %d: %w", i, err)
		}
		path = append(path, next)
		cur = next
	}
	return path, nil
}
