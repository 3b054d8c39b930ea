package verify

import (
	"context"
	"errors"

	"github.com/katalvlaran/tubesort/liquid"
)

var (
	// ErrIllegalAction wraps the step index of an action Replay could not apply.
	ErrIllegalAction = errors.New("verify: illegal action")

	// ErrFinalMismatch is returned when a replay does not end at Result.Final.
	ErrFinalMismatch = errors.New("verify: final state mismatch")

	// ErrNotSolved is returned when a Result claims success on an unsolved state.
	ErrNotSolved = errors.New("verify: final state is not solved")

	// ErrNegativeBudget is returned for a negative move budget.
	ErrNegativeBudget = errors.New("verify: negative move budget")
)

// Option configures the exhaustive searches.
type Option func(*Options)

// Options holds configurable parameters for SolvableWithin and MinMoves.
type Options struct {
	// Ctx allows cancellation or timeouts; defaults to context.Background().
	Ctx context.Context

	// OnVisit, if non-nil, is invoked for each unsolved state expanded with
	// a positive budget, with the number of pours taken to reach it. Solved
	// states, exhausted budgets and states already searched with at least
	// the same budget are skipped. Returning an error aborts.
	OnVisit func(s liquid.State, depth int) error
}

// DefaultOptions returns Options with a background context and no hook.
func DefaultOptions() Options {
	return Options{Ctx: context.Background()}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit registers a pre-order hook.
func WithOnVisit(fn func(s liquid.State, depth int) error) Option {
	return func(o *Options) {
		o.OnVisit = fn
	}
}
