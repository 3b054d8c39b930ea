package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/katalvlaran/tubesort/liquid"
	"github.com/katalvlaran/tubesort/metrics"
	"github.com/katalvlaran/tubesort/solver"
	"github.com/katalvlaran/tubesort/verify"
)

// Solver memoizes solver.Solve in a Store. Metrics and Logger are optional.
// Concurrent misses for the same puzzle and limits share one search; the
// hooks and context of the caller that started it apply. A Solver must not
// be copied after first use.
type Solver struct {
	Store   Store
	Metrics *metrics.Collector
	Logger  *slog.Logger

	flight singleflight.Group
}

// Solve returns the cached result for s when one replays correctly, and
// otherwise searches and stores the outcome. hit reports whether the
// result came from the store. ctx is passed to the search ahead of opts.
func (c *Solver) Solve(ctx context.Context, s liquid.State, opts ...solver.Option) (res *solver.Result, hit bool, err error) {
	log := c.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	key := Key(s)
	opts = append([]solver.Option{solver.WithContext(ctx)}, opts...)
	o := resolve(opts)

	if res, ok := c.lookup(ctx, log, key, s); ok {
		return withinDepth(res, s, o.MaxDepth), true, nil
	}

	flightKey := fmt.Sprintf("%s/%d/%d", key, o.MaxDepth, o.MaxStates)
	v, err, shared := c.flight.Do(flightKey, func() (any, error) {
		return c.search(ctx, log, key, s, o, opts)
	})
	if err != nil {
		return nil, false, err
	}
	res = v.(*solver.Result)
	if shared {
		log.Debug("joined in-flight search", "key", key)
		cp := *res
		cp.Actions = slices.Clone(res.Actions)
		res = &cp
	}
	return res, false, nil
}

// search runs the solver and stores a cacheable outcome.
func (c *Solver) search(ctx context.Context, log *slog.Logger, key string, s liquid.State, o solver.Options, opts []solver.Option) (*solver.Result, error) {
	start := time.Now()
	res, err := solver.Solve(s, opts...)
	c.Metrics.ObserveSolve(res, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if !res.Solved && o.MaxDepth > 0 {
		log.Debug("depth-limited failure not cached", "key", key)
		return res, nil
	}
	entry := Entry{Solved: res.Solved, Actions: res.Actions, Explored: res.Explored}
	if err := c.Store.Save(ctx, key, entry); err != nil {
		log.Warn("failed to store solution", "key", key, "err", err)
	}
	return res, nil
}

// lookup loads and validates the entry for key.
func (c *Solver) lookup(ctx context.Context, log *slog.Logger, key string, s liquid.State) (*solver.Result, bool) {
	entry, err := c.Store.Load(ctx, key)
	switch {
	case errors.Is(err, ErrNotFound):
		c.Metrics.ObserveCacheLookup(metrics.LookupMiss)
		return nil, false
	case err != nil:
		c.Metrics.ObserveCacheLookup(metrics.LookupMiss)
		log.Warn("cache lookup failed", "key", key, "err", err)
		return nil, false
	}

	res, err := rebuild(s, entry)
	if err != nil {
		c.Metrics.ObserveCacheLookup(metrics.LookupCorrupt)
		log.Warn("discarding corrupt cache entry", "key", key, "err", err)
		if err := c.Store.Delete(ctx, key); err != nil {
			log.Warn("failed to delete corrupt entry", "key", key, "err", err)
		}
		return nil, false
	}
	c.Metrics.ObserveCacheLookup(metrics.LookupHit)
	log.Debug("cache hit", "key", key, "moves", res.Moves())
	return res, true
}

// rebuild replays entry from s and checks it against its recorded outcome.
func rebuild(s liquid.State, entry Entry) (*solver.Result, error) {
	res := &solver.Result{
		Solved:   entry.Solved,
		Actions:  entry.Actions,
		Explored: entry.Explored,
	}
	final, err := verify.Replay(s, entry.Actions)
	if err != nil {
		return nil, err
	}
	res.Final = final
	if err := verify.Check(s, res); err != nil {
		return nil, fmt.Errorf("entry does not match its outcome: %w", err)
	}
	if !res.Solved && final.IsSolved() {
		return nil, errors.New("entry marks a solved puzzle unsolvable")
	}
	return res, nil
}

// withinDepth reports a stored solution longer than maxDepth pours as
// unsolved. Stored solutions are shortest, so none fits the limit.
func withinDepth(res *solver.Result, s liquid.State, maxDepth int) *solver.Result {
	if maxDepth <= 0 || !res.Solved || res.Moves() <= maxDepth {
		return res
	}
	return &solver.Result{Solved: false, Final: s, Explored: res.Explored}
}

// resolve applies opts to the solver defaults.
func resolve(opts []solver.Option) solver.Options {
	o := solver.DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
