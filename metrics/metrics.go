// Package metrics exposes Prometheus instruments for solving and caching.
//
// A Collector is registered once against a prometheus.Registerer; a nil
// *Collector is valid and records nothing, so library callers can leave
// metrics unconfigured.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/tubesort/solver"
)

const namespace = "tubesort"

// Solve outcomes.
const (
	OutcomeSolved     = "solved"
	OutcomeUnsolvable = "unsolvable"
	OutcomeError      = "error"
	OutcomeLimit      = "limit"
)

// Cache lookup results.
const (
	LookupHit     = "hit"
	LookupMiss    = "miss"
	LookupCorrupt = "corrupt"
)

// Collector holds every tubesort instrument.
type Collector struct {
	// SolvesTotal counts searches by outcome.
	SolvesTotal *prometheus.CounterVec
	// SolveDuration measures wall time of completed searches.
	SolveDuration prometheus.Histogram
	// StatesExplored tracks how many distinct states a search discovered.
	StatesExplored prometheus.Histogram
	// SolutionMoves tracks the length of found solutions.
	SolutionMoves prometheus.Histogram
	// CacheLookups counts cache lookups by result.
	CacheLookups *prometheus.CounterVec
}

// New creates and registers the instruments on reg.
func New(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		SolvesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Total puzzle searches by outcome",
		}, []string{"outcome"}),
		SolveDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Puzzle search duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}),
		StatesExplored: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "states_explored",
			Help:      "Distinct states discovered per search",
			Buckets:   prometheus.ExponentialBuckets(10, 4, 10),
		}),
		SolutionMoves: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solution_moves",
			Help:      "Number of pours in found solutions",
			Buckets:   prometheus.LinearBuckets(0, 5, 12),
		}),
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Solution cache lookups by result",
		}, []string{"result"}),
	}
}

// ObserveSolve records one search. res may be nil when err is set.
func (c *Collector) ObserveSolve(res *solver.Result, dur time.Duration, err error) {
	if c == nil {
		return
	}
	switch {
	case errors.Is(err, solver.ErrStateLimit):
		c.SolvesTotal.WithLabelValues(OutcomeLimit).Inc()
		return
	case err != nil:
		c.SolvesTotal.WithLabelValues(OutcomeError).Inc()
		return
	}
	c.SolveDuration.Observe(dur.Seconds())
	c.StatesExplored.Observe(float64(res.Explored))
	if !res.Solved {
		c.SolvesTotal.WithLabelValues(OutcomeUnsolvable).Inc()
		return
	}
	c.SolvesTotal.WithLabelValues(OutcomeSolved).Inc()
	c.SolutionMoves.Observe(float64(res.Moves()))
}

// ObserveCacheLookup records one lookup result (LookupHit, LookupMiss or
// LookupCorrupt).
func (c *Collector) ObserveCacheLookup(result string) {
	if c == nil {
		return
	}
	c.CacheLookups.WithLabelValues(result).Inc()
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
