package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/tubesort/cache"
	"github.com/katalvlaran/tubesort/internal/config"
	"github.com/katalvlaran/tubesort/liquid"
	"github.com/katalvlaran/tubesort/metrics"
	"github.com/katalvlaran/tubesort/puzzlefile"
	"github.com/katalvlaran/tubesort/render"
	"github.com/katalvlaran/tubesort/solver"
)

type solveFlags struct {
	jobs        int
	maxStates   int
	maxDepth    int
	timeout     time.Duration
	cache       string
	output      string
	steps       bool
	metricsAddr string
}

// solved is the outcome for one input file.
type solved struct {
	path string
	name string
	res  *solver.Result
	hit  bool
	dur  time.Duration
	// initial is kept for --steps
	initial liquid.State
}

func newSolveCmd(a *app) *cobra.Command {
	f := &solveFlags{}
	cmd := &cobra.Command{
		Use:   "solve FILE...",
		Short: "Find the shortest solution of each puzzle",
		Long: `Solves every puzzle file in parallel and prints the pours, one per line.
Exits with status 2 when any puzzle has no solution.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applySolveFlags(cmd, f, &a.cfg)
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			return a.solve(cmd, args, f)
		},
	}
	cmd.Flags().IntVarP(&f.jobs, "jobs", "j", 0, "puzzles solved in parallel (default from config)")
	cmd.Flags().IntVar(&f.maxStates, "max-states", 0, "abort a search after this many distinct states (0 = unlimited)")
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", 0, "give up on solutions longer than this (0 = unlimited)")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "per-puzzle time limit (0 = none)")
	cmd.Flags().StringVar(&f.cache, "cache", "", "solution cache: none, memory, badger or redis")
	cmd.Flags().StringVarP(&f.output, "output", "o", "text", "output format: text, yaml or json")
	cmd.Flags().BoolVar(&f.steps, "steps", false, "draw the tubes after every pour (text output)")
	cmd.Flags().StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address until interrupted")
	return cmd
}

// applySolveFlags copies explicitly set flags over the loaded config.
func applySolveFlags(cmd *cobra.Command, f *solveFlags, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("jobs") {
		cfg.Solver.Jobs = f.jobs
	}
	if flags.Changed("max-states") {
		cfg.Solver.MaxStates = f.maxStates
	}
	if flags.Changed("max-depth") {
		cfg.Solver.MaxDepth = f.maxDepth
	}
	if flags.Changed("timeout") {
		cfg.Solver.Timeout = config.Duration(f.timeout)
	}
	if flags.Changed("cache") {
		cfg.Cache.Backend = f.cache
	}
	if flags.Changed("metrics-addr") {
		cfg.Metrics.Addr = f.metricsAddr
	}
}

func (a *app) solve(cmd *cobra.Command, paths []string, f *solveFlags) error {
	switch f.output {
	case "text", "yaml", "json":
	default:
		return fmt.Errorf("unknown output format %q", f.output)
	}

	type input struct {
		name  string
		state liquid.State
	}
	inputs := make([]input, len(paths))
	for i, p := range paths {
		doc, s, err := puzzlefile.Load(p)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		if err := s.Census(); err != nil {
			a.log.Warn("puzzle cannot be solved", "file", p, "err", err)
		}
		inputs[i] = input{name: doc.Name, state: s}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var collector *metrics.Collector
	var registry *prometheus.Registry
	if a.cfg.Metrics.Addr != "" {
		registry = prometheus.NewRegistry()
		collector = metrics.New(registry)
	}

	store, err := openStore(a.cfg.Cache, a)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}
	cached := &cache.Solver{Store: store, Metrics: collector, Logger: a.log}

	opts := []solver.Option{
		solver.WithMaxStates(a.cfg.Solver.MaxStates),
		solver.WithMaxDepth(a.cfg.Solver.MaxDepth),
		solver.WithLogger(a.log),
	}

	results := make([]solved, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Solver.Jobs)
	for i, in := range inputs {
		g.Go(func() error {
			pctx := gctx
			if t := a.cfg.Solver.Timeout.Std(); t > 0 {
				var cancel context.CancelFunc
				pctx, cancel = context.WithTimeout(gctx, t)
				defer cancel()
			}
			start := time.Now()
			var res *solver.Result
			var hit bool
			var err error
			if store != nil {
				res, hit, err = cached.Solve(pctx, in.state, opts...)
			} else {
				res, err = solver.Solve(in.state, append([]solver.Option{solver.WithContext(pctx)}, opts...)...)
				collector.ObserveSolve(res, time.Since(start), err)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", paths[i], err)
			}
			results[i] = solved{path: paths[i], name: in.name, res: res, hit: hit, dur: time.Since(start), initial: in.state}
			a.log.Debug("puzzle done", "file", paths[i], "solved", res.Solved, "cached", hit)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := a.writeResults(cmd, results, f); err != nil {
		return err
	}

	if registry != nil {
		if err := serveMetrics(ctx, a, registry); err != nil {
			return err
		}
	}

	var failed []string
	for _, r := range results {
		if !r.res.Solved {
			failed = append(failed, r.path)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("%w: %s", errUnsolvable, strings.Join(failed, ", "))
	}
	return nil
}

func (a *app) writeResults(cmd *cobra.Command, results []solved, f *solveFlags) error {
	out := cmd.OutOrStdout()
	for i, r := range results {
		switch f.output {
		case "yaml":
			if len(results) > 1 {
				fmt.Fprintln(out, "---")
			}
			if err := puzzlefile.EncodeSolution(out, puzzlefile.YAML, puzzlefile.NewSolution(r.name, r.res)); err != nil {
				return err
			}
		case "json":
			if err := puzzlefile.EncodeSolution(out, puzzlefile.JSON, puzzlefile.NewSolution(r.name, r.res)); err != nil {
				return err
			}
		default:
			if i > 0 {
				fmt.Fprintln(out)
			}
			if err := writeText(cmd, out, r, f.steps); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeText(cmd *cobra.Command, out io.Writer, r solved, steps bool) error {
	if !r.res.Solved {
		fmt.Fprintf(out, "%s: no solution (%d states explored)\n", r.path, r.res.Explored)
		return nil
	}
	source := "searched"
	if r.hit {
		source = "cached"
	}
	fmt.Fprintf(out, "%s: %d moves (%d states, %s, %s)\n", r.path, r.res.Moves(), r.res.Explored, source, r.dur.Round(time.Millisecond))
	if !steps {
		fmt.Fprint(out, render.Moves(r.res.Actions))
		return nil
	}
	drawn, err := render.Steps(r.initial, r.res.Actions, render.WithProfile(colorProfile(cmd)))
	if err != nil {
		return err
	}
	fmt.Fprint(out, drawn)
	return nil
}

// openStore builds the configured cache backend; "none" returns nil.
func openStore(cfg config.CacheConfig, a *app) (cache.Store, error) {
	switch cfg.Backend {
	case "memory":
		return cache.NewMemoryStore(), nil
	case "badger":
		return cache.NewBadgerStore(cache.BadgerConfig{
			Path:   cfg.Path,
			TTL:    cfg.TTL.Std(),
			Logger: a.log.With("component", "badger"),
		})
	case "redis":
		return cache.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			cache.WithPrefix(cfg.Prefix), cache.WithTTL(cfg.TTL.Std())), nil
	default:
		return nil, nil
	}
}

// serveMetrics exposes the registry until ctx is cancelled.
func serveMetrics(ctx context.Context, a *app, reg *prometheus.Registry) error {
	ln, err := net.Listen("tcp", a.cfg.Metrics.Addr)
	if err != nil {
		return fmt.Errorf("metrics listener: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Serve(ln)
	}()
	a.log.Info("serving metrics, interrupt to exit", "addr", ln.Addr().String())

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
