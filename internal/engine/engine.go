// Package engine coordinates per-ticker RS computation across the universe
// and runs the single cross-sectional ranking pass.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"RSRank/internal/calculator"
	"RSRank/internal/model"
	"RSRank/internal/provider"
	"RSRank/internal/ranker"
)

// ErrBenchmarkUnavailable means the benchmark series could not be obtained
// or is unusable. Fatal: no per-ticker ranking is meaningful without a
// common benchmark.
var ErrBenchmarkUnavailable = errors.New("benchmark data unavailable")

// Engine runs one ranking over a ticker universe.
type Engine struct {
	store       *provider.Store
	calc        *calculator.Calculator
	benchmark   string
	minHistory  int
	concurrency int
}

// New creates an Engine. concurrency bounds the worker pool.
func New(store *provider.Store, calc *calculator.Calculator, benchmark string, minHistory, concurrency int) *Engine {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Engine{
		store:       store,
		calc:        calc,
		benchmark:   benchmark,
		minHistory:  minHistory,
		concurrency: concurrency,
	}
}

type outcome struct {
	ticker string
	result model.WeightedRSResult
	err    error
}

// Run computes weighted RS for every ticker in the universe, then ranks the
// successful results. Per-ticker failures are collected, never fatal; a
// benchmark failure aborts the run. The ranker is invoked exactly once,
// after every ticker has resolved.
func (e *Engine) Run(ctx context.Context, universe []string) ([]model.RankedEntry, []model.Failure, error) {
	bench, err := e.store.Get(ctx, e.benchmark)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBenchmarkUnavailable, err)
	}
	if bench.Len() < e.minHistory {
		return nil, nil, fmt.Errorf("%w: %d sessions, need %d", ErrBenchmarkUnavailable, bench.Len(), e.minHistory)
	}

	log.Printf("[INFO] ranking %d tickers against %s (%d sessions)", len(universe), e.benchmark, bench.Len())

	jobs := make(chan string)
	out := make(chan outcome)

	var wg sync.WaitGroup
	for i := 0; i < e.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ticker := range jobs {
				res, err := e.evaluate(ctx, ticker, bench)
				out <- outcome{ticker: ticker, result: res, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, ticker := range universe {
			select {
			case <-ctx.Done():
				return // stop dispatching, let in-flight work drain
			case jobs <- ticker:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	var results []model.WeightedRSResult
	var failures []model.Failure
	for o := range out {
		if o.err != nil {
			log.Printf("[WARN] %s excluded: %v", o.ticker, o.err)
			failures = append(failures, model.Failure{Ticker: o.ticker, Reason: failureReason(o.err)})
			continue
		}
		results = append(results, o.result)
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	sort.Slice(failures, func(i, j int) bool { return failures[i].Ticker < failures[j].Ticker })

	entries := ranker.Rank(results)
	e.applyWeekAgoScores(ctx, entries, bench)
	e.applyIndicators(ctx, entries, bench)

	log.Printf("[INFO] ranking complete: %d ranked, %d excluded", len(entries), len(failures))
	return entries, failures, nil
}

func (e *Engine) evaluate(ctx context.Context, ticker string, bench *model.PriceSeries) (model.WeightedRSResult, error) {
	series, err := e.store.Get(ctx, ticker)
	if err != nil {
		return model.WeightedRSResult{}, err
	}
	if series.Len() < e.minHistory {
		return model.WeightedRSResult{}, fmt.Errorf("%s: %d of %d sessions: %w",
			ticker, series.Len(), e.minHistory, calculator.ErrInsufficientHistory)
	}
	return e.calc.Compute(series, bench)
}

// failureReason classifies a per-ticker error for the failure set. Provider
// errors are treated like insufficient history for isolation purposes, but
// keep their message for diagnosis.
func failureReason(err error) string {
	switch {
	case errors.Is(err, calculator.ErrInsufficientHistory):
		return "insufficient history"
	case errors.Is(err, calculator.ErrInvalidPrice):
		return "invalid price"
	default:
		return "provider error: " + err.Error()
	}
}
