package engine

import (
	"context"
	"sort"

	"RSRank/internal/model"
	"RSRank/internal/ranker"
)

// weekSessions is how many trading sessions approximate one calendar week.
const weekSessions = 5

// applyWeekAgoScores fills RSScoreWeekAgo on each entry by re-running the
// weighted RS on series truncated by one week and rescoring against the
// current run's distribution. Entries without enough truncated history keep
// a zero score. Series come from the store cache, so no refetching happens.
func (e *Engine) applyWeekAgoScores(ctx context.Context, entries []model.RankedEntry, bench *model.PriceSeries) {
	if len(entries) == 0 {
		return
	}

	dist := make([]float64, len(entries))
	for i, en := range entries {
		dist[i] = en.RSRaw
	}
	sort.Float64s(dist)

	truncBench := bench.Truncate(weekSessions)
	for i := range entries {
		series, err := e.store.Get(ctx, entries[i].Ticker)
		if err != nil {
			continue
		}
		res, err := e.calc.Compute(series.Truncate(weekSessions), truncBench)
		if err != nil {
			continue
		}
		entries[i].RSScoreWeekAgo = ranker.ScoreAgainst(res.RSRaw, dist)
	}
}
