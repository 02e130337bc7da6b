package engine

import (
	"context"

	"RSRank/internal/indicators"
	"RSRank/internal/model"
)

// applyIndicators fills the RS line new-high flag and the leader flag on
// each ranked entry. Series come from the store cache, so no refetching
// happens.
func (e *Engine) applyIndicators(ctx context.Context, entries []model.RankedEntry, bench *model.PriceSeries) {
	for i := range entries {
		series, err := e.store.Get(ctx, entries[i].Ticker)
		if err != nil {
			continue
		}
		entries[i].RSLineNewHigh = indicators.RSLineAtHigh(series, bench)
		entries[i].Leader = indicators.IsLeader(series, entries[i].RSScore)
	}
}
