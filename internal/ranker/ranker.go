// Package ranker maps a cross-sectional set of weighted RS values to 1-99
// percentile scores and a dense rank ordering.
package ranker

import (
	"math"
	"sort"

	"RSRank/internal/model"
)

const (
	minScore = 1
	maxScore = 99
)

// Rank converts the full set of per-ticker RS results into an ordered
// ranking. Entries are sorted by rs_raw descending, ties broken by ticker
// ascending so that output is reproducible across runs with identical
// inputs. Ranks are dense 1..N. The input slice is not mutated.
func Rank(results []model.WeightedRSResult) []model.RankedEntry {
	n := len(results)
	if n == 0 {
		return nil
	}
	sorted := make([]model.WeightedRSResult, n)
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].RSRaw != sorted[j].RSRaw {
			return sorted[i].RSRaw > sorted[j].RSRaw
		}
		return sorted[i].Ticker < sorted[j].Ticker
	})

	entries := make([]model.RankedEntry, n)
	for i, r := range sorted {
		score := positionScore(i, n)
		// Equal rs_raw means equal performance: tied values share the score
		// of their best position, though ranks stay distinct.
		if i > 0 && r.RSRaw == sorted[i-1].RSRaw {
			score = entries[i-1].RSScore
		}
		entries[i] = model.RankedEntry{
			Ticker:  r.Ticker,
			RSRaw:   r.RSRaw,
			RSLine:  r.RSLine,
			RSScore: score,
			Rank:    i + 1,
		}
	}
	return entries
}

// positionScore maps a 0-based position in rank-descending order to a 1-99
// score. The percentile of position i is (n-1-i)/(n-1); a singleton set has
// percentile 1.0 and therefore score 99.
func positionScore(pos, n int) int {
	p := 1.0
	if n > 1 {
		p = float64(n-1-pos) / float64(n-1)
	}
	return scale(p)
}

// ScoreAgainst rates a raw RS value against a run's distribution, given in
// ascending order. The percentile is the fraction of distribution values
// strictly below the given value. Returns 0 for an empty distribution.
func ScoreAgainst(value float64, ascending []float64) int {
	n := len(ascending)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return maxScore
	}
	below := sort.SearchFloat64s(ascending, value)
	p := float64(below) / float64(n-1)
	if p > 1 {
		p = 1
	}
	return scale(p)
}

// scale maps a percentile in [0,1] to the integer range [1,99],
// rounding half up.
func scale(p float64) int {
	s := int(math.Floor(minScore + p*(maxScore-minScore) + 0.5))
	if s < minScore {
		s = minScore
	}
	if s > maxScore {
		s = maxScore
	}
	return s
}
