package ranker

import (
	"testing"

	"RSRank/internal/model"
)

func results(pairs ...interface{}) []model.WeightedRSResult {
	out := make([]model.WeightedRSResult, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, model.WeightedRSResult{
			Ticker: pairs[i].(string),
			RSRaw:  pairs[i+1].(float64),
		})
	}
	return out
}

func TestRank_OrderingAndRanks(t *testing.T) {
	entries := Rank(results("MSFT", 5.0, "AAPL", 12.5, "XOM", -3.2, "KO", 0.0))
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}

	wantOrder := []string{"AAPL", "MSFT", "KO", "XOM"}
	for i, e := range entries {
		if e.Ticker != wantOrder[i] {
			t.Errorf("position %d: expected %s, got %s", i, wantOrder[i], e.Ticker)
		}
		if e.Rank != i+1 {
			t.Errorf("%s: expected rank %d, got %d", e.Ticker, i+1, e.Rank)
		}
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].RSRaw > entries[i-1].RSRaw {
			t.Errorf("entries not sorted by rs_raw descending at %d", i)
		}
		if entries[i].RSScore > entries[i-1].RSScore {
			t.Errorf("rs_score must not increase as rank worsens at %d", i)
		}
	}
}

func TestRank_ScoreMapping(t *testing.T) {
	// N=4: percentiles 1, 2/3, 1/3, 0 map to 99, 66, 34, 1 (round half up).
	entries := Rank(results("A", 4.0, "B", 3.0, "C", 2.0, "D", 1.0))
	wantScores := []int{99, 66, 34, 1}
	for i, e := range entries {
		if e.RSScore != wantScores[i] {
			t.Errorf("position %d: expected score %d, got %d", i, wantScores[i], e.RSScore)
		}
	}
}

func TestRank_Singleton(t *testing.T) {
	entries := Rank(results("ONLY", 1.23))
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Rank != 1 {
		t.Errorf("singleton rank: expected 1, got %d", entries[0].Rank)
	}
	if entries[0].RSScore != 99 {
		t.Errorf("singleton score: expected 99, got %d", entries[0].RSScore)
	}
}

func TestRank_Empty(t *testing.T) {
	if entries := Rank(nil); entries != nil {
		t.Errorf("expected nil for empty input, got %v", entries)
	}
}

func TestRank_TieBreakByTicker(t *testing.T) {
	entries := Rank(results("ZZZ", 7.0, "AAA", 7.0, "MMM", 7.0))
	wantOrder := []string{"AAA", "MMM", "ZZZ"}
	for i, e := range entries {
		if e.Ticker != wantOrder[i] {
			t.Errorf("position %d: expected %s, got %s", i, wantOrder[i], e.Ticker)
		}
		if e.Rank != i+1 {
			t.Errorf("%s: expected distinct rank %d, got %d", e.Ticker, i+1, e.Rank)
		}
	}
	// Equal rs_raw means equal score.
	for _, e := range entries {
		if e.RSScore != entries[0].RSScore {
			t.Errorf("tied values must share a score: %s got %d, want %d", e.Ticker, e.RSScore, entries[0].RSScore)
		}
	}
}

func TestRank_ScoreBounds(t *testing.T) {
	in := results(
		"A", 1000.0, "B", 500.0, "C", 0.0, "D", -0.0001,
		"E", -500.0, "F", -1000.0, "G", 3.14, "H", 2.71,
	)
	for _, e := range Rank(in) {
		if e.RSScore < 1 || e.RSScore > 99 {
			t.Errorf("%s: score %d out of [1,99]", e.Ticker, e.RSScore)
		}
	}
}

func TestRank_InputNotMutated(t *testing.T) {
	in := results("B", 1.0, "A", 2.0)
	Rank(in)
	if in[0].Ticker != "B" || in[1].Ticker != "A" {
		t.Error("input slice was reordered")
	}
}

func TestScoreAgainst(t *testing.T) {
	dist := []float64{-2.0, 0.0, 1.0, 5.0}
	tests := []struct {
		value float64
		want  int
	}{
		{10.0, 99}, // above everything
		{5.0, 99},  // three values strictly below
		{0.5, 66},  // two below
		{-1.0, 34}, // one below
		{-5.0, 1},  // nothing below
	}
	for _, tt := range tests {
		if got := ScoreAgainst(tt.value, dist); got != tt.want {
			t.Errorf("ScoreAgainst(%.1f): expected %d, got %d", tt.value, tt.want, got)
		}
	}

	if got := ScoreAgainst(1.0, nil); got != 0 {
		t.Errorf("empty distribution: expected 0, got %d", got)
	}
	if got := ScoreAgainst(1.0, []float64{1.0}); got != 99 {
		t.Errorf("singleton distribution: expected 99, got %d", got)
	}
}
