package reporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"RSRank/internal/model"
)

func sampleEntries() []model.RankedEntry {
	return []model.RankedEntry{
		{Ticker: "NVDA", RSRaw: 42.5, RSLine: 0.31, RSScore: 99, RSScoreWeekAgo: 97, Rank: 1, RSLineNewHigh: true, Leader: true},
		{Ticker: "AAPL", RSRaw: 10.1, RSLine: 0.45, RSScore: 50, RSScoreWeekAgo: 52, Rank: 2},
		{Ticker: "XOM", RSRaw: -8.3, RSLine: 0.22, RSScore: 1, Rank: 3},
	}
}

func TestSummarize(t *testing.T) {
	stats := Summarize(sampleEntries())
	if stats.Total != 3 {
		t.Errorf("expected total 3, got %d", stats.Total)
	}
	if stats.MinScore != 1 || stats.MaxScore != 99 {
		t.Errorf("expected score range 1-99, got %d-%d", stats.MinScore, stats.MaxScore)
	}
	if stats.MedianScore != 50 {
		t.Errorf("expected median 50, got %.2f", stats.MedianScore)
	}
	if stats.Above90 != 1 || stats.Above70 != 1 {
		t.Errorf("unexpected threshold counts: %+v", stats)
	}
}

func TestSummarize_Empty(t *testing.T) {
	stats := Summarize(nil)
	if stats.Total != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}

func TestFormatConsoleReport(t *testing.T) {
	report := FormatConsoleReport(sampleEntries(), []model.Failure{
		{Ticker: "BAD", Reason: "insufficient history"},
	}, 2)

	for _, want := range []string{"NVDA", "AAPL", "BAD", "insufficient history", "Top 2", "Bottom 3", "line hi", "Leaders (1)"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "rankings.csv")
	if err := WriteCSV(path, sampleEntries()); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines", len(lines))
	}
	if lines[0] != "ticker,rs_raw,rs_line,rs_score,rs_score_1w_ago,rank,rs_line_52w_high,leader" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "NVDA,42.5000,0.310000,99,97,1,true,true") {
		t.Errorf("unexpected first row: %s", lines[1])
	}
	// XOM has no week-ago score; the column must be empty, not zero.
	if !strings.Contains(lines[3], ",1,,3") {
		t.Errorf("expected empty week-ago column for XOM: %s", lines[3])
	}
}
