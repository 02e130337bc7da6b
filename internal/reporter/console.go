package reporter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"RSRank/internal/model"
)

const rule = "================================================================================"

// SummaryStats aggregates the score distribution of a run.
type SummaryStats struct {
	Total       int
	MinScore    int
	MaxScore    int
	MeanScore   float64
	MedianScore float64
	Above70     int
	Above80     int
	Above90     int
}

// Summarize computes summary statistics over the ranked entries.
func Summarize(entries []model.RankedEntry) SummaryStats {
	stats := SummaryStats{Total: len(entries)}
	if len(entries) == 0 {
		return stats
	}
	scores := make([]int, len(entries))
	sum := 0
	stats.MinScore = entries[0].RSScore
	stats.MaxScore = entries[0].RSScore
	for i, e := range entries {
		scores[i] = e.RSScore
		sum += e.RSScore
		if e.RSScore < stats.MinScore {
			stats.MinScore = e.RSScore
		}
		if e.RSScore > stats.MaxScore {
			stats.MaxScore = e.RSScore
		}
		if e.RSScore >= 70 {
			stats.Above70++
		}
		if e.RSScore >= 80 {
			stats.Above80++
		}
		if e.RSScore >= 90 {
			stats.Above90++
		}
	}
	stats.MeanScore = float64(sum) / float64(len(entries))
	sort.Ints(scores)
	mid := len(scores) / 2
	if len(scores)%2 == 0 {
		stats.MedianScore = float64(scores[mid-1]+scores[mid]) / 2
	} else {
		stats.MedianScore = float64(scores[mid])
	}
	return stats
}

// FormatConsoleReport renders the full ranking report: summary statistics,
// the top-N and bottom-5 tables, and the excluded tickers.
func FormatConsoleReport(entries []model.RankedEntry, failures []model.Failure, topN int) string {
	var b strings.Builder

	b.WriteString("\n" + rule + "\n")
	b.WriteString(fmt.Sprintf("RS Relative Strength Ranking - %s\n", time.Now().Format("2006-01-02 15:04:05")))
	b.WriteString(rule + "\n")

	if len(entries) == 0 {
		b.WriteString("\nno ranked tickers\n")
		writeFailures(&b, failures)
		return b.String()
	}

	stats := Summarize(entries)
	b.WriteString("\nSummary:\n")
	b.WriteString(fmt.Sprintf("  tickers ranked:  %d\n", stats.Total))
	b.WriteString(fmt.Sprintf("  score range:     %d - %d\n", stats.MinScore, stats.MaxScore))
	b.WriteString(fmt.Sprintf("  mean score:      %.2f\n", stats.MeanScore))
	b.WriteString(fmt.Sprintf("  median score:    %.2f\n", stats.MedianScore))
	b.WriteString(fmt.Sprintf("  score >= 70/80/90: %d / %d / %d\n", stats.Above70, stats.Above80, stats.Above90))

	n := topN
	if n > len(entries) {
		n = len(entries)
	}
	b.WriteString("\n" + rule + "\n")
	b.WriteString(fmt.Sprintf("Top %d:\n", n))
	writeTable(&b, entries[:n])

	bottom := 5
	if bottom > len(entries) {
		bottom = len(entries)
	}
	b.WriteString("\n" + rule + "\n")
	b.WriteString(fmt.Sprintf("Bottom %d:\n", bottom))
	writeTable(&b, entries[len(entries)-bottom:])

	writeLeaders(&b, entries)
	writeFailures(&b, failures)
	b.WriteString(rule + "\n")
	return b.String()
}

func writeTable(b *strings.Builder, entries []model.RankedEntry) {
	b.WriteString(fmt.Sprintf("%-6s %-8s %-7s %-7s %-12s %-10s %-7s\n",
		"rank", "ticker", "score", "1w ago", "rs_raw", "rs_line", "line hi"))
	b.WriteString(strings.Repeat("-", 80) + "\n")
	for _, e := range entries {
		weekAgo := "-"
		if e.RSScoreWeekAgo > 0 {
			weekAgo = fmt.Sprintf("%d", e.RSScoreWeekAgo)
		}
		lineHigh := "-"
		if e.RSLineNewHigh {
			lineHigh = "yes"
		}
		b.WriteString(fmt.Sprintf("%-6d %-8s %-7d %-7s %-12.2f %-10.4f %-7s\n",
			e.Rank, e.Ticker, e.RSScore, weekAgo, e.RSRaw, e.RSLine, lineHigh))
	}
}

// writeLeaders lists the tickers passing the leader screen, in rank order.
func writeLeaders(b *strings.Builder, entries []model.RankedEntry) {
	var leaders []model.RankedEntry
	for _, e := range entries {
		if e.Leader {
			leaders = append(leaders, e)
		}
	}
	if len(leaders) == 0 {
		return
	}
	b.WriteString("\n" + rule + "\n")
	b.WriteString(fmt.Sprintf("Leaders (%d): score > 80, close > SMA50 > SMA200\n", len(leaders)))
	writeTable(b, leaders)
}

func writeFailures(b *strings.Builder, failures []model.Failure) {
	if len(failures) == 0 {
		return
	}
	b.WriteString("\n" + rule + "\n")
	b.WriteString(fmt.Sprintf("Excluded (%d):\n", len(failures)))
	for _, f := range failures {
		b.WriteString(fmt.Sprintf("  %-8s %s\n", f.Ticker, f.Reason))
	}
}
