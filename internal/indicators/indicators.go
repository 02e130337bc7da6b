// Package indicators derives confirmation signals from price series:
// simple moving averages, the RS line 52-week-high check, and the leader
// screen combining both with the RS rating.
package indicators

import "RSRank/internal/model"

const (
	// rsLineSessions is the 52-week window, in trading sessions, for the
	// RS line new-high check.
	rsLineSessions = 252

	smaShortWindow = 50
	smaLongWindow  = 200

	// leaderMinScore is the rating a ticker must exceed to qualify as a
	// leader.
	leaderMinScore = 80
)

// SMA returns the simple moving average over the last window closes.
// ok is false when the series holds fewer closes than the window.
func SMA(series *model.PriceSeries, window int) (avg float64, ok bool) {
	if series == nil || window <= 0 || series.Len() < window {
		return 0, false
	}
	sum := 0.0
	for _, b := range series.Bars[series.Len()-window:] {
		sum += b.Close
	}
	return sum / float64(window), true
}

// RSLineAtHigh reports whether the ticker's RS line, the stock close divided
// by the benchmark close on sessions both series share, sits at a 52-week
// high. The current value counts as a high when it matches or exceeds every
// earlier value in the window. Returns false when fewer than 252 shared
// sessions exist.
func RSLineAtHigh(stock, benchmark *model.PriceSeries) bool {
	if stock == nil || benchmark == nil {
		return false
	}
	benchByDate := make(map[string]float64, benchmark.Len())
	for _, b := range benchmark.Bars {
		benchByDate[b.Date.Format("2006-01-02")] = b.Close
	}

	line := make([]float64, 0, stock.Len())
	for _, b := range stock.Bars {
		bc, ok := benchByDate[b.Date.Format("2006-01-02")]
		if !ok || bc <= 0 {
			continue
		}
		line = append(line, b.Close/bc)
	}
	if len(line) < rsLineSessions {
		return false
	}

	line = line[len(line)-rsLineSessions:]
	current := line[len(line)-1]
	for _, v := range line[:len(line)-1] {
		if v > current {
			return false
		}
	}
	return true
}

// IsLeader reports whether a ticker passes the leader screen: RS rating
// above 80, latest close above the 50-day average, and the 50-day average
// above the 200-day average.
func IsLeader(series *model.PriceSeries, rsScore int) bool {
	if rsScore <= leaderMinScore {
		return false
	}
	sma50, ok := SMA(series, smaShortWindow)
	if !ok {
		return false
	}
	sma200, ok := SMA(series, smaLongWindow)
	if !ok {
		return false
	}
	return series.LatestClose() > sma50 && sma50 > sma200
}
