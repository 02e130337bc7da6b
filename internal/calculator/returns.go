package calculator

import (
	"errors"
	"math"

	"RSRank/internal/model"
)

var (
	// ErrInsufficientHistory means a series is shorter than the requested lookback window.
	ErrInsufficientHistory = errors.New("insufficient price history")
	// ErrInvalidPrice means a required close is zero, negative, NaN or infinite.
	ErrInvalidPrice = errors.New("invalid close price")
)

// ExtractReturn computes the percent return over the trailing lookback window:
// (latest_close / close_lookback_sessions_ago - 1) * 100.
// The series must contain at least lookbackSessions+1 entries.
func ExtractReturn(series *model.PriceSeries, lookbackSessions int) (float64, error) {
	if lookbackSessions <= 0 {
		return 0, errors.New("lookback must be positive")
	}
	n := len(series.Bars)
	if n < lookbackSessions+1 {
		return 0, ErrInsufficientHistory
	}
	latest := series.Bars[n-1].Close
	ref := series.Bars[n-1-lookbackSessions].Close
	if !validClose(latest) || !validClose(ref) {
		return 0, ErrInvalidPrice
	}
	return (latest/ref - 1) * 100, nil
}

func validClose(c float64) bool {
	return c > 0 && !math.IsNaN(c) && !math.IsInf(c, 0)
}
