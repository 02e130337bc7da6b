package model

import "time"

// Bar is one daily close observation.
type Bar struct {
	Date  time.Time
	Close float64
}

// PriceSeries holds the adjusted daily close history for one symbol,
// chronologically ascending with no duplicate dates. Treated as immutable
// once fetched for a run.
type PriceSeries struct {
	Symbol    string
	Bars      []Bar
	FetchedAt time.Time
}

// Len returns the number of sessions in the series.
func (s *PriceSeries) Len() int { return len(s.Bars) }

// LatestClose returns the most recent close, or 0 for an empty series.
func (s *PriceSeries) LatestClose() float64 {
	if len(s.Bars) == 0 {
		return 0
	}
	return s.Bars[len(s.Bars)-1].Close
}

// Truncate returns a view of the series with the last n sessions removed.
// The underlying bars are shared, not copied.
func (s *PriceSeries) Truncate(n int) *PriceSeries {
	if n <= 0 {
		return s
	}
	if len(s.Bars) <= n {
		return &PriceSeries{Symbol: s.Symbol, FetchedAt: s.FetchedAt}
	}
	return &PriceSeries{Symbol: s.Symbol, Bars: s.Bars[:len(s.Bars)-n], FetchedAt: s.FetchedAt}
}
