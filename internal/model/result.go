package model

// PeriodReturn holds the stock and benchmark percent returns for one
// lookback window. Derived per run, not persisted.
type PeriodReturn struct {
	Label           string
	Sessions        int
	Weight          float64
	StockReturn     float64
	BenchmarkReturn float64
}

// WeightedRSResult is the per-ticker output of the weighted RS calculation.
type WeightedRSResult struct {
	Ticker  string
	RSRaw   float64 // weighted excess return vs the benchmark, percent
	RSLine  float64 // latest stock close / latest benchmark close
	Periods []PeriodReturn
}

// RankedEntry is one row of the final cross-sectional ranking.
type RankedEntry struct {
	Ticker         string
	RSRaw          float64
	RSLine         float64
	RSScore        int     // 1-99 percentile rating
	RSScoreWeekAgo int     // prior-week rating, 0 when unavailable
	Rank           int     // 1-based, rs_raw descending
	RSLineNewHigh  bool    // RS line at a 52-week high
	Leader         bool    // score > 80, close > SMA50 > SMA200
}

// Failure records a ticker excluded from the ranking and why.
type Failure struct {
	Ticker string
	Reason string
}
