package calculator

import (
	"fmt"
	"math"

	"RSRank/internal/model"
)

// Period defines one lookback window and its weight in the aggregate RS value.
type Period struct {
	Label    string
	Sessions int
	Weight   float64
}

// DefaultPeriods is the IBD-style weighting over the trailing year: recent
// performance counts most.
var DefaultPeriods = []Period{
	{Label: "3M", Sessions: 63, Weight: 0.40},
	{Label: "6M", Sessions: 126, Weight: 0.25},
	{Label: "9M", Sessions: 189, Weight: 0.20},
	{Label: "12M", Sessions: 252, Weight: 0.15},
}

// Calculator combines per-period excess returns into a single weighted RS
// value. Weights are validated once at construction.
type Calculator struct {
	periods []Period
}

// New validates the period configuration and returns a Calculator.
// The weights must sum to 1.0.
func New(periods []Period) (*Calculator, error) {
	if len(periods) == 0 {
		return nil, fmt.Errorf("no lookback periods configured")
	}
	sum := 0.0
	for _, p := range periods {
		if p.Sessions <= 0 {
			return nil, fmt.Errorf("period %s: sessions must be positive", p.Label)
		}
		if p.Weight < 0 {
			return nil, fmt.Errorf("period %s: weight must not be negative", p.Label)
		}
		sum += p.Weight
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return nil, fmt.Errorf("period weights must sum to 1.0, got %.4f", sum)
	}
	return &Calculator{periods: periods}, nil
}

// MaxLookback returns the longest configured lookback in sessions.
func (c *Calculator) MaxLookback() int {
	max := 0
	for _, p := range c.periods {
		if p.Sessions > max {
			max = p.Sessions
		}
	}
	return max
}

// Compute derives the weighted RS value and RS line for one stock against
// the benchmark. If any period extraction fails, for the stock or for the
// benchmark, the whole computation fails; a silently-zeroed excess would
// corrupt the cross-sectional ranking.
func (c *Calculator) Compute(stock, benchmark *model.PriceSeries) (model.WeightedRSResult, error) {
	res := model.WeightedRSResult{
		Ticker:  stock.Symbol,
		Periods: make([]model.PeriodReturn, 0, len(c.periods)),
	}
	for _, p := range c.periods {
		stockRet, err := ExtractReturn(stock, p.Sessions)
		if err != nil {
			return model.WeightedRSResult{}, fmt.Errorf("%s %s return: %w", stock.Symbol, p.Label, err)
		}
		benchRet, err := ExtractReturn(benchmark, p.Sessions)
		if err != nil {
			return model.WeightedRSResult{}, fmt.Errorf("benchmark %s %s return: %w", benchmark.Symbol, p.Label, err)
		}
		res.Periods = append(res.Periods, model.PeriodReturn{
			Label:           p.Label,
			Sessions:        p.Sessions,
			Weight:          p.Weight,
			StockReturn:     stockRet,
			BenchmarkReturn: benchRet,
		})
		res.RSRaw += (stockRet - benchRet) * p.Weight
	}
	// Latest closes are valid here: every period extraction above checked them.
	res.RSLine = stock.LatestClose() / benchmark.LatestClose()
	return res, nil
}
