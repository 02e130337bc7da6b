package provider

import (
	"context"
	"sort"
	"sync"
	"time"

	"RSRank/internal/model"
)

// Store is the per-run price series store. Each symbol is fetched at most
// once; the resulting series are immutable and safe for concurrent readers.
type Store struct {
	fetcher  Fetcher
	sessions int

	mu    sync.Mutex
	cache map[string]*storeEntry
}

type storeEntry struct {
	once   sync.Once
	series *model.PriceSeries
	err    error
}

// NewStore creates a Store that requests the given number of trailing
// sessions per symbol.
func NewStore(fetcher Fetcher, sessions int) *Store {
	return &Store{
		fetcher:  fetcher,
		sessions: sessions,
		cache:    make(map[string]*storeEntry),
	}
}

// Get returns the price series for a symbol, fetching it on first use.
// Failures are cached too, so a failing symbol is not retried within a run.
func (s *Store) Get(ctx context.Context, symbol string) (*model.PriceSeries, error) {
	s.mu.Lock()
	e, ok := s.cache[symbol]
	if !ok {
		e = &storeEntry{}
		s.cache[symbol] = e
	}
	s.mu.Unlock()

	e.once.Do(func() {
		bars, err := s.fetcher.FetchDailyCloses(ctx, symbol, s.sessions)
		if err != nil {
			e.err = err
			return
		}
		e.series = &model.PriceSeries{
			Symbol:    symbol,
			Bars:      normalize(bars),
			FetchedAt: time.Now(),
		}
	})
	return e.series, e.err
}

// normalize sorts bars chronologically and drops duplicate dates, keeping
// the last observation for each date.
func normalize(bars []model.Bar) []model.Bar {
	sorted := make([]model.Bar, len(bars))
	copy(sorted, bars)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	out := sorted[:0]
	for _, b := range sorted {
		day := b.Date.Format("2006-01-02")
		if len(out) > 0 && out[len(out)-1].Date.Format("2006-01-02") == day {
			out[len(out)-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}
