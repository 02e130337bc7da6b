package provider

import (
	"context"

	"RSRank/internal/model"
)

// Fetcher retrieves adjusted daily close history for a symbol, most recent
// session last. Implementations own retry and rate limiting.
type Fetcher interface {
	FetchDailyCloses(ctx context.Context, symbol string, sessions int) ([]model.Bar, error)
	Name() string
}
