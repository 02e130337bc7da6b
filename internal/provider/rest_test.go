package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestRESTFetcher_FetchDailyCloses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sekrit" {
			t.Errorf("unexpected auth header: %q", got)
		}
		if got := r.URL.Query().Get("symbol"); got != "AAPL" {
			t.Errorf("unexpected symbol: %q", got)
		}
		base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		fmt.Fprintf(w, `[{"timestamp":%d,"close":100.5},{"timestamp":%d,"close":101.0}]`,
			base.Unix(), base.AddDate(0, 0, 1).Unix())
	}))
	defer srv.Close()

	f := NewRESTFetcher(srv.URL, "sekrit", "", 0)
	bars, err := f.FetchDailyCloses(context.Background(), "AAPL", 10)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	if bars[0].Close != 100.5 || bars[1].Close != 101.0 {
		t.Errorf("unexpected closes: %+v", bars)
	}
}

func TestRESTFetcher_RetriesOnServerError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `[{"timestamp":1754006400,"close":42.0}]`)
	}))
	defer srv.Close()

	f := NewRESTFetcher(srv.URL, "", "", 100)
	bars, err := f.FetchDailyCloses(context.Background(), "MSFT", 5)
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if len(bars) != 1 || bars[0].Close != 42.0 {
		t.Errorf("unexpected bars: %+v", bars)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("expected 3 requests, got %d", got)
	}
}

func TestRESTFetcher_RetryStopsOnCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewRESTFetcher(srv.URL, "", "", 100)
	if _, err := f.FetchDailyCloses(ctx, "MSFT", 5); err == nil {
		t.Fatal("expected error on cancelled context")
	}
}
