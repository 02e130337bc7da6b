package universe

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolve_Defaults(t *testing.T) {
	tickers := Resolve(nil, "")
	if len(tickers) != len(DefaultTickers) {
		t.Errorf("expected %d default tickers, got %d", len(DefaultTickers), len(tickers))
	}
}

func TestResolve_ExplicitList(t *testing.T) {
	tickers := Resolve([]string{"aapl", " MSFT ", "AAPL", ""}, "")
	want := []string{"AAPL", "MSFT"}
	if len(tickers) != len(want) {
		t.Fatalf("expected %v, got %v", want, tickers)
	}
	for i, w := range want {
		if tickers[i] != w {
			t.Errorf("position %d: expected %s, got %s", i, w, tickers[i])
		}
	}
}

func TestResolve_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickers.txt")
	content := "# watchlist\nnvda\nAMD\n\nNVDA\n  tsm  \n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	tickers := Resolve([]string{"IGNORED"}, path)
	want := []string{"NVDA", "AMD", "TSM"}
	if len(tickers) != len(want) {
		t.Fatalf("expected %v, got %v", want, tickers)
	}
	for i, w := range want {
		if tickers[i] != w {
			t.Errorf("position %d: expected %s, got %s", i, w, tickers[i])
		}
	}
}

func TestResolve_MissingFileFallsBack(t *testing.T) {
	tickers := Resolve([]string{"AAPL"}, "/nonexistent/tickers.txt")
	if len(tickers) != 1 || tickers[0] != "AAPL" {
		t.Errorf("expected fallback to explicit list, got %v", tickers)
	}
}
