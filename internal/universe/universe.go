// Package universe resolves the ticker list handed to the ranking engine.
// Resolution is purely a configuration step; the engine itself never reads
// files or environment state.
package universe

import (
	"bufio"
	"log"
	"os"
	"strings"
)

// DefaultTickers is the built-in large-cap universe used when neither a
// ticker file nor an explicit list is configured.
var DefaultTickers = []string{
	// tech
	"AAPL", "MSFT", "GOOGL", "AMZN", "META", "NVDA", "TSLA",
	// financials
	"JPM", "BAC", "WFC", "GS", "MS",
	// consumer
	"WMT", "HD", "MCD", "NKE", "SBUX",
	// healthcare
	"JNJ", "PFE", "UNH", "ABT", "TMO",
	// industrials
	"BA", "CAT", "GE", "HON", "UPS",
	// energy
	"XOM", "CVX", "SLB", "COP", "EOG",
	// communications
	"VZ", "T", "CMCSA", "DIS", "NFLX",
	// other
	"BRK-B", "V", "MA", "PG", "KO",
}

// Resolve returns the ticker universe. A configured file (one symbol per
// line, '#' comments) wins over the explicit list, which wins over the
// defaults. Symbols are upper-cased and de-duplicated, order preserved.
// An unreadable file falls back to the next source with a warning.
func Resolve(explicit []string, file string) []string {
	if file != "" {
		if tickers, err := readFile(file); err != nil {
			log.Printf("[WARN] ticker file %s: %v, falling back", file, err)
		} else if len(tickers) > 0 {
			return tickers
		}
	}
	if len(explicit) > 0 {
		return dedupe(explicit)
	}
	return dedupe(DefaultTickers)
}

func readFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var tickers []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tickers = append(tickers, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return dedupe(tickers), nil
}

func dedupe(tickers []string) []string {
	seen := make(map[string]bool, len(tickers))
	out := make([]string, 0, len(tickers))
	for _, t := range tickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
