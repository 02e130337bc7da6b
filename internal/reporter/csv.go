package reporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"RSRank/internal/model"
)

// WriteCSV saves the ranking to a CSV file, creating the directory if
// needed. The row order follows the deterministic ranking order.
func WriteCSV(path string, entries []model.RankedEntry) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"ticker", "rs_raw", "rs_line", "rs_score", "rs_score_1w_ago", "rank", "rs_line_52w_high", "leader"}); err != nil {
		return err
	}
	for _, e := range entries {
		weekAgo := ""
		if e.RSScoreWeekAgo > 0 {
			weekAgo = strconv.Itoa(e.RSScoreWeekAgo)
		}
		row := []string{
			e.Ticker,
			strconv.FormatFloat(e.RSRaw, 'f', 4, 64),
			strconv.FormatFloat(e.RSLine, 'f', 6, 64),
			strconv.Itoa(e.RSScore),
			weekAgo,
			strconv.Itoa(e.Rank),
			strconv.FormatBool(e.RSLineNewHigh),
			strconv.FormatBool(e.Leader),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
