package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (dashboards read while
	// the ranker writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at     INTEGER NOT NULL,
			finished_at    INTEGER NOT NULL,
			benchmark      TEXT,
			universe_size  INTEGER,
			ranked_count   INTEGER,
			failed_count   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at)`,

		`CREATE TABLE IF NOT EXISTS rankings (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id          INTEGER NOT NULL REFERENCES runs(id),
			ticker          TEXT NOT NULL,
			rs_raw          REAL,
			rs_line         REAL,
			rs_score        INTEGER,
			rs_score_1w_ago INTEGER,
			rank            INTEGER,
			rs_line_52w_high INTEGER,
			leader          INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rankings_run ON rankings(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_rankings_ticker ON rankings(ticker)`,

		`CREATE TABLE IF NOT EXISTS failures (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id     INTEGER NOT NULL REFERENCES runs(id),
			ticker     TEXT NOT NULL,
			reason     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_failures_run ON failures(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun writes the run summary, all ranked entries and all failures in
// one transaction.
func (r *SQLiteRecorder) RecordRun(snap *RunSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO runs
		(started_at, finished_at, benchmark, universe_size, ranked_count, failed_count)
		VALUES (?,?,?,?,?,?)`,
		snap.StartedAt.Unix(), snap.FinishedAt.Unix(), snap.Benchmark,
		snap.Universe, len(snap.Entries), len(snap.Failures),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	for _, e := range snap.Entries {
		if _, err := tx.Exec(`INSERT INTO rankings
			(run_id, ticker, rs_raw, rs_line, rs_score, rs_score_1w_ago, rank, rs_line_52w_high, leader)
			VALUES (?,?,?,?,?,?,?,?,?)`,
			runID, e.Ticker, e.RSRaw, e.RSLine, e.RSScore, e.RSScoreWeekAgo, e.Rank,
			e.RSLineNewHigh, e.Leader,
		); err != nil {
			return fmt.Errorf("insert ranking %s: %w", e.Ticker, err)
		}
	}
	for _, f := range snap.Failures {
		if _, err := tx.Exec(`INSERT INTO failures (run_id, ticker, reason) VALUES (?,?,?)`,
			runID, f.Ticker, f.Reason,
		); err != nil {
			return fmt.Errorf("insert failure %s: %w", f.Ticker, err)
		}
	}

	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
