package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"RSRank/internal/calculator"
	"RSRank/internal/config"
	"RSRank/internal/engine"
	"RSRank/internal/provider"
	"RSRank/internal/recorder"
	"RSRank/internal/reporter"
	"RSRank/internal/scheduler"
	"RSRank/internal/universe"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] RSRank starting...")

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	var (
		flagConfig = flag.String("config", cfgPath, "path to YAML config")
		flagMode   = flag.String("mode", "once", "run mode: once or schedule")
	)
	flag.Parse()

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	calc, err := calculator.New(cfg.CalculatorPeriods())
	if err != nil {
		log.Fatalf("[FATAL] calculator config: %v", err)
	}

	// Init fetcher
	var fetcher provider.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = provider.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy, cfg.DataSource.RateLimit)
	} else {
		fetcher = provider.NewYahooFetcher(cfg.Proxy, cfg.DataSource.RateLimit)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	tickers := universe.Resolve(cfg.Universe.Tickers, cfg.Universe.File)
	log.Printf("[INFO] universe: %d tickers, benchmark %s", len(tickers), cfg.Benchmark)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	task := func() {
		runOnce(ctx, cfg, calc, fetcher, rec, tickers)
	}

	switch *flagMode {
	case "once":
		if err := rankAndReport(ctx, cfg, calc, fetcher, rec, tickers); err != nil {
			log.Fatalf("[FATAL] ranking run: %v", err)
		}
	case "schedule":
		sched := scheduler.New(task)
		if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
			log.Fatalf("[FATAL] register cron task: %v", err)
		}
		sched.Start()
		defer sched.Stop()

		if os.Getenv("RUN_ON_START") == "true" {
			log.Println("[INFO] RUN_ON_START enabled, executing ranking now")
			go sched.RunNow()
		}

		log.Println("[INFO] RSRank is running. Press Ctrl+C to stop.")
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("[INFO] shutdown signal received, stopping...")
		cancel()
	default:
		log.Fatalf("[FATAL] unknown mode %q (want once or schedule)", *flagMode)
	}

	log.Println("[INFO] RSRank stopped")
}

// runOnce is the scheduled task body: a full run whose failure is logged,
// not fatal, so one bad day does not kill the scheduler.
func runOnce(ctx context.Context, cfg *config.Config, calc *calculator.Calculator,
	fetcher provider.Fetcher, rec recorder.Recorder, tickers []string) {
	if err := rankAndReport(ctx, cfg, calc, fetcher, rec, tickers); err != nil {
		log.Printf("[ERROR] scheduled ranking run: %v", err)
	}
}

func rankAndReport(ctx context.Context, cfg *config.Config, calc *calculator.Calculator,
	fetcher provider.Fetcher, rec recorder.Recorder, tickers []string) error {
	started := time.Now()

	// Fresh store per run: price series are immutable for one run only.
	store := provider.NewStore(fetcher, cfg.MinHistory)
	eng := engine.New(store, calc, cfg.Benchmark, cfg.MinHistory, cfg.Concurrency)

	entries, failures, err := eng.Run(ctx, tickers)
	if err != nil {
		return err
	}

	fmt.Print(reporter.FormatConsoleReport(entries, failures, cfg.Output.TopN))

	csvPath := cfg.Output.CSV
	if !filepath.IsAbs(csvPath) {
		csvPath = filepath.Join(cfg.Output.Dir, csvPath)
	}
	if err := reporter.WriteCSV(csvPath, entries); err != nil {
		log.Printf("[ERROR] write csv: %v", err)
	} else {
		log.Printf("[INFO] rankings saved: %s", csvPath)
	}

	if err := rec.RecordRun(&recorder.RunSnapshot{
		StartedAt:  started,
		FinishedAt: time.Now(),
		Benchmark:  cfg.Benchmark,
		Universe:   len(tickers),
		Entries:    entries,
		Failures:   failures,
	}); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
	return nil
}
