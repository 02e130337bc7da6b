package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"RSRank/internal/calculator"
)

// Period is one lookback window entry in the config file.
type Period struct {
	Label    string  `yaml:"label"`
	Sessions int     `yaml:"sessions"`
	Weight   float64 `yaml:"weight"`
}

// Config holds all application configuration.
type Config struct {
	Benchmark  string   `yaml:"benchmark_symbol"`
	Periods    []Period `yaml:"periods"`
	MinHistory int      `yaml:"minimum_history_sessions"`
	Universe   struct {
		Tickers []string `yaml:"tickers"`
		File    string   `yaml:"file"`
	} `yaml:"universe"`
	DataSource struct {
		BaseURL   string `yaml:"base_url"`
		APIKey    string `yaml:"api_key"`
		RateLimit int    `yaml:"rate_limit"` // requests per second
	} `yaml:"data_source"`
	Concurrency int `yaml:"concurrency"`
	Schedule    struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Output struct {
		Dir  string `yaml:"dir"`
		CSV  string `yaml:"csv"`
		TopN int    `yaml:"top_n"`
	} `yaml:"output"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("BENCHMARK_SYMBOL"); v != "" {
		cfg.Benchmark = v
	}
	if v := os.Getenv("TICKER_LIST_FILE"); v != "" {
		cfg.Universe.File = v
	}
	if v := os.Getenv("BARS_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("BARS_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("RANK_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Concurrency = n
		}
	}

	// Defaults
	if cfg.Benchmark == "" {
		cfg.Benchmark = "SPY"
	}
	if len(cfg.Periods) == 0 {
		for _, p := range calculator.DefaultPeriods {
			cfg.Periods = append(cfg.Periods, Period{Label: p.Label, Sessions: p.Sessions, Weight: p.Weight})
		}
	}
	if cfg.MinHistory == 0 {
		cfg.MinHistory = 262
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = 4
	}
	if cfg.Schedule.DailyCron == "" {
		// Weekdays at 16:30, after the US close.
		cfg.Schedule.DailyCron = "0 30 16 * * 1-5"
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "output"
	}
	if cfg.Output.CSV == "" {
		cfg.Output.CSV = "rs_rankings.csv"
	}
	if cfg.Output.TopN == 0 {
		cfg.Output.TopN = 20
	}

	return cfg, nil
}

// CalculatorPeriods converts the configured periods to calculator form.
func (c *Config) CalculatorPeriods() []calculator.Period {
	out := make([]calculator.Period, len(c.Periods))
	for i, p := range c.Periods {
		out[i] = calculator.Period{Label: p.Label, Sessions: p.Sessions, Weight: p.Weight}
	}
	return out
}

// Validate checks that the configuration can produce a meaningful run.
// Weight validation lives in calculator.New; this covers the rest.
func (c *Config) Validate() error {
	if c.Benchmark == "" {
		return fmt.Errorf("benchmark_symbol is required")
	}
	maxLookback := 0
	for _, p := range c.Periods {
		if p.Sessions <= 0 {
			return fmt.Errorf("period %s: sessions must be positive", p.Label)
		}
		if p.Sessions > maxLookback {
			maxLookback = p.Sessions
		}
	}
	if c.MinHistory <= maxLookback {
		return fmt.Errorf("minimum_history_sessions (%d) must exceed the longest lookback (%d)",
			c.MinHistory, maxLookback)
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive")
	}
	return nil
}
