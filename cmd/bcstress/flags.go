// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"code.hybscloud.com/bcoll"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	Capacity  int
	Producers int
	Consumers int
	Peekers   int
	Elements  int
	Spin      int

	Mode    string
	Timeout time.Duration
	BulkPct int

	LogLevel       string
	LogFormat      string
	ReportInterval time.Duration
	MetricsAddr    string
	Linger         time.Duration

	ShowVersion bool
}

// parseFlags reads args into a CLIConfig. Every option falls back to a
// BCSTRESS_* environment variable when the flag is absent.
func parseFlags(fs *flag.FlagSet, args []string) (*CLIConfig, error) {
	cfg := &CLIConfig{}

	fs.IntVar(&cfg.Capacity, "capacity",
		getEnvInt("BCSTRESS_CAPACITY", 64),
		"Collection capacity (env: BCSTRESS_CAPACITY)")

	fs.IntVar(&cfg.Producers, "producers",
		getEnvInt("BCSTRESS_PRODUCERS", 4),
		"Producer goroutines (env: BCSTRESS_PRODUCERS)")

	fs.IntVar(&cfg.Consumers, "consumers",
		getEnvInt("BCSTRESS_CONSUMERS", 4),
		"Consumer goroutines (env: BCSTRESS_CONSUMERS)")

	fs.IntVar(&cfg.Peekers, "peekers",
		getEnvInt("BCSTRESS_PEEKERS", 1),
		"Goroutines following the newest index with At (env: BCSTRESS_PEEKERS)")

	fs.IntVar(&cfg.Elements, "elements",
		getEnvInt("BCSTRESS_ELEMENTS", 1_000_000),
		"Elements to pass through the collection (env: BCSTRESS_ELEMENTS)")

	fs.IntVar(&cfg.Spin, "spin",
		getEnvInt("BCSTRESS_SPIN", 0),
		"Spin rounds before parking, 0 to park at once (env: BCSTRESS_SPIN)")

	fs.StringVar(&cfg.Mode, "mode",
		getEnv("BCSTRESS_MODE", "blocking"),
		"Wait mode: blocking, immediate, within (env: BCSTRESS_MODE)")

	fs.DurationVar(&cfg.Timeout, "timeout",
		getEnvDuration("BCSTRESS_TIMEOUT", time.Millisecond),
		"Wait budget for -mode=within (env: BCSTRESS_TIMEOUT)")

	fs.IntVar(&cfg.BulkPct, "bulk-pct",
		getEnvInt("BCSTRESS_BULK_PCT", 10),
		"Percentage of operations using AddBulk/TakeBulk (env: BCSTRESS_BULK_PCT)")

	fs.StringVar(&cfg.LogLevel, "log-level",
		getEnv("BCSTRESS_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: BCSTRESS_LOG_LEVEL)")

	fs.StringVar(&cfg.LogFormat, "log-format",
		getEnv("BCSTRESS_LOG_FORMAT", "json"),
		"Log format: json, console (env: BCSTRESS_LOG_FORMAT)")

	fs.DurationVar(&cfg.ReportInterval, "report-interval",
		getEnvDuration("BCSTRESS_REPORT_INTERVAL", time.Second),
		"Progress log interval, 0 to disable (env: BCSTRESS_REPORT_INTERVAL)")

	fs.StringVar(&cfg.MetricsAddr, "metrics-addr",
		getEnv("BCSTRESS_METRICS_ADDR", ""),
		"Serve Prometheus metrics on this address, empty to disable (env: BCSTRESS_METRICS_ADDR)")

	fs.DurationVar(&cfg.Linger, "linger",
		getEnvDuration("BCSTRESS_LINGER", 0),
		"Keep the metrics endpoint up this long after the run (env: BCSTRESS_LINGER)")

	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")

	fs.Usage = func() {
		printUsage(fs.Output(), fs)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateFlags(cfg *CLIConfig) error {
	if cfg.ShowVersion {
		return nil
	}

	positive := []struct {
		name  string
		value int
	}{
		{"capacity", cfg.Capacity},
		{"producers", cfg.Producers},
		{"consumers", cfg.Consumers},
	}
	for _, p := range positive {
		if p.value < 1 {
			return fmt.Errorf("invalid %s: %d (must be >= 1)", p.name, p.value)
		}
	}
	if cfg.Peekers < 0 {
		return fmt.Errorf("invalid peekers: %d", cfg.Peekers)
	}
	if cfg.Elements < 0 {
		return fmt.Errorf("invalid elements: %d", cfg.Elements)
	}
	if cfg.Spin < 0 {
		return fmt.Errorf("invalid spin: %d", cfg.Spin)
	}
	if cfg.BulkPct < 0 || cfg.BulkPct > 100 {
		return fmt.Errorf("invalid bulk-pct: %d", cfg.BulkPct)
	}

	if _, err := parseMode(cfg.Mode, cfg.Timeout); err != nil {
		return err
	}

	if !slices.Contains([]string{"debug", "info", "warn", "error"}, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}
	if !slices.Contains([]string{"json", "console"}, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}
	if cfg.ReportInterval < 0 || cfg.Linger < 0 {
		return fmt.Errorf("durations must be >= 0")
	}
	return nil
}

// parseMode maps the -mode flag to a wait mode.
func parseMode(name string, timeout time.Duration) (bcoll.Mode, error) {
	switch strings.ToLower(name) {
	case "blocking":
		return bcoll.Blocking, nil
	case "immediate":
		return bcoll.Immediate, nil
	case "within":
		if timeout <= 0 {
			return 0, fmt.Errorf("invalid timeout for mode within: %v", timeout)
		}
		return bcoll.Within(timeout), nil
	default:
		return 0, fmt.Errorf("invalid mode: %s", name)
	}
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	_, _ = fmt.Fprintf(w, `%s - bounded collection stress driver

Usage: %s [options]

Options:
`, appName, os.Args[0])
	fs.PrintDefaults()
	_, _ = fmt.Fprintf(w, `
Examples:
  # Hand-off through a single slot
  %s --capacity=1 --producers=8 --consumers=8

  # Non-blocking producers and consumers with spinning waiters
  %s --mode=within --timeout=200us --spin=64

  # Expose metrics and keep them up for a minute after the run
  %s --metrics-addr=:9090 --linger=1m

Version: %s
`, os.Args[0], os.Args[0], os.Args[0], Version)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
