// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command bcstress drives a bcoll collection with concurrent producers,
// consumers and index followers, and verifies that every element passed
// through exactly once.
//
// It exits non-zero when the checksum of consumed elements does not match
// what was produced.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"code.hybscloud.com/bcoll"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Build information constants
const (
	Version = "0.1.0"
	appName = "bcstress"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		_, _ = fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	cfg, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	if err := validateFlags(cfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	if cfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil
	}

	runID := uuid.NewString()
	logger, err := setupLogger(cfg.LogLevel, cfg.LogFormat, runID)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return execute(ctx, cfg, logger)
}

// execute runs one workload and, when configured, serves its metrics.
func execute(ctx context.Context, cfg *CLIConfig, logger *zap.Logger) error {
	w, err := newWorkload(cfg, logger)
	if err != nil {
		return err
	}

	var metrics *metricsServer
	if cfg.MetricsAddr != "" {
		metrics, err = startMetrics(cfg.MetricsAddr, w.coll, logger)
		if err != nil {
			return err
		}
		defer metrics.shutdown(5 * time.Second)
	}

	logger.Info("starting workload",
		zap.Int("capacity", cfg.Capacity),
		zap.Int("producers", cfg.Producers),
		zap.Int("consumers", cfg.Consumers),
		zap.Int("peekers", cfg.Peekers),
		zap.Int("elements", cfg.Elements),
		zap.Stringer("mode", w.mode),
		zap.Int("spin", cfg.Spin),
		zap.Bool("race", bcoll.RaceEnabled),
	)

	r, err := w.run(ctx)
	fields := []zap.Field{
		zap.Uint64("consumed", r.Consumed),
		zap.Uint64("sum", r.Sum),
		zap.Uint64("want", r.Want),
		zap.Uint64("peeks", r.Peeks),
		zap.Uint64("parks", r.Stats.Parks),
		zap.Uint64("add_timeouts", r.Stats.AddTimeouts),
		zap.Uint64("take_timeouts", r.Stats.TakeTimeouts),
		zap.Duration("elapsed", r.Elapsed),
	}
	if r.Elapsed > 0 {
		fields = append(fields, zap.Float64("ops_per_sec", float64(r.Consumed)/r.Elapsed.Seconds()))
	}
	if err != nil {
		logger.Error("workload failed", append(fields, zap.Error(err))...)
		return err
	}
	logger.Info("workload complete", fields...)

	if metrics != nil && cfg.Linger > 0 {
		logger.Info("lingering for metrics scrape", zap.Duration("linger", cfg.Linger))
		select {
		case <-ctx.Done():
		case <-time.After(cfg.Linger):
		}
	}
	return nil
}
