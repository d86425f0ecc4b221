// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/airchem/gcbench/internal/config"
	"github.com/airchem/gcbench/internal/history"
	gclog "github.com/airchem/gcbench/internal/log"
	"github.com/airchem/gcbench/internal/metrics"
	"github.com/airchem/gcbench/internal/plan"
	"github.com/airchem/gcbench/internal/runner"
	"github.com/airchem/gcbench/internal/validate"
)

// maxParallelism caps --parallelism; each task spawns an engine process, so
// unbounded values would fork-bomb the host.
const maxParallelism = 256

// promRecorder bridges the runner to the prometheus metrics package.
type promRecorder struct{}

func (promRecorder) RecordTask(comparison, output, outcome string, seconds float64) {
	metrics.RecordTask(comparison, output, outcome, seconds)
}

func (promRecorder) RecordRun(outcome string, seconds float64) {
	metrics.RecordRun(outcome, seconds)
}

func runRunCmd(args []string) int {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	var file, historyDB string
	var dryRun bool
	var parallelism int
	fs.StringVar(&file, "file", "", "path to YAML configuration file")
	fs.StringVar(&file, "f", "", "path to YAML configuration file (shorthand)")
	fs.BoolVar(&dryRun, "dry-run", false, "plan and log tasks without executing them")
	fs.IntVar(&parallelism, "parallelism", config.ParseInt(config.EnvParallelism, 0),
		"max parallel tasks (0 = GOMAXPROCS)")
	fs.StringVar(&historyDB, "history", "", "path to run-history SQLite database (optional)")
	_ = fs.Parse(args)

	if file == "" {
		fmt.Fprintln(os.Stderr, "Error: --file is required")
		return 2
	}

	v := validate.New()
	v.Range("parallelism", parallelism, 0, maxParallelism)
	if err := v.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	logger := gclog.WithComponent("run")

	doc, err := config.NewLoader(file).Load()
	if err != nil {
		metrics.IncConfigValidationError()
		logger.Error().Err(err).Str("path", file).Msg("failed to load configuration")
		return 1
	}

	p, err := plan.Build(doc)
	if err != nil {
		logger.Error().Err(err).Msg("failed to build plan")
		return 1
	}
	metrics.RecordPlanBuilt(len(p.Tasks))

	if len(p.Tasks) == 0 {
		logger.Warn().Msg("plan is empty, nothing to do")
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r := runner.New(runner.Deps{Metrics: promRecorder{}}, runner.Options{
		DryRun:      dryRun,
		Parallelism: parallelism,
	})

	result, runErr := r.Run(ctx, p)

	if !dryRun {
		if path, err := runner.WriteSummary(p.ResultsDir, result); err != nil {
			logger.Error().Err(err).Msg("failed to write run summary")
		} else {
			logger.Info().Str("path", path).Msg("run summary written")
		}
	}

	if historyDB != "" {
		if err := recordHistory(ctx, historyDB, file, result); err != nil {
			logger.Error().Err(err).Msg("failed to record run history")
		}
	}

	if runErr != nil {
		logger.Error().Err(runErr).Msg("run aborted")
		return 1
	}
	if result.Status != runner.StatusSuccess {
		return 1
	}
	return 0
}

func recordHistory(ctx context.Context, dbPath, configPath string, result runner.Result) error {
	store, err := history.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	// Use a background-derived context: history should still be written when
	// the run was interrupted.
	if ctx.Err() != nil {
		ctx = context.Background()
	}
	return store.RecordRun(ctx, configPath, result)
}
