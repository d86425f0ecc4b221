// SPDX-License-Identifier: MIT

// Package runner executes benchmark run plans.
package runner

import (
	"context"
	"runtime"
	"time"

	gclog "github.com/airchem/gcbench/internal/log"
	"github.com/airchem/gcbench/internal/plan"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Runner executes plans with bounded parallelism.
type Runner struct {
	deps Deps
	opts Options
}

// New creates a Runner. A nil Executor falls back to the manifest executor,
// a nil Clock to time.Now.
func New(deps Deps, opts Options) *Runner {
	if deps.Executor == nil {
		deps.Executor = NewManifestExecutor()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	return &Runner{deps: deps, opts: opts}
}

// Run executes every task of the plan. Task failures do not abort the run;
// the remaining comparisons still produce their outputs and the failures are
// reported in the result. Context cancellation does abort.
func (r *Runner) Run(ctx context.Context, p plan.Plan) (Result, error) {
	runID := uuid.NewString()
	ctx = gclog.ContextWithRunID(ctx, runID)
	logger := gclog.WithComponentFromContext(ctx, "runner")

	result := Result{
		RunID:     runID,
		BmkType:   p.BmkType,
		DryRun:    r.opts.DryRun,
		StartTime: r.deps.Clock(),
		Tasks:     make([]TaskResult, len(p.Tasks)),
	}

	logger.Info().
		Str("event", "run.start").
		Str("bmk_type", p.BmkType).
		Int("tasks", len(p.Tasks)).
		Bool("dry_run", r.opts.DryRun).
		Msg("starting benchmark run")

	g, gctx := errgroup.WithContext(ctx)
	limit := r.opts.Parallelism
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(limit)

	for i, task := range p.Tasks {
		i, task := i, task
		g.Go(func() error {
			result.Tasks[i] = r.runTask(gctx, task)
			return nil
		})
	}

	// Goroutines only report through result.Tasks; the group error is the
	// context error, if any.
	_ = g.Wait()

	result.EndTime = r.deps.Clock()
	result.Status = StatusSuccess
	if err := ctx.Err(); err != nil {
		result.Status = StatusFailure
	} else if result.Failed() > 0 {
		result.Status = StatusFailure
	}

	elapsed := result.EndTime.Sub(result.StartTime)
	if r.deps.Metrics != nil {
		r.deps.Metrics.RecordRun(result.Status, elapsed.Seconds())
	}

	logger.Info().
		Str("event", "run.done").
		Str("status", result.Status).
		Int("failed", result.Failed()).
		Dur("elapsed", elapsed).
		Msg("benchmark run finished")

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

func (r *Runner) runTask(ctx context.Context, task plan.Task) TaskResult {
	ctx = gclog.ContextWithTaskID(ctx, task.ID)
	logger := gclog.WithComponentFromContext(ctx, "runner")

	tr := TaskResult{
		TaskID:     task.ID,
		Comparison: task.Comparison,
		Output:     string(task.Output),
	}

	if r.opts.DryRun {
		tr.Status = StatusSkipped
		logger.Info().Str("event", "task.skip").Msg("dry run, task skipped")
		if r.deps.Metrics != nil {
			r.deps.Metrics.RecordTask(tr.Comparison, tr.Output, tr.Status, 0)
		}
		return tr
	}

	if err := ctx.Err(); err != nil {
		tr.Status = StatusFailure
		tr.Error = err.Error()
		return tr
	}

	start := r.deps.Clock()
	err := r.deps.Executor.Execute(ctx, task)
	tr.Duration = r.deps.Clock().Sub(start)

	if err != nil {
		tr.Status = StatusFailure
		tr.Error = err.Error()
		logger.Error().
			Err(err).
			Str("event", "task.failed").
			Dur("elapsed", tr.Duration).
			Msg("task failed")
	} else {
		tr.Status = StatusSuccess
		logger.Info().
			Str("event", "task.done").
			Dur("elapsed", tr.Duration).
			Msg("task finished")
	}

	if r.deps.Metrics != nil {
		r.deps.Metrics.RecordTask(tr.Comparison, tr.Output, tr.Status, tr.Duration.Seconds())
	}
	return tr
}
