// SPDX-License-Identifier: MIT

package runner

import (
	"context"
	"time"

	"github.com/airchem/gcbench/internal/plan"
)

// Task and run outcomes.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
	StatusSkipped = "skipped"
)

// Executor performs one benchmark task. Implementations do the actual
// comparison work; the built-in executor only prepares output directories and
// task manifests for an external engine.
type Executor interface {
	Execute(ctx context.Context, task plan.Task) error
}

// MetricsRecorder defines the interface for recording run metrics.
type MetricsRecorder interface {
	RecordTask(comparison, output, outcome string, seconds float64)
	RecordRun(outcome string, seconds float64)
}

// Options controls the behavior of a run.
type Options struct {
	DryRun      bool // Plan and log tasks without executing them
	Parallelism int  // Max parallel tasks (0 = GOMAXPROCS)
}

// Deps holds all dependencies for a run.
type Deps struct {
	Executor Executor
	Metrics  MetricsRecorder
	Clock    func() time.Time
}

// TaskResult is the outcome of one task.
type TaskResult struct {
	TaskID     string        `yaml:"task" json:"task"`
	Comparison string        `yaml:"comparison" json:"comparison"`
	Output     string        `yaml:"output" json:"output"`
	Status     string        `yaml:"status" json:"status"`
	Duration   time.Duration `yaml:"duration" json:"duration"`
	Error      string        `yaml:"error,omitempty" json:"error,omitempty"`
}

// Result is the outcome of one benchmark run.
type Result struct {
	RunID     string       `yaml:"run_id" json:"run_id"`
	BmkType   string       `yaml:"bmk_type" json:"bmk_type"`
	DryRun    bool         `yaml:"dry_run,omitempty" json:"dry_run,omitempty"`
	StartTime time.Time    `yaml:"start_time" json:"start_time"`
	EndTime   time.Time    `yaml:"end_time" json:"end_time"`
	Status    string       `yaml:"status" json:"status"`
	Tasks     []TaskResult `yaml:"tasks" json:"tasks"`
}

// Failed returns the number of failed tasks.
func (r Result) Failed() int {
	n := 0
	for _, t := range r.Tasks {
		if t.Status == StatusFailure {
			n++
		}
	}
	return n
}
