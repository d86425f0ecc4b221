// SPDX-License-Identifier: MIT

// Package metrics exposes the prometheus collectors of the benchmark tooling.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	plansBuiltTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gcbench_plans_built_total",
		Help: "Total number of run plans built from configuration documents",
	})

	planTasks = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gcbench_plan_tasks",
		Help: "Number of tasks in the most recently built plan",
	})

	tasksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gcbench_tasks_total",
		Help: "Executed benchmark tasks by comparison, output and outcome",
	}, []string{"comparison", "output", "outcome"}) // outcome=success|failure|skipped

	taskDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gcbench_task_duration_seconds",
		Help:    "Benchmark task execution time",
		Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
	}, []string{"comparison", "output"})

	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gcbench_run_duration_seconds",
		Help:    "End-to-end benchmark run time",
		Buckets: prometheus.ExponentialBuckets(0.1, 4, 10),
	})

	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gcbench_runs_total",
		Help: "Completed benchmark runs by outcome",
	}, []string{"outcome"}) // outcome=success|failure

	configReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gcbench_config_reloads_total",
		Help: "Configuration reload attempts by outcome",
	}, []string{"outcome"}) // outcome=success|failure

	configValidationErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gcbench_config_validation_errors_total",
		Help: "Total number of configuration validation errors",
	})
)

// RecordPlanBuilt records a successfully built plan and its task count.
func RecordPlanBuilt(tasks int) {
	plansBuiltTotal.Inc()
	planTasks.Set(float64(tasks))
}

// RecordTask records one executed task.
func RecordTask(comparison, output, outcome string, seconds float64) {
	tasksTotal.WithLabelValues(comparison, output, outcome).Inc()
	if outcome != "skipped" {
		taskDuration.WithLabelValues(comparison, output).Observe(seconds)
	}
}

// RecordRun records one completed run.
func RecordRun(outcome string, seconds float64) {
	runsTotal.WithLabelValues(outcome).Inc()
	runDuration.Observe(seconds)
}

// RecordConfigReload records a reload attempt.
func RecordConfigReload(outcome string) {
	configReloads.WithLabelValues(outcome).Inc()
}

// IncConfigValidationError records a validation failure.
func IncConfigValidationError() {
	configValidationErrors.Inc()
}
