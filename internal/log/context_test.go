package log

import (
	"bytes"
	"context"
	"testing"
)

func TestContextRoundTrip(t *testing.T) {
	ctx := ContextWithRunID(context.Background(), "run-123")
	ctx = ContextWithTaskID(ctx, "gcc_vs_gcc/plot_conc")

	if got := RunIDFromContext(ctx); got != "run-123" {
		t.Errorf("RunIDFromContext = %q, want run-123", got)
	}
	if got := TaskIDFromContext(ctx); got != "gcc_vs_gcc/plot_conc" {
		t.Errorf("TaskIDFromContext = %q, want task id", got)
	}
}

func TestContextMissingValues(t *testing.T) {
	if got := RunIDFromContext(context.Background()); got != "" {
		t.Errorf("RunIDFromContext on empty context = %q, want empty", got)
	}
	if got := TaskIDFromContext(nil); got != "" { //nolint:staticcheck // nil context is part of the contract
		t.Errorf("TaskIDFromContext on nil context = %q, want empty", got)
	}
}

func TestFromContextAnnotatesLogger(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf, Service: "test"})

	ctx := ContextWithRunID(context.Background(), "run-42")
	ctx = ContextWithTaskID(ctx, "gchp_vs_gchp/mass_table")

	l := FromContext(ctx)
	l.Info().Msg("hello")

	out := buf.String()
	if !bytes.Contains([]byte(out), []byte(`"run_id":"run-42"`)) {
		t.Errorf("log line missing run_id: %s", out)
	}
	if !bytes.Contains([]byte(out), []byte(`"task_id":"gchp_vs_gchp/mass_table"`)) {
		t.Errorf("log line missing task_id: %s", out)
	}
}
