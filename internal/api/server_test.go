// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/airchem/gcbench/internal/config"
	"github.com/airchem/gcbench/internal/history"
	"github.com/airchem/gcbench/internal/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
paths:
  main_dir: /data/benchmarks
  results_dir: Results
data:
  ref:
    gcc:
      version: GCC_ref
      dir: GCC_ref
      bmk_start: "2019-01-01T00:00:00"
      bmk_end: "2020-01-01T00:00:00"
  dev:
    gcc:
      version: GCC_dev
      dir: GCC_dev
      bmk_start: "2019-01-01T00:00:00"
      bmk_end: "2020-01-01T00:00:00"
options:
  bmk_type: FullChemBenchmark
  comparisons:
    gcc_vs_gcc:
      run: true
      dir: GCC_comparison
  outputs:
    plot_conc: true
`

func newTestServer(t *testing.T, store *history.Store) (*Server, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), 0o600))

	loader := config.NewLoader(path)
	doc, err := loader.Load()
	require.NoError(t, err)

	holder := config.NewHolder(doc, loader, path)
	return New("127.0.0.1:0", holder, store), path
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	s.router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestConfigEndpointRendersYAML(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	s.router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/config", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "yaml")
	assert.Contains(t, rec.Body.String(), "bmk_type: FullChemBenchmark")
	assert.Contains(t, rec.Body.String(), "version: GCC_dev")
}

func TestRunsEndpointWithoutStore(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	s.router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRunsEndpointListsHistory(t *testing.T) {
	store, err := history.NewStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	res := runner.Result{
		RunID:     "run-1",
		BmkType:   "FullChemBenchmark",
		StartTime: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 2, 1, 12, 5, 0, 0, time.UTC),
		Status:    runner.StatusSuccess,
		Tasks: []runner.TaskResult{
			{TaskID: "gcc_vs_gcc/plot_conc", Comparison: "gcc_vs_gcc", Output: "plot_conc", Status: runner.StatusSuccess},
		},
	}
	require.NoError(t, store.RecordRun(context.Background(), "config.yml", res))

	s, _ := newTestServer(t, store)

	rec := httptest.NewRecorder()
	s.router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var runs []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, "run-1", runs[0]["id"])
	assert.Equal(t, "success", runs[0]["status"])

	rec = httptest.NewRecorder()
	s.router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs/run-1/tasks", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var tasks []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "gcc_vs_gcc/plot_conc", tasks[0]["task"])
}

func TestReloadEndpoint(t *testing.T) {
	s, path := newTestServer(t, nil)

	// Valid edit reloads.
	edited := strings.Replace(testConfigYAML, "plot_conc: true", "plot_conc: false", 1)
	require.NoError(t, os.WriteFile(path, []byte(edited), 0o600))

	rec := httptest.NewRecorder()
	s.router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/internal/config/reload", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, s.holder.Get().Options.Outputs.PlotConc)

	// Broken edit is rejected, old config stays.
	require.NoError(t, os.WriteFile(path, []byte("options:\n  bmk_type: Nope\n"), 0o600))

	rec = httptest.NewRecorder()
	s.router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/internal/config/reload", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "FullChemBenchmark", s.holder.Get().Options.BmkType)
}
