// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/airchem/gcbench/internal/metrics"
	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"
)

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleConfig renders the current document in its native YAML form.
func (s *Server) handleConfig(w http.ResponseWriter, _ *http.Request) {
	doc := s.holder.Get()

	w.Header().Set("Content-Type", "application/yaml")
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		s.logger.Error().Err(err).Str("event", "api.config_encode_failed").Msg("encode config")
	}
	_ = enc.Close()
}

type runJSON struct {
	ID          string    `json:"id"`
	BmkType     string    `json:"bmk_type"`
	ConfigPath  string    `json:"config_path,omitempty"`
	Status      string    `json:"status"`
	DryRun      bool      `json:"dry_run,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	TasksTotal  int       `json:"tasks_total"`
	TasksFailed int       `json:"tasks_failed"`
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "run history not enabled", http.StatusNotFound)
		return
	}

	runs, err := s.store.ListRuns(r.Context(), 50)
	if err != nil {
		s.logger.Error().Err(err).Str("event", "api.runs_failed").Msg("list runs")
		http.Error(w, "failed to list runs", http.StatusInternalServerError)
		return
	}

	out := make([]runJSON, 0, len(runs))
	for _, run := range runs {
		out = append(out, runJSON{
			ID:          run.ID,
			BmkType:     run.BmkType,
			ConfigPath:  run.ConfigPath,
			Status:      run.Status,
			DryRun:      run.DryRun,
			StartedAt:   run.StartedAt,
			FinishedAt:  run.FinishedAt,
			TasksTotal:  run.TasksTotal,
			TasksFailed: run.TasksFailed,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type taskJSON struct {
	TaskID     string `json:"task"`
	Comparison string `json:"comparison"`
	Output     string `json:"output"`
	Status     string `json:"status"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

func (s *Server) handleRunTasks(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "run history not enabled", http.StatusNotFound)
		return
	}

	runID := chi.URLParam(r, "id")
	tasks, err := s.store.TasksForRun(r.Context(), runID)
	if err != nil {
		s.logger.Error().Err(err).Str("event", "api.tasks_failed").Msg("list run tasks")
		http.Error(w, "failed to list tasks", http.StatusInternalServerError)
		return
	}

	out := make([]taskJSON, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskJSON{
			TaskID:     t.TaskID,
			Comparison: t.Comparison,
			Output:     t.Output,
			Status:     t.Status,
			DurationMS: t.Duration.Milliseconds(),
			Error:      t.Error,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.holder.Reload(r.Context()); err != nil {
		metrics.RecordConfigReload("failure")
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	metrics.RecordConfigReload("success")
	writeJSON(w, http.StatusOK, map[string]string{"status": "reloaded"})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
