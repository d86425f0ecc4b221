// SPDX-License-Identifier: MIT

// Package api exposes the operator HTTP surface of the watch daemon: health,
// metrics, run history and config introspection.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/airchem/gcbench/internal/config"
	"github.com/airchem/gcbench/internal/history"
	gclog "github.com/airchem/gcbench/internal/log"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Server serves the operator API.
type Server struct {
	holder *config.Holder
	store  *history.Store // optional, may be nil
	logger zerolog.Logger
	http   *http.Server
}

// New creates a Server listening on addr.
func New(addr string, holder *config.Holder, store *history.Store) *Server {
	s := &Server{
		holder: holder,
		store:  store,
		logger: gclog.WithComponent("api"),
	}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) router() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealthz)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/api/config", s.handleConfig)
	r.Get("/api/runs", s.handleRuns)
	r.Get("/api/runs/{id}/tasks", s.handleRunTasks)

	r.Post("/internal/config/reload", s.handleReload)

	return r
}

// Start runs the HTTP server until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().
			Str("event", "api.listen").
			Str("addr", s.http.Addr).
			Msg("operator API listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}
