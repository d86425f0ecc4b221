// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/airchem/gcbench/internal/api"
	"github.com/airchem/gcbench/internal/config"
	"github.com/airchem/gcbench/internal/history"
	gclog "github.com/airchem/gcbench/internal/log"
)

// runServeCmd runs watch mode: the document is kept loaded and re-validated
// on every edit, and the operator API exposes health, metrics and history.
func runServeCmd(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	var file, listen, historyDB string
	fs.StringVar(&file, "file", "", "path to YAML configuration file")
	fs.StringVar(&file, "f", "", "path to YAML configuration file (shorthand)")
	fs.StringVar(&listen, "listen", "127.0.0.1:8642", "operator API listen address")
	fs.StringVar(&historyDB, "history", "", "path to run-history SQLite database (optional)")
	_ = fs.Parse(args)

	if file == "" {
		fmt.Fprintln(os.Stderr, "Error: --file is required")
		return 2
	}

	logger := gclog.WithComponent("serve")

	loader := config.NewLoader(file)
	doc, err := loader.Load()
	if err != nil {
		logger.Error().Err(err).Str("path", file).Msg("failed to load configuration")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	holder := config.NewHolder(doc, loader, file)
	if err := holder.StartWatcher(ctx); err != nil {
		logger.Error().Err(err).Msg("failed to start config watcher")
		return 1
	}
	defer holder.Stop()

	var store *history.Store
	if historyDB == "" {
		historyDB = config.ParseString("GCBENCH_HISTORY_DB", "")
	}
	if historyDB != "" {
		store, err = history.NewStore(historyDB)
		if err != nil {
			logger.Error().Err(err).Msg("failed to open run history")
			return 1
		}
		defer func() { _ = store.Close() }()
	}

	srv := api.New(listen, holder, store)
	if err := srv.Start(ctx); err != nil {
		logger.Error().Err(err).Msg("operator API failed")
		return 1
	}

	logger.Info().Msg("shutdown complete")
	return 0
}
