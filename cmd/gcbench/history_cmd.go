// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/airchem/gcbench/internal/config"
	"github.com/airchem/gcbench/internal/history"
)

func runHistoryCmd(args []string) int {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	var dbPath string
	var limit int
	fs.StringVar(&dbPath, "history", "", "path to run-history SQLite database")
	fs.IntVar(&limit, "limit", 20, "max number of runs to list")
	_ = fs.Parse(args)

	if dbPath == "" {
		dbPath = config.ParseString("GCBENCH_HISTORY_DB", "")
	}
	if dbPath == "" {
		fmt.Fprintln(os.Stderr, "Error: --history (or GCBENCH_HISTORY_DB) is required")
		return 2
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "History error: %v\n", err)
		return 1
	}
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns(context.Background(), limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "History error: %v\n", err)
		return 1
	}

	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return 0
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tTYPE\tSTATUS\tSTARTED\tELAPSED\tTASKS\tFAILED")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%d\n",
			shortID(r.ID), r.BmkType, r.Status,
			r.StartedAt.Local().Format(time.DateTime),
			r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond),
			r.TasksTotal, r.TasksFailed)
	}
	_ = w.Flush()
	return 0
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
