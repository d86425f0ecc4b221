// SPDX-License-Identifier: MIT

// gcbench plans and executes model benchmark comparisons driven by YAML
// configuration documents.
//
// Subcommands:
//
//	plan     print the task expansion of a configuration document
//	run      execute the expanded tasks
//	diff     compare two configuration documents
//	history  list recorded benchmark runs
//	serve    watch a document and expose the operator API
package main

import (
	"fmt"
	"os"

	gclog "github.com/airchem/gcbench/internal/log"
)

var (
	version   = "v0.3.0"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	gclog.Configure(gclog.Config{Service: "gcbench", Version: version})

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "plan":
		os.Exit(runPlanCmd(os.Args[2:]))
	case "run":
		os.Exit(runRunCmd(os.Args[2:]))
	case "diff":
		os.Exit(runDiffCmd(os.Args[2:]))
	case "history":
		os.Exit(runHistoryCmd(os.Args[2:]))
	case "serve":
		os.Exit(runServeCmd(os.Args[2:]))
	case "version", "-version", "--version":
		fmt.Printf("%s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  gcbench plan -f <config.yml>")
	fmt.Fprintln(os.Stderr, "  gcbench run -f <config.yml> [--dry-run] [--parallelism N] [--history <db>]")
	fmt.Fprintln(os.Stderr, "  gcbench diff <old.yml> <new.yml>")
	fmt.Fprintln(os.Stderr, "  gcbench history [--history <db>] [--limit N]")
	fmt.Fprintln(os.Stderr, "  gcbench serve -f <config.yml> [--listen addr] [--history <db>]")
	fmt.Fprintln(os.Stderr, "  gcbench version")
}
