// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/airchem/gcbench/internal/config"
)

// runDiffCmd compares two configuration documents. Exit codes follow diff
// convention: 0 equal, 1 different, 2 usage or load error.
func runDiffCmd(args []string) int {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Usage: gcbench diff <old.yml> <new.yml>")
		return 2
	}

	oldDoc, err := config.NewLoader(fs.Arg(0)).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error in %s:\n  %v\n", fs.Arg(0), err)
		return 2
	}
	newDoc, err := config.NewLoader(fs.Arg(1)).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error in %s:\n  %v\n", fs.Arg(1), err)
		return 2
	}

	changed := config.Diff(oldDoc, newDoc)
	if len(changed) == 0 {
		fmt.Println("documents are semantically equivalent")
		return 0
	}

	fmt.Printf("%d field(s) differ:\n", len(changed))
	for _, field := range changed {
		fmt.Printf("  %s\n", field)
	}
	return 1
}
