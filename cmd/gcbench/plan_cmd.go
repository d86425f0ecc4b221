// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/airchem/gcbench/internal/config"
	"github.com/airchem/gcbench/internal/metrics"
	"github.com/airchem/gcbench/internal/plan"
	"gopkg.in/yaml.v3"
)

func runPlanCmd(args []string) int {
	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	var file, format string
	fs.StringVar(&file, "file", "", "path to YAML configuration file")
	fs.StringVar(&file, "f", "", "path to YAML configuration file (shorthand)")
	fs.StringVar(&format, "o", "table", "output format: table or yaml")
	_ = fs.Parse(args)

	if file == "" {
		fmt.Fprintln(os.Stderr, "Error: --file is required")
		return 2
	}

	doc, err := config.NewLoader(file).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error in %s:\n  %v\n", file, err)
		return 1
	}

	p, err := plan.Build(doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Plan error: %v\n", err)
		return 1
	}
	metrics.RecordPlanBuilt(len(p.Tasks))

	switch format {
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			fmt.Fprintf(os.Stderr, "Encode error: %v\n", err)
			return 1
		}
		_ = enc.Close()
	default:
		printPlanTable(p)
	}
	return 0
}

func printPlanTable(p plan.Plan) {
	fmt.Printf("benchmark: %s  (tasks: %d, months: %s)\n\n", p.BmkType, len(p.Tasks), monthSpan(p))

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TASK\tREF\tDEV\tDESTINATION")
	for _, t := range p.Tasks {
		ref, dev := t.Inputs[0].RefVersion, t.Inputs[0].DevVersion
		dest := t.OutDir
		if !t.Output.IsPlot() {
			dest = t.TablesDir
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, ref, dev, dest)
	}
	_ = w.Flush()
}

func monthSpan(p plan.Plan) string {
	if len(p.Tasks) == 0 || len(p.Tasks[0].Months) == 0 {
		return "none"
	}
	months := p.Tasks[0].Months
	first := months[0].Format("2006-01")
	last := months[len(months)-1].Format("2006-01")
	if first == last {
		return first
	}
	return first + ".." + last
}
