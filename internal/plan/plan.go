// SPDX-License-Identifier: MIT

// Package plan expands a benchmark configuration document into the concrete
// set of comparison/output tasks an executor has to perform.
package plan

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/airchem/gcbench/internal/config"
)

// OutputKind names one plot or table generator.
type OutputKind string

// Output kinds, in document order.
const (
	OutputPlotConc       OutputKind = "plot_conc"
	OutputPlotEmis       OutputKind = "plot_emis"
	OutputEmisTable      OutputKind = "emis_table"
	OutputPlotJValues    OutputKind = "plot_jvalues"
	OutputPlotAOD        OutputKind = "plot_aod"
	OutputMassTable      OutputKind = "mass_table"
	OutputOpsBudgetTable OutputKind = "ops_budget_table"
	OutputOHMetrics      OutputKind = "OH_metrics"
	OutputSTETable       OutputKind = "ste_table"
	OutputSummaryTable   OutputKind = "summary_table"
)

// IsPlot reports whether the output produces plot files (as opposed to tables).
func (k OutputKind) IsPlot() bool {
	switch k {
	case OutputPlotConc, OutputPlotEmis, OutputPlotJValues, OutputPlotAOD:
		return true
	}
	return false
}

// Input is one resolved ref/dev dataset pairing of a task.
type Input struct {
	RefName    string `yaml:"ref"` // document path, e.g. "data.ref.gcc"
	DevName    string `yaml:"dev"`
	RefVersion string `yaml:"ref_version"`
	DevVersion string `yaml:"dev_version"`
	RefDir     string `yaml:"ref_dir"` // absolute model output directory
	DevDir     string `yaml:"dev_dir"`
	RefLegacy  bool   `yaml:"ref_legacy,omitempty"`
	DevLegacy  bool   `yaml:"dev_legacy,omitempty"`
	RefRes     string `yaml:"ref_res,omitempty"` // GCHP cubed-sphere resolution, if any
	DevRes     string `yaml:"dev_res,omitempty"`
}

// Task is one unit of work: produce one output for one comparison.
type Task struct {
	ID         string      `yaml:"id"` // "<comparison>/<output>"
	Comparison string      `yaml:"comparison"`
	Output     OutputKind  `yaml:"output"`
	Inputs     []Input     `yaml:"inputs"`
	OutDir     string      `yaml:"out_dir"`    // plot destination
	TablesDir  string      `yaml:"tables_dir"` // table destination
	WeightsDir string      `yaml:"weights_dir,omitempty"`
	Months     []time.Time `yaml:"months"` // calendar months covered by the benchmark period

	// Plot categorisation, carried only on plot tasks.
	BySpcCat bool `yaml:"by_spc_cat,omitempty"`
	ByHcoCat bool `yaml:"by_hco_cat,omitempty"`
}

// Plan is the full expansion of one document.
type Plan struct {
	BmkType    string `yaml:"bmk_type"`
	TestMode   bool   `yaml:"test_mode,omitempty"`
	ResultsDir string `yaml:"results_dir"`
	Tasks      []Task `yaml:"tasks"`
}

// Build expands a validated document into a deterministic plan. Comparisons
// and outputs appear in document order, so two builds of the same document
// yield identical plans.
func Build(doc config.Document) (Plan, error) {
	p := Plan{
		BmkType:    doc.Options.BmkType,
		TestMode:   doc.Options.TestMode,
		ResultsDir: doc.Paths.ResultsDir,
	}

	outputs := enabledOutputs(doc.Options.Outputs)

	for _, nc := range doc.Options.Comparisons.Enabled() {
		pairs, err := doc.Data.PairsFor(nc.Name)
		if err != nil {
			return Plan{}, err
		}

		inputs := make([]Input, 0, len(pairs))
		for _, pair := range pairs {
			inputs = append(inputs, Input{
				RefName:    pair.RefName,
				DevName:    pair.DevName,
				RefVersion: pair.Ref.Version,
				DevVersion: pair.Dev.Version,
				RefDir:     datasetDir(doc.Paths.MainDir, pair.Ref),
				DevDir:     datasetDir(doc.Paths.MainDir, pair.Dev),
				RefLegacy:  pair.Ref.Legacy(),
				DevLegacy:  pair.Dev.Legacy(),
				RefRes:     pair.Ref.Resolution,
				DevRes:     pair.Dev.Resolution,
			})
		}

		months, err := monthsBetween(pairs[0].Ref.BmkStart.Time, pairs[0].Ref.BmkEnd.Time)
		if err != nil {
			return Plan{}, fmt.Errorf("comparison %s: %w", nc.Name, err)
		}

		outDir := filepath.Join(doc.Paths.ResultsDir, nc.Dir)
		tablesDir := filepath.Join(outDir, nc.TablesSubdir)

		for _, out := range outputs {
			if !applies(nc.Name, out) {
				continue
			}
			task := Task{
				ID:         nc.Name + "/" + string(out),
				Comparison: nc.Name,
				Output:     out,
				Inputs:     inputs,
				OutDir:     outDir,
				TablesDir:  tablesDir,
				WeightsDir: doc.Paths.WeightsDir,
				Months:     months,
			}
			if out.IsPlot() {
				task.BySpcCat = doc.Options.Outputs.PlotOptions.BySpcCat
				task.ByHcoCat = doc.Options.Outputs.PlotOptions.ByHcoCat
			}
			p.Tasks = append(p.Tasks, task)
		}
	}

	return p, nil
}

// datasetDir resolves a dataset's model output directory. Absolute dirs stand
// on their own; relative dirs anchor under main_dir.
func datasetDir(mainDir string, ref config.DatasetRef) string {
	if filepath.IsAbs(ref.Dir) {
		return filepath.Join(ref.Dir, ref.Subdir)
	}
	return filepath.Join(mainDir, ref.Dir, ref.Subdir)
}

// applies filters outputs that a comparison cannot produce. Strat-trop
// exchange tables exist only for the classic model, and diff-of-diffs runs
// produce plots only.
func applies(comparison string, out OutputKind) bool {
	switch comparison {
	case config.ComparisonGCHPvsGCCDiffOfDiffs:
		return out.IsPlot()
	case config.ComparisonGCHPvsGCC, config.ComparisonGCHPvsGCHP:
		return out != OutputSTETable
	}
	return true
}

func enabledOutputs(o config.Outputs) []OutputKind {
	var out []OutputKind
	for _, e := range []struct {
		on   bool
		kind OutputKind
	}{
		{o.PlotConc, OutputPlotConc},
		{o.PlotEmis, OutputPlotEmis},
		{o.EmisTable, OutputEmisTable},
		{o.PlotJValues, OutputPlotJValues},
		{o.PlotAOD, OutputPlotAOD},
		{o.MassTable, OutputMassTable},
		{o.OpsBudgetTable, OutputOpsBudgetTable},
		{o.OHMetrics, OutputOHMetrics},
		{o.STETable, OutputSTETable},
		{o.SummaryTable, OutputSummaryTable},
	} {
		if e.on {
			out = append(out, e.kind)
		}
	}
	return out
}

// monthsBetween expands [start, end) into first-of-month instants. A one-month
// benchmark yields a single month, a one-year benchmark twelve.
func monthsBetween(start, end time.Time) ([]time.Time, error) {
	if !end.After(start) {
		return nil, fmt.Errorf("benchmark period end %s not after start %s",
			end.Format(time.RFC3339), start.Format(time.RFC3339))
	}

	var months []time.Time
	cur := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
	for cur.Before(end) {
		months = append(months, cur)
		cur = cur.AddDate(0, 1, 0)
	}
	return months, nil
}
