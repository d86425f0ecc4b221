// SPDX-License-Identifier: MIT

// Package config provides loading, validation and persistence of benchmark
// configuration documents.
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Benchmark types accepted in options.bmk_type.
const (
	BenchmarkTypeFullChem         = "FullChemBenchmark"
	BenchmarkTypeTransportTracers = "TransportTracersBenchmark"
	BenchmarkTypeCH4              = "CH4Benchmark"
)

// Model variants under comparison.
const (
	VariantGCC  = "gcc"
	VariantGCHP = "gchp"
)

// Roles of the two runs being compared.
const (
	RoleRef = "ref"
	RoleDev = "dev"
)

// Document is a benchmark configuration document. It parameterises one
// benchmark: which model output directories to compare, over which simulated
// period, and which plots and tables to produce.
type Document struct {
	Paths   Paths   `yaml:"paths"`
	Data    Data    `yaml:"data"`
	Options Options `yaml:"options"`
}

// Paths holds the file-system roots of a benchmark.
type Paths struct {
	MainDir    string `yaml:"main_dir"`
	ResultsDir string `yaml:"results_dir"`
	WeightsDir string `yaml:"weights_dir,omitempty"`
}

// Data names the reference and development runs.
type Data struct {
	Ref RunData `yaml:"ref"`
	Dev RunData `yaml:"dev"`
}

// RunData holds one dataset reference per model variant.
type RunData struct {
	GCC  DatasetRef `yaml:"gcc"`
	GCHP DatasetRef `yaml:"gchp"`
}

// DatasetRef points at the output of a single model run.
type DatasetRef struct {
	Version    string    `yaml:"version"`
	Dir        string    `yaml:"dir"`
	Subdir     string    `yaml:"subdir,omitempty"`
	BmkStart   Timestamp `yaml:"bmk_start"`
	BmkEnd     Timestamp `yaml:"bmk_end"`
	IsPre140   *bool     `yaml:"is_pre_14.0,omitempty"`
	Resolution string    `yaml:"resolution,omitempty"`
}

// Legacy reports whether the run used the pre-14.0 output layout.
func (d DatasetRef) Legacy() bool {
	return d.IsPre140 != nil && *d.IsPre140
}

// Options selects the benchmark type, the comparisons to run and the outputs
// to produce.
type Options struct {
	BmkType     string      `yaml:"bmk_type"`
	TestMode    bool        `yaml:"test_mode,omitempty"`
	Comparisons Comparisons `yaml:"comparisons"`
	Outputs     Outputs     `yaml:"outputs"`
}

// Comparison names in document order.
const (
	ComparisonGCCvsGCC             = "gcc_vs_gcc"
	ComparisonGCHPvsGCC            = "gchp_vs_gcc"
	ComparisonGCHPvsGCHP           = "gchp_vs_gchp"
	ComparisonGCHPvsGCCDiffOfDiffs = "gchp_vs_gcc_diff_of_diffs"
)

// Comparisons is the fixed set of named comparison definitions.
type Comparisons struct {
	GCCvsGCC             Comparison `yaml:"gcc_vs_gcc"`
	GCHPvsGCC            Comparison `yaml:"gchp_vs_gcc"`
	GCHPvsGCHP           Comparison `yaml:"gchp_vs_gchp"`
	GCHPvsGCCDiffOfDiffs Comparison `yaml:"gchp_vs_gcc_diff_of_diffs"`
}

// Comparison controls one comparison run.
type Comparison struct {
	Run          bool   `yaml:"run"`
	Dir          string `yaml:"dir"`
	TablesSubdir string `yaml:"tables_subdir,omitempty"`
}

// NamedComparison pairs a comparison with its document key.
type NamedComparison struct {
	Name string
	Comparison
}

// All returns the comparisons in stable document order.
func (c Comparisons) All() []NamedComparison {
	return []NamedComparison{
		{Name: ComparisonGCCvsGCC, Comparison: c.GCCvsGCC},
		{Name: ComparisonGCHPvsGCC, Comparison: c.GCHPvsGCC},
		{Name: ComparisonGCHPvsGCHP, Comparison: c.GCHPvsGCHP},
		{Name: ComparisonGCHPvsGCCDiffOfDiffs, Comparison: c.GCHPvsGCCDiffOfDiffs},
	}
}

// Enabled returns the comparisons with run: true, in stable order.
func (c Comparisons) Enabled() []NamedComparison {
	var out []NamedComparison
	for _, nc := range c.All() {
		if nc.Run {
			out = append(out, nc)
		}
	}
	return out
}

// Outputs maps named plot and table generators to enable flags.
type Outputs struct {
	PlotConc       bool        `yaml:"plot_conc"`
	PlotEmis       bool        `yaml:"plot_emis"`
	EmisTable      bool        `yaml:"emis_table"`
	PlotJValues    bool        `yaml:"plot_jvalues"`
	PlotAOD        bool        `yaml:"plot_aod"`
	MassTable      bool        `yaml:"mass_table"`
	OpsBudgetTable bool        `yaml:"ops_budget_table"`
	OHMetrics      bool        `yaml:"OH_metrics"`
	STETable       bool        `yaml:"ste_table"`
	SummaryTable   bool        `yaml:"summary_table,omitempty"`
	PlotOptions    PlotOptions `yaml:"plot_options,omitempty"`
}

// PlotOptions selects how concentration and emission plots are categorised.
type PlotOptions struct {
	BySpcCat bool `yaml:"by_spc_cat"`
	ByHcoCat bool `yaml:"by_hco_cat"`
}

// Timestamp layouts. Benchmark documents historically use zone-less ISO-8601
// date-times; RFC 3339 and bare dates are accepted too.
var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// Timestamp is a yaml-round-trippable benchmark timestamp.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t in a Timestamp.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// UnmarshalYAML parses a timestamp from any accepted layout.
func (t *Timestamp) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q (want e.g. 2019-01-01T00:00:00)", raw)
}

// MarshalYAML renders the canonical zone-less layout.
func (t Timestamp) MarshalYAML() (interface{}, error) {
	return t.Format(timestampLayouts[0]), nil
}
