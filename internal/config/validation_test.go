// SPDX-License-Identifier: MIT

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDoc() Document {
	start := NewTimestamp(time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC))
	end := NewTimestamp(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))

	ds := func(version string) DatasetRef {
		return DatasetRef{
			Version:  version,
			Dir:      version,
			Subdir:   DefaultSubdir,
			BmkStart: start,
			BmkEnd:   end,
		}
	}

	return Document{
		Paths: Paths{
			MainDir:    "/data/benchmarks",
			ResultsDir: "/data/benchmarks/Results",
		},
		Data: Data{
			Ref: RunData{GCC: ds("GCC_ref"), GCHP: ds("GCHP_ref")},
			Dev: RunData{GCC: ds("GCC_dev"), GCHP: ds("GCHP_dev")},
		},
		Options: Options{
			BmkType: BenchmarkTypeFullChem,
			Comparisons: Comparisons{
				GCCvsGCC:             Comparison{Run: true, Dir: "GCC_comparison", TablesSubdir: "Tables"},
				GCHPvsGCC:            Comparison{Run: true, Dir: "GCHP_GCC_comparison", TablesSubdir: "Tables"},
				GCHPvsGCHP:           Comparison{Run: true, Dir: "GCHP_comparison", TablesSubdir: "Tables"},
				GCHPvsGCCDiffOfDiffs: Comparison{Run: false, Dir: "GCHP_GCC_diff_of_diffs", TablesSubdir: "Tables"},
			},
			Outputs: Outputs{PlotConc: true, MassTable: true},
		},
	}
}

func TestValidateAcceptsValidDocument(t *testing.T) {
	require.NoError(t, Validate(validDoc()))
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Document)
		wantMsg string
	}{
		{
			name:    "missing main_dir",
			mutate:  func(d *Document) { d.Paths.MainDir = "" },
			wantMsg: "paths.main_dir",
		},
		{
			name:    "unknown benchmark type",
			mutate:  func(d *Document) { d.Options.BmkType = "MegaBenchmark" },
			wantMsg: "options.bmk_type",
		},
		{
			name: "end before start",
			mutate: func(d *Document) {
				d.Data.Ref.GCC.BmkEnd = NewTimestamp(time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC))
			},
			wantMsg: "bmk_start/bmk_end",
		},
		{
			name: "end equals start",
			mutate: func(d *Document) {
				d.Data.Dev.GCC.BmkEnd = d.Data.Dev.GCC.BmkStart
			},
			wantMsg: "bmk_start/bmk_end",
		},
		{
			name: "version with whitespace",
			mutate: func(d *Document) {
				d.Data.Dev.GCC.Version = "GCC 14.4.0"
			},
			wantMsg: "whitespace",
		},
		{
			name: "empty version",
			mutate: func(d *Document) {
				d.Data.Ref.GCHP.Version = ""
			},
			wantMsg: "data.ref.gchp.version",
		},
		{
			name: "version with path separator",
			mutate: func(d *Document) {
				d.Data.Dev.GCHP.Version = "GCHP/dev"
			},
			wantMsg: "path separators",
		},
		{
			name: "ref and dev versions collide",
			mutate: func(d *Document) {
				d.Data.Dev.GCC.Version = d.Data.Ref.GCC.Version
			},
			wantMsg: "collides",
		},
		{
			name: "enabled comparison without dir",
			mutate: func(d *Document) {
				d.Options.Comparisons.GCCvsGCC.Dir = ""
			},
			wantMsg: "dir is required",
		},
		{
			name: "comparison dirs collide",
			mutate: func(d *Document) {
				d.Options.Comparisons.GCHPvsGCHP.Dir = d.Options.Comparisons.GCCvsGCC.Dir
			},
			wantMsg: "collides",
		},
		{
			name: "disabled comparison dir still collides",
			mutate: func(d *Document) {
				d.Options.Comparisons.GCHPvsGCCDiffOfDiffs.Dir = d.Options.Comparisons.GCCvsGCC.Dir
			},
			wantMsg: "collides",
		},
		{
			name: "missing dataset dir",
			mutate: func(d *Document) {
				d.Data.Ref.GCC.Dir = ""
			},
			wantMsg: "data.ref.gcc.dir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDoc()
			tt.mutate(&doc)
			err := Validate(doc)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidateSkipsUnusedDatasets(t *testing.T) {
	doc := validDoc()
	// Only the GCC comparison runs; the GCHP slots may stay empty.
	doc.Options.Comparisons.GCHPvsGCC.Run = false
	doc.Options.Comparisons.GCHPvsGCHP.Run = false
	doc.Data.Ref.GCHP = DatasetRef{}
	doc.Data.Dev.GCHP = DatasetRef{}

	require.NoError(t, Validate(doc))
}

func TestPairsForPairings(t *testing.T) {
	doc := validDoc()

	pairs, err := doc.Data.PairsFor(ComparisonGCHPvsGCC)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	// The dev GCC run acts as the reference here.
	assert.Equal(t, "GCC_dev", pairs[0].Ref.Version)
	assert.Equal(t, "GCHP_dev", pairs[0].Dev.Version)

	pairs, err = doc.Data.PairsFor(ComparisonGCHPvsGCCDiffOfDiffs)
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, "data.ref.gcc", pairs[0].RefName)
	assert.Equal(t, "data.ref.gchp", pairs[1].RefName)

	_, err = doc.Data.PairsFor("nope_vs_nothing")
	require.Error(t, err)
}
