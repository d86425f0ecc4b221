// SPDX-License-Identifier: MIT

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDiffIdenticalDocuments(t *testing.T) {
	assert.Empty(t, Diff(validDoc(), validDoc()))
}

func TestDiffReportsChangedFields(t *testing.T) {
	old := validDoc()
	next := validDoc()
	next.Options.BmkType = BenchmarkTypeCH4
	next.Data.Dev.GCC.Version = "GCC_dev2"
	next.Data.Dev.GCC.BmkEnd = NewTimestamp(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC))
	next.Options.Outputs.PlotConc = false

	changed := Diff(old, next)
	assert.Equal(t, []string{
		"Data.Dev.GCC.BmkEnd",
		"Data.Dev.GCC.Version",
		"Options.BmkType",
		"Options.Outputs.PlotConc",
	}, changed)
}

func TestDiffLegacyFlagPointer(t *testing.T) {
	old := validDoc()
	next := validDoc()
	flag := true
	next.Data.Ref.GCHP.IsPre140 = &flag

	changed := Diff(old, next)
	assert.Equal(t, []string{"Data.Ref.GCHP.IsPre140"}, changed)
}
