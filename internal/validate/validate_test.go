// SPDX-License-Identifier: MIT

package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"simple", "GCC_14.4.0", true},
		{"dots and dashes", "gchp-c48.v2", true},
		{"empty", "", false},
		{"space", "GCC 14.4.0", false},
		{"tab", "GCC\t14", false},
		{"newline", "GCC\n14", false},
		{"slash", "GCC/14", false},
		{"backslash", `GCC\14`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.Label("version", tt.value)
			assert.Equal(t, tt.valid, v.IsValid(), "errors: %v", v.Errors())
		})
	}
}

func TestTimeOrder(t *testing.T) {
	start := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)

	v := New()
	v.TimeOrder("period", start, start.AddDate(1, 0, 0))
	assert.True(t, v.IsValid())

	v = New()
	v.TimeOrder("period", start, start)
	assert.False(t, v.IsValid())

	v = New()
	v.TimeOrder("period", start, start.AddDate(0, 0, -1))
	assert.False(t, v.IsValid())

	v = New()
	v.TimeOrder("period", time.Time{}, start)
	assert.False(t, v.IsValid())
}

func TestOneOf(t *testing.T) {
	v := New()
	v.OneOf("bmk_type", "FullChemBenchmark", []string{"FullChemBenchmark", "CH4Benchmark"})
	assert.True(t, v.IsValid())

	v = New()
	v.OneOf("bmk_type", "MegaBenchmark", []string{"FullChemBenchmark", "CH4Benchmark"})
	assert.False(t, v.IsValid())
}

func TestErrAccumulatesMultipleErrors(t *testing.T) {
	v := New()
	v.Label("a", "")
	v.NonEmpty("b", "  ")
	v.Range("c", 99, 0, 10)

	err := v.Err()
	require.Error(t, err)

	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Errors(), 3)
	assert.Contains(t, err.Error(), "validation failed for a")
	assert.Contains(t, err.Error(), "validation failed for c")
}

func TestErrNilWhenValid(t *testing.T) {
	v := New()
	v.Label("version", "ok")
	assert.NoError(t, v.Err())
}

func TestDirectoryMustExist(t *testing.T) {
	v := New()
	v.Directory("dir", t.TempDir(), true)
	assert.True(t, v.IsValid())

	v = New()
	v.Directory("dir", "/does/not/exist/hopefully", true)
	assert.False(t, v.IsValid())

	v = New()
	v.Directory("dir", "", false)
	assert.False(t, v.IsValid())
}
