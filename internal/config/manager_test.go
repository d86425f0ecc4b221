// SPDX-License-Identifier: MIT

package config

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// timestampComparer compares timestamps by instant, ignoring layout and zone
// representation.
var timestampComparer = cmp.Comparer(func(a, b Timestamp) bool {
	return a.Time.Equal(b.Time)
})

func TestSaveLoadRoundTrip(t *testing.T) {
	orig, err := NewLoader(filepath.Join("testdata", "1yr_fullchem_benchmark.yml")).Load()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "rewritten.yml")
	require.NoError(t, NewManager(path).Save(&orig))

	reloaded, err := NewLoader(path).Load()
	require.NoError(t, err)

	if diff := cmp.Diff(orig, reloaded, timestampComparer); diff != "" {
		t.Errorf("round trip changed document (-orig +reloaded):\n%s", diff)
	}
}

func TestSaveCreatesParentDir(t *testing.T) {
	doc := validDoc()
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yml")

	require.NoError(t, NewManager(path).Save(&doc))

	reloaded, err := NewLoader(path).Load()
	require.NoError(t, err)
	if diff := cmp.Diff(doc, reloaded, timestampComparer); diff != "" {
		t.Errorf("round trip changed document (-orig +reloaded):\n%s", diff)
	}
}
