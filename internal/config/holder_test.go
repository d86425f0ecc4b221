// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const validYAML = `
paths:
  main_dir: /data/benchmarks
  results_dir: Results
data:
  ref:
    gcc:
      version: GCC_ref
      dir: GCC_ref
      bmk_start: "2019-01-01T00:00:00"
      bmk_end: "2020-01-01T00:00:00"
  dev:
    gcc:
      version: GCC_dev
      dir: GCC_dev
      bmk_start: "2019-01-01T00:00:00"
      bmk_end: "2020-01-01T00:00:00"
options:
  bmk_type: FullChemBenchmark
  comparisons:
    gcc_vs_gcc:
      run: true
      dir: GCC_comparison
  outputs:
    plot_conc: true
`

func newTestHolder(t *testing.T) (*Holder, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(validYAML), 0o600))

	loader := NewLoader(path)
	doc, err := loader.Load()
	require.NoError(t, err)

	return NewHolder(doc, loader, path), path
}

func TestHolderReloadKeepsOldConfigOnError(t *testing.T) {
	h, path := newTestHolder(t)
	before := h.Get()

	// An edit that breaks validation must not replace the working config.
	broken := []byte("options:\n  bmk_type: MegaBenchmark\n")
	require.NoError(t, os.WriteFile(path, broken, 0o600))

	err := h.Reload(context.Background())
	require.Error(t, err)
	assert.Equal(t, before, h.Get())
}

func TestHolderReloadAppliesValidEdit(t *testing.T) {
	h, path := newTestHolder(t)

	edited := []byte(validYAML + "  test_mode: true\n")
	require.NoError(t, os.WriteFile(path, edited, 0o600))

	require.NoError(t, h.Reload(context.Background()))
	assert.True(t, h.Get().Options.TestMode)
}

func TestHolderNotifiesListeners(t *testing.T) {
	h, _ := newTestHolder(t)

	ch := make(chan Document, 1)
	h.RegisterListener(ch)

	require.NoError(t, h.Reload(context.Background()))

	select {
	case doc := <-ch:
		assert.Equal(t, BenchmarkTypeFullChem, doc.Options.BmkType)
	case <-time.After(time.Second):
		t.Fatal("listener was not notified")
	}
}

func TestHolderWatcherReloadsOnFileChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	h, path := newTestHolder(t)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, h.StartWatcher(ctx))

	edited := []byte(validYAML + "  test_mode: true\n")
	require.NoError(t, os.WriteFile(path, edited, 0o600))

	// The watcher debounces, so give it a few seconds.
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if h.Get().Options.TestMode {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	assert.True(t, h.Get().Options.TestMode, "watcher did not pick up the edit")

	cancel()
}
