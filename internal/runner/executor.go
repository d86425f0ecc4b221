// SPDX-License-Identifier: MIT

package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	gclog "github.com/airchem/gcbench/internal/log"
	"github.com/airchem/gcbench/internal/plan"
	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

// taskManifest is the hand-off document the built-in executor writes for the
// external comparison engine: everything it needs to produce one output.
type taskManifest struct {
	Task       string       `yaml:"task"`
	Comparison string       `yaml:"comparison"`
	Output     string       `yaml:"output"`
	Inputs     []inputRef   `yaml:"inputs"`
	Months     []string     `yaml:"months"`
	WeightsDir string       `yaml:"weights_dir,omitempty"`
	PlotOpts   *plotOptions `yaml:"plot_options,omitempty"`
}

type inputRef struct {
	Ref        string `yaml:"ref"`
	Dev        string `yaml:"dev"`
	RefVersion string `yaml:"ref_version"`
	DevVersion string `yaml:"dev_version"`
	RefDir     string `yaml:"ref_dir"`
	DevDir     string `yaml:"dev_dir"`
	RefLegacy  bool   `yaml:"ref_legacy,omitempty"`
	DevLegacy  bool   `yaml:"dev_legacy,omitempty"`
	RefRes     string `yaml:"ref_resolution,omitempty"`
	DevRes     string `yaml:"dev_resolution,omitempty"`
}

type plotOptions struct {
	BySpcCat bool `yaml:"by_spc_cat"`
	ByHcoCat bool `yaml:"by_hco_cat"`
}

// ManifestExecutor prepares the output directory tree and writes one manifest
// per task. It is the default executor when no comparison engine is attached.
type ManifestExecutor struct{}

// NewManifestExecutor creates a ManifestExecutor.
func NewManifestExecutor() *ManifestExecutor {
	return &ManifestExecutor{}
}

// Execute prepares directories and writes the task manifest atomically.
func (e *ManifestExecutor) Execute(ctx context.Context, task plan.Task) error {
	logger := gclog.WithComponentFromContext(ctx, "executor")

	destDir := task.OutDir
	if !task.Output.IsPlot() {
		destDir = task.TablesDir
	}
	if err := os.MkdirAll(destDir, 0o750); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	m := taskManifest{
		Task:       task.ID,
		Comparison: task.Comparison,
		Output:     string(task.Output),
		WeightsDir: task.WeightsDir,
	}
	for _, in := range task.Inputs {
		m.Inputs = append(m.Inputs, inputRef{
			Ref:        in.RefName,
			Dev:        in.DevName,
			RefVersion: in.RefVersion,
			DevVersion: in.DevVersion,
			RefDir:     in.RefDir,
			DevDir:     in.DevDir,
			RefLegacy:  in.RefLegacy,
			DevLegacy:  in.DevLegacy,
			RefRes:     in.RefRes,
			DevRes:     in.DevRes,
		})
	}
	for _, month := range task.Months {
		m.Months = append(m.Months, month.Format("2006-01"))
	}
	if task.Output.IsPlot() {
		m.PlotOpts = &plotOptions{BySpcCat: task.BySpcCat, ByHcoCat: task.ByHcoCat}
	}

	path := filepath.Join(destDir, string(task.Output)+".manifest.yaml")
	if err := writeYAMLAtomic(path, &m); err != nil {
		return err
	}

	logger.Debug().
		Str("event", "manifest.write").
		Str("path", path).
		Msg("task manifest written")
	return nil
}

// WriteSummary writes the run result next to the benchmark outputs.
func WriteSummary(resultsDir string, result Result) (string, error) {
	if err := os.MkdirAll(resultsDir, 0o750); err != nil {
		return "", fmt.Errorf("create results dir: %w", err)
	}
	path := filepath.Join(resultsDir, fmt.Sprintf("run-%s.yaml", result.RunID))
	if err := writeYAMLAtomic(path, &result); err != nil {
		return "", err
	}
	return path, nil
}

// writeYAMLAtomic encodes v and replaces path atomically (fsync + rename).
func writeYAMLAtomic(path string, v interface{}) error {
	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("create pending file: %w", err)
	}
	defer func() { _ = pending.Cleanup() }()

	enc := yaml.NewEncoder(pending)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close encoder: %w", err)
	}

	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace %s: %w", path, err)
	}
	return nil
}
