// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment keys recognised by the loader. Environment values override the
// corresponding file values.
const (
	EnvMainDir     = "GCBENCH_MAIN_DIR"
	EnvResultsDir  = "GCBENCH_RESULTS_DIR"
	EnvWeightsDir  = "GCBENCH_WEIGHTS_DIR"
	EnvTestMode    = "GCBENCH_TEST_MODE"
	EnvParallelism = "GCBENCH_PARALLELISM"
)

// Default values applied before the file is merged.
const (
	DefaultSubdir       = "OutputDir"
	DefaultTablesSubdir = "Tables"
)

// Loader handles configuration loading with precedence ENV > File > Defaults.
type Loader struct {
	configPath string
}

// NewLoader creates a new configuration loader for the given document path.
func NewLoader(configPath string) *Loader {
	return &Loader{configPath: configPath}
}

// Load reads, merges and validates the benchmark configuration document.
// Order: parse file (strict) -> apply defaults -> apply env -> resolve paths
// -> validate.
func (l *Loader) Load() (Document, error) {
	doc := Document{}

	if l.configPath != "" {
		fileDoc, err := l.loadFile(l.configPath)
		if err != nil {
			return doc, fmt.Errorf("load config file: %w", err)
		}
		doc = *fileDoc
	}

	l.applyDefaults(&doc)
	l.applyEnv(&doc)

	if err := l.resolvePaths(&doc); err != nil {
		return doc, err
	}

	if err := Validate(doc); err != nil {
		return doc, fmt.Errorf("config validation failed: %w", err)
	}

	return doc, nil
}

// loadFile loads a benchmark document from a YAML file with STRICT parsing.
// Unknown fields cause an error to prevent silently ignored switches.
func (l *Loader) loadFile(path string) (*Document, error) {
	path = filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}

	// #nosec G304 -- configuration file paths are provided by the operator via CLI/ENV
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return &Document{}, nil
		}
		if strings.Contains(err.Error(), "field") && strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("strict config parse error: %w: %w", ErrUnknownConfigField, err)
		}
		return nil, fmt.Errorf("strict config parse error: %w", err)
	}

	// Strict: no multiple documents or trailing content.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, ErrMultipleDocuments
	}

	return &doc, nil
}

func (l *Loader) applyDefaults(doc *Document) {
	if doc.Options.BmkType == "" {
		doc.Options.BmkType = BenchmarkTypeFullChem
	}

	for _, ref := range []*DatasetRef{
		&doc.Data.Ref.GCC, &doc.Data.Ref.GCHP,
		&doc.Data.Dev.GCC, &doc.Data.Dev.GCHP,
	} {
		if ref.Subdir == "" {
			ref.Subdir = DefaultSubdir
		}
	}

	for _, cmp := range []*Comparison{
		&doc.Options.Comparisons.GCCvsGCC,
		&doc.Options.Comparisons.GCHPvsGCC,
		&doc.Options.Comparisons.GCHPvsGCHP,
		&doc.Options.Comparisons.GCHPvsGCCDiffOfDiffs,
	} {
		if cmp.TablesSubdir == "" {
			cmp.TablesSubdir = DefaultTablesSubdir
		}
	}
}

func (l *Loader) applyEnv(doc *Document) {
	doc.Paths.MainDir = ParseString(EnvMainDir, doc.Paths.MainDir)
	doc.Paths.ResultsDir = ParseString(EnvResultsDir, doc.Paths.ResultsDir)
	doc.Paths.WeightsDir = ParseString(EnvWeightsDir, doc.Paths.WeightsDir)
	doc.Options.TestMode = ParseBool(EnvTestMode, doc.Options.TestMode)
}

// resolvePaths makes main_dir absolute and anchors the other roots under it
// when they are given as relative paths.
func (l *Loader) resolvePaths(doc *Document) error {
	if doc.Paths.MainDir == "" {
		return nil // caught by validation
	}
	abs, err := filepath.Abs(doc.Paths.MainDir)
	if err != nil {
		return fmt.Errorf("resolve main_dir: %w", err)
	}
	doc.Paths.MainDir = abs

	if doc.Paths.ResultsDir != "" && !filepath.IsAbs(doc.Paths.ResultsDir) {
		doc.Paths.ResultsDir = filepath.Join(doc.Paths.MainDir, doc.Paths.ResultsDir)
	}
	if doc.Paths.WeightsDir != "" && !filepath.IsAbs(doc.Paths.WeightsDir) {
		doc.Paths.WeightsDir = filepath.Join(doc.Paths.MainDir, doc.Paths.WeightsDir)
	}
	return nil
}
