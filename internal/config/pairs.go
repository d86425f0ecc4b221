// SPDX-License-Identifier: MIT

package config

import "fmt"

// RefDevPair is one ref/dev dataset pairing consumed by a comparison.
type RefDevPair struct {
	RefName string // document path of the ref dataset, e.g. "data.ref.gcc"
	DevName string
	Ref     DatasetRef
	Dev     DatasetRef
}

// PairsFor returns the dataset pairings a named comparison consumes.
//
// Benchmark convention: same-variant comparisons pit ref against dev;
// gchp_vs_gcc compares the two dev runs against each other (the dev GCC run
// acts as the reference); diff-of-diffs consumes both same-variant pairs and
// compares their differences.
func (d Data) PairsFor(name string) ([]RefDevPair, error) {
	gccPair := RefDevPair{
		RefName: "data.ref.gcc", DevName: "data.dev.gcc",
		Ref: d.Ref.GCC, Dev: d.Dev.GCC,
	}
	gchpPair := RefDevPair{
		RefName: "data.ref.gchp", DevName: "data.dev.gchp",
		Ref: d.Ref.GCHP, Dev: d.Dev.GCHP,
	}

	switch name {
	case ComparisonGCCvsGCC:
		return []RefDevPair{gccPair}, nil
	case ComparisonGCHPvsGCHP:
		return []RefDevPair{gchpPair}, nil
	case ComparisonGCHPvsGCC:
		return []RefDevPair{{
			RefName: "data.dev.gcc", DevName: "data.dev.gchp",
			Ref: d.Dev.GCC, Dev: d.Dev.GCHP,
		}}, nil
	case ComparisonGCHPvsGCCDiffOfDiffs:
		return []RefDevPair{gccPair, gchpPair}, nil
	default:
		return nil, fmt.Errorf("unknown comparison %q", name)
	}
}
