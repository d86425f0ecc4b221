// SPDX-License-Identifier: MIT

package config

import (
	"fmt"

	"github.com/airchem/gcbench/internal/validate"
)

// Validate validates a Document using the centralized validation package.
func Validate(doc Document) error {
	v := validate.New()

	v.Directory("paths.main_dir", doc.Paths.MainDir, false)
	v.Directory("paths.results_dir", doc.Paths.ResultsDir, false)

	v.OneOf("options.bmk_type", doc.Options.BmkType, []string{
		BenchmarkTypeFullChem,
		BenchmarkTypeTransportTracers,
		BenchmarkTypeCH4,
	})

	enabled := doc.Options.Comparisons.Enabled()

	// Validate every dataset referenced by an enabled comparison. Unused
	// dataset slots may legitimately stay empty.
	validated := map[string]struct{}{}
	for _, nc := range enabled {
		pairs, err := doc.Data.PairsFor(nc.Name)
		if err != nil {
			v.AddError("options.comparisons", err.Error(), nc.Name)
			continue
		}
		for _, pair := range pairs {
			for _, side := range []struct {
				name string
				ref  DatasetRef
			}{{pair.RefName, pair.Ref}, {pair.DevName, pair.Dev}} {
				if _, done := validated[side.name]; done {
					continue
				}
				validated[side.name] = struct{}{}
				validateDataset(v, side.name, side.ref)
			}

			// Identical labels on both sides would make output files
			// overwrite each other.
			if pair.Ref.Version != "" && pair.Ref.Version == pair.Dev.Version {
				v.AddError(pair.DevName+".version",
					fmt.Sprintf("version label %q collides with %s", pair.Dev.Version, pair.RefName),
					pair.Dev.Version)
			}
		}
	}

	// Comparison output directories must not collide.
	dirs := map[string]string{}
	for _, nc := range doc.Options.Comparisons.All() {
		field := "options.comparisons." + nc.Name + ".dir"
		if nc.Run && nc.Dir == "" {
			v.AddError(field, "dir is required when run is enabled", nc.Dir)
			continue
		}
		if nc.Dir == "" {
			continue
		}
		if other, dup := dirs[nc.Dir]; dup {
			v.AddError(field,
				fmt.Sprintf("dir %q collides with %s", nc.Dir, other), nc.Dir)
			continue
		}
		dirs[nc.Dir] = nc.Name
	}

	return v.Err()
}

func validateDataset(v *validate.Validator, name string, ref DatasetRef) {
	v.Label(name+".version", ref.Version)
	v.NonEmpty(name+".dir", ref.Dir)
	v.TimeOrder(name+".bmk_start/bmk_end", ref.BmkStart.Time, ref.BmkEnd.Time)
}
