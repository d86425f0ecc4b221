// SPDX-License-Identifier: MIT

package config

import (
	"reflect"
	"sort"
	"time"
)

// Diff compares two documents and returns the sorted field paths that differ.
// Used to log what an edit actually changed after a successful reload.
func Diff(old, next Document) []string {
	var changed []string
	compareStruct("", reflect.ValueOf(old), reflect.ValueOf(next), &changed)
	sort.Strings(changed)
	return changed
}

func compareStruct(prefix string, oldVal, nextVal reflect.Value, changed *[]string) {
	t := oldVal.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		fieldPath := f.Name
		if prefix != "" {
			fieldPath = prefix + "." + f.Name
		}

		ov := oldVal.Field(i)
		nv := nextVal.Field(i)

		if ov.Kind() == reflect.Ptr {
			if ov.IsNil() && nv.IsNil() {
				continue
			}
			if ov.IsNil() != nv.IsNil() {
				*changed = append(*changed, fieldPath)
				continue
			}
			ov = ov.Elem()
			nv = nv.Elem()
		}

		// Timestamps compare by instant, not struct layout.
		if ts, ok := ov.Interface().(Timestamp); ok {
			if !ts.Equal(nv.Interface().(Timestamp).Time) {
				*changed = append(*changed, fieldPath)
			}
			continue
		}
		if ts, ok := ov.Interface().(time.Time); ok {
			if !ts.Equal(nv.Interface().(time.Time)) {
				*changed = append(*changed, fieldPath)
			}
			continue
		}

		if ov.Kind() == reflect.Struct {
			compareStruct(fieldPath, ov, nv, changed)
			continue
		}

		if !reflect.DeepEqual(ov.Interface(), nv.Interface()) {
			*changed = append(*changed, fieldPath)
		}
	}
}
