// SPDX-License-Identifier: MIT

// Package validate provides configuration validation utilities for gcbench.
package validate

import (
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"
)

// Error represents a validation error
type Error struct {
	Field   string      // Field name that failed validation
	Value   interface{} // The invalid value
	Message string      // Human-readable error message
}

// Error implements the error interface
func (e Error) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// Validator accumulates validation errors and can produce a ValidationError when invalid.
type Validator struct {
	errors []Error
}

// ValidationError bundles multiple validation errors into a single error value.
type ValidationError struct {
	errors []Error
}

// New creates a new validator
func New() *Validator {
	return &Validator{
		errors: make([]Error, 0),
	}
}

// AddError adds a validation error
func (v *Validator) AddError(field, message string, value interface{}) {
	v.errors = append(v.errors, Error{
		Field:   field,
		Value:   value,
		Message: message,
	})
}

// IsValid returns true if no errors have been accumulated
func (v *Validator) IsValid() bool {
	return len(v.errors) == 0
}

// Errors returns all accumulated validation errors
func (v *Validator) Errors() []Error {
	return v.errors
}

// Err converts the accumulated validation errors into an error value.
func (v *Validator) Err() error {
	if len(v.errors) == 0 {
		return nil
	}

	copied := make([]Error, len(v.errors))
	copy(copied, v.errors)

	return ValidationError{errors: copied}
}

// Errors returns the individual validation errors making up the validation failure.
func (e ValidationError) Errors() []Error {
	return e.errors
}

// Error implements the error interface for ValidationError.
func (e ValidationError) Error() string {
	if len(e.errors) == 0 {
		return ""
	}

	if len(e.errors) == 1 {
		return e.errors[0].Error()
	}

	msgs := make([]string, len(e.errors))
	for i, err := range e.errors {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Label validates a version or directory label: non-empty, no whitespace,
// no path separators. Labels end up embedded in output filenames.
func (v *Validator) Label(field, value string) {
	if value == "" {
		v.AddError(field, "label cannot be empty", value)
		return
	}
	for _, r := range value {
		if unicode.IsSpace(r) {
			v.AddError(field, "label must not contain whitespace", value)
			return
		}
	}
	if strings.ContainsAny(value, `/\`) {
		v.AddError(field, "label must not contain path separators", value)
	}
}

// NonEmpty validates that a string is not empty after trimming.
func (v *Validator) NonEmpty(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "value cannot be empty", value)
	}
}

// OneOf validates that a string is one of the allowed values.
func (v *Validator) OneOf(field, value string, allowed []string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v.AddError(field,
		fmt.Sprintf("unsupported value %q (allowed: %v)", value, allowed),
		value)
}

// Range validates that an integer is within a specified range (inclusive)
func (v *Validator) Range(field string, value, minVal, maxVal int) {
	if value < minVal || value > maxVal {
		v.AddError(field,
			fmt.Sprintf("value must be between %d and %d, got %d", minVal, maxVal, value),
			value)
	}
}

// Directory validates a directory path. When mustExist is true the path must
// resolve to an existing directory.
func (v *Validator) Directory(field, path string, mustExist bool) {
	if path == "" {
		v.AddError(field, "directory path cannot be empty", path)
		return
	}
	if !mustExist {
		return
	}
	info, err := os.Stat(path)
	if err != nil {
		v.AddError(field, fmt.Sprintf("directory not accessible: %v", err), path)
		return
	}
	if !info.IsDir() {
		v.AddError(field, "path is not a directory", path)
	}
}

// TimeOrder validates that end is strictly after start.
func (v *Validator) TimeOrder(field string, start, end time.Time) {
	if start.IsZero() || end.IsZero() {
		v.AddError(field, "start and end timestamps must both be set", nil)
		return
	}
	if !end.After(start) {
		v.AddError(field,
			fmt.Sprintf("end %s must be strictly after start %s",
				end.Format(time.RFC3339), start.Format(time.RFC3339)),
			nil)
	}
}
