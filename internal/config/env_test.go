// SPDX-License-Identifier: MIT

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseString(t *testing.T) {
	t.Setenv("GCBENCH_TEST_STR", "value")
	assert.Equal(t, "value", ParseString("GCBENCH_TEST_STR", "fallback"))

	t.Setenv("GCBENCH_TEST_STR", "")
	assert.Equal(t, "fallback", ParseString("GCBENCH_TEST_STR", "fallback"))

	assert.Equal(t, "fallback", ParseString("GCBENCH_TEST_UNSET", "fallback"))
}

func TestParseBool(t *testing.T) {
	t.Setenv("GCBENCH_TEST_BOOL", "true")
	assert.True(t, ParseBool("GCBENCH_TEST_BOOL", false))

	t.Setenv("GCBENCH_TEST_BOOL", "0")
	assert.False(t, ParseBool("GCBENCH_TEST_BOOL", true))

	// Invalid values keep the default.
	t.Setenv("GCBENCH_TEST_BOOL", "yes-please")
	assert.True(t, ParseBool("GCBENCH_TEST_BOOL", true))

	assert.True(t, ParseBool("GCBENCH_TEST_UNSET", true))
}

func TestParseInt(t *testing.T) {
	t.Setenv("GCBENCH_TEST_INT", "8")
	assert.Equal(t, 8, ParseInt("GCBENCH_TEST_INT", 2))

	t.Setenv("GCBENCH_TEST_INT", "eight")
	assert.Equal(t, 2, ParseInt("GCBENCH_TEST_INT", 2))

	assert.Equal(t, 2, ParseInt("GCBENCH_TEST_UNSET", 2))
}
