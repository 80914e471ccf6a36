// SPDX-License-Identifier: MIT

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseString(t *testing.T) {
	t.Setenv("C4_TEST_STRING", "from-env")
	t.Setenv("C4_TEST_STRING_EMPTY", "")

	assert.Equal(t, "from-env", ParseString("C4_TEST_STRING", "default"))
	assert.Equal(t, "default", ParseString("C4_TEST_STRING_EMPTY", "default"))
	assert.Equal(t, "default", ParseString("C4_TEST_STRING_UNSET", "default"))
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want int
	}{
		{"valid", "42", 42},
		{"negative", "-3", -3},
		{"invalid falls back", "forty", 7},
		{"empty falls back", "", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("C4_TEST_INT", tt.env)
			assert.Equal(t, tt.want, ParseInt("C4_TEST_INT", 7))
		})
	}
}

func TestParseDuration(t *testing.T) {
	t.Setenv("C4_TEST_DUR", "150ms")
	assert.Equal(t, 150*time.Millisecond, ParseDuration("C4_TEST_DUR", time.Second))

	t.Setenv("C4_TEST_DUR", "soon")
	assert.Equal(t, time.Second, ParseDuration("C4_TEST_DUR", time.Second))
}

func TestParseBool(t *testing.T) {
	for _, v := range []string{"true", "1", "YES"} {
		t.Setenv("C4_TEST_BOOL", v)
		assert.True(t, ParseBool("C4_TEST_BOOL", false), v)
	}
	for _, v := range []string{"false", "0", "no"} {
		t.Setenv("C4_TEST_BOOL", v)
		assert.False(t, ParseBool("C4_TEST_BOOL", true), v)
	}
	t.Setenv("C4_TEST_BOOL", "maybe")
	assert.True(t, ParseBool("C4_TEST_BOOL", true))
}

func TestParseUint64(t *testing.T) {
	t.Setenv("C4_TEST_SEED", "18446744073709551615")
	assert.Equal(t, uint64(18446744073709551615), ParseUint64("C4_TEST_SEED", 1))

	t.Setenv("C4_TEST_SEED", "-1")
	assert.Equal(t, uint64(1), ParseUint64("C4_TEST_SEED", 1))
}

func TestRedactSensitive(t *testing.T) {
	assert.Equal(t, "***", redact("C4_REDIS_PASSWORD", "hunter2"))
	assert.Equal(t, "x", redact("C4_REDIS_ADDR", "x"))
}
