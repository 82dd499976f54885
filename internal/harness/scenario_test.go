package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	path := writeScenario(t, `
name: words
description: a few words
weights: {k: 0.5}
max_attempts: 100
cases:
  - word: kita
    valid: true
    syllables: [ki, ta]
generate:
  - syllables: 2
    seed: 3
    count: 4
    forbidden: [kita]
    avoid_previous: true
`)

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "words", s.Name)
	assert.Equal(t, 0.5, s.Weights["k"])
	assert.Equal(t, 100, s.MaxAttempts)
	require.Len(t, s.Cases, 1)
	require.NotNil(t, s.Cases[0].Valid)
	assert.True(t, *s.Cases[0].Valid)
	require.Len(t, s.Generate, 1)
	assert.Equal(t, 4, s.Generate[0].Count)
	assert.True(t, s.Generate[0].AvoidPrevious)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"missing name", "description: d\ncases: [{word: a, valid: true}]\n", "name is required"},
		{"missing description", "name: n\ncases: [{word: a, valid: true}]\n", "description is required"},
		{"no steps", "name: n\ndescription: d\n", "at least one case or generate step"},
		{"case without expectation", "name: n\ndescription: d\ncases: [{word: a}]\n", "cases[0]"},
		{"unknown rule", "name: n\ndescription: d\ncases: [{word: a, violations: [bad_rule]}]\n", "unknown rule"},
		{"unknown outcome", "name: n\ndescription: d\ngenerate: [{syllables: 1, expect_error: boom}]\n", "unknown expect_error"},
		{"negative count", "name: n\ndescription: d\ngenerate: [{syllables: 1, count: -1}]\n", "count must not be negative"},
		{"too many expected", "name: n\ndescription: d\ngenerate: [{syllables: 1, expect: [a, e]}]\n", "expects 2 wordforms"},
		{"unknown field", "name: n\ndescription: d\ncase: []\n", "field case not found"},
		{"malformed", "name: [\n", "failed to parse YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
