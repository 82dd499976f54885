package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/novan/internal/gen"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "novan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, "novan.db", c.Database)
	assert.Equal(t, gen.DefaultPresetName, c.Generator)
	assert.Equal(t, 2, c.Syllables)
	assert.Equal(t, gen.DefaultMaxAttempts, c.MaxAttempts)
	assert.Equal(t, int64(0), c.Seed)
	assert.NoError(t, c.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no database", func(c *Config) { c.Database = "" }},
		{"no generator", func(c *Config) { c.Generator = "" }},
		{"zero syllables", func(c *Config) { c.Syllables = 0 }},
		{"negative attempts", func(c *Config) { c.MaxAttempts = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, "database: lex.db\nsyllables: 3\nseed: 42\n")

	c, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "lex.db", c.Database)
	assert.Equal(t, 3, c.Syllables)
	assert.Equal(t, int64(42), c.Seed)
	// untouched keys keep their defaults
	assert.Equal(t, gen.DefaultPresetName, c.Generator)
}

func TestLoadFromFile_Empty(t *testing.T) {
	c, err := LoadFromFile(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)
}

func TestLoadFromFile_UnknownKey(t *testing.T) {
	_, err := LoadFromFile(writeConfig(t, "databse: lex.db\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "databse")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "database: lex.db\ngenerator: Soft\n")
	t.Setenv("NOVAN_GENERATOR", "Harsh")
	t.Setenv("NOVAN_MAX_ATTEMPTS", "500")
	t.Setenv("NOVAN_SEED", "7")

	c, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "lex.db", c.Database)
	assert.Equal(t, "Harsh", c.Generator)
	assert.Equal(t, 500, c.MaxAttempts)
	assert.Equal(t, int64(7), c.Seed)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("NOVAN_SYLLABLES", "many")
	_, err := Load(writeConfig(t, ""), nil)
	assert.Error(t, err)
}

func TestLoad_ValidatesResult(t *testing.T) {
	t.Setenv("NOVAN_SYLLABLES", "0")
	_, err := Load(writeConfig(t, ""), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "syllables")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	assert.Error(t, err)
}

func TestLoad_NoProjectFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	c, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)
}
