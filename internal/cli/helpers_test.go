package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// cliRun is the captured result of one command line.
type cliRun struct {
	Stdout string
	Stderr string
	Err    error
}

// runCLI executes the root command with args against db. Config files and
// NOVAN_* variables from the environment are neutralized.
func runCLI(t *testing.T, db string, args ...string) cliRun {
	t.Helper()
	for _, key := range []string{"NOVAN_DB", "NOVAN_GENERATOR", "NOVAN_SYLLABLES", "NOVAN_MAX_ATTEMPTS", "NOVAN_SEED", "NOVAN_PRESETS"} {
		t.Setenv(key, "") // restores the original value after the test
		require.NoError(t, os.Unsetenv(key))
	}

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(append([]string{"--db", db}, args...))

	err := cmd.Execute()
	return cliRun{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}

// tempDB returns a database path inside a fresh temporary directory.
func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "novan.db")
}

// decodeResponse parses a JSON CLIResponse and decodes its data into v.
func decodeResponse(t *testing.T, out string, v any) CLIResponse {
	t.Helper()
	var raw struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
		Error  *CLIError       `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &raw), "output: %s", out)
	if v != nil && len(raw.Data) > 0 {
		require.NoError(t, json.Unmarshal(raw.Data, v))
	}
	return CLIResponse{Status: raw.Status, Error: raw.Error}
}

// writeFile writes content to dir/name and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// zeroWeightsYAML returns "s: 0" pairs for every symbol outside keep.
func zeroWeightsYAML(keep string) []string {
	var out []string
	for _, a := range zeroExcept(keep) {
		out = append(out, strings.Replace(a, "=", ": ", 1))
	}
	return out
}
