package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/novan/internal/phon"
)

// zeroExcept returns weights set assignments that silence every symbol
// outside keep.
func zeroExcept(keep string) []string {
	var out []string
	for _, s := range phon.Novan().Symbols() {
		if !strings.ContainsRune(keep, rune(s)) {
			out = append(out, s.String()+"=0")
		}
	}
	return out
}

// createGenerator stores a generator whose only non-zero symbols are keep.
func createGenerator(t *testing.T, db, name, keep string) {
	t.Helper()
	run := runCLI(t, db, "weights", "new", name)
	require.NoError(t, run.Err, run.Stdout)
	run = runCLI(t, db, append([]string{"weights", "set", name}, zeroExcept(keep)...)...)
	require.NoError(t, run.Err, run.Stdout)
}

func TestGenerate_DefaultGenerator(t *testing.T) {
	run := runCLI(t, tempDB(t), "--format", "json", "generate", "--seed", "7", "-n", "2", "-c", "5")
	require.NoError(t, run.Err, run.Stdout)

	var result GenerateResult
	resp := decodeResponse(t, run.Stdout, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "Custom", result.Generator)
	assert.Equal(t, SourceDefault, result.Source)
	assert.Equal(t, int64(7), result.Seed)
	assert.Equal(t, 2, result.Syllables)
	require.Len(t, result.Words, 5)

	alpha := phon.Novan()
	for _, w := range result.Words {
		assert.True(t, alpha.IsValid(w.Word), w.Word)
		assert.Equal(t, w.Word, strings.Join(w.Syllables, ""))
	}
}

func TestGenerate_SeedIsReproducible(t *testing.T) {
	db := tempDB(t)
	first := runCLI(t, db, "generate", "--seed", "99", "-c", "8")
	second := runCLI(t, db, "generate", "--seed", "99", "-c", "8")
	require.NoError(t, first.Err)
	require.NoError(t, second.Err)
	assert.Equal(t, first.Stdout, second.Stdout)
	assert.Len(t, strings.Split(strings.TrimSpace(first.Stdout), "\n"), 8)
}

func TestGenerate_VerbosePrintsSeedAndSyllables(t *testing.T) {
	run := runCLI(t, tempDB(t), "-v", "generate", "--seed", "3", "-n", "3")
	require.NoError(t, run.Err)
	assert.Contains(t, run.Stderr, "seed: 3")

	word, syllables, ok := strings.Cut(strings.TrimSpace(run.Stdout), "\t")
	require.True(t, ok, run.Stdout)
	assert.Equal(t, word, strings.ReplaceAll(syllables, "|", ""))
}

func TestGenerate_Forbidden(t *testing.T) {
	db := tempDB(t)
	createGenerator(t, db, "AE", "ae")

	run := runCLI(t, db, "generate", "-g", "AE", "-n", "2", "-c", "3", "--forbid", "ae", "--seed", "1")
	require.NoError(t, run.Err, run.Stdout)
	assert.Equal(t, "ea\nea\nea\n", run.Stdout)
}

func TestGenerate_Exhausted(t *testing.T) {
	db := tempDB(t)
	createGenerator(t, db, "AE", "ae")

	run := runCLI(t, db, "--format", "json", "generate", "-g", "AE", "-n", "2", "--forbid", "ae,ea", "--max-attempts", "50")
	require.Error(t, run.Err)
	assert.Equal(t, ExitFailure, GetExitCode(run.Err))

	var result GenerateResult
	resp := decodeResponse(t, run.Stdout, &result)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeExhausted, resp.Error.Code)
	assert.Empty(t, result.Words)
}

func TestGenerate_AvoidLexicon(t *testing.T) {
	db := tempDB(t)
	createGenerator(t, db, "AE", "ae")
	require.NoError(t, runCLI(t, db, "entry", "add", "ea").Err)

	run := runCLI(t, db, "generate", "-g", "AE", "-n", "2", "--forbid", "ae", "--max-attempts", "50")
	require.NoError(t, run.Err)
	assert.Equal(t, "ea\n", run.Stdout)

	run = runCLI(t, db, "generate", "-g", "AE", "-n", "2", "--forbid", "ae", "--avoid-lexicon", "--max-attempts", "50")
	require.Error(t, run.Err)
	assert.Equal(t, ExitFailure, GetExitCode(run.Err))
	assert.Contains(t, run.Stdout, "Error [E011]")
}

func TestGenerate_UniqueKeepsPartialOutput(t *testing.T) {
	db := tempDB(t)
	createGenerator(t, db, "A", "a")

	run := runCLI(t, db, "--format", "json", "generate", "-g", "A", "-n", "1", "-c", "2", "--unique", "--max-attempts", "20")
	require.Error(t, run.Err)

	var result GenerateResult
	decodeResponse(t, run.Stdout, &result)
	require.Len(t, result.Words, 1)
	assert.Equal(t, "a", result.Words[0].Word)
}

func TestGenerate_BadInput(t *testing.T) {
	db := tempDB(t)

	run := runCLI(t, db, "generate", "-c", "0")
	require.Error(t, run.Err)
	assert.Equal(t, ExitCommandError, GetExitCode(run.Err))

	run = runCLI(t, db, "generate", "-g", "Nope")
	require.Error(t, run.Err)
	assert.Equal(t, ExitCommandError, GetExitCode(run.Err))
	assert.Contains(t, run.Stdout, "Error [E005]")

	run = runCLI(t, db, "generate", "-n", "-1")
	require.Error(t, run.Err)
	assert.Equal(t, ExitCommandError, GetExitCode(run.Err))
	assert.Contains(t, run.Stdout, "Error [E002]")
}

func TestGenerate_ConfigPresetsFile(t *testing.T) {
	dir := t.TempDir()
	presets := writeFile(t, dir, "presets.yaml", "presets:\n  - name: OnlyA\n    weights: {"+strings.Join(zeroWeightsYAML("a"), ", ")+"}\n")
	cfg := writeFile(t, dir, "novan.yaml", "generator: OnlyA\nsyllables: 1\npresets: "+presets+"\n")

	run := runCLI(t, tempDB(t), "--config", cfg, "--format", "json", "generate", "--seed", "5")
	require.NoError(t, run.Err, run.Stdout)

	var result GenerateResult
	decodeResponse(t, run.Stdout, &result)
	assert.Equal(t, "OnlyA", result.Generator)
	assert.Equal(t, SourcePresets, result.Source)
	require.Len(t, result.Words, 1)
	assert.Equal(t, "a", result.Words[0].Word)
}
