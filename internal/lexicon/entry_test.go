package lexicon

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/novan/internal/phon"
)

func TestNewEntry_ComputesSyllables(t *testing.T) {
	e, err := NewEntry(phon.Novan(), "natal", WithURI("urn:test:1"), WithEnglish("to be born"))
	require.NoError(t, err)

	assert.Equal(t, "urn:test:1", e.URI)
	assert.Equal(t, "natal", e.Wordform)
	assert.Equal(t, []string{"na", "tal"}, e.Syllables)
	assert.Equal(t, "to be born", e.English)
}

func TestNewEntry_GeneratesUUIDv7(t *testing.T) {
	e, err := NewEntry(phon.Novan(), "kita")
	require.NoError(t, err)

	parsed, err := uuid.Parse(e.URI)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestNewEntry_FixedURIs(t *testing.T) {
	uris := NewFixedGenerator("a-1", "a-2")
	e1, err := NewEntry(phon.Novan(), "kita", WithURIGenerator(uris))
	require.NoError(t, err)
	e2, err := NewEntry(phon.Novan(), "ata", WithURIGenerator(uris))
	require.NoError(t, err)

	assert.Equal(t, "a-1", e1.URI)
	assert.Equal(t, "a-2", e2.URI)
	assert.Panics(t, func() { uris.Generate() })
}

func TestNewEntry_EmptyWordform(t *testing.T) {
	e, err := NewEntry(phon.Novan(), "", WithURI("u"))
	require.NoError(t, err)
	assert.Equal(t, "", e.Wordform)
	assert.Equal(t, []string{}, e.Syllables)
}

func TestNewEntry_InvalidWordform(t *testing.T) {
	_, err := NewEntry(phon.Novan(), "hka", WithURI("u"))
	require.Error(t, err)
	assert.True(t, phon.IsInvalidWordform(err))
}

func TestNewEntry_SyllableOverride(t *testing.T) {
	a := phon.Novan()

	e, err := NewEntry(a, "kita", WithURI("u"), WithSyllables("kit", "a"))
	require.NoError(t, err)
	assert.Equal(t, []string{"kit", "a"}, e.Syllables)

	_, err = NewEntry(a, "kita", WithURI("u"), WithSyllables("ki", "to"))
	assert.ErrorIs(t, err, ErrSyllablesMismatch)
}

func TestSetWordform_Normalizes(t *testing.T) {
	e, err := NewEntry(phon.Novan(), "", WithURI("u"))
	require.NoError(t, err)

	require.NoError(t, e.SetWordform(phon.Novan(), "  KiTa\n"))
	assert.Equal(t, "k\u00e1", NormalizeWordform("Ka\u0301"))
	assert.Equal(t, []string{"ki", "ta"}, e.Syllables)
}

func TestSetWordform_NoPartialMutation(t *testing.T) {
	a := phon.Novan()
	e, err := NewEntry(a, "natal", WithURI("u"))
	require.NoError(t, err)

	for _, bad := range []string{"k", "kka", "atsk", "ká"} {
		err := e.SetWordform(a, bad)
		require.Error(t, err, bad)

		var iw *phon.InvalidWordformError
		require.ErrorAs(t, err, &iw)
		assert.NotEmpty(t, iw.Violations)

		assert.Equal(t, "natal", e.Wordform)
		assert.Equal(t, []string{"na", "tal"}, e.Syllables)
	}
}

func TestNormalizeWordform(t *testing.T) {
	// decomposed a + combining acute composes to a single rune
	assert.Equal(t, "ká", NormalizeWordform("K"+"á"))
	assert.Equal(t, "ata", NormalizeWordform("\tATA "))
}

func TestVerbClasses(t *testing.T) {
	e, err := NewEntry(phon.Novan(), "ata", WithURI("u"), WithVerbClasses(State, Transfer))
	require.NoError(t, err)

	assert.True(t, e.State)
	assert.True(t, e.Transfer)
	assert.False(t, e.Generic)
	assert.Equal(t, []VerbClass{State, Transfer}, e.VerbClasses())

	e.SetVerbClass(State, false)
	assert.Equal(t, []VerbClass{Transfer}, e.VerbClasses())

	c, err := ParseVerbClass(" Cognition ")
	require.NoError(t, err)
	assert.Equal(t, Cognition, c)

	_, err = ParseVerbClass("motion")
	assert.ErrorIs(t, err, ErrUnknownVerbClass)
}

func TestCompletion(t *testing.T) {
	a := phon.Novan()

	e, err := NewEntry(a, "", WithURI("u"))
	require.NoError(t, err)
	done, total := e.Completion()
	assert.Equal(t, 0, done)
	assert.Equal(t, 6, total)

	e, err = NewEntry(a, "kita",
		WithURI("u"),
		WithEnglish("think"),
		WithDescriptions("kita ata", "to think"),
		WithPrime("mental"),
		WithVerbClasses(Cognition),
	)
	require.NoError(t, err)
	done, total = e.Completion()
	assert.Equal(t, 6, done)
	assert.Equal(t, 6, total)
}

func TestClone(t *testing.T) {
	e, err := NewEntry(phon.Novan(), "natal", WithURI("u"))
	require.NoError(t, err)

	c := e.Clone()
	c.Syllables[0] = "xx"
	assert.Equal(t, "na", e.Syllables[0])
}
