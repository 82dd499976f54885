package phon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNovan_Partition(t *testing.T) {
	a := Novan()
	require.NotNil(t, a)

	assert.Equal(t, 17, a.Len())
	assert.Equal(t, "hltpfkgxnmzsieaou", a.String())
	assert.Len(t, a.Vowels(), 5)
	assert.Len(t, a.Consonants(), 12)

	cases := map[Symbol]Class{
		'i': Vowel, 'e': Vowel, 'a': Vowel, 'o': Vowel, 'u': Vowel,
		'h': Breath,
		'l': Central, 't': Central, 'p': Central, 'f': Central,
		'k': Throat, 'g': Throat, 'x': Throat,
		'n': Nose, 'm': Nose,
		'z': Tongue, 's': Tongue,
	}
	for sym, class := range cases {
		assert.Equal(t, class, a.Class(sym), "class of %q", sym)
		assert.True(t, a.Contains(sym))
	}

	assert.Equal(t, Unknown, a.Class('b'))
	assert.False(t, a.Contains('b'))
	assert.False(t, a.IsConsonant('b'))
	assert.False(t, a.IsVowel('b'))
}

func TestNovan_Shared(t *testing.T) {
	assert.Same(t, Novan(), Novan())
}

func TestAlphabet_ReturnsCopies(t *testing.T) {
	a := Novan()
	syms := a.Symbols()
	syms[0] = 'b'
	assert.Equal(t, Symbol('h'), a.Symbols()[0])
}

func TestNewAlphabet_Errors(t *testing.T) {
	_, err := NewAlphabet(ClassGroup{Class: Central, Symbols: "tp"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no vowels")

	_, err = NewAlphabet(
		ClassGroup{Class: Central, Symbols: "t"},
		ClassGroup{Class: Vowel, Symbols: "at"},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assigned to both")

	_, err = NewAlphabet(ClassGroup{Class: Unknown, Symbols: "a"})
	require.Error(t, err)
}

func TestNewAlphabet_Custom(t *testing.T) {
	a, err := NewAlphabet(
		ClassGroup{Class: Throat, Symbols: "k"},
		ClassGroup{Class: Vowel, Symbols: "a"},
	)
	require.NoError(t, err)
	assert.Equal(t, "ka", a.String())
	assert.Equal(t, 1+1+1+1, a.Inventory().Len())
}

func TestParseSymbol(t *testing.T) {
	a := Novan()

	sym, err := a.ParseSymbol("k")
	require.NoError(t, err)
	assert.Equal(t, Symbol('k'), sym)

	_, err = a.ParseSymbol("kk")
	assert.Error(t, err)
	_, err = a.ParseSymbol("")
	assert.Error(t, err)
	_, err = a.ParseSymbol("b")
	assert.Error(t, err)
}

func TestClass_String(t *testing.T) {
	assert.Equal(t, "throat", Throat.String())
	assert.Equal(t, "class(42)", Class(42).String())
	assert.True(t, Breath.IsConsonant())
	assert.False(t, Vowel.IsConsonant())
	assert.False(t, Unknown.IsConsonant())
}
