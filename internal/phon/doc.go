// Package phon implements the phonotactics of Novan.
//
// The package answers three questions about a wordform:
//
//   - Is it well formed? (Alphabet.IsValid, Alphabet.Check)
//   - How does it split into syllables? (Alphabet.Syllabify)
//   - Which syllable shapes exist at all? (Alphabet.Inventory)
//
// # Alphabet
//
// The alphabet is a fixed partition of 17 symbols into vowels and five
// consonant classes:
//
//	Vowel    i e a o u
//	Breath   h
//	Central  l t p f
//	Throat   k g x
//	Nose     n m
//	Tongue   z s
//
// An Alphabet is immutable once built. Novan returns the shared instance;
// every other component receives it by pointer instead of reading globals.
//
// # Validity
//
// A wordform is valid iff:
//   - it is not a single consonant,
//   - every adjacent pair (a, b) is Compatible,
//   - no three consecutive symbols are consonants,
//   - neither the first two nor the last two symbols are both consonants.
//
// The empty wordform is valid. Validity is never cached; callers recompute it.
//
// # Syllabification
//
// Syllabify splits at the leftmost CC or VV boundary first, then at the
// leftmost VCV (giving V·CV, never VC·V), and recurses on both halves.
// The implementation walks an explicit stack of index ranges, so input
// length is not bounded by the goroutine stack.
//
// Syllabify is only defined for valid, non-empty wordforms. It does not
// check its input; use SyllabifyChecked when the input is untrusted.
//
// Nothing in this package performs I/O or holds mutable state.
package phon
