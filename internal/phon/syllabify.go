package phon

import "strings"

// Tag is the consonant/vowel label of one symbol.
type Tag byte

const (
	C Tag = 'C'
	V Tag = 'V'
)

// Pattern is the CV view of a wordform, one tag per symbol.
type Pattern []Tag

func (p Pattern) String() string {
	var b strings.Builder
	b.Grow(len(p))
	for _, t := range p {
		b.WriteByte(byte(t))
	}
	return b.String()
}

// Pattern maps every symbol of word to V if it is a vowel and C otherwise.
func (a *Alphabet) Pattern(word string) Pattern {
	return a.pattern([]rune(word))
}

func (a *Alphabet) pattern(w []rune) Pattern {
	p := make(Pattern, len(w))
	for i, r := range w {
		if a.IsVowel(Symbol(r)) {
			p[i] = V
		} else {
			p[i] = C
		}
	}
	return p
}

// span is a half-open range [start, end) of symbol indexes.
type span struct {
	start, end int
}

// Syllabify splits a valid, non-empty wordform into syllables. Joining the
// result reproduces word exactly.
//
// Within each range the leftmost CC or VV boundary is split first; failing
// that, the leftmost VCV is split before the consonant so it becomes the
// onset of the next syllable. A range with neither pattern is one syllable.
//
// The result for invalid input is unspecified.
func (a *Alphabet) Syllabify(word string) []string {
	w := []rune(word)
	p := a.pattern(w)

	var out []string
	stack := []span{{0, len(w)}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		cut := splitPoint(p, s)
		if cut < 0 {
			out = append(out, string(w[s.start:s.end]))
			continue
		}
		// right half first so the left half is popped next
		stack = append(stack, span{cut, s.end}, span{s.start, cut})
	}
	return out
}

// SyllabifyChecked validates word before splitting it.
func (a *Alphabet) SyllabifyChecked(word string) ([]string, error) {
	if word == "" {
		return nil, ErrEmptyWordform
	}
	if err := a.Validate(word); err != nil {
		return nil, err
	}
	return a.Syllabify(word), nil
}

// splitPoint returns the index where s must be cut, or -1 if s is a single
// syllable.
func splitPoint(p Pattern, s span) int {
	for i := s.start; i+1 < s.end; i++ {
		if p[i] == p[i+1] {
			return i + 1
		}
	}
	for i := s.start; i+2 < s.end; i++ {
		if p[i] == V && p[i+1] == C && p[i+2] == V {
			return i + 1
		}
	}
	return -1
}
