package phon

import (
	"fmt"
	"strings"
)

// Symbol is a single alphabet character.
type Symbol rune

// String returns the symbol as a one-character string.
func (s Symbol) String() string {
	return string(s)
}

// Class tags a symbol as a vowel or as one of the consonant classes.
// The zero value means "not in the alphabet".
type Class uint8

const (
	Unknown Class = iota
	Vowel
	Breath
	Central
	Throat
	Nose
	Tongue
)

var classNames = map[Class]string{
	Unknown: "unknown",
	Vowel:   "vowel",
	Breath:  "breath",
	Central: "central",
	Throat:  "throat",
	Nose:    "nose",
	Tongue:  "tongue",
}

func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return fmt.Sprintf("class(%d)", uint8(c))
}

// IsConsonant reports whether c is one of the five consonant classes.
func (c Class) IsConsonant() bool {
	return c >= Breath && c <= Tongue
}

// ClassGroup assigns every symbol in Symbols to Class.
type ClassGroup struct {
	Class   Class
	Symbols string
}

// NovanGroups is the class partition of the Novan alphabet, in canonical
// order: consonants first, then vowels.
var NovanGroups = []ClassGroup{
	{Class: Breath, Symbols: "h"},
	{Class: Central, Symbols: "ltpf"},
	{Class: Throat, Symbols: "kgx"},
	{Class: Nose, Symbols: "nm"},
	{Class: Tongue, Symbols: "zs"},
	{Class: Vowel, Symbols: "ieaou"},
}

// Alphabet is an immutable partition of symbols into classes.
// Build one with NewAlphabet or use the shared Novan instance.
type Alphabet struct {
	classes    map[Symbol]Class
	order      []Symbol
	vowels     []Symbol
	consonants []Symbol
	inventory  *Inventory
}

var novan = MustNewAlphabet(NovanGroups...)

// Novan returns the shared Novan alphabet.
func Novan() *Alphabet {
	return novan
}

// NewAlphabet builds an alphabet from class groups. Symbols keep the order
// in which the groups list them. A symbol may belong to one class only, and
// the alphabet needs at least one vowel.
func NewAlphabet(groups ...ClassGroup) (*Alphabet, error) {
	a := &Alphabet{classes: make(map[Symbol]Class)}

	for _, g := range groups {
		if g.Class == Unknown || g.Class > Tongue {
			return nil, fmt.Errorf("invalid class %v for symbols %q", g.Class, g.Symbols)
		}
		for _, r := range g.Symbols {
			sym := Symbol(r)
			if prev, ok := a.classes[sym]; ok {
				return nil, fmt.Errorf("symbol %q assigned to both %v and %v", r, prev, g.Class)
			}
			a.classes[sym] = g.Class
			a.order = append(a.order, sym)
			if g.Class == Vowel {
				a.vowels = append(a.vowels, sym)
			} else {
				a.consonants = append(a.consonants, sym)
			}
		}
	}

	if len(a.vowels) == 0 {
		return nil, fmt.Errorf("alphabet has no vowels")
	}

	a.inventory = buildInventory(a)
	return a, nil
}

// MustNewAlphabet is like NewAlphabet but panics on error.
func MustNewAlphabet(groups ...ClassGroup) *Alphabet {
	a, err := NewAlphabet(groups...)
	if err != nil {
		panic(fmt.Sprintf("phon: %v", err))
	}
	return a
}

// Class returns the class of s, or Unknown if s is not in the alphabet.
func (a *Alphabet) Class(s Symbol) Class {
	return a.classes[s]
}

// Contains reports whether s belongs to the alphabet.
func (a *Alphabet) Contains(s Symbol) bool {
	_, ok := a.classes[s]
	return ok
}

// IsVowel reports whether s is a vowel of the alphabet.
func (a *Alphabet) IsVowel(s Symbol) bool {
	return a.classes[s] == Vowel
}

// IsConsonant reports whether s is a consonant of the alphabet.
func (a *Alphabet) IsConsonant(s Symbol) bool {
	return a.classes[s].IsConsonant()
}

// Len returns the number of symbols.
func (a *Alphabet) Len() int {
	return len(a.order)
}

// Symbols returns every symbol in canonical order.
func (a *Alphabet) Symbols() []Symbol {
	return append([]Symbol(nil), a.order...)
}

// Vowels returns the vowels in canonical order.
func (a *Alphabet) Vowels() []Symbol {
	return append([]Symbol(nil), a.vowels...)
}

// Consonants returns the consonants in canonical order.
func (a *Alphabet) Consonants() []Symbol {
	return append([]Symbol(nil), a.consonants...)
}

// String returns all symbols concatenated in canonical order.
func (a *Alphabet) String() string {
	var b strings.Builder
	for _, s := range a.order {
		b.WriteRune(rune(s))
	}
	return b.String()
}

// ParseSymbol converts a one-character string into a symbol of a.
func (a *Alphabet) ParseSymbol(s string) (Symbol, error) {
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, fmt.Errorf("symbol %q must be exactly one character", s)
	}
	sym := Symbol(runes[0])
	if !a.Contains(sym) {
		return 0, fmt.Errorf("symbol %q is not in the alphabet %q", s, a.String())
	}
	return sym, nil
}
