package lexicon

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/novan/internal/phon"
)

// ErrSyllablesMismatch is returned when explicit syllables do not
// concatenate to the entry's wordform.
var ErrSyllablesMismatch = errors.New("syllables do not spell the wordform")

// ErrUnknownVerbClass is returned by ParseVerbClass.
var ErrUnknownVerbClass = errors.New("unknown verb class")

// VerbClass names one of the verb class flags of an Entry.
type VerbClass string

const (
	Generic   VerbClass = "generic"
	State     VerbClass = "state"
	Process   VerbClass = "process"
	Cognition VerbClass = "cognition"
	Transfer  VerbClass = "transfer"
)

// VerbClasses lists every verb class in display order.
var VerbClasses = []VerbClass{Generic, State, Process, Cognition, Transfer}

// ParseVerbClass converts a class name, in any case, into a VerbClass.
func ParseVerbClass(s string) (VerbClass, error) {
	c := VerbClass(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range VerbClasses {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVerbClass, s)
}

// Entry is one lexical entry.
type Entry struct {
	URI          string   `json:"uri"`
	Wordform     string   `json:"wordform"`
	Syllables    []string `json:"syllables"`
	English      string   `json:"english"`
	WordformDesc string   `json:"wordform_desc"`
	EnglishDesc  string   `json:"english_desc"`
	Prime        string   `json:"prime"`

	Generic   bool `json:"generic"`
	State     bool `json:"state"`
	Process   bool `json:"process"`
	Cognition bool `json:"cognition"`
	Transfer  bool `json:"transfer"`
}

type entryConfig struct {
	uri          string
	uris         URIGenerator
	syllables    []string
	english      string
	wordformDesc string
	englishDesc  string
	prime        string
	classes      []VerbClass
}

// EntryOption configures NewEntry.
type EntryOption func(*entryConfig)

// WithURI sets the URI instead of generating one.
func WithURI(uri string) EntryOption {
	return func(c *entryConfig) { c.uri = uri }
}

// WithURIGenerator sets the source of generated URIs. The default is
// UUIDv7Generator.
func WithURIGenerator(g URIGenerator) EntryOption {
	return func(c *entryConfig) { c.uris = g }
}

// WithSyllables overrides the computed syllabification. The syllables must
// concatenate to the wordform.
func WithSyllables(syllables ...string) EntryOption {
	return func(c *entryConfig) { c.syllables = syllables }
}

// WithEnglish sets the English gloss.
func WithEnglish(en string) EntryOption {
	return func(c *entryConfig) { c.english = en }
}

// WithDescriptions sets the Novan and English descriptions.
func WithDescriptions(wordformDesc, englishDesc string) EntryOption {
	return func(c *entryConfig) {
		c.wordformDesc = wordformDesc
		c.englishDesc = englishDesc
	}
}

// WithPrime marks the entry as a semantic prime of the given kind.
func WithPrime(prime string) EntryOption {
	return func(c *entryConfig) { c.prime = prime }
}

// WithVerbClasses sets the given verb class flags.
func WithVerbClasses(classes ...VerbClass) EntryOption {
	return func(c *entryConfig) { c.classes = append(c.classes, classes...) }
}

// NewEntry creates an entry for wordform. The wordform is normalized and
// validated as by SetWordform; an empty wordform is allowed.
func NewEntry(a *phon.Alphabet, wordform string, opts ...EntryOption) (*Entry, error) {
	cfg := entryConfig{uris: UUIDv7Generator{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	e := &Entry{
		URI:          cfg.uri,
		English:      cfg.english,
		WordformDesc: cfg.wordformDesc,
		EnglishDesc:  cfg.englishDesc,
		Prime:        cfg.prime,
		Syllables:    []string{},
	}
	if err := e.SetWordform(a, wordform); err != nil {
		return nil, err
	}
	if cfg.syllables != nil {
		if err := e.SetSyllables(cfg.syllables); err != nil {
			return nil, err
		}
	}
	for _, c := range cfg.classes {
		e.SetVerbClass(c, true)
	}
	if e.URI == "" {
		e.URI = cfg.uris.Generate()
	}
	return e, nil
}

// NormalizeWordform brings user input into the form stored in entries:
// NFC, surrounding space trimmed, lower case.
func NormalizeWordform(s string) string {
	s = strings.TrimSpace(norm.NFC.String(s))
	return cases.Lower(language.Und).String(s)
}

// SetWordform normalizes w, validates it and stores it with its computed
// syllables. On failure it returns a *phon.InvalidWordformError and the
// entry is unchanged.
func (e *Entry) SetWordform(a *phon.Alphabet, w string) error {
	w = NormalizeWordform(w)
	if err := a.Validate(w); err != nil {
		return err
	}

	e.Wordform = w
	if w == "" {
		e.Syllables = []string{}
	} else {
		e.Syllables = a.Syllabify(w)
	}
	return nil
}

// SetSyllables replaces the syllabification. It fails with
// ErrSyllablesMismatch, leaving the entry unchanged, unless the syllables
// concatenate to the current wordform.
func (e *Entry) SetSyllables(syllables []string) error {
	if joined := strings.Join(syllables, ""); joined != e.Wordform {
		return fmt.Errorf("%w: %q != %q", ErrSyllablesMismatch, joined, e.Wordform)
	}
	e.Syllables = append([]string{}, syllables...)
	return nil
}

// SetVerbClass sets or clears one verb class flag. Unknown classes are
// ignored.
func (e *Entry) SetVerbClass(c VerbClass, on bool) {
	switch c {
	case Generic:
		e.Generic = on
	case State:
		e.State = on
	case Process:
		e.Process = on
	case Cognition:
		e.Cognition = on
	case Transfer:
		e.Transfer = on
	}
}

// VerbClasses returns the classes whose flag is set.
func (e *Entry) VerbClasses() []VerbClass {
	flags := []bool{e.Generic, e.State, e.Process, e.Cognition, e.Transfer}
	var out []VerbClass
	for i, on := range flags {
		if on {
			out = append(out, VerbClasses[i])
		}
	}
	return out
}

// Completion counts how many of the six editorial criteria the entry meets:
// at least one verb class, a wordform, an English gloss, both descriptions
// and a prime.
func (e *Entry) Completion() (done, total int) {
	criteria := []bool{
		len(e.VerbClasses()) > 0,
		e.Wordform != "",
		e.English != "",
		e.WordformDesc != "",
		e.EnglishDesc != "",
		e.Prime != "",
	}
	for _, ok := range criteria {
		if ok {
			done++
		}
	}
	return done, len(criteria)
}

// Clone returns a deep copy of e.
func (e *Entry) Clone() *Entry {
	c := *e
	c.Syllables = append([]string{}, e.Syllables...)
	return &c
}
