package lexicon

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/novan/internal/gen"
)

var (
	// ErrDuplicateURI is returned by Add when the URI is already present.
	ErrDuplicateURI = errors.New("duplicate entry URI")
	// ErrMissingURI is returned by Add for an entry without a URI.
	ErrMissingURI = errors.New("entry has no URI")
)

// Lexicon is an ordered set of entries keyed by URI. It is not safe for
// concurrent mutation.
type Lexicon struct {
	entries []*Entry
	byURI   map[string]int
}

// New builds a lexicon from entries, in order.
func New(entries ...*Entry) (*Lexicon, error) {
	l := &Lexicon{byURI: make(map[string]int, len(entries))}
	for _, e := range entries {
		if err := l.Add(e); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Add appends e.
func (l *Lexicon) Add(e *Entry) error {
	if e.URI == "" {
		return ErrMissingURI
	}
	if _, ok := l.byURI[e.URI]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateURI, e.URI)
	}
	l.byURI[e.URI] = len(l.entries)
	l.entries = append(l.entries, e)
	return nil
}

// Remove deletes the entry with the given URI and reports whether it was
// present.
func (l *Lexicon) Remove(uri string) bool {
	i, ok := l.byURI[uri]
	if !ok {
		return false
	}
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	delete(l.byURI, uri)
	for j := i; j < len(l.entries); j++ {
		l.byURI[l.entries[j].URI] = j
	}
	return true
}

// Get returns the entry with the given URI.
func (l *Lexicon) Get(uri string) (*Entry, bool) {
	i, ok := l.byURI[uri]
	if !ok {
		return nil, false
	}
	return l.entries[i], true
}

// Len returns the number of entries.
func (l *Lexicon) Len() int {
	return len(l.entries)
}

// Entries returns the entries in insertion order. The slice is a copy; the
// entries are shared.
func (l *Lexicon) Entries() []*Entry {
	return append([]*Entry(nil), l.entries...)
}

// Wordforms returns every non-empty wordform, ready to be passed as the
// forbidden set of gen.Generator.Generate.
func (l *Lexicon) Wordforms() gen.WordSet {
	s := gen.NewWordSet()
	for _, e := range l.entries {
		if e.Wordform != "" {
			s.Add(e.Wordform)
		}
	}
	return s
}

// DefaultPrimeTags is used by Filter when FilterOptions.PrimeTags is nil.
// Entries that are not primes are tagged "-".
var DefaultPrimeTags = map[string]string{"": "-"}

// UnknownPrimeTag tags primes missing from the tag table.
const UnknownPrimeTag = "?"

// FilterOptions controls Filter.
type FilterOptions struct {
	Search         string            // case-insensitive substring of the label
	ByEnglish      bool              // label by English gloss instead of wordform
	ShowCompletion bool              // prefix "[done/total] "
	ShowPrime      bool              // prefix the prime tag
	PrimeTags      map[string]string // prime kind to tag
}

// Match is one row of a filtered listing.
type Match struct {
	Label string
	Entry *Entry
}

// Filter builds the labelled listing of the lexicon, keeps the rows whose
// label contains the search text and sorts them by label.
//
// The search text is trimmed and lower-cased; labels are not, so an
// upper-case English gloss only matches through its lower-case parts.
func (l *Lexicon) Filter(opts FilterOptions) []Match {
	tags := opts.PrimeTags
	if tags == nil {
		tags = DefaultPrimeTags
	}
	search := strings.ToLower(strings.TrimSpace(opts.Search))

	var out []Match
	for _, e := range l.entries {
		label := e.Wordform
		if opts.ByEnglish {
			label = e.English
		}
		if opts.ShowCompletion {
			done, total := e.Completion()
			label = fmt.Sprintf("[%d/%d] %s", done, total, label)
		}
		if opts.ShowPrime {
			tag, ok := tags[e.Prime]
			if !ok {
				tag = UnknownPrimeTag
			}
			label = tag + " " + label
		}

		if search == "" || strings.Contains(label, search) {
			out = append(out, Match{Label: label, Entry: e})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Label < out[j].Label
	})
	return out
}
