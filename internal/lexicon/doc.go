// Package lexicon holds Novan lexical entries: a wordform with its
// syllables, an English gloss, descriptions, an optional semantic prime and
// verb class flags.
//
// An Entry only ever carries a valid wordform. SetWordform normalizes its
// input (NFC, trimmed, lower case) and validates it against a phon.Alphabet
// before anything is written, so a rejected wordform leaves the entry as it
// was.
//
// A Lexicon is an ordered in-memory collection of entries keyed by URI. Its
// Wordforms feed the forbidden set of gen.Generator.Generate so generated
// words never collide with existing ones.
package lexicon
