// Package store provides SQLite-backed storage for the Novan lexicon and
// for named generator weight maps.
//
// Tables:
//   - entries: one row per lexical entry, keyed by URI; syllables are kept
//     as a JSON array
//   - generators: generator names
//   - generator_weights: per-symbol weights, deleted with their generator
//
// Listings are deterministic: entries come back in insertion order and
// generators sorted by name.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// The store does not validate wordforms; callers build entries through
// package lexicon, which does.
package store
