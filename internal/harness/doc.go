// Package harness runs conformance scenarios against the Novan phonology
// engine.
//
// A scenario lists wordforms with their expected validity and
// syllabification, and generation steps with their expected outcome. Run
// executes every step in order and records a trace; RunWithGolden and the
// CLI compare that trace against a golden file.
//
// # Scenario Format
//
//	name: scenario_name
//	description: "What this scenario validates"
//	weights: { k: 0.5 }          # optional; missing symbols weigh 1
//	cases:
//	  - word: natal
//	    valid: true
//	    syllables: [na, tal]
//	  - word: hka
//	    valid: false
//	    violations: [incompatible_pair, initial_cluster]
//	generate:
//	  - syllables: 2
//	    seed: 7
//	    count: 3
//	    forbidden: [ea]
//	    avoid_previous: true
//	    expect_error: exhausted
//
// Generation is seeded: a step with seed 0 uses testutil.DefaultSeed, so a
// scenario always produces the same trace. Every generated wordform is
// checked for validity and against the forbidden set whether or not the
// step lists expected words.
package harness
