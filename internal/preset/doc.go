// Package preset reads and writes named generator weight maps.
//
// A preset file holds a list of presets, each a name and a partial map from
// symbol to weight:
//
//	presets:
//	  - name: Soft
//	    weights:
//	      k: 0.2
//	      x: 0
//
// Files may be YAML (.yaml, .yml) or CUE (.cue). Both are checked against
// the embedded CUE schema before conversion, so an unknown symbol or a
// negative weight is reported with its CUE path.
package preset
