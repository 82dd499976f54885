package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// marshalSyllables converts syllables to JSON TEXT for storage. A nil slice
// is stored as "[]".
func marshalSyllables(syllables []string) (string, error) {
	if syllables == nil {
		syllables = []string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(syllables); err != nil {
		return "", fmt.Errorf("marshal syllables: %w", err)
	}
	// Encoder adds a trailing newline, remove it
	return strings.TrimSpace(buf.String()), nil
}

// unmarshalSyllables parses JSON TEXT into syllables. It never returns a nil
// slice on success.
func unmarshalSyllables(data string) ([]string, error) {
	out := []string{}
	if data == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return nil, fmt.Errorf("unmarshal syllables: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
