package testutil

// EnumerateWords returns every string of length 0..maxLen over symbols,
// shortest first and in lexicographic order of symbols within a length.
//
// The count grows as len(symbols)^maxLen; keep both small in tests.
func EnumerateWords(symbols string, maxLen int) []string {
	alphabet := []rune(symbols)
	words := []string{""}
	frontier := []string{""}
	for n := 1; n <= maxLen; n++ {
		next := make([]string, 0, len(frontier)*len(alphabet))
		for _, prefix := range frontier {
			for _, r := range alphabet {
				next = append(next, prefix+string(r))
			}
		}
		words = append(words, next...)
		frontier = next
	}
	return words
}
