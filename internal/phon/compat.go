package phon

// Compatible reports whether a may be immediately followed by b inside a
// wordform. The first matching rule decides:
//
//  1. a breath consonant is never followed by anything;
//  2. a symbol is never repeated;
//  3. two throat, two nose or two tongue consonants never touch;
//  4. anything else is allowed.
//
// The relation is not symmetric: rule 1 only looks at a.
func (a *Alphabet) Compatible(x, y Symbol) bool {
	cx := a.Class(x)
	if cx == Breath {
		return false
	}

	if x == y {
		return false
	}

	switch cx {
	case Throat, Nose, Tongue:
		if a.Class(y) == cx {
			return false
		}
	}

	return true
}
