package phon

// Shape is the CV shape of an inventory syllable.
type Shape string

const (
	ShapeV   Shape = "V"
	ShapeCV  Shape = "CV"
	ShapeVC  Shape = "VC"
	ShapeCVC Shape = "CVC"
)

// Shapes lists the syllable shapes in inventory order.
var Shapes = []Shape{ShapeV, ShapeCV, ShapeVC, ShapeCVC}

// Inventory is the closed set of syllables of shape V, CV, VC and CVC over
// an alphabet. It is built once per Alphabet and never modified.
//
// Entries are not filtered: a syllable may be fine on its own and still
// produce an invalid wordform when concatenated with its neighbours.
type Inventory struct {
	syllables []string
	shapes    []Shape
	index     map[string]int
}

// Inventory returns the syllable inventory of a.
func (a *Alphabet) Inventory() *Inventory {
	return a.inventory
}

// buildInventory enumerates, in order: every vowel; every consonant+vowel;
// every vowel+consonant; every consonant+vowel+consonant. The outer loops
// run over consonants, the innermost over vowels.
func buildInventory(a *Alphabet) *Inventory {
	nv, nc := len(a.vowels), len(a.consonants)
	size := nv + 2*nc*nv + nc*nc*nv
	inv := &Inventory{
		syllables: make([]string, 0, size),
		shapes:    make([]Shape, 0, size),
		index:     make(map[string]int, size),
	}

	add := func(shape Shape, syms ...Symbol) {
		rs := make([]rune, len(syms))
		for i, s := range syms {
			rs[i] = rune(s)
		}
		syl := string(rs)
		inv.index[syl] = len(inv.syllables)
		inv.syllables = append(inv.syllables, syl)
		inv.shapes = append(inv.shapes, shape)
	}

	for _, v := range a.vowels {
		add(ShapeV, v)
	}
	for _, c := range a.consonants {
		for _, v := range a.vowels {
			add(ShapeCV, c, v)
		}
	}
	for _, c := range a.consonants {
		for _, v := range a.vowels {
			add(ShapeVC, v, c)
		}
	}
	for _, c1 := range a.consonants {
		for _, c2 := range a.consonants {
			for _, v := range a.vowels {
				add(ShapeCVC, c1, v, c2)
			}
		}
	}
	return inv
}

// Len returns the number of syllables.
func (inv *Inventory) Len() int {
	return len(inv.syllables)
}

// At returns the i-th syllable.
func (inv *Inventory) At(i int) string {
	return inv.syllables[i]
}

// ShapeAt returns the shape of the i-th syllable.
func (inv *Inventory) ShapeAt(i int) Shape {
	return inv.shapes[i]
}

// Index returns the position of syl, if it is in the inventory.
func (inv *Inventory) Index(syl string) (int, bool) {
	i, ok := inv.index[syl]
	return i, ok
}

// Syllables returns a copy of every syllable in inventory order.
func (inv *Inventory) Syllables() []string {
	return append([]string(nil), inv.syllables...)
}

// Count returns how many syllables have the given shape.
func (inv *Inventory) Count(shape Shape) int {
	n := 0
	for _, s := range inv.shapes {
		if s == shape {
			n++
		}
	}
	return n
}
