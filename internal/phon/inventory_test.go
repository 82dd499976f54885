package phon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventory_Size(t *testing.T) {
	inv := Novan().Inventory()

	assert.Equal(t, 845, inv.Len())
	assert.Equal(t, 5, inv.Count(ShapeV))
	assert.Equal(t, 60, inv.Count(ShapeCV))
	assert.Equal(t, 60, inv.Count(ShapeVC))
	assert.Equal(t, 720, inv.Count(ShapeCVC))
}

func TestInventory_Order(t *testing.T) {
	inv := Novan().Inventory()

	assert.Equal(t, []string{"i", "e", "a", "o", "u"}, inv.Syllables()[:5])
	assert.Equal(t, "hi", inv.At(5))
	assert.Equal(t, "he", inv.At(6))
	assert.Equal(t, "ih", inv.At(65))
	assert.Equal(t, "hih", inv.At(125))
	assert.Equal(t, "sus", inv.At(inv.Len()-1))

	assert.Equal(t, ShapeV, inv.ShapeAt(0))
	assert.Equal(t, ShapeCV, inv.ShapeAt(5))
	assert.Equal(t, ShapeVC, inv.ShapeAt(65))
	assert.Equal(t, ShapeCVC, inv.ShapeAt(125))
}

func TestInventory_Index(t *testing.T) {
	inv := Novan().Inventory()

	i, ok := inv.Index("hih")
	require.True(t, ok)
	assert.Equal(t, 125, i)

	_, ok = inv.Index("kk")
	assert.False(t, ok)

	for i, s := range inv.Syllables() {
		j, ok := inv.Index(s)
		require.True(t, ok)
		assert.Equal(t, i, j, "syllables are unique")
	}
}

func TestInventory_Unfiltered(t *testing.T) {
	a := Novan()
	inv := a.Inventory()

	// "ha" breaks the breath rule but stays in the inventory
	_, ok := inv.Index("ha")
	assert.True(t, ok)
	assert.False(t, a.IsValid("ha"))
}
