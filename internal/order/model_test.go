package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddItemDedup(t *testing.T) {
	var items []LineItem
	mods := []string{"spice: mild"}

	items = AddItem(items, "chicken dum biryani", 2, 15.99, mods)
	items = AddItem(items, "chicken dum biryani", 3, 15.99, mods)

	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.InDelta(t, 5*15.99, items[0].LineTotal, 0.001)
}

func TestAddItemDistinctModifiersDistinctLines(t *testing.T) {
	var items []LineItem

	items = AddItem(items, "chicken dum biryani", 1, 15.99, []string{"spice: mild"})
	items = AddItem(items, "chicken dum biryani", 1, 15.99, []string{"spice: spicy"})
	items = AddItem(items, "chicken dum biryani", 1, 15.99, nil)

	assert.Len(t, items, 3)
}

func TestAddItemModifierOrderMatters(t *testing.T) {
	var items []LineItem

	items = AddItem(items, "lamb curry", 1, 17.99, []string{"spice: mild", "no onions"})
	items = AddItem(items, "lamb curry", 1, 17.99, []string{"no onions", "spice: mild"})

	// Producers append modifiers in a fixed sequence, so list order is part
	// of the identity.
	assert.Len(t, items, 2)
}

func TestComputeTotalsIdempotent(t *testing.T) {
	items := []LineItem{
		{Name: "butter chicken", Quantity: 1, UnitPrice: 17.99},
		{Name: "chicken dum biryani", Quantity: 2, UnitPrice: 15.99},
	}

	s1, t1, tot1 := ComputeTotals(items, 0.065)
	s2, t2, tot2 := ComputeTotals(items, 0.065)

	assert.Equal(t, s1, s2)
	assert.Equal(t, t1, t2)
	assert.Equal(t, tot1, tot2)

	assert.InDelta(t, 49.97, s1, 0.001)
	assert.InDelta(t, 3.25, t1, 0.001)
	assert.InDelta(t, 53.22, tot1, 0.001)
}

func TestComputeTotalsEmpty(t *testing.T) {
	s, tax, total := ComputeTotals(nil, 0.065)
	assert.Zero(t, s)
	assert.Zero(t, tax)
	assert.Zero(t, total)
}
