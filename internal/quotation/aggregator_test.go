package quotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunvolt-erp/sunvolt/internal/catalog"
)

func panel(id int64, price float64) catalog.Product {
	return catalog.Product{ID: id, Name: "panel", Price: price, Category: catalog.CategoryPanel}
}

func TestAddSameProductIncrementsQuantity(t *testing.T) {
	var items LineItems
	items.Add(panel(1, 125_000))
	items.Add(panel(1, 125_000))

	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	var items LineItems
	items.Add(panel(3, 1))
	items.Add(panel(1, 1))
	items.Add(panel(2, 1))
	items.Add(panel(1, 1))

	require.Len(t, items, 3)
	assert.Equal(t, int64(3), items[0].Product.ID)
	assert.Equal(t, int64(1), items[1].Product.ID)
	assert.Equal(t, int64(2), items[2].Product.ID)
}

func TestDecrementFloorIsOne(t *testing.T) {
	var items LineItems
	items.Add(panel(1, 125_000))

	items.Decrement(1)
	items.Decrement(1)

	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestIncrementHasNoUpperBound(t *testing.T) {
	var items LineItems
	items.Add(panel(1, 1))
	for i := 0; i < 999; i++ {
		items.Increment(1)
	}
	assert.Equal(t, 1000, items[0].Quantity)
}

func TestIncrementUnknownIDIsNoop(t *testing.T) {
	var items LineItems
	items.Add(panel(1, 1))
	items.Increment(99)
	items.Decrement(99)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestRemoveDeletesRegardlessOfQuantity(t *testing.T) {
	var items LineItems
	items.Add(panel(1, 1))
	items.Increment(1)
	items.Increment(1)
	items.Add(panel(2, 1))

	items.Remove(1)

	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].Product.ID)
}

func TestTotalPriceTracksMutations(t *testing.T) {
	var items LineItems
	assert.Equal(t, 0.0, items.TotalPrice())

	items.Add(panel(1, 125_000))
	items.Add(panel(2, 30_000_000))
	items.Increment(1)
	items.Increment(1)
	items.Decrement(2)

	// 3 * 125,000 + 1 * 30,000,000 recomputed from scratch.
	var want float64
	for _, item := range items {
		want += item.Product.Price * float64(item.Quantity)
	}
	assert.Equal(t, want, items.TotalPrice())
	assert.Equal(t, 30_375_000.0, items.TotalPrice())

	items.Remove(2)
	assert.Equal(t, 375_000.0, items.TotalPrice())
}

func TestByCategoryGroupsUncategorizedAsAccessory(t *testing.T) {
	var items LineItems
	items.Add(catalog.Product{ID: 1, Category: catalog.CategoryPanel})
	items.Add(catalog.Product{ID: 2}) // no category, no template
	items.Add(catalog.Product{ID: 3, Category: catalog.CategoryAccessory})

	accessories := items.ByCategory(catalog.CategoryAccessory)
	require.Len(t, accessories, 2)
	assert.Equal(t, int64(2), accessories[0].Product.ID)
	assert.Equal(t, int64(3), accessories[1].Product.ID)

	panels := items.ByCategory(catalog.CategoryPanel)
	require.Len(t, panels, 1)
}
