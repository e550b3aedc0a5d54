package quotation

import "github.com/sunvolt-erp/sunvolt/internal/catalog"

// LineItems is the mutable selection set of a quotation flow. It holds at
// most one entry per product id and preserves insertion order for display
// grouping. The zero value is ready to use.
type LineItems []LineItem

// Add appends a product with quantity one, or bumps the quantity when the
// product is already selected.
func (items *LineItems) Add(product catalog.Product) {
	for i := range *items {
		if (*items)[i].Product.ID == product.ID {
			(*items)[i].Quantity++
			return
		}
	}
	*items = append(*items, LineItem{Product: product, Quantity: 1})
}

// Increment bumps the quantity of an existing entry. Unknown ids are ignored.
// There is no upper bound.
func (items LineItems) Increment(id int64) {
	for i := range items {
		if items[i].Product.ID == id {
			items[i].Quantity++
			return
		}
	}
}

// Decrement lowers the quantity of an existing entry, stopping at one.
// Dropping to zero requires an explicit Remove.
func (items LineItems) Decrement(id int64) {
	for i := range items {
		if items[i].Product.ID == id {
			if items[i].Quantity > 1 {
				items[i].Quantity--
			}
			return
		}
	}
}

// Remove deletes an entry regardless of its quantity.
func (items *LineItems) Remove(id int64) {
	for i := range *items {
		if (*items)[i].Product.ID == id {
			*items = append((*items)[:i], (*items)[i+1:]...)
			return
		}
	}
}

// TotalPrice recomputes the running total from the current entry set on
// every call; nothing is cached.
func (items LineItems) TotalPrice() float64 {
	var total float64
	for _, item := range items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}

// ByCategory returns the entries belonging to a category, in insertion
// order. Entries without a category group under ACCESSORY.
func (items LineItems) ByCategory(category catalog.Category) LineItems {
	var filtered LineItems
	for _, item := range items {
		c := item.Product.Category
		if c == "" {
			c = catalog.CategoryAccessory
		}
		if c == category {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// Get returns the entry for a product id, or nil.
func (items LineItems) Get(id int64) *LineItem {
	for i := range items {
		if items[i].Product.ID == id {
			return &items[i]
		}
	}
	return nil
}
