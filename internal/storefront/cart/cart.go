// Package cart holds the buyer's line items. Every method returns a new Cart
// and leaves the receiver untouched so callers can persist before committing.
package cart

import "github.com/vancy-storefront/server/internal/storefront/model"

type Cart struct {
	items []model.CartItem
}

// New wraps items, copying them.
func New(items []model.CartItem) Cart {
	return Cart{items: model.CloneItems(items)}
}

// Items returns a copy of the line items.
func (c Cart) Items() []model.CartItem {
	out := model.CloneItems(c.items)
	if out == nil {
		out = []model.CartItem{}
	}
	return out
}

func (c Cart) Len() int {
	return len(c.items)
}

func (c Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Add merges on (product id, size). A matching line gains one unit and keeps
// its original color; otherwise a new line with quantity 1 is appended.
func (c Cart) Add(p model.Product, size, color string) Cart {
	next := model.CloneItems(c.items)
	for i := range next {
		if next[i].Product.ID == p.ID && next[i].SelectedSize == size {
			next[i].Quantity++
			return Cart{items: next}
		}
	}
	next = append(next, model.CartItem{
		Product:       p.Clone(),
		Quantity:      1,
		SelectedSize:  size,
		SelectedColor: color,
	})
	return Cart{items: next}
}

// Remove drops the line at index. ok is false when index is out of range.
func (c Cart) Remove(index int) (next Cart, ok bool) {
	if index < 0 || index >= len(c.items) {
		return c, false
	}
	items := make([]model.CartItem, 0, len(c.items)-1)
	items = append(items, model.CloneItems(c.items[:index])...)
	items = append(items, model.CloneItems(c.items[index+1:])...)
	return Cart{items: items}, true
}

// UpdateQuantity adds delta to the line at index. Results below 1 and bad
// indexes are rejected and ok is false.
func (c Cart) UpdateQuantity(index, delta int) (next Cart, ok bool) {
	if index < 0 || index >= len(c.items) {
		return c, false
	}
	qty := c.items[index].Quantity + delta
	if qty < 1 {
		return c, false
	}
	items := model.CloneItems(c.items)
	items[index].Quantity = qty
	return Cart{items: items}, true
}

// Subtotal is the sum of price times quantity.
func (c Cart) Subtotal() float64 {
	return Subtotal(c.items)
}

// Count is the total number of units.
func (c Cart) Count() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Subtotal sums line totals.
func Subtotal(items []model.CartItem) float64 {
	var total float64
	for _, it := range items {
		total += it.LineTotal()
	}
	return total
}

// Clear returns an empty cart.
func (c Cart) Clear() Cart {
	return Cart{}
}
