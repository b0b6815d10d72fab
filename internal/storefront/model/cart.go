package model

// CartItem is a line in the cart. Product is a snapshot taken when the line
// was created.
type CartItem struct {
	Product       Product `json:"product"`
	Quantity      int     `json:"quantity"`
	SelectedSize  string  `json:"selectedSize"`
	SelectedColor string  `json:"selectedColor"`
}

// LineTotal is price times quantity.
func (c CartItem) LineTotal() float64 {
	return c.Product.Price * float64(c.Quantity)
}

// CloneItems deep-copies a slice of cart items.
func CloneItems(items []CartItem) []CartItem {
	if items == nil {
		return nil
	}
	out := make([]CartItem, len(items))
	for i, it := range items {
		it.Product = it.Product.Clone()
		out[i] = it
	}
	return out
}
