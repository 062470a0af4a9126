package models

// CartItem pairs a product snapshot with a quantity. The snapshot is taken
// when the item is first added so the cart keeps showing the price the
// shopper saw.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Cart is an ordered list of cart items. At most one item exists per
// product ID, and quantities are always >= 1; items dropping to zero are
// removed rather than retained.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Add puts one unit of the product into the cart: increments the existing
// item if present, otherwise appends a new item with quantity 1.
func (c *Cart) Add(p Product) {
	for i := range c.Items {
		if c.Items[i].Product.ID == p.ID {
			c.Items[i].Quantity++
			return
		}
	}
	c.Items = append(c.Items, CartItem{Product: p, Quantity: 1})
}

// Adjust applies delta to the quantity of the item with the given product
// ID. Items whose quantity drops to zero or below are removed. Unknown
// product IDs are a no-op.
func (c *Cart) Adjust(productID string, delta int) {
	for i := range c.Items {
		if c.Items[i].Product.ID != productID {
			continue
		}
		c.Items[i].Quantity += delta
		if c.Items[i].Quantity <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		}
		return
	}
}

// Total returns the sum of price times quantity over all items. Rounding
// to two fraction digits happens at display time, not here.
func (c *Cart) Total() float64 {
	var sum float64
	for _, it := range c.Items {
		sum += it.Product.Price * float64(it.Quantity)
	}
	return sum
}

// Count returns the total number of units across all items.
func (c *Cart) Count() int {
	var n int
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}
