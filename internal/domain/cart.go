package domain

// Cart is the session's append-only list of added products.
// Adding the same product twice appends a second entry.
type Cart struct {
	items []Product
}

// Add appends p to the cart
func (c *Cart) Add(p Product) {
	c.items = append(c.items, p)
}

// Items returns a copy of the cart contents in insertion order
func (c *Cart) Items() []Product {
	out := make([]Product, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int {
	return len(c.items)
}

// Total sums the price of every entry
func (c *Cart) Total() float64 {
	var total float64
	for _, p := range c.items {
		total += p.Price
	}
	return total
}
