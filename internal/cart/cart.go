// Package cart holds the per-session shopping cart. Carts are process
// memory only: a restart, like a page reload, loses them.
package cart

import (
	"sync"

	"stockdesk/internal/domain"
)

type Cart struct {
	mu           sync.Mutex
	items        []domain.CartItem // insertion order = first-add order
	customerName string
}

// AddItem appends a new line, or bumps the quantity of an existing one by
// qty. The price recorded on first add is kept even when a later call passes
// a different price.
func (c *Cart) AddItem(productID int64, name string, price float64, qty int) {
	if qty < 1 {
		qty = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity += qty
			return
		}
	}
	c.items = append(c.items, domain.CartItem{ProductID: productID, Name: name, Price: price, Quantity: qty})
}

func (c *Cart) RemoveItem(productID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(productID)
}

func (c *Cart) removeLocked(productID int64) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity overwrites a line's quantity; zero or negative removes the
// line entirely.
func (c *Cart) UpdateQuantity(productID int64, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if quantity <= 0 {
		c.removeLocked(productID)
		return
	}
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart and resets the customer name.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.customerName = ""
}

// Items returns a copy; callers never see internal state.
func (c *Cart) Items() []domain.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Quantity reports the current quantity for a product, 0 when absent.
func (c *Cart) Quantity(productID int64) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ProductID == productID {
			return c.items[i].Quantity
		}
	}
	return 0
}

// Total is recomputed on every read.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	sum := 0.0
	for _, it := range c.items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cart) CustomerName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.customerName
}

func (c *Cart) SetCustomerName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.customerName = name
}
