package cart

import (
	"sync"

	"escrowmart-web/internal/models"
)

// Item is a (product, quantity) pair in the cart
type Item struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Cart holds one session's shopping list in memory. Entries are unique by
// product ID and keep their insertion order. Mutations are synchronous and
// immediately reflected in the derived totals; nothing is persisted.
type Cart struct {
	mu    sync.RWMutex
	items []Item
}

// New creates an empty cart
func New() *Cart {
	return &Cart{}
}

// Add puts a product in the cart with quantity one, or increments the
// quantity if the product is already present
func (c *Cart) Add(product models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].Product.ID == product.ID {
			c.items[i].Quantity++
			return
		}
	}

	c.items = append(c.items, Item{Product: product, Quantity: 1})
}

// Remove deletes the entry for the given product; no-op if absent
func (c *Cart) Remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeLocked(productID)
}

func (c *Cart) removeLocked(productID string) {
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// SetQuantity overwrites the entry's quantity. A quantity below one removes
// the entry. No maximum is enforced; stock limits live in the backend.
func (c *Cart) SetQuantity(productID string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity < 1 {
		c.removeLocked(productID)
		return
	}

	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
}

// Items returns a snapshot of the cart contents
func (c *Cart) Items() []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}

// TotalItems returns the sum of all quantities
func (c *Cart) TotalItems() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice returns the sum of price times quantity across entries
func (c *Cart) TotalPrice() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0.0
	for _, item := range c.items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}

// CheckoutItems projects each entry into the flat shape consumed by the
// checkout processor
func (c *Cart) CheckoutItems() []models.CheckoutItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]models.CheckoutItem, 0, len(c.items))
	for _, item := range c.items {
		items = append(items, models.CheckoutItem{
			ProductID:    item.Product.ID,
			ProductName:  item.Product.Name,
			ProductImage: item.Product.Image,
			Price:        item.Product.Price,
			SellerID:     item.Product.SellerID,
			SellerName:   item.Product.SellerName,
			Quantity:     item.Quantity,
		})
	}
	return items
}
