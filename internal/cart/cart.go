// Package cart keeps the shopper's cart lines. It holds no persistence of its
// own; callers save Items after each change.
package cart

import (
	"github.com/google/uuid"
	"github.com/rogerio-castellano/storefront-assistant/internal/models"
)

type Cart struct {
	items []models.CartItem
	newID func() string
}

type Option func(*Cart)

// WithIDGenerator replaces the uuid generator used for new lines.
func WithIDGenerator(fn func() string) Option {
	return func(c *Cart) {
		c.newID = fn
	}
}

// New restores a cart from previously saved lines. Lines with a non-positive
// quantity are dropped.
func New(items []models.CartItem, opts ...Option) *Cart {
	c := &Cart{
		items: make([]models.CartItem, 0, len(items)),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	for _, it := range items {
		if it.Quantity > 0 {
			c.items = append(c.items, it)
		}
	}
	return c
}

// Add puts one unit of the product in the cart. An existing line for the same
// product is incremented and keeps its original snapshot.
func (c *Cart) Add(productID, name string, price float64, image string) models.CartItem {
	if i := c.indexByProduct(productID); i >= 0 {
		c.items[i].Quantity++
		return c.items[i]
	}

	item := models.CartItem{
		ID:        c.newID(),
		ProductID: productID,
		Name:      name,
		Price:     price,
		Image:     image,
		Quantity:  1,
	}
	c.items = append(c.items, item)
	return item
}

// Remove drops a line. Unknown ids are ignored.
func (c *Cart) Remove(itemID string) {
	if i := c.indexByID(itemID); i >= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
}

// UpdateQuantity sets the quantity of a line; zero or less removes it.
func (c *Cart) UpdateQuantity(itemID string, quantity int) {
	if quantity <= 0 {
		c.Remove(itemID)
		return
	}
	if i := c.indexByID(itemID); i >= 0 {
		c.items[i].Quantity = quantity
	}
}

func (c *Cart) Clear() {
	c.items = c.items[:0]
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []models.CartItem {
	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) TotalItems() int {
	total := 0
	for _, it := range c.items {
		total += it.Quantity
	}
	return total
}

func (c *Cart) TotalPrice() float64 {
	total := 0.0
	for _, it := range c.items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

func (c *Cart) indexByID(id string) int {
	for i, it := range c.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (c *Cart) indexByProduct(productID string) int {
	for i, it := range c.items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}
