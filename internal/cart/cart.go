// Package cart is the checkout cart aggregate. It mirrors the
// storefront client's cart store: a list of items plus a UI open flag,
// with a serialization contract that covers the items only so a
// persisted cart never pins the UI state.
package cart

import (
	"encoding/json"
)

type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image,omitempty"`
}

type Cart struct {
	items []Item
	open  bool
}

func New() *Cart {
	return &Cart{}
}

// Add merges quantity into an existing line for the same product,
// otherwise appends a new line.
func (c *Cart) Add(item Item) {
	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i].Quantity += item.Quantity
			return
		}
	}
	c.items = append(c.items, item)
}

func (c *Cart) Remove(id string) {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// SetQuantity sets a line's quantity, clamped to a minimum of 1.
// Removing a line goes through Remove, not a zero quantity.
func (c *Cart) SetQuantity(id string, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity = quantity
			return
		}
	}
}

func (c *Cart) Clear() {
	c.items = nil
}

func (c *Cart) Open()   { c.open = true }
func (c *Cart) Close()  { c.open = false }
func (c *Cart) Toggle() { c.open = !c.open }

func (c *Cart) IsOpen() bool {
	return c.open
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Count() int {
	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

func (c *Cart) Subtotal() float64 {
	var total float64
	for _, item := range c.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

type cartJSON struct {
	Items []Item `json:"items"`
}

// MarshalJSON serializes the itemized list only; the open flag is UI
// state and is deliberately excluded.
func (c *Cart) MarshalJSON() ([]byte, error) {
	return json.Marshal(cartJSON{Items: c.items})
}

func (c *Cart) UnmarshalJSON(data []byte) error {
	var v cartJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	c.items = v.Items
	c.open = false
	return nil
}
