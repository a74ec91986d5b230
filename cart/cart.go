// Package cart holds the in-memory order basket and its total computation.
// A cart lives for a single ordering session and is never persisted; the
// order written at checkout carries its own line snapshots.
package cart

import "math"

// TaxRate is the flat tax applied to every subtotal.
const TaxRate = 0.05

// DeliveryFee is the flat fee charged on delivery orders, in currency units.
const DeliveryFee = 30.0

// Item is the menu information a cart line refers to.
type Item struct {
	ID    uint
	Name  string
	Price float64
}

// Line is an item plus its quantity. Quantity is always >= 1; dropping below
// one removes the line instead of clamping.
type Line struct {
	Item     Item
	Quantity int
}

// Totals is the checkout breakdown.
type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	Tax         float64 `json:"tax"`
	DeliveryFee float64 `json:"delivery_fee"`
	Total       float64 `json:"total"`
}

// Cart is an ordered list of lines. Lookup is by item ID, not struct
// equality, so two Item values for the same menu row merge into one line.
type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// Add appends a new line at quantity 1, or increments the existing line for
// the same item ID.
func (c *Cart) Add(item Item) {
	for i := range c.lines {
		if c.lines[i].Item.ID == item.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, Line{Item: item, Quantity: 1})
}

// UpdateQuantity sets the quantity for an item's line. A quantity below one
// removes the line. Unknown IDs are a no-op.
func (c *Cart) UpdateQuantity(itemID uint, quantity int) {
	if quantity < 1 {
		c.Remove(itemID)
		return
	}
	for i := range c.lines {
		if c.lines[i].Item.ID == itemID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// Remove deletes the line for itemID unconditionally.
func (c *Cart) Remove(itemID uint) {
	for i := range c.lines {
		if c.lines[i].Item.ID == itemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Lines returns a copy of the current lines.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Totals computes subtotal, tax, delivery fee and total for the given
// fulfillment type. The delivery fee applies to "delivery" only.
func (c *Cart) Totals(fulfillment string) Totals {
	var subtotal float64
	for _, l := range c.lines {
		subtotal += l.Item.Price * float64(l.Quantity)
	}
	return Compute(subtotal, fulfillment)
}

// Compute derives the breakdown from a raw subtotal. Exposed so checkout can
// re-derive totals from line snapshots without building a Cart.
func Compute(subtotal float64, fulfillment string) Totals {
	fee := 0.0
	if fulfillment == "delivery" {
		fee = DeliveryFee
	}
	subtotal = round2(subtotal)
	tax := round2(subtotal * TaxRate)
	return Totals{
		Subtotal:    subtotal,
		Tax:         tax,
		DeliveryFee: fee,
		Total:       round2(subtotal + tax + fee),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
