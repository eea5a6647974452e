package shop

import (
	"errors"

	"github.com/roecybersecure/site-api/internal/money"
)

var ErrEmptyCart = errors.New("cart is empty")

// Line is a cart entry: one configuration and how many of it.
type Line struct {
	Configuration Configuration `json:"configuration"`
	Quantity      int64         `json:"quantity"`
}

// Cart is an insertion-ordered list of lines. Adding a configuration whose ID
// already has a line bumps that line's quantity instead of appending;
// configurations without an ID always get their own line.
type Cart struct {
	lines []Line
}

func NewCart() *Cart {
	return &Cart{}
}

// CartFromConfigurations builds a cart from the wire representation the site
// sends: a flat list of configurations, duplicates allowed.
func CartFromConfigurations(configurations []Configuration) *Cart {
	cart := NewCart()
	for _, cfg := range configurations {
		cart.Add(cfg)
	}
	return cart
}

func (c *Cart) Add(cfg Configuration) {
	if cfg.ID != "" {
		for i := range c.lines {
			if c.lines[i].Configuration.ID == cfg.ID {
				c.lines[i].Quantity++
				return
			}
		}
	}

	c.lines = append(c.lines, Line{Configuration: cfg, Quantity: 1})
}

// Remove drops the line with the given configuration ID. It reports whether
// a line was removed.
func (c *Cart) Remove(id string) bool {
	for i := range c.lines {
		if c.lines[i].Configuration.ID == id {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Size is the total number of units across all lines.
func (c *Cart) Size() int64 {
	var n int64
	for _, line := range c.lines {
		n += line.Quantity
	}
	return n
}

// Total sums every line's unit price times quantity in the given currency.
func (c *Cart) Total(currency string) money.Money {
	total := money.New(0, currency)
	for _, line := range c.lines {
		// Same currency throughout, Add cannot fail here.
		total, _ = total.Add(line.Configuration.UnitPrice(currency).Mul(line.Quantity))
	}
	return total
}
