package services

import (
	"context"
	"encoding/json"
	"errors"

	"shinyshoes/internal/domain"
	applog "shinyshoes/internal/log"
	"shinyshoes/internal/repos"
)

// CartStore persists one serialized cart per key. repos.CartRepo and
// cache.RedisCartStore implement it; a missing key is repos.ErrCartNotFound.
type CartStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

// Cart is a list of lines keyed by (product id, size). It is not safe for
// concurrent use; Session serializes access.
type Cart struct {
	key   string
	store CartStore
	lines []domain.CartLine
	open  bool
}

func NewCart(key string, store CartStore) *Cart {
	return &Cart{key: key, store: store, lines: []domain.CartLine{}}
}

// Rehydrate replaces the lines with whatever is stored under the cart key.
// A missing, unreadable or malformed value leaves the cart empty.
func (c *Cart) Rehydrate(ctx context.Context) {
	c.lines = []domain.CartLine{}
	if c.store == nil {
		return
	}
	raw, err := c.store.Load(ctx, c.key)
	if errors.Is(err, repos.ErrCartNotFound) {
		return
	}
	if err != nil {
		applog.Error(nil, "cart.rehydrate.fail", err, map[string]any{"key": c.key})
		return
	}
	var lines []domain.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		applog.Warn(nil, "cart.rehydrate.malformed", err, map[string]any{"key": c.key})
		return
	}
	for _, l := range lines {
		if l.ID == "" || l.Quantity < 1 {
			applog.Warn(nil, "cart.rehydrate.skip_line", nil, map[string]any{"key": c.key, "product": l.ID, "qty": l.Quantity})
			continue
		}
		c.lines = append(c.lines, l)
	}
}

func (c *Cart) persist(ctx context.Context) {
	if c.store == nil {
		return
	}
	b, err := json.Marshal(c.lines)
	if err != nil {
		applog.Error(nil, "cart.persist.encode", err, map[string]any{"key": c.key})
		return
	}
	if err := c.store.Save(ctx, c.key, b); err != nil {
		applog.Error(nil, "cart.persist.fail", err, map[string]any{"key": c.key})
	}
}

func (c *Cart) index(productID string, size float64) int {
	for i, l := range c.lines {
		if l.Matches(productID, size) {
			return i
		}
	}
	return -1
}

// Add merges into an existing (id, size) line or appends a snapshot of p with quantity 1.
// The caller checks that size is one of p's sizes. Adding opens the cart.
func (c *Cart) Add(ctx context.Context, p domain.Product, size float64) {
	if i := c.index(p.ID, size); i >= 0 {
		c.lines[i].Quantity++
	} else {
		c.lines = append(c.lines, domain.CartLine{Product: p.Clone(), SelectedSize: size, Quantity: 1})
	}
	c.open = true
	c.persist(ctx)
}

// Remove deletes the matching line; absent lines are ignored.
func (c *Cart) Remove(ctx context.Context, productID string, size float64) {
	if i := c.index(productID, size); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
	c.persist(ctx)
}

// UpdateQuantity applies delta unless the result would drop below 1.
func (c *Cart) UpdateQuantity(ctx context.Context, productID string, size float64, delta int) {
	if i := c.index(productID, size); i >= 0 {
		if q := c.lines[i].Quantity + delta; q > 0 {
			c.lines[i].Quantity = q
		}
	}
	c.persist(ctx)
}

// Subtract takes ordered quantities out of the cart. Lines added or grown after
// the order snapshot keep the difference.
func (c *Cart) Subtract(ctx context.Context, ordered []domain.CartLine) {
	for _, o := range ordered {
		i := c.index(o.ID, o.SelectedSize)
		if i < 0 {
			continue
		}
		if left := c.lines[i].Quantity - o.Quantity; left > 0 {
			c.lines[i].Quantity = left
		} else {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		}
	}
	c.persist(ctx)
}

func (c *Cart) Clear(ctx context.Context) {
	c.lines = []domain.CartLine{}
	c.persist(ctx)
}

func (c *Cart) SetOpen(open bool) { c.open = open }

func (c *Cart) IsOpen() bool { return c.open }

// Lines returns a copy safe to hand to other goroutines.
func (c *Cart) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(c.lines))
	for i, l := range c.lines {
		l.Product = l.Product.Clone()
		out[i] = l
	}
	return out
}

// Count is the badge number: total units across lines.
func (c *Cart) Count() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// CartView is what the cart drawer renders.
type CartView struct {
	Items    []domain.CartLine `json:"items"`
	Count    int               `json:"count"`
	Subtotal float64           `json:"subtotal"`
	Open     bool              `json:"open"`
}

func (c *Cart) View() CartView {
	lines := c.Lines()
	return CartView{
		Items:    lines,
		Count:    c.Count(),
		Subtotal: subtotal(lines).Round(2).InexactFloat64(),
		Open:     c.open,
	}
}
