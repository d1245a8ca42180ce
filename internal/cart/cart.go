package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"techreads/internal/domain"
)

// Item pairs a book snapshot (price and stock as known when it entered the
// cart) with the chosen quantity. Quantity stays in [1, stock] after every
// mutation.
type Item struct {
	Book     domain.Book
	Quantity int
}

// Subtotal is price*quantity for one line, for the cart page.
func (i Item) Subtotal() decimal.Decimal {
	return i.Book.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart holds one session's selections. Fiber runs handlers on many
// goroutines, so each mutation completes under the lock before any reader
// sees it; readers get copies, never live references.
type Cart struct {
	mu    sync.Mutex
	items map[int64]*Item
	order []int64 // insertion order, for stable rendering
}

func New() *Cart {
	return &Cart{items: make(map[int64]*Item)}
}

// Add merges qty into an existing line or inserts a new one, clamped so the
// quantity never exceeds the book's stock. Over-requests truncate silently;
// that is the policy, not an error.
func (c *Cart) Add(book domain.Book, qty int) {
	if book.Stock < 1 {
		return // out of stock, nothing to add
	}
	if qty < 1 {
		qty = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if it, ok := c.items[book.ID]; ok {
		it.Quantity = clamp(it.Quantity+qty, 1, book.Stock)
		return
	}
	c.items[book.ID] = &Item{Book: book, Quantity: clamp(qty, 1, book.Stock)}
	c.order = append(c.order, book.ID)
}

// Remove deletes the line for bookID. Absent ids are a no-op.
func (c *Cart) Remove(bookID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[bookID]; !ok {
		return
	}
	delete(c.items, bookID)
	for i, id := range c.order {
		if id == bookID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// UpdateQuantity sets the line's quantity clamped into [1, stock]. The floor
// of 1 means removal is the only way to drop a book entirely. Absent ids are
// a no-op.
func (c *Cart) UpdateQuantity(bookID int64, qty int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if it, ok := c.items[bookID]; ok {
		it.Quantity = clamp(qty, 1, it.Book.Stock)
	}
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[int64]*Item)
	c.order = nil
}

// TotalPrice sums price*quantity over all lines, recomputed on every call.
func (c *Cart) TotalPrice() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Book.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// TotalItems sums quantities over all lines.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Items returns a snapshot of the lines in insertion order.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Item, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.items[id])
	}
	return out
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
