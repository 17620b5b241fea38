package cart

import (
	"sync"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/unieats/unieats-backend/pkg/errors"
)

// Cart accumulates a shopper's line items for one restaurant. Insertion
// order is preserved for display. Mutations never fail except for the
// single-restaurant invariant: unknown identifiers are no-ops so the mobile
// client can replay mutations idempotently.
//
// A cart is shared across a shopper's HTTP requests, so every operation
// takes the internal lock.
type Cart struct {
	mu    sync.Mutex
	items []LineItem
	clock func() time.Time
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{clock: time.Now}
}

// Add freezes the candidate into a line item, assigns it a fresh identifier
// and timestamp, and appends it. Adding a dish from a different restaurant
// than the existing items is rejected with CONFLICT.
func (c *Cart) Add(candidate *Candidate) (string, error) {
	if candidate == nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "line item candidate required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) > 0 && c.items[0].RestaurantID != candidate.RestaurantID {
		return "", pkgerrors.New(pkgerrors.CodeConflict, "cart already holds items from another restaurant")
	}

	item := LineItem{
		ID:                  uuid.NewString(),
		RestaurantID:        candidate.RestaurantID,
		RestaurantName:      candidate.RestaurantName,
		University:          candidate.University,
		Dish:                candidate.Dish,
		Quantity:            candidate.Quantity,
		Comment:             candidate.Comment,
		Toppings:            candidate.Toppings,
		RemovedBaseToppings: candidate.RemovedBaseToppings,
		UnitPriceCents:      candidate.UnitPriceCents,
		AddedAt:             c.clock(),
	}
	c.items = append(c.items, item)
	return item.ID, nil
}

// Remove deletes the line item with the given id. Unknown ids are a no-op.
func (c *Cart) Remove(lineItemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(lineItemID)
}

func (c *Cart) removeLocked(lineItemID string) {
	for i, item := range c.items {
		if item.ID == lineItemID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity replaces the quantity in place. A quantity of zero or less
// removes the line item; unknown ids are a no-op.
func (c *Cart) UpdateQuantity(lineItemID string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.removeLocked(lineItemID)
		return
	}
	for i := range c.items {
		if c.items[i].ID == lineItemID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Items returns a snapshot of the line items in insertion order.
func (c *Cart) Items() []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Subtotal recomputes Σ(unit price × quantity) from current state.
func (c *Cart) Subtotal() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, item := range c.items {
		total += item.UnitPriceCents * item.Quantity
	}
	return total
}

// TotalItemCount recomputes Σ(quantity) from current state.
func (c *Cart) TotalItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether the cart holds no line items.
func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0
}

// RestaurantID returns the owning restaurant of the current items, or 0 for
// an empty cart.
func (c *Cart) RestaurantID() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.items) == 0 {
		return 0
	}
	return c.items[0].RestaurantID
}
