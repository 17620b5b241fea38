package customizer

import (
	"sort"
	"strings"

	"github.com/unieats/unieats-backend/internal/cart"
	"github.com/unieats/unieats-backend/internal/menu"
	"github.com/unieats/unieats-backend/pkg/types"
)

// Session tracks one shopper's in-progress customization of one dish and
// derives the unit price and cart eligibility. It holds no locks: a session
// belongs to a single request flow and is never shared.
//
// The session is deliberately permissive. Unknown additional-topping ids are
// accepted into the selection but price as zero, quantity is stored as given,
// and the comment bound is enforced by the HTTP layer. Only base-topping
// removal is restricted, to toppings the dish marks removable.
type Session struct {
	item        *menu.Item
	selected    map[int]struct{}
	removedBase map[int]struct{}
	quantity    int
	comment     string
}

// NewSession returns an empty session with no dish loaded.
func NewSession() *Session {
	s := &Session{}
	s.reset()
	return s
}

// Load points the session at a dish. Switching to a different dish clears
// all selection state; reloading the same dish only refreshes the snapshot.
func (s *Session) Load(item menu.Item) {
	if s.item == nil || s.item.ID != item.ID || s.item.RestaurantID != item.RestaurantID {
		s.reset()
	}
	s.item = &item
}

// Reset clears all selection state, restores quantity 1 and empties the
// comment. The loaded dish, if any, stays loaded.
func (s *Session) Reset() {
	s.reset()
}

func (s *Session) reset() {
	s.selected = make(map[int]struct{})
	s.removedBase = make(map[int]struct{})
	s.quantity = 1
	s.comment = ""
}

// ToggleAdditionalTopping flips membership of the id in the selected set.
// No-op when no dish is loaded.
func (s *Session) ToggleAdditionalTopping(id int) {
	if s.item == nil {
		return
	}
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return
	}
	s.selected[id] = struct{}{}
}

// ToggleBaseTopping flips the removed flag for a base topping, but only when
// the dish declares it removable. Anything else is silently ignored.
func (s *Session) ToggleBaseTopping(id int) {
	if s.item == nil || !s.item.RemovableBaseTopping(id) {
		return
	}
	if _, ok := s.removedBase[id]; ok {
		delete(s.removedBase, id)
		return
	}
	s.removedBase[id] = struct{}{}
}

// SetQuantity stores the quantity as given. Callers keep it >= 1.
func (s *Session) SetQuantity(n int) {
	s.quantity = n
}

// Quantity returns the current quantity.
func (s *Session) Quantity() int {
	return s.quantity
}

// SetComment replaces the free-text comment. Callers bound its length.
func (s *Session) SetComment(text string) {
	s.comment = text
}

// Comment returns the current comment.
func (s *Session) Comment() string {
	return s.comment
}

// SelectedToppingIDs reports the current additional-topping selection.
func (s *Session) SelectedToppingIDs() []int {
	return sortedKeys(s.selected)
}

// RemovedBaseToppingIDs reports which base toppings the shopper removed.
func (s *Session) RemovedBaseToppingIDs() []int {
	return sortedKeys(s.removedBase)
}

// UnitPrice derives base price plus the surcharges of matched selected
// toppings. Selected ids that do not resolve against the dish contribute 0.
// Removing base toppings never changes the price.
func (s *Session) UnitPrice() int {
	if s.item == nil {
		return 0
	}
	price := s.item.PriceCents
	for id := range s.selected {
		if topping, ok := s.item.AdditionalTopping(id); ok {
			price += topping.Price()
		}
	}
	return price
}

// CanAddToCart is false only for a customizable dish with nothing selected.
func (s *Session) CanAddToCart() bool {
	if s.item == nil {
		return false
	}
	if s.item.RequiresToppingSelection() && len(s.selected) == 0 {
		return false
	}
	return true
}

// BuildLineItem assembles a cart candidate from the current state, or nil
// when no dish is loaded. It does not check CanAddToCart; callers do that
// before handing the candidate to the cart.
func (s *Session) BuildLineItem(restaurantName, university string) *cart.Candidate {
	if s.item == nil {
		return nil
	}

	resolved := make(types.Toppings, 0, len(s.selected))
	for _, topping := range s.item.AdditionalToppings {
		if _, ok := s.selected[topping.ID]; ok {
			resolved = append(resolved, topping)
		}
	}

	return &cart.Candidate{
		RestaurantID:        s.item.RestaurantID,
		RestaurantName:      restaurantName,
		University:          university,
		Dish:                *s.item,
		Quantity:            s.quantity,
		Comment:             strings.TrimSpace(s.comment),
		Toppings:            resolved,
		RemovedBaseToppings: s.RemovedBaseToppingIDs(),
		UnitPriceCents:      s.UnitPrice(),
	}
}

func sortedKeys(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}
