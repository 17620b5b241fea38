package cart

import (
	"time"

	"github.com/unieats/unieats-backend/internal/menu"
	"github.com/unieats/unieats-backend/pkg/types"
)

// Candidate is the customizer's output: a priced, customized dish ready to
// be appended to the cart. The cart assigns the identifier and timestamp.
type Candidate struct {
	RestaurantID        int
	RestaurantName      string
	University          string
	Dish                menu.Item
	Quantity            int
	Comment             string
	Toppings            types.Toppings
	RemovedBaseToppings []int
	UnitPriceCents      int
}

// LineItem is one committed entry in the cart. UnitPriceCents is frozen at
// insertion time and never recomputed, even if the catalog price changes.
type LineItem struct {
	ID                  string
	RestaurantID        int
	RestaurantName      string
	University          string
	Dish                menu.Item
	Quantity            int
	Comment             string
	Toppings            types.Toppings
	RemovedBaseToppings []int
	UnitPriceCents      int
	AddedAt             time.Time
}

// LineTotal returns the frozen unit price multiplied by the quantity.
func (li LineItem) LineTotal() int {
	return li.UnitPriceCents * li.Quantity
}
