package menu

import (
	"fmt"

	pkgerrors "github.com/unieats/unieats-backend/pkg/errors"

	"github.com/unieats/unieats-backend/pkg/db/models"
	"github.com/unieats/unieats-backend/pkg/enums"
	"github.com/unieats/unieats-backend/pkg/types"
)

// Item is the immutable in-memory view of a dish used by customization and
// cart pricing. It is built once from the catalog row and never mutated;
// Available is the only field that can differ between reads because owners
// flip it in near-real-time.
type Item struct {
	ID                 int
	RestaurantID       int
	Name               string
	Description        string
	PriceCents         int
	Category           string
	ImageURL           string
	Kind               enums.CustomizationKind
	BaseToppings       types.Toppings
	AdditionalToppings types.Toppings
	Available          bool
}

// FromModel validates a catalog row and converts it into an Item.
func FromModel(dish models.Dish) (Item, error) {
	if dish.ID <= 0 {
		return Item{}, pkgerrors.New(pkgerrors.CodeValidation, "dish id must be positive")
	}
	if dish.RestaurantID <= 0 {
		return Item{}, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id must be positive")
	}
	if dish.Name == "" {
		return Item{}, pkgerrors.New(pkgerrors.CodeValidation, "dish name is required")
	}
	if dish.PriceCents < 0 {
		return Item{}, pkgerrors.New(pkgerrors.CodeValidation, "dish price must be non-negative")
	}
	if !dish.Kind.IsValid() {
		return Item{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid customization kind %q", dish.Kind))
	}
	if err := validateToppings(dish.BaseToppings, "base"); err != nil {
		return Item{}, err
	}
	if err := validateToppings(dish.AdditionalToppings, "additional"); err != nil {
		return Item{}, err
	}

	imageURL := ""
	if dish.ImageURL != nil {
		imageURL = *dish.ImageURL
	}

	return Item{
		ID:                 dish.ID,
		RestaurantID:       dish.RestaurantID,
		Name:               dish.Name,
		Description:        dish.Description,
		PriceCents:         dish.PriceCents,
		Category:           dish.Category,
		ImageURL:           imageURL,
		Kind:               dish.Kind,
		BaseToppings:       cloneToppings(dish.BaseToppings),
		AdditionalToppings: cloneToppings(dish.AdditionalToppings),
		Available:          dish.Available,
	}, nil
}

func validateToppings(toppings types.Toppings, group string) error {
	seen := make(map[int]struct{}, len(toppings))
	for _, topping := range toppings {
		if topping.ID <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s topping id must be positive", group))
		}
		if topping.Name == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s topping %d requires a name", group, topping.ID))
		}
		if topping.PriceCents != nil && *topping.PriceCents < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s topping %d price must be non-negative", group, topping.ID))
		}
		if _, dup := seen[topping.ID]; dup {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("duplicate %s topping id %d", group, topping.ID))
		}
		seen[topping.ID] = struct{}{}
	}
	return nil
}

func cloneToppings(src types.Toppings) types.Toppings {
	if len(src) == 0 {
		return nil
	}
	out := make(types.Toppings, len(src))
	copy(out, src)
	return out
}

// AdditionalTopping looks up an additional topping by id.
func (i Item) AdditionalTopping(id int) (types.Topping, bool) {
	return i.AdditionalToppings.ByID(id)
}

// RemovableBaseTopping reports whether the base topping exists and may be
// removed by the shopper.
func (i Item) RemovableBaseTopping(id int) bool {
	topping, ok := i.BaseToppings.ByID(id)
	return ok && topping.Removable
}

// RequiresToppingSelection reports whether the dish cannot enter the cart
// without at least one additional topping selected.
func (i Item) RequiresToppingSelection() bool {
	return i.Kind == enums.CustomizationCustomizable
}
