package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Topping is an ingredient attached to a dish, either as part of the base
// recipe (possibly removable) or as a paid/free addition. A nil PriceCents
// means the topping is free.
type Topping struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	PriceCents *int    `json:"price_cents,omitempty"`
	Removable  bool    `json:"removable,omitempty"`
	Category   *string `json:"category,omitempty"`
}

// Price returns the topping surcharge, treating a missing price as free.
func (t Topping) Price() int {
	if t.PriceCents == nil {
		return 0
	}
	return *t.PriceCents
}

// Toppings is a slice persisted as JSONB.
type Toppings []Topping

// Value serializes the toppings to JSON.
func (t Toppings) Value() (driver.Value, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(t)
}

// Scan decodes JSONB into the topping slice.
func (t *Toppings) Scan(value interface{}) error {
	if value == nil {
		*t = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded Toppings
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*t = decoded
	return nil
}

// ByID returns the topping with the given identifier, if present.
func (t Toppings) ByID(id int) (Topping, bool) {
	for _, topping := range t {
		if topping.ID == id {
			return topping, true
		}
	}
	return Topping{}, false
}

// IntList is an integer slice persisted as JSONB, used for removed
// base-topping identifiers on order line items.
type IntList []int

// Value serializes the list to JSON.
func (l IntList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan decodes JSONB into the list.
func (l *IntList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded IntList
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*l = decoded
	return nil
}

func asJSON(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported scan type %T", value)
	}
}
