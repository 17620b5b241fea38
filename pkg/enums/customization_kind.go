package enums

import "fmt"

// CustomizationKind classifies how a dish may be customized. A customizable
// dish requires at least one additional topping before it can enter the cart;
// the other kinds carry no such requirement.
type CustomizationKind string

const (
	CustomizationSimple       CustomizationKind = "simple"
	CustomizationFixed        CustomizationKind = "fixed"
	CustomizationMixed        CustomizationKind = "mixed"
	CustomizationCustomizable CustomizationKind = "customizable"
)

var validCustomizationKinds = []CustomizationKind{
	CustomizationSimple,
	CustomizationFixed,
	CustomizationMixed,
	CustomizationCustomizable,
}

// String implements fmt.Stringer.
func (c CustomizationKind) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CustomizationKind.
func (c CustomizationKind) IsValid() bool {
	for _, candidate := range validCustomizationKinds {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCustomizationKind converts raw input into a CustomizationKind.
func ParseCustomizationKind(value string) (CustomizationKind, error) {
	for _, candidate := range validCustomizationKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid customization kind %q", value)
}
