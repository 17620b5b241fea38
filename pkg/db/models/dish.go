package models

import (
	"time"

	"github.com/unieats/unieats-backend/pkg/enums"
	"github.com/unieats/unieats-backend/pkg/types"
)

// Dish is a purchasable menu entry. Topping lists are stored as JSONB
// snapshots; only the availability flag mutates after creation.
type Dish struct {
	ID                 int                     `gorm:"column:id;primaryKey;autoIncrement"`
	RestaurantID       int                     `gorm:"column:restaurant_id;not null;index"`
	Name               string                  `gorm:"column:name;not null"`
	Description        string                  `gorm:"column:description;not null;default:''"`
	PriceCents         int                     `gorm:"column:price_cents;not null"`
	Category           string                  `gorm:"column:category;not null;default:''"`
	ImageURL           *string                 `gorm:"column:image_url"`
	Kind               enums.CustomizationKind `gorm:"column:kind;type:text;not null;default:'simple'"`
	BaseToppings       types.Toppings          `gorm:"column:base_toppings;type:jsonb;serializer:json"`
	AdditionalToppings types.Toppings          `gorm:"column:additional_toppings;type:jsonb;serializer:json"`
	Available          bool                    `gorm:"column:available;not null;default:true"`
	CreatedAt          time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
