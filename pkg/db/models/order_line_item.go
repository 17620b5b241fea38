package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/unieats/unieats-backend/pkg/types"
)

// OrderLineItem is one customized dish inside a submitted order. Toppings
// holds the resolved additional-topping records selected by the shopper;
// RemovedBaseToppings holds identifiers of base toppings left out.
type OrderLineItem struct {
	ID                  uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID             uuid.UUID      `gorm:"column:order_id;type:uuid;not null;index"`
	DishID              int            `gorm:"column:dish_id;not null"`
	DishName            string         `gorm:"column:dish_name;not null"`
	DishDescription     string         `gorm:"column:dish_description;not null;default:''"`
	UnitPriceCents      int            `gorm:"column:unit_price_cents;not null"`
	Quantity            int            `gorm:"column:quantity;not null"`
	Comment             *string        `gorm:"column:comment"`
	Toppings            types.Toppings `gorm:"column:toppings;type:jsonb;serializer:json"`
	RemovedBaseToppings types.IntList  `gorm:"column:removed_base_toppings;type:jsonb;serializer:json"`
	LineTotalCents      int            `gorm:"column:line_total_cents;not null"`
	CreatedAt           time.Time      `gorm:"column:created_at;autoCreateTime"`
}
