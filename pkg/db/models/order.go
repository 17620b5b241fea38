package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/unieats/unieats-backend/pkg/enums"
)

// Order is a submitted, priced order. Number is the human-shareable code the
// shopper quotes at pickup; RestauranteEstado is the composite sort key the
// restaurant side queries by.
type Order struct {
	ID                uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Number            string            `gorm:"column:number;not null;uniqueIndex"`
	UserEmail         string            `gorm:"column:user_email;not null;index"`
	University        string            `gorm:"column:university;not null"`
	RestaurantID      int               `gorm:"column:restaurant_id;not null"`
	RestaurantName    string            `gorm:"column:restaurant_name;not null"`
	SubtotalCents     int               `gorm:"column:subtotal_cents;not null"`
	ServiceFeeCents   int               `gorm:"column:service_fee_cents;not null"`
	TotalCents        int               `gorm:"column:total_cents;not null"`
	Status            enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pendiente'"`
	RestauranteEstado string            `gorm:"column:restaurante_estado;not null;index"`
	Comments          *string           `gorm:"column:comments"`
	SubmittedAt       time.Time         `gorm:"column:submitted_at;not null"`
	Items             []OrderLineItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
