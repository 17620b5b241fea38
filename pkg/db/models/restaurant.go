package models

import (
	"time"

	"github.com/lib/pq"
)

// Restaurant is a campus restaurant listed in the catalog.
type Restaurant struct {
	ID                      int            `gorm:"column:id;primaryKey;autoIncrement"`
	Name                    string         `gorm:"column:name;not null"`
	University              string         `gorm:"column:university;not null"`
	Categories              pq.StringArray `gorm:"column:categories;type:text[];not null;default:ARRAY[]::text[]"`
	Rating                  float64        `gorm:"column:rating;type:numeric(3,2);not null;default:0"`
	DeliveryEstimateMinutes int            `gorm:"column:delivery_estimate_minutes;not null;default:0"`
	ImageURL                *string        `gorm:"column:image_url"`
	IsOpen                  bool           `gorm:"column:is_open;not null;default:true"`
	Dishes                  []Dish         `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
	CreatedAt               time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt               time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
