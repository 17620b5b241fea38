package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/unieats/unieats-backend/pkg/db/models"
)

// Repository is the read-mostly catalog store. Dishes and restaurants are
// seeded out of band; availability is the only column this service writes.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListRestaurants(ctx context.Context, university string) ([]models.Restaurant, error)
	FindRestaurant(ctx context.Context, id int) (*models.Restaurant, error)
	ListDishes(ctx context.Context, restaurantID int) ([]models.Dish, error)
	FindDish(ctx context.Context, restaurantID, dishID int) (*models.Dish, error)
	UpdateDishAvailability(ctx context.Context, dishID int, available bool) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) ListRestaurants(ctx context.Context, university string) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	q := r.db.WithContext(ctx).Order("name ASC")
	if university != "" {
		q = q.Where("university = ?", university)
	}
	if err := q.Find(&restaurants).Error; err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *repository) FindRestaurant(ctx context.Context, id int) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&restaurant).Error
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *repository) ListDishes(ctx context.Context, restaurantID int) ([]models.Dish, error) {
	var dishes []models.Dish
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("category ASC, id ASC").
		Find(&dishes).Error
	if err != nil {
		return nil, err
	}
	return dishes, nil
}

func (r *repository) FindDish(ctx context.Context, restaurantID, dishID int) (*models.Dish, error) {
	var dish models.Dish
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND id = ?", restaurantID, dishID).
		First(&dish).Error
	if err != nil {
		return nil, err
	}
	return &dish, nil
}

func (r *repository) UpdateDishAvailability(ctx context.Context, dishID int, available bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Dish{}).
		Where("id = ?", dishID).
		Update("available", available).Error
}
