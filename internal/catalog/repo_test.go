package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/unieats/unieats-backend/pkg/db/models"
	"github.com/unieats/unieats-backend/pkg/enums"
	"github.com/unieats/unieats-backend/pkg/types"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	restaurants := `
CREATE TABLE IF NOT EXISTS restaurants (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  university TEXT NOT NULL,
  categories TEXT,
  rating REAL NOT NULL DEFAULT 0,
  delivery_estimate_minutes INTEGER NOT NULL DEFAULT 0,
  image_url TEXT NOT NULL DEFAULT '',
  is_open INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	dishes := `
CREATE TABLE IF NOT EXISTS dishes (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  restaurant_id INTEGER NOT NULL,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price_cents INTEGER NOT NULL,
  category TEXT NOT NULL DEFAULT '',
  image_url TEXT NOT NULL DEFAULT '',
  kind TEXT NOT NULL DEFAULT 'simple',
  base_toppings TEXT NOT NULL DEFAULT '[]',
  additional_toppings TEXT NOT NULL DEFAULT '[]',
  available INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(restaurants).Error)
	require.NoError(t, db.Exec(dishes).Error)
	return db
}

func seedRestaurant(t *testing.T, db *gorm.DB, name, university string) models.Restaurant {
	t.Helper()
	restaurant := models.Restaurant{Name: name, University: university, IsOpen: true}
	require.NoError(t, db.Create(&restaurant).Error)
	return restaurant
}

func seedDish(t *testing.T, db *gorm.DB, restaurantID, priceCents int, name string) models.Dish {
	t.Helper()
	price := 2000
	dish := models.Dish{
		RestaurantID: restaurantID,
		Name:         name,
		PriceCents:   priceCents,
		Kind:         enums.CustomizationMixed,
		BaseToppings: types.Toppings{{ID: 1, Name: "Arroz"}},
		AdditionalToppings: types.Toppings{
			{ID: 2, Name: "Queso", PriceCents: &price},
		},
		Available: true,
	}
	require.NoError(t, db.Create(&dish).Error)
	return dish
}

func TestRepositoryListRestaurantsScopedByUniversity(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedRestaurant(t, db, "Cafeteria Central", "Mondragon Unibertsitatea")
	seedRestaurant(t, db, "Burgers Bilbao", "Universidad de Deusto")

	got, err := repo.ListRestaurants(ctx, "Mondragon Unibertsitatea")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Cafeteria Central", got[0].Name)

	all, err := repo.ListRestaurants(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRepositoryDishLookupAndAvailability(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	restaurant := seedRestaurant(t, db, "Cafeteria Central", "Mondragon Unibertsitatea")
	dish := seedDish(t, db, restaurant.ID, 15000, "Menu del dia")

	found, err := repo.FindDish(ctx, restaurant.ID, dish.ID)
	require.NoError(t, err)
	assert.Equal(t, "Menu del dia", found.Name)
	assert.True(t, found.Available)
	require.Len(t, found.AdditionalToppings, 1)
	assert.Equal(t, 2000, found.AdditionalToppings[0].Price())

	_, err = repo.FindDish(ctx, restaurant.ID+1, dish.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.UpdateDishAvailability(ctx, dish.ID, false))
	found, err = repo.FindDish(ctx, restaurant.ID, dish.ID)
	require.NoError(t, err)
	assert.False(t, found.Available)
}

func TestRepositoryListDishesOrdering(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	restaurant := seedRestaurant(t, db, "Cafeteria Central", "Mondragon Unibertsitatea")
	first := seedDish(t, db, restaurant.ID, 10000, "Arepa")
	second := seedDish(t, db, restaurant.ID, 12000, "Bandeja")

	dishes, err := repo.ListDishes(ctx, restaurant.ID)
	require.NoError(t, err)
	require.Len(t, dishes, 2)
	assert.Equal(t, first.ID, dishes[0].ID)
	assert.Equal(t, second.ID, dishes[1].ID)
}
