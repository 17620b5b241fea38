package catalog

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/unieats/unieats-backend/internal/menu"
	"github.com/unieats/unieats-backend/pkg/db/models"
	pkgerrors "github.com/unieats/unieats-backend/pkg/errors"
)

// availabilityCache is the redis surface used for near-real-time dish
// availability overrides. The DB stays the source of truth; the override
// only bridges the window until the next catalog read.
type availabilityCache interface {
	SetAvailability(ctx context.Context, dishID int, available bool, ttl time.Duration) error
	GetAvailability(ctx context.Context, dishID int) (available bool, found bool, err error)
}

// Service exposes the catalog and availability collaborators.
type Service interface {
	ListRestaurants(ctx context.Context, university string) ([]models.Restaurant, error)
	Restaurant(ctx context.Context, restaurantID int) (*models.Restaurant, error)
	Menu(ctx context.Context, restaurantID int) (*models.Restaurant, []menu.Item, error)
	Dish(ctx context.Context, restaurantID, dishID int) (menu.Item, error)
	SetDishAvailability(ctx context.Context, ownerRestaurantID, dishID int, available bool) error
}

type service struct {
	repo            Repository
	cache           availabilityCache
	availabilityTTL time.Duration
}

// NewService builds the catalog service with the required dependencies.
func NewService(repo Repository, cache availabilityCache, availabilityTTL time.Duration) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if cache == nil {
		return nil, fmt.Errorf("availability cache required")
	}
	if availabilityTTL <= 0 {
		return nil, fmt.Errorf("availability ttl must be positive")
	}
	return &service{repo: repo, cache: cache, availabilityTTL: availabilityTTL}, nil
}

func (s *service) ListRestaurants(ctx context.Context, university string) ([]models.Restaurant, error) {
	restaurants, err := s.repo.ListRestaurants(ctx, university)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list restaurants")
	}
	return restaurants, nil
}

func (s *service) Restaurant(ctx context.Context, restaurantID int) (*models.Restaurant, error) {
	if restaurantID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id must be positive")
	}
	restaurant, err := s.repo.FindRestaurant(ctx, restaurantID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "restaurant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load restaurant")
	}
	return restaurant, nil
}

func (s *service) Menu(ctx context.Context, restaurantID int) (*models.Restaurant, []menu.Item, error) {
	if restaurantID <= 0 {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id must be positive")
	}

	restaurant, err := s.repo.FindRestaurant(ctx, restaurantID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "restaurant not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load restaurant")
	}

	dishes, err := s.repo.ListDishes(ctx, restaurantID)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list dishes")
	}

	items := make([]menu.Item, 0, len(dishes))
	for _, dish := range dishes {
		item, err := menu.FromModel(dish)
		if err != nil {
			return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("corrupt dish %d", dish.ID))
		}
		items = append(items, item)
	}
	return restaurant, items, nil
}

// Dish loads one dish with its availability resolved against the redis
// override. Controllers call this immediately before any cart addition so
// owner toggles are honored without waiting for the catalog to refresh.
func (s *service) Dish(ctx context.Context, restaurantID, dishID int) (menu.Item, error) {
	if restaurantID <= 0 || dishID <= 0 {
		return menu.Item{}, pkgerrors.New(pkgerrors.CodeValidation, "restaurant and dish ids must be positive")
	}

	dish, err := s.repo.FindDish(ctx, restaurantID, dishID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return menu.Item{}, pkgerrors.New(pkgerrors.CodeNotFound, "dish not found")
		}
		return menu.Item{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load dish")
	}

	item, err := menu.FromModel(*dish)
	if err != nil {
		return menu.Item{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("corrupt dish %d", dish.ID))
	}

	// A cache miss or error falls back to the DB value; stale reads are an
	// accepted limitation of the availability contract.
	if available, found, err := s.cache.GetAvailability(ctx, dishID); err == nil && found {
		item.Available = available
	}
	return item, nil
}

func (s *service) SetDishAvailability(ctx context.Context, ownerRestaurantID, dishID int, available bool) error {
	if ownerRestaurantID <= 0 {
		return pkgerrors.New(pkgerrors.CodeForbidden, "restaurant context missing")
	}
	if dishID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "dish id must be positive")
	}

	dish, err := s.repo.FindDish(ctx, ownerRestaurantID, dishID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "dish not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load dish")
	}
	if dish.RestaurantID != ownerRestaurantID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "dish does not belong to restaurant")
	}

	if err := s.repo.UpdateDishAvailability(ctx, dishID, available); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update availability")
	}
	if err := s.cache.SetAvailability(ctx, dishID, available, s.availabilityTTL); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write availability override")
	}
	return nil
}
