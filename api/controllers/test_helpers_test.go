package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"

	"github.com/unieats/unieats-backend/api/middleware"
	"github.com/unieats/unieats-backend/internal/menu"
	"github.com/unieats/unieats-backend/pkg/db/models"
	"github.com/unieats/unieats-backend/pkg/enums"
	"github.com/unieats/unieats-backend/pkg/logger"
	"github.com/unieats/unieats-backend/pkg/types"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func addRouteParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.RouteContext(req.Context())
	if routeCtx == nil {
		routeCtx = chi.NewRouteContext()
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	}
	routeCtx.URLParams.Add(key, value)
	return req
}

func asStudent(req *http.Request, email string) *http.Request {
	ctx := middleware.WithUserEmail(req.Context(), email)
	ctx = middleware.WithUniversity(ctx, "Mondragon Unibertsitatea")
	return req.WithContext(ctx)
}

func asOwner(req *http.Request, email string, restaurantID int) *http.Request {
	req = asStudent(req, email)
	return req.WithContext(middleware.WithRestaurantID(req.Context(), restaurantID))
}

func intPtr(v int) *int { return &v }

// stubCatalog satisfies catalog.Service with canned data.
type stubCatalog struct {
	restaurant *models.Restaurant
	dish       menu.Item
	dishErr    error

	setAvailability func(ownerRestaurantID, dishID int, available bool) error
}

func (s *stubCatalog) ListRestaurants(_ context.Context, _ string) ([]models.Restaurant, error) {
	if s.restaurant == nil {
		return nil, nil
	}
	return []models.Restaurant{*s.restaurant}, nil
}

func (s *stubCatalog) Restaurant(_ context.Context, _ int) (*models.Restaurant, error) {
	return s.restaurant, nil
}

func (s *stubCatalog) Menu(_ context.Context, _ int) (*models.Restaurant, []menu.Item, error) {
	return s.restaurant, []menu.Item{s.dish}, nil
}

func (s *stubCatalog) Dish(_ context.Context, _, _ int) (menu.Item, error) {
	if s.dishErr != nil {
		return menu.Item{}, s.dishErr
	}
	return s.dish, nil
}

func (s *stubCatalog) SetDishAvailability(_ context.Context, ownerRestaurantID, dishID int, available bool) error {
	if s.setAvailability != nil {
		return s.setAvailability(ownerRestaurantID, dishID, available)
	}
	return nil
}

func testRestaurant() *models.Restaurant {
	return &models.Restaurant{
		ID:         1,
		Name:       "Cafeteria Central",
		University: "Mondragon Unibertsitatea",
		IsOpen:     true,
	}
}

func testDish() menu.Item {
	item, err := menu.FromModel(models.Dish{
		ID:           10,
		RestaurantID: 1,
		Name:         "Bandeja paisa",
		PriceCents:   18000,
		Kind:         enums.CustomizationMixed,
		BaseToppings: types.Toppings{
			{ID: 1, Name: "Arroz", Removable: true},
			{ID: 2, Name: "Frijoles"},
		},
		AdditionalToppings: types.Toppings{
			{ID: 10, Name: "Chicharron", PriceCents: intPtr(3000)},
			{ID: 11, Name: "Aguacate"},
		},
		Available: true,
	})
	if err != nil {
		panic(err)
	}
	return item
}

func doJSON(handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler(resp, req)
	return resp
}
