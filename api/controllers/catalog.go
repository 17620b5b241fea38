package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/unieats/unieats-backend/api/middleware"
	"github.com/unieats/unieats-backend/api/responses"
	"github.com/unieats/unieats-backend/api/validators"
	"github.com/unieats/unieats-backend/internal/catalog"
	"github.com/unieats/unieats-backend/internal/menu"
	"github.com/unieats/unieats-backend/pkg/db/models"
	pkgerrors "github.com/unieats/unieats-backend/pkg/errors"
	"github.com/unieats/unieats-backend/pkg/logger"
)

type restaurantResponse struct {
	ID                      int      `json:"id"`
	Name                    string   `json:"name"`
	University              string   `json:"university"`
	Categories              []string `json:"categories"`
	Rating                  float64  `json:"rating"`
	DeliveryEstimateMinutes int      `json:"delivery_estimate_minutes"`
	ImageURL                *string  `json:"image_url,omitempty"`
	IsOpen                  bool     `json:"is_open"`
}

type dishResponse struct {
	ID                 int             `json:"id"`
	RestaurantID       int             `json:"restaurant_id"`
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	PriceCents         int             `json:"price_cents"`
	Category           string          `json:"category,omitempty"`
	ImageURL           string          `json:"image_url,omitempty"`
	Kind               string          `json:"kind"`
	BaseToppings       []toppingView   `json:"base_toppings"`
	AdditionalToppings []toppingView   `json:"additional_toppings"`
	Available          bool            `json:"available"`
}

type toppingView struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	PriceCents *int   `json:"price_cents,omitempty"`
	Removable  bool   `json:"removable,omitempty"`
}

func toRestaurantResponse(r models.Restaurant) restaurantResponse {
	return restaurantResponse{
		ID:                      r.ID,
		Name:                    r.Name,
		University:              r.University,
		Categories:              []string(r.Categories),
		Rating:                  r.Rating,
		DeliveryEstimateMinutes: r.DeliveryEstimateMinutes,
		ImageURL:                r.ImageURL,
		IsOpen:                  r.IsOpen,
	}
}

func toDishResponse(item menu.Item) dishResponse {
	base := make([]toppingView, 0, len(item.BaseToppings))
	for _, t := range item.BaseToppings {
		base = append(base, toppingView{ID: t.ID, Name: t.Name, PriceCents: t.PriceCents, Removable: t.Removable})
	}
	additional := make([]toppingView, 0, len(item.AdditionalToppings))
	for _, t := range item.AdditionalToppings {
		additional = append(additional, toppingView{ID: t.ID, Name: t.Name, PriceCents: t.PriceCents})
	}
	return dishResponse{
		ID:                 item.ID,
		RestaurantID:       item.RestaurantID,
		Name:               item.Name,
		Description:        item.Description,
		PriceCents:         item.PriceCents,
		Category:           item.Category,
		ImageURL:           item.ImageURL,
		Kind:               item.Kind.String(),
		BaseToppings:       base,
		AdditionalToppings: additional,
		Available:          item.Available,
	}
}

// ListRestaurants returns the catalog for the caller's campus.
func ListRestaurants(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		university := middleware.UniversityFromContext(r.Context())
		if university == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "university context missing"))
			return
		}

		restaurants, err := svc.ListRestaurants(r.Context(), university)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]restaurantResponse, 0, len(restaurants))
		for _, restaurant := range restaurants {
			out = append(out, toRestaurantResponse(restaurant))
		}
		responses.WriteSuccess(w, map[string]any{"restaurants": out})
	}
}

// RestaurantMenu returns one restaurant with its full dish list.
func RestaurantMenu(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		restaurantID, err := validators.ParseURLInt(chi.URLParam(r, "restaurantId"), "restaurantId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		restaurant, items, err := svc.Menu(r.Context(), restaurantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dishes := make([]dishResponse, 0, len(items))
		for _, item := range items {
			dishes = append(dishes, toDishResponse(item))
		}
		responses.WriteSuccess(w, map[string]any{
			"restaurant": toRestaurantResponse(*restaurant),
			"dishes":     dishes,
		})
	}
}

// DishDetail returns a single dish with its availability resolved against
// the live override, for the customization screen.
func DishDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		restaurantID, err := validators.ParseURLInt(chi.URLParam(r, "restaurantId"), "restaurantId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dishID, err := validators.ParseURLInt(chi.URLParam(r, "dishId"), "dishId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Dish(r.Context(), restaurantID, dishID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toDishResponse(item))
	}
}
