package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/unieats/unieats-backend/api/middleware"
	"github.com/unieats/unieats-backend/api/responses"
	"github.com/unieats/unieats-backend/api/validators"
	"github.com/unieats/unieats-backend/internal/cart"
	"github.com/unieats/unieats-backend/internal/catalog"
	"github.com/unieats/unieats-backend/internal/customizer"
	"github.com/unieats/unieats-backend/pkg/config"
	pkgerrors "github.com/unieats/unieats-backend/pkg/errors"
	"github.com/unieats/unieats-backend/pkg/logger"
)

type addCartItemRequest struct {
	RestaurantID        int    `json:"restaurant_id" validate:"required,gt=0"`
	DishID              int    `json:"dish_id" validate:"required,gt=0"`
	Quantity            int    `json:"quantity" validate:"required,gte=1"`
	Comment             string `json:"comment,omitempty"`
	Toppings            []int  `json:"toppings,omitempty"`
	RemovedBaseToppings []int  `json:"removed_base_toppings,omitempty"`
}

// Quantity has no floor here: zero or negative removes the line item.
type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type cartLineItemView struct {
	ID                  string        `json:"id"`
	DishID              int           `json:"dish_id"`
	DishName            string        `json:"dish_name"`
	Quantity            int           `json:"quantity"`
	UnitPriceCents      int           `json:"unit_price_cents"`
	LineTotalCents      int           `json:"line_total_cents"`
	Comment             string        `json:"comment,omitempty"`
	Toppings            []toppingView `json:"toppings"`
	RemovedBaseToppings []int         `json:"removed_base_toppings"`
}

type cartView struct {
	RestaurantID   int                `json:"restaurant_id"`
	RestaurantName string             `json:"restaurant_name,omitempty"`
	Items          []cartLineItemView `json:"items"`
	SubtotalCents  int                `json:"subtotal_cents"`
	TotalItemCount int                `json:"total_item_count"`
}

func toCartView(c *cart.Cart) cartView {
	items := c.Items()
	view := cartView{
		RestaurantID:   c.RestaurantID(),
		Items:          make([]cartLineItemView, 0, len(items)),
		SubtotalCents:  c.Subtotal(),
		TotalItemCount: c.TotalItemCount(),
	}
	for _, item := range items {
		if view.RestaurantName == "" {
			view.RestaurantName = item.RestaurantName
		}
		toppings := make([]toppingView, 0, len(item.Toppings))
		for _, t := range item.Toppings {
			toppings = append(toppings, toppingView{ID: t.ID, Name: t.Name, PriceCents: t.PriceCents})
		}
		removed := item.RemovedBaseToppings
		if removed == nil {
			removed = []int{}
		}
		view.Items = append(view.Items, cartLineItemView{
			ID:                  item.ID,
			DishID:              item.Dish.ID,
			DishName:            item.Dish.Name,
			Quantity:            item.Quantity,
			UnitPriceCents:      item.UnitPriceCents,
			LineTotalCents:      item.LineTotal(),
			Comment:             item.Comment,
			Toppings:            toppings,
			RemovedBaseToppings: removed,
		})
	}
	return view
}

func shopperCart(r *http.Request, keeper *cart.Keeper) (*cart.Cart, string, error) {
	email := middleware.UserEmailFromContext(r.Context())
	if email == "" {
		return nil, "", pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	return keeper.For(email), email, nil
}

// GetCart returns the shopper's current cart with recomputed aggregates.
func GetCart(keeper *cart.Keeper, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, _, err := shopperCart(r, keeper)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCartView(c))
	}
}

// AddCartItem resolves the dish, applies the requested customization and
// appends the priced line item to the shopper's cart. Availability is
// re-read on every add so an owner toggle takes effect immediately.
func AddCartItem(keeper *cart.Keeper, catalogSvc catalog.Service, cfg config.CartConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalogSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		c, _, err := shopperCart(r, keeper)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if cfg.MaxItemsPerAdd > 0 && payload.Quantity > cfg.MaxItemsPerAdd {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("quantity must be at most %d", cfg.MaxItemsPerAdd)))
			return
		}
		comment := strings.TrimSpace(payload.Comment)
		if cfg.CommentMaxLen > 0 && len([]rune(comment)) > cfg.CommentMaxLen {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("comment must be at most %d characters", cfg.CommentMaxLen)))
			return
		}

		item, err := catalogSvc.Dish(r.Context(), payload.RestaurantID, payload.DishID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !item.Available {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeStateConflict, "dish is currently unavailable"))
			return
		}

		restaurant, err := catalogSvc.Restaurant(r.Context(), payload.RestaurantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session := customizer.NewSession()
		session.Load(item)
		for _, id := range payload.Toppings {
			session.ToggleAdditionalTopping(id)
		}
		for _, id := range payload.RemovedBaseToppings {
			session.ToggleBaseTopping(id)
		}
		session.SetQuantity(payload.Quantity)
		session.SetComment(comment)

		if !session.CanAddToCart() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation,
				"this dish requires at least one topping selection"))
			return
		}

		candidate := session.BuildLineItem(restaurant.Name, restaurant.University)
		lineItemID, err := c.Add(candidate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view := toCartView(c)
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"line_item_id": lineItemID,
			"cart":         view,
		})
	}
}

// UpdateCartItem replaces a line item quantity; zero or less removes it.
func UpdateCartItem(keeper *cart.Keeper, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, _, err := shopperCart(r, keeper)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lineItemID := strings.TrimSpace(chi.URLParam(r, "lineItemId"))
		if lineItemID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "line item id is required"))
			return
		}

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		c.UpdateQuantity(lineItemID, payload.Quantity)
		responses.WriteSuccess(w, toCartView(c))
	}
}

// RemoveCartItem deletes one line item. Unknown ids are a safe no-op so the
// client can replay the mutation.
func RemoveCartItem(keeper *cart.Keeper, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, _, err := shopperCart(r, keeper)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lineItemID := strings.TrimSpace(chi.URLParam(r, "lineItemId"))
		if lineItemID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "line item id is required"))
			return
		}

		c.Remove(lineItemID)
		responses.WriteSuccess(w, toCartView(c))
	}
}

// ClearCart empties the cart unconditionally.
func ClearCart(keeper *cart.Keeper, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, _, err := shopperCart(r, keeper)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		c.Clear()
		responses.WriteSuccess(w, toCartView(c))
	}
}
