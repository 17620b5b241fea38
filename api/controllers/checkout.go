package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/unieats/unieats-backend/api/responses"
	"github.com/unieats/unieats-backend/api/validators"
	"github.com/unieats/unieats-backend/internal/cart"
	"github.com/unieats/unieats-backend/internal/checkout"
	"github.com/unieats/unieats-backend/pkg/db/models"
	pkgerrors "github.com/unieats/unieats-backend/pkg/errors"
	"github.com/unieats/unieats-backend/pkg/logger"
)

type checkoutRequest struct {
	Comments *string `json:"comments,omitempty"`
}

type orderLineItemView struct {
	ID                  string        `json:"id"`
	DishID              int           `json:"dish_id"`
	DishName            string        `json:"dish_name"`
	UnitPriceCents      int           `json:"unit_price_cents"`
	Quantity            int           `json:"quantity"`
	Comment             *string       `json:"comment,omitempty"`
	Toppings            []toppingView `json:"toppings"`
	RemovedBaseToppings []int         `json:"removed_base_toppings"`
	LineTotalCents      int           `json:"line_total_cents"`
}

type orderView struct {
	ID              string              `json:"id"`
	Number          string              `json:"number"`
	RestaurantID    int                 `json:"restaurant_id"`
	RestaurantName  string              `json:"restaurant_name"`
	SubtotalCents   int                 `json:"subtotal_cents"`
	ServiceFeeCents int                 `json:"service_fee_cents"`
	TotalCents      int                 `json:"total_cents"`
	Status          string              `json:"status"`
	Comments        *string             `json:"comments,omitempty"`
	SubmittedAt     time.Time           `json:"submitted_at"`
	Items           []orderLineItemView `json:"items,omitempty"`
}

func toOrderView(order *models.Order) orderView {
	view := orderView{
		ID:              order.ID.String(),
		Number:          order.Number,
		RestaurantID:    order.RestaurantID,
		RestaurantName:  order.RestaurantName,
		SubtotalCents:   order.SubtotalCents,
		ServiceFeeCents: order.ServiceFeeCents,
		TotalCents:      order.TotalCents,
		Status:          order.Status.String(),
		Comments:        order.Comments,
		SubmittedAt:     order.SubmittedAt,
	}
	for _, item := range order.Items {
		toppings := make([]toppingView, 0, len(item.Toppings))
		for _, t := range item.Toppings {
			toppings = append(toppings, toppingView{ID: t.ID, Name: t.Name, PriceCents: t.PriceCents})
		}
		removed := []int(item.RemovedBaseToppings)
		if removed == nil {
			removed = []int{}
		}
		view.Items = append(view.Items, orderLineItemView{
			ID:                  item.ID.String(),
			DishID:              item.DishID,
			DishName:            item.DishName,
			UnitPriceCents:      item.UnitPriceCents,
			Quantity:            item.Quantity,
			Comment:             item.Comment,
			Toppings:            toppings,
			RemovedBaseToppings: removed,
			LineTotalCents:      item.LineTotalCents,
		})
	}
	return view
}

// Checkout converts the shopper's cart into a submitted order. The cart is
// cleared only after persistence succeeds; any failure leaves it intact for
// a manual retry.
func Checkout(svc checkout.Service, keeper *cart.Keeper, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		c, email, err := shopperCart(r, keeper)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Comments != nil {
			trimmed := strings.TrimSpace(*payload.Comments)
			if trimmed == "" {
				payload.Comments = nil
			} else {
				payload.Comments = &trimmed
			}
		}

		order, err := svc.Submit(r.Context(), checkout.SubmitInput{
			UserEmail: email,
			Cart:      c,
			Comments:  payload.Comments,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		c.Clear()
		responses.WriteSuccessStatus(w, http.StatusCreated, toOrderView(order))
	}
}
