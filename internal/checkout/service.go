package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/unieats/unieats-backend/internal/cart"
	"github.com/unieats/unieats-backend/internal/orders"
	"github.com/unieats/unieats-backend/pkg/config"
	"github.com/unieats/unieats-backend/pkg/db/models"
	"github.com/unieats/unieats-backend/pkg/enums"
	pkgerrors "github.com/unieats/unieats-backend/pkg/errors"
	"github.com/unieats/unieats-backend/pkg/metrics"
	"github.com/unieats/unieats-backend/pkg/types"
)

// orderSubmitter is the order-persistence collaborator. A failed submit
// leaves the cart untouched so the shopper can retry manually.
type orderSubmitter interface {
	Submit(ctx context.Context, order *models.Order, items []models.OrderLineItem) error
}

// SubmitInput carries everything the assembler needs besides the cart.
type SubmitInput struct {
	UserEmail string
	Cart      *cart.Cart
	Comments  *string
}

// Service converts a non-empty cart into a priced, numbered order and hands
// it to order persistence. It never clears the cart: the caller does that
// after a successful submission.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*models.Order, error)
}

type service struct {
	submitter orderSubmitter
	cfg       config.CheckoutConfig
	guard     *submissionGuard
	metrics   *metrics.OrderFlowMetrics
	clock     func() time.Time
}

// NewService builds the order assembler. Metrics may be nil.
func NewService(submitter orderSubmitter, cfg config.CheckoutConfig, flow *metrics.OrderFlowMetrics) (Service, error) {
	if submitter == nil {
		return nil, fmt.Errorf("order submitter required")
	}
	if cfg.ServiceFeeRate() <= 0 {
		return nil, fmt.Errorf("service fee rate must be positive")
	}
	return &service{
		submitter: submitter,
		cfg:       cfg,
		guard:     newSubmissionGuard(),
		metrics:   flow,
		clock:     time.Now,
	}, nil
}

func (s *service) Submit(ctx context.Context, input SubmitInput) (*models.Order, error) {
	started := s.clock()

	if input.UserEmail == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.Cart == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart required")
	}

	if !s.guard.acquire(input.UserEmail) {
		s.metrics.IncCheckoutFailure("in_flight")
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "a submission is already in progress")
	}
	defer s.guard.release(input.UserEmail)

	items := input.Cart.Items()
	if len(items) == 0 {
		s.metrics.IncCheckoutFailure("empty_cart")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	subtotal := input.Cart.Subtotal()
	fee := ServiceFee(subtotal, s.cfg.ServiceFeeRate())
	total := subtotal + fee

	order, lineItems, err := s.assemble(input, items, subtotal, fee, total)
	if err != nil {
		return nil, err
	}

	err = s.submitter.Submit(ctx, order, lineItems)
	if err != nil && pkgerrors.IsUniqueViolation(err) {
		// one retry with a fresh number; a second collision surfaces
		number, numErr := NewOrderNumber()
		if numErr != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, numErr, "regenerate order number")
		}
		order.ID = uuid.New()
		order.Number = number
		for i := range lineItems {
			lineItems[i].ID = uuid.New()
		}
		err = s.submitter.Submit(ctx, order, lineItems)
	}
	if err != nil {
		s.metrics.IncCheckoutFailure("submit")
		s.metrics.ObserveCheckout("failure", s.clock().Sub(started))
		return nil, err
	}

	s.metrics.ObserveCheckout("success", s.clock().Sub(started))
	return order, nil
}

func (s *service) assemble(input SubmitInput, items []cart.LineItem, subtotal, fee, total int) (*models.Order, []models.OrderLineItem, error) {
	number, err := NewOrderNumber()
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate order number")
	}

	first := items[0]
	now := s.clock()
	order := &models.Order{
		ID:                uuid.New(),
		Number:            number,
		UserEmail:         input.UserEmail,
		University:        first.University,
		RestaurantID:      first.RestaurantID,
		RestaurantName:    first.RestaurantName,
		SubtotalCents:     subtotal,
		ServiceFeeCents:   fee,
		TotalCents:        total,
		Status:            enums.OrderStatusPending,
		RestauranteEstado: orders.CompositeEstado(first.RestaurantID, enums.OrderStatusPending),
		Comments:          input.Comments,
		SubmittedAt:       now,
	}

	lineItems := make([]models.OrderLineItem, 0, len(items))
	for _, item := range items {
		var comment *string
		if item.Comment != "" {
			c := item.Comment
			comment = &c
		}
		lineItems = append(lineItems, models.OrderLineItem{
			ID:                  uuid.New(),
			DishID:              item.Dish.ID,
			DishName:            item.Dish.Name,
			DishDescription:     item.Dish.Description,
			UnitPriceCents:      item.UnitPriceCents,
			Quantity:            item.Quantity,
			Comment:             comment,
			Toppings:            item.Toppings,
			RemovedBaseToppings: types.IntList(item.RemovedBaseToppings),
			LineTotalCents:      item.LineTotal(),
		})
	}
	return order, lineItems, nil
}
