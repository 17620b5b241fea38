package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unieats/unieats-backend/pkg/db/models"
	"github.com/unieats/unieats-backend/pkg/enums"
	pkgerrors "github.com/unieats/unieats-backend/pkg/errors"
	"github.com/unieats/unieats-backend/pkg/metrics"
	"github.com/unieats/unieats-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// alertEmitter writes an order-alert notification row inside the caller's
// transaction so the alert and the status change commit atomically.
type alertEmitter interface {
	EmitOrderAlert(ctx context.Context, tx *gorm.DB, userEmail, title, message string, orderID uuid.UUID) error
}

// Service exposes order persistence plus owner fulfillment transitions.
type Service interface {
	Submit(ctx context.Context, order *models.Order, items []models.OrderLineItem) error
	ListForUser(ctx context.Context, userEmail string, params pagination.Params) ([]models.Order, string, error)
	GetForUser(ctx context.Context, userEmail string, orderID uuid.UUID) (*models.Order, error)
	OwnerQueue(ctx context.Context, restaurantID int, status enums.OrderStatus, limit int) ([]models.Order, error)
	Transition(ctx context.Context, input TransitionInput) error
}

// TransitionInput carries an owner's fulfillment decision.
type TransitionInput struct {
	OrderID      uuid.UUID
	RestaurantID int
	Target       enums.OrderStatus
}

type service struct {
	repo    Repository
	tx      txRunner
	alerts  alertEmitter
	metrics *metrics.OrderFlowMetrics
}

// NewService builds the orders service with the required dependencies.
// Metrics may be nil; recording is then a no-op.
func NewService(repo Repository, tx txRunner, alerts alertEmitter, flow *metrics.OrderFlowMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if alerts == nil {
		return nil, fmt.Errorf("alert emitter required")
	}
	return &service{repo: repo, tx: tx, alerts: alerts, metrics: flow}, nil
}

// Submit persists the order, its line items and the confirmation alert in
// one transaction. The unique order-number index surfaces collisions to the
// caller, which owns the regenerate-and-retry policy.
func (s *service) Submit(ctx context.Context, order *models.Order, items []models.OrderLineItem) error {
	if order == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order required")
	}
	if len(items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order requires at least one line item")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.CreateOrder(ctx, order); err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := repo.CreateLineItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create line items")
		}
		return s.alerts.EmitOrderAlert(ctx, tx, order.UserEmail,
			"Pedido recibido",
			fmt.Sprintf("Tu pedido %s fue recibido por %s", order.Number, order.RestaurantName),
			order.ID)
	})
	if err != nil {
		return err
	}

	s.metrics.IncOrderSubmitted(order.University)
	return nil
}

func (s *service) ListForUser(ctx context.Context, userEmail string, params pagination.Params) ([]models.Order, string, error) {
	if userEmail == "" {
		return nil, "", pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	rows, err := s.repo.ListByUser(ctx, userEmail, cursor, pagination.LimitWithBuffer(params.Limit))
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	next := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return rows, next, nil
}

func (s *service) GetForUser(ctx context.Context, userEmail string, orderID uuid.UUID) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if order.UserEmail != userEmail {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to user")
	}
	return order, nil
}

func (s *service) OwnerQueue(ctx context.Context, restaurantID int, status enums.OrderStatus, limit int) ([]models.Order, error) {
	if restaurantID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "restaurant context missing")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order status %q", status))
	}

	rows, err := s.repo.ListByEstado(ctx, CompositeEstado(restaurantID, status), pagination.NormalizeLimit(limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list owner queue")
	}
	return rows, nil
}

var allowedTransitions = map[enums.OrderStatus][]enums.OrderStatus{
	enums.OrderStatusPending:   {enums.OrderStatusPreparing, enums.OrderStatusRejected},
	enums.OrderStatusPreparing: {enums.OrderStatusReady},
	enums.OrderStatusReady:     {enums.OrderStatusDelivered},
}

func canTransition(from, to enums.OrderStatus) bool {
	for _, candidate := range allowedTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

var statusMessages = map[enums.OrderStatus]struct {
	title   string
	message string
}{
	enums.OrderStatusPreparing: {"Pedido en preparacion", "Tu pedido %s esta en preparacion"},
	enums.OrderStatusReady:     {"Pedido listo", "Tu pedido %s esta listo para recoger"},
	enums.OrderStatusDelivered: {"Pedido entregado", "Tu pedido %s fue entregado"},
	enums.OrderStatusRejected:  {"Pedido rechazado", "Tu pedido %s fue rechazado por el restaurante"},
}

// Transition applies an owner fulfillment decision. The status change and
// the shopper's alert commit in one transaction; repeating the current
// status is a no-op so owner clients can retry safely.
func (s *service) Transition(ctx context.Context, input TransitionInput) error {
	if input.OrderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.RestaurantID <= 0 {
		return pkgerrors.New(pkgerrors.CodeForbidden, "restaurant context missing")
	}
	if !input.Target.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order status %q", input.Target))
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindByID(ctx, input.OrderID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.RestaurantID != input.RestaurantID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to restaurant")
		}
		if order.Status == input.Target {
			return nil
		}
		if !canTransition(order.Status, input.Target) {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("cannot move order from %s to %s", order.Status, input.Target))
		}

		estado := CompositeEstado(order.RestaurantID, input.Target)
		if err := repo.UpdateStatus(ctx, order.ID, input.Target, estado); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}

		alert := statusMessages[input.Target]
		return s.alerts.EmitOrderAlert(ctx, tx, order.UserEmail,
			alert.title, fmt.Sprintf(alert.message, order.Number), order.ID)
	})
	if err != nil {
		return err
	}

	s.metrics.IncStatusChange(input.Target.String())
	return nil
}
