package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unieats/unieats-backend/pkg/db/models"
	"github.com/unieats/unieats-backend/pkg/enums"
	pkgerrors "github.com/unieats/unieats-backend/pkg/errors"
)

type fakeTxRunner struct{}

func (fakeTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type memRepo struct {
	Repository
	orders map[uuid.UUID]*models.Order
	items  map[uuid.UUID][]models.OrderLineItem
}

func newMemRepo() *memRepo {
	return &memRepo{orders: map[uuid.UUID]*models.Order{}, items: map[uuid.UUID][]models.OrderLineItem{}}
}

func (m *memRepo) WithTx(tx *gorm.DB) Repository { return m }

func (m *memRepo) CreateOrder(_ context.Context, order *models.Order) error {
	copied := *order
	m.orders[order.ID] = &copied
	return nil
}

func (m *memRepo) CreateLineItems(_ context.Context, items []models.OrderLineItem) error {
	for _, item := range items {
		m.items[item.OrderID] = append(m.items[item.OrderID], item)
	}
	return nil
}

func (m *memRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	copied.Items = m.items[id]
	return &copied, nil
}

func (m *memRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enums.OrderStatus, estado string) error {
	order, ok := m.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.Status = status
	order.RestauranteEstado = estado
	return nil
}

type recordedAlert struct {
	userEmail string
	title     string
	orderID   uuid.UUID
}

type fakeAlerts struct {
	alerts []recordedAlert
	err    error
}

func (f *fakeAlerts) EmitOrderAlert(_ context.Context, _ *gorm.DB, userEmail, title, _ string, orderID uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.alerts = append(f.alerts, recordedAlert{userEmail: userEmail, title: title, orderID: orderID})
	return nil
}

func newOrdersService(t *testing.T, repo Repository, alerts alertEmitter) Service {
	t.Helper()
	svc, err := NewService(repo, fakeTxRunner{}, alerts, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func seedOrder(t *testing.T, svc Service, email string, restaurantID int) *models.Order {
	t.Helper()
	order := &models.Order{
		ID:                uuid.New(),
		Number:            "#AAA-001",
		UserEmail:         email,
		University:        "Mondragon Unibertsitatea",
		RestaurantID:      restaurantID,
		RestaurantName:    "Cafeteria Central",
		SubtotalCents:     20000,
		ServiceFeeCents:   1000,
		TotalCents:        21000,
		Status:            enums.OrderStatusPending,
		RestauranteEstado: CompositeEstado(restaurantID, enums.OrderStatusPending),
		SubmittedAt:       time.Now().UTC(),
	}
	items := []models.OrderLineItem{{ID: uuid.New(), DishID: 1, DishName: "Bandeja", UnitPriceCents: 20000, Quantity: 1, LineTotalCents: 20000}}
	if err := svc.Submit(context.Background(), order, items); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	return order
}

func TestSubmitEmitsConfirmationAlert(t *testing.T) {
	repo := newMemRepo()
	alerts := &fakeAlerts{}
	svc := newOrdersService(t, repo, alerts)

	order := seedOrder(t, svc, "ane@mondragon.edu", 1)

	if len(alerts.alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts.alerts))
	}
	if alerts.alerts[0].userEmail != "ane@mondragon.edu" || alerts.alerts[0].orderID != order.ID {
		t.Fatalf("alert fields wrong: %+v", alerts.alerts[0])
	}
	if len(repo.items[order.ID]) != 1 {
		t.Fatal("line items not persisted")
	}
	if repo.items[order.ID][0].OrderID != order.ID {
		t.Fatal("line items must be stamped with the order id")
	}
}

func TestSubmitValidation(t *testing.T) {
	svc := newOrdersService(t, newMemRepo(), &fakeAlerts{})
	ctx := context.Background()

	err := svc.Submit(ctx, nil, nil)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR for nil order, got %v", err)
	}

	err = svc.Submit(ctx, &models.Order{ID: uuid.New()}, nil)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR for empty items, got %v", err)
	}
}

func TestGetForUserOwnership(t *testing.T) {
	repo := newMemRepo()
	svc := newOrdersService(t, repo, &fakeAlerts{})
	ctx := context.Background()

	order := seedOrder(t, svc, "ane@mondragon.edu", 1)

	got, err := svc.GetForUser(ctx, "ane@mondragon.edu", order.ID)
	if err != nil {
		t.Fatalf("GetForUser: %v", err)
	}
	if got.Number != order.Number {
		t.Fatalf("unexpected order: %+v", got)
	}

	_, err = svc.GetForUser(ctx, "jon@mondragon.edu", order.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}

	_, err = svc.GetForUser(ctx, "ane@mondragon.edu", uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestTransitionStateMachine(t *testing.T) {
	cases := []struct {
		from    enums.OrderStatus
		to      enums.OrderStatus
		allowed bool
	}{
		{enums.OrderStatusPending, enums.OrderStatusPreparing, true},
		{enums.OrderStatusPending, enums.OrderStatusRejected, true},
		{enums.OrderStatusPreparing, enums.OrderStatusReady, true},
		{enums.OrderStatusReady, enums.OrderStatusDelivered, true},
		{enums.OrderStatusPending, enums.OrderStatusReady, false},
		{enums.OrderStatusPending, enums.OrderStatusDelivered, false},
		{enums.OrderStatusPreparing, enums.OrderStatusRejected, false},
		{enums.OrderStatusDelivered, enums.OrderStatusPending, false},
		{enums.OrderStatusRejected, enums.OrderStatusPreparing, false},
	}
	for _, tc := range cases {
		if got := canTransition(tc.from, tc.to); got != tc.allowed {
			t.Errorf("canTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestTransitionUpdatesEstadoAndAlerts(t *testing.T) {
	repo := newMemRepo()
	alerts := &fakeAlerts{}
	svc := newOrdersService(t, repo, alerts)
	ctx := context.Background()

	order := seedOrder(t, svc, "ane@mondragon.edu", 7)
	alerts.alerts = nil

	err := svc.Transition(ctx, TransitionInput{OrderID: order.ID, RestaurantID: 7, Target: enums.OrderStatusPreparing})
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}

	stored := repo.orders[order.ID]
	if stored.Status != enums.OrderStatusPreparing {
		t.Fatalf("status not updated: %s", stored.Status)
	}
	if stored.RestauranteEstado != "7#en_preparacion" {
		t.Fatalf("estado not updated: %s", stored.RestauranteEstado)
	}
	if len(alerts.alerts) != 1 || alerts.alerts[0].title != "Pedido en preparacion" {
		t.Fatalf("expected preparing alert, got %+v", alerts.alerts)
	}
}

func TestTransitionGuards(t *testing.T) {
	repo := newMemRepo()
	alerts := &fakeAlerts{}
	svc := newOrdersService(t, repo, alerts)
	ctx := context.Background()

	order := seedOrder(t, svc, "ane@mondragon.edu", 7)
	alerts.alerts = nil

	// wrong restaurant
	err := svc.Transition(ctx, TransitionInput{OrderID: order.ID, RestaurantID: 9, Target: enums.OrderStatusPreparing})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}

	// invalid jump
	err = svc.Transition(ctx, TransitionInput{OrderID: order.ID, RestaurantID: 7, Target: enums.OrderStatusDelivered})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected STATE_CONFLICT, got %v", err)
	}

	// repeating the current status is a safe no-op
	if err := svc.Transition(ctx, TransitionInput{OrderID: order.ID, RestaurantID: 7, Target: enums.OrderStatusPending}); err != nil {
		t.Fatalf("same-status transition must be a no-op, got %v", err)
	}
	if len(alerts.alerts) != 0 {
		t.Fatal("no alerts expected for guarded transitions")
	}
}
