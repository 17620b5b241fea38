package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unieats/unieats-backend/pkg/db/models"
	"github.com/unieats/unieats-backend/pkg/enums"
	pkgerrors "github.com/unieats/unieats-backend/pkg/errors"
	"github.com/unieats/unieats-backend/pkg/pagination"
)

// Service exposes the polled notification feed plus the in-transaction
// emitter the orders service uses.
type Service interface {
	EmitOrderAlert(ctx context.Context, tx *gorm.DB, userEmail, title, message string, orderID uuid.UUID) error
	List(ctx context.Context, userEmail string, params pagination.Params) ([]models.Notification, string, int64, error)
	MarkRead(ctx context.Context, userEmail string, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userEmail string) error
}

type service struct {
	repo  Repository
	clock func() time.Time
}

// NewService builds the notifications service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("notifications repository required")
	}
	return &service{repo: repo, clock: time.Now}, nil
}

// EmitOrderAlert inserts the alert through the caller's transaction so it
// commits (or rolls back) together with the order mutation that caused it.
func (s *service) EmitOrderAlert(ctx context.Context, tx *gorm.DB, userEmail, title, message string, orderID uuid.UUID) error {
	if userEmail == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "user email required")
	}
	if title == "" || message == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "alert title and message required")
	}

	notification := models.Notification{
		ID:        uuid.New(),
		UserEmail: userEmail,
		Type:      enums.NotificationTypeOrderAlert,
		Title:     title,
		Message:   message,
		CreatedAt: s.clock(),
	}
	if orderID != uuid.Nil {
		notification.OrderID = &orderID
	}

	if err := s.repo.WithTx(tx).Create(ctx, &notification); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create notification")
	}
	return nil
}

func (s *service) List(ctx context.Context, userEmail string, params pagination.Params) ([]models.Notification, string, int64, error) {
	if userEmail == "" {
		return nil, "", 0, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	rows, err := s.repo.ListByUser(ctx, userEmail, cursor, pagination.LimitWithBuffer(params.Limit))
	if err != nil {
		return nil, "", 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications")
	}

	next := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	unread, err := s.repo.CountUnread(ctx, userEmail)
	if err != nil {
		return nil, "", 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count unread")
	}
	return rows, next, unread, nil
}

func (s *service) MarkRead(ctx context.Context, userEmail string, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "notification id required")
	}

	notification, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load notification")
	}
	if notification.UserEmail != userEmail {
		return pkgerrors.New(pkgerrors.CodeForbidden, "notification does not belong to user")
	}

	if err := s.repo.MarkRead(ctx, id, s.clock()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notification read")
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, userEmail string) error {
	if userEmail == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if err := s.repo.MarkAllRead(ctx, userEmail, s.clock()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark all read")
	}
	return nil
}
