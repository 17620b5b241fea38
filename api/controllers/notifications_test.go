package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unieats/unieats-backend/pkg/db/models"
	"github.com/unieats/unieats-backend/pkg/enums"
	"github.com/unieats/unieats-backend/pkg/pagination"
)

type stubNotifications struct {
	rows    []models.Notification
	unread  int64
	markFn  func(userEmail string, id uuid.UUID) error
	markAll func(userEmail string) error
}

func (s *stubNotifications) EmitOrderAlert(_ context.Context, _ *gorm.DB, _, _, _ string, _ uuid.UUID) error {
	return nil
}

func (s *stubNotifications) List(_ context.Context, _ string, _ pagination.Params) ([]models.Notification, string, int64, error) {
	return s.rows, "", s.unread, nil
}

func (s *stubNotifications) MarkRead(_ context.Context, userEmail string, id uuid.UUID) error {
	if s.markFn != nil {
		return s.markFn(userEmail, id)
	}
	return nil
}

func (s *stubNotifications) MarkAllRead(_ context.Context, userEmail string) error {
	if s.markAll != nil {
		return s.markAll(userEmail)
	}
	return nil
}

func TestListNotifications(t *testing.T) {
	orderID := uuid.New()
	svc := &stubNotifications{
		rows: []models.Notification{{
			ID:        uuid.New(),
			UserEmail: "ane@mondragon.edu",
			Type:      enums.NotificationTypeOrderAlert,
			Title:     "Pedido listo",
			Message:   "Tu pedido #AAA-001 esta listo para recoger",
			OrderID:   &orderID,
			CreatedAt: time.Now().UTC(),
		}},
		unread: 1,
	}

	req := asStudent(httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil), "ane@mondragon.edu")
	resp := httptest.NewRecorder()
	ListNotifications(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data struct {
			Notifications []notificationView `json:"notifications"`
			UnreadCount   int64              `json:"unread_count"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(envelope.Data.Notifications) != 1 || envelope.Data.UnreadCount != 1 {
		t.Fatalf("feed wrong: %+v", envelope.Data)
	}
	if envelope.Data.Notifications[0].OrderID == nil || *envelope.Data.Notifications[0].OrderID != orderID.String() {
		t.Fatalf("order link missing: %+v", envelope.Data.Notifications[0])
	}
}

func TestMarkNotificationRead(t *testing.T) {
	notificationID := uuid.New()
	var captured struct {
		email string
		id    uuid.UUID
	}
	svc := &stubNotifications{markFn: func(email string, id uuid.UUID) error {
		captured.email = email
		captured.id = id
		return nil
	}}

	req := asStudent(httptest.NewRequest(http.MethodPost, "/api/v1/notifications/"+notificationID.String()+"/read", nil), "ane@mondragon.edu")
	req = addRouteParam(req, "notificationId", notificationID.String())
	resp := httptest.NewRecorder()
	MarkNotificationRead(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if captured.email != "ane@mondragon.edu" || captured.id != notificationID {
		t.Fatalf("mark read input wrong: %+v", captured)
	}
}

func TestMarkNotificationReadInvalidID(t *testing.T) {
	req := asStudent(httptest.NewRequest(http.MethodPost, "/api/v1/notifications/bad/read", nil), "ane@mondragon.edu")
	req = addRouteParam(req, "notificationId", "bad")
	resp := httptest.NewRecorder()
	MarkNotificationRead(&stubNotifications{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestMarkAllNotificationsRead(t *testing.T) {
	var captured string
	svc := &stubNotifications{markAll: func(email string) error {
		captured = email
		return nil
	}}

	req := asStudent(httptest.NewRequest(http.MethodPost, "/api/v1/notifications/read-all", nil), "ane@mondragon.edu")
	resp := httptest.NewRecorder()
	MarkAllNotificationsRead(svc, testLogger())(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if captured != "ane@mondragon.edu" {
		t.Fatalf("expected caller scoping, got %q", captured)
	}
}
