package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Thushyanthini0507/artzyra-server/internal/domain/notification"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/domain"
)

// NotificationDTO is the response representation of a notification.
type NotificationDTO struct {
	ID        uuid.UUID  `json:"id"`
	Kind      string     `json:"kind"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	BookingID *uuid.UUID `json:"booking_id,omitempty"`
	Read      bool       `json:"read"`
	CreatedAt time.Time  `json:"created_at"`
}

// NotificationListDTO bundles a notification page with the unread count.
type NotificationListDTO struct {
	Notifications domain.PaginatedResult[NotificationDTO] `json:"notifications"`
	UnreadCount   int64                                   `json:"unread_count"`
}

// NotificationService reads and marks the in-app notifications materialized
// by the event consumers.
type NotificationService struct {
	repo notification.Repository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(repo notification.Repository) *NotificationService {
	return &NotificationService{repo: repo}
}

// ListNotifications returns a page of the user's notifications together with
// their total unread count.
func (s *NotificationService) ListNotifications(ctx context.Context, userID uuid.UUID, page, limit int) (*NotificationListDTO, error) {
	ns, total, err := s.repo.FindByRecipient(ctx, userID, page, limit)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	dtos := make([]NotificationDTO, len(ns))
	for i, n := range ns {
		dtos[i] = toNotificationDTO(n)
	}
	return &NotificationListDTO{
		Notifications: domain.NewPaginatedResult(dtos, total, page, limit),
		UnreadCount:   unread,
	}, nil
}

// MarkRead marks one of the user's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.repo.MarkRead(ctx, id, userID)
}

// MarkAllRead marks every notification of the user as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllRead(ctx, userID)
}

// DeleteNotification removes one of the user's notifications.
func (s *NotificationService) DeleteNotification(ctx context.Context, id, userID uuid.UUID) error {
	return s.repo.Delete(ctx, id, userID)
}

// Notify stores a notification for a recipient. Called by the event
// consumers, not by handlers.
func (s *NotificationService) Notify(ctx context.Context, recipientID uuid.UUID, kind notification.Kind, title, body string, bookingID *uuid.UUID) error {
	n := notification.NewNotification(recipientID, kind, title, body, bookingID)
	return s.repo.Save(ctx, n)
}

func toNotificationDTO(n *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID(),
		Kind:      string(n.Kind()),
		Title:     n.Title(),
		Body:      n.Body(),
		BookingID: n.BookingID(),
		Read:      n.Read(),
		CreatedAt: n.CreatedAt(),
	}
}
