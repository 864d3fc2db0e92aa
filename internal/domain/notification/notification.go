package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Kind classifies what a notification is about.
type Kind string

const (
	KindBookingCreated   Kind = "booking_created"
	KindBookingAccepted  Kind = "booking_accepted"
	KindBookingDeclined  Kind = "booking_declined"
	KindBookingStarted   Kind = "booking_started"
	KindBookingDelivered Kind = "booking_delivered"
	KindBookingCompleted Kind = "booking_completed"
	KindBookingCancelled Kind = "booking_cancelled"
	KindChangesRequested Kind = "changes_requested"
	KindStatusUpdated    Kind = "status_updated"
	KindPaymentReceived  Kind = "payment_received"
	KindPaymentFailed    Kind = "payment_failed"
	KindRefundProcessed  Kind = "refund_processed"
	KindArtistApproved   Kind = "artist_approved"
	KindArtistRejected   Kind = "artist_rejected"
	KindNewMessage       Kind = "new_message"
)

// Notification is an in-app message for one recipient, materialized from
// domain events.
type Notification struct {
	id          uuid.UUID
	recipientID uuid.UUID
	kind        Kind
	title       string
	body        string
	bookingID   *uuid.UUID
	read        bool
	createdAt   time.Time
}

// NewNotification creates an unread notification.
func NewNotification(recipientID uuid.UUID, kind Kind, title, body string, bookingID *uuid.UUID) *Notification {
	return &Notification{
		id:          uuid.New(),
		recipientID: recipientID,
		kind:        kind,
		title:       title,
		body:        body,
		bookingID:   bookingID,
		createdAt:   time.Now().UTC(),
	}
}

// Reconstruct rebuilds a Notification from persistence data.
func Reconstruct(id, recipientID uuid.UUID, kind Kind, title, body string, bookingID *uuid.UUID, read bool, createdAt time.Time) *Notification {
	return &Notification{
		id:          id,
		recipientID: recipientID,
		kind:        kind,
		title:       title,
		body:        body,
		bookingID:   bookingID,
		read:        read,
		createdAt:   createdAt,
	}
}

func (n *Notification) ID() uuid.UUID          { return n.id }
func (n *Notification) RecipientID() uuid.UUID { return n.recipientID }
func (n *Notification) Kind() Kind             { return n.kind }
func (n *Notification) Title() string          { return n.title }
func (n *Notification) Body() string           { return n.body }
func (n *Notification) BookingID() *uuid.UUID  { return n.bookingID }
func (n *Notification) Read() bool             { return n.read }
func (n *Notification) CreatedAt() time.Time   { return n.createdAt }

// MarkRead flags the notification as seen.
func (n *Notification) MarkRead() { n.read = true }

// Repository defines the persistence contract for notifications.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	FindByRecipient(ctx context.Context, recipientID uuid.UUID, page, limit int) ([]*Notification, int64, error)
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error)
	Save(ctx context.Context, n *Notification) error
	MarkRead(ctx context.Context, id, recipientID uuid.UUID) error
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) error
	Delete(ctx context.Context, id, recipientID uuid.UUID) error
}
