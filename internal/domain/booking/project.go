package booking

import (
	"time"

	"github.com/google/uuid"
)

// ProjectBrief describes a remote or asynchronous engagement.
type ProjectBrief struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	ReferenceLinks []string `json:"reference_links,omitempty"`
	FileIDs        []string `json:"file_ids,omitempty"`
}

// Schedule carries the legacy physical-engagement fields. Older bookings were
// made for in-person sessions; newer project-based bookings leave this empty
// and use EstimatedStartDate instead.
type Schedule struct {
	BookingDate     *time.Time `json:"booking_date,omitempty"`
	StartTime       string     `json:"start_time,omitempty"`
	EndTime         string     `json:"end_time,omitempty"`
	DurationMinutes int        `json:"duration_minutes,omitempty"`
	Location        string     `json:"location,omitempty"`
}

// RevisionStatus is the sub-status of one revision request.
type RevisionStatus string

const (
	RevisionRequested RevisionStatus = "requested"
	RevisionDelivered RevisionStatus = "delivered"
	RevisionAccepted  RevisionStatus = "accepted"
)

// Revision is one customer request for changes to delivered work.
type Revision struct {
	ID          uuid.UUID      `json:"id"`
	Note        string         `json:"note"`
	Status      RevisionStatus `json:"status"`
	RequestedAt time.Time      `json:"requested_at"`
}

// RefundStatus tracks the refund leg of a cancellation.
type RefundStatus string

const (
	RefundNone      RefundStatus = "none"
	RefundPending   RefundStatus = "pending"
	RefundProcessed RefundStatus = "processed"
)

// Cancellation is populated exactly once, when a booking is cancelled.
type Cancellation struct {
	CancelledBy       uuid.UUID    `json:"cancelled_by"`
	CancelledByRole   Actor        `json:"cancelled_by_role"`
	CancelledAt       time.Time    `json:"cancelled_at"`
	Reason            string       `json:"reason"`
	RefundAmountCents int64        `json:"refund_amount_cents"`
	RefundStatus      RefundStatus `json:"refund_status"`
}

// DisputeStatus is the state of a raised dispute.
type DisputeStatus string

const (
	DisputeOpen     DisputeStatus = "open"
	DisputeResolved DisputeStatus = "resolved"
)

// Dispute is populated only if a party raises one.
type Dispute struct {
	RaisedBy   uuid.UUID     `json:"raised_by"`
	RaisedAt   time.Time     `json:"raised_at"`
	Reason     string        `json:"reason"`
	Status     DisputeStatus `json:"status"`
	Resolution string        `json:"resolution,omitempty"`
	ResolvedAt *time.Time    `json:"resolved_at,omitempty"`
}

// FinalApproval records the customer signing off on delivered work.
type FinalApproval struct {
	ApprovedAt time.Time `json:"approved_at"`
	Feedback   string    `json:"feedback,omitempty"`
}
