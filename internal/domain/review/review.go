package review

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Thushyanthini0507/artzyra-server/internal/platform/domain"
)

// Review is a customer's rating of a completed booking. One per booking.
type Review struct {
	id         uuid.UUID
	bookingID  uuid.UUID
	customerID uuid.UUID
	artistID   uuid.UUID
	rating     int
	comment    string
	createdAt  time.Time
}

// NewReview creates a review with a 1..5 rating.
func NewReview(bookingID, customerID, artistID uuid.UUID, rating int, comment string) (*Review, error) {
	if rating < 1 || rating > 5 {
		return nil, domain.NewValidationError("rating must be between 1 and 5")
	}
	return &Review{
		id:         uuid.New(),
		bookingID:  bookingID,
		customerID: customerID,
		artistID:   artistID,
		rating:     rating,
		comment:    comment,
		createdAt:  time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a Review from persistence data.
func Reconstruct(id, bookingID, customerID, artistID uuid.UUID, rating int, comment string, createdAt time.Time) *Review {
	return &Review{
		id:         id,
		bookingID:  bookingID,
		customerID: customerID,
		artistID:   artistID,
		rating:     rating,
		comment:    comment,
		createdAt:  createdAt,
	}
}

func (r *Review) ID() uuid.UUID         { return r.id }
func (r *Review) BookingID() uuid.UUID  { return r.bookingID }
func (r *Review) CustomerID() uuid.UUID { return r.customerID }
func (r *Review) ArtistID() uuid.UUID   { return r.artistID }
func (r *Review) Rating() int           { return r.rating }
func (r *Review) Comment() string       { return r.comment }
func (r *Review) CreatedAt() time.Time  { return r.createdAt }

// Revise replaces the rating and comment. Only the author may revise,
// which the service enforces.
func (r *Review) Revise(rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return domain.NewValidationError("rating must be between 1 and 5")
	}
	r.rating = rating
	r.comment = comment
	return nil
}

// Repository defines the persistence contract for reviews.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*Review, error)
	FindByArtistID(ctx context.Context, artistID uuid.UUID, page, limit int) ([]*Review, int64, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID, page, limit int) ([]*Review, int64, error)
	Save(ctx context.Context, r *Review) error
	Update(ctx context.Context, r *Review) error
	Delete(ctx context.Context, id uuid.UUID) error
}
