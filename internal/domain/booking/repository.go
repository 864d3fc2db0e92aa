package booking

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for booking aggregates.
type Repository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByNumber retrieves a booking by its human-readable booking number.
	FindByNumber(ctx context.Context, number string) (*Booking, error)

	// FindByCustomerID retrieves bookings made by a customer with pagination.
	FindByCustomerID(ctx context.Context, customerID uuid.UUID, page, limit int) ([]*Booking, int64, error)

	// FindByArtistID retrieves bookings assigned to an artist with pagination.
	FindByArtistID(ctx context.Context, artistID uuid.UUID, page, limit int) ([]*Booking, int64, error)

	// ListAll retrieves all bookings with pagination (admin). A non-nil
	// status filters by canonical status, matching legacy spellings too.
	ListAll(ctx context.Context, status *Status, page, limit int) ([]*Booking, int64, error)

	// CountByStatus returns booking counts grouped by raw stored status (admin).
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// Save persists a new booking.
	Save(ctx context.Context, b *Booking) error

	// Update persists changes to an existing booking with optimistic locking.
	Update(ctx context.Context, b *Booking) error

	// Delete removes a booking permanently. Callers must verify the booking
	// is still pending before asking for a delete.
	Delete(ctx context.Context, id uuid.UUID) error
}
