package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Thushyanthini0507/artzyra-server/internal/domain/booking"
	"github.com/Thushyanthini0507/artzyra-server/internal/domain/review"
	"github.com/Thushyanthini0507/artzyra-server/internal/domain/user"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/domain"
)

// CreateReviewRequest holds the data to review a completed booking.
type CreateReviewRequest struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
	Rating    int       `json:"rating" binding:"required,min=1,max=5"`
	Comment   string    `json:"comment"`
}

// ReviewDTO is the response representation of a review.
type ReviewDTO struct {
	ID         uuid.UUID `json:"id"`
	BookingID  uuid.UUID `json:"booking_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	ArtistID   uuid.UUID `json:"artist_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReviewService lets customers rate completed bookings and keeps the
// artist's cached rating aggregate in step.
type ReviewService struct {
	reviews  review.Repository
	bookings booking.Repository
	users    user.Repository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviews review.Repository, bookings booking.Repository, users user.Repository) *ReviewService {
	return &ReviewService{reviews: reviews, bookings: bookings, users: users}
}

// CreateReview records a review. Only the booking's customer may review,
// only once, and only after completion.
func (s *ReviewService) CreateReview(ctx context.Context, customerID uuid.UUID, req CreateReviewRequest) (*ReviewDTO, error) {
	bk, err := s.bookings.FindByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if bk.CustomerID() != customerID {
		return nil, domain.NewForbiddenError("booking does not belong to this user")
	}
	if bk.Status() != booking.StatusCompleted {
		return nil, domain.NewInvalidOperationError("only completed bookings can be reviewed")
	}

	existing, err := s.reviews.FindByBookingID(ctx, req.BookingID)
	if err != nil {
		var derr *domain.DomainError
		if !errors.As(err, &derr) || derr.Code != domain.CodeNotFound {
			return nil, err
		}
	}
	if existing != nil {
		return nil, domain.NewConflictError("booking has already been reviewed")
	}

	r, err := review.NewReview(req.BookingID, customerID, bk.ArtistID(), req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}
	if err := s.reviews.Save(ctx, r); err != nil {
		return nil, err
	}

	// The cached rating is best effort; the review itself is the record.
	if artist, err := s.users.FindByID(ctx, bk.ArtistID()); err == nil {
		if err := artist.ApplyRating(req.Rating); err == nil {
			_ = s.users.Update(ctx, artist)
		}
	}

	dto := toReviewDTO(r)
	return &dto, nil
}

// UpdateReviewRequest holds a revised rating and comment.
type UpdateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// UpdateReview revises a review. Only its author may do so.
func (s *ReviewService) UpdateReview(ctx context.Context, reviewID, customerID uuid.UUID, req UpdateReviewRequest) (*ReviewDTO, error) {
	r, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if r.CustomerID() != customerID {
		return nil, domain.NewForbiddenError("review does not belong to this user")
	}

	oldRating := r.Rating()
	if err := r.Revise(req.Rating, req.Comment); err != nil {
		return nil, err
	}
	if err := s.reviews.Update(ctx, r); err != nil {
		return nil, err
	}

	if oldRating != req.Rating {
		if artist, err := s.users.FindByID(ctx, r.ArtistID()); err == nil {
			if err := artist.ReplaceRating(oldRating, req.Rating); err == nil {
				_ = s.users.Update(ctx, artist)
			}
		}
	}

	dto := toReviewDTO(r)
	return &dto, nil
}

// DeleteReview removes a review. Only its author may do so.
func (s *ReviewService) DeleteReview(ctx context.Context, reviewID, customerID uuid.UUID) error {
	r, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if r.CustomerID() != customerID {
		return domain.NewForbiddenError("review does not belong to this user")
	}
	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		return err
	}

	if artist, err := s.users.FindByID(ctx, r.ArtistID()); err == nil {
		if err := artist.RemoveRating(r.Rating()); err == nil {
			_ = s.users.Update(ctx, artist)
		}
	}
	return nil
}

// GetCustomerReviews lists the reviews a customer has written, newest first.
func (s *ReviewService) GetCustomerReviews(ctx context.Context, customerID uuid.UUID, page, limit int) (*domain.PaginatedResult[ReviewDTO], error) {
	rs, total, err := s.reviews.FindByCustomerID(ctx, customerID, page, limit)
	if err != nil {
		return nil, err
	}
	dtos := make([]ReviewDTO, len(rs))
	for i, r := range rs {
		dtos[i] = toReviewDTO(r)
	}
	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// GetArtistReviews lists reviews for an artist, newest first.
func (s *ReviewService) GetArtistReviews(ctx context.Context, artistID uuid.UUID, page, limit int) (*domain.PaginatedResult[ReviewDTO], error) {
	rs, total, err := s.reviews.FindByArtistID(ctx, artistID, page, limit)
	if err != nil {
		return nil, err
	}
	dtos := make([]ReviewDTO, len(rs))
	for i, r := range rs {
		dtos[i] = toReviewDTO(r)
	}
	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// GetBookingReview returns the review on one booking, if any.
func (s *ReviewService) GetBookingReview(ctx context.Context, bookingID uuid.UUID) (*ReviewDTO, error) {
	r, err := s.reviews.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	dto := toReviewDTO(r)
	return &dto, nil
}

func toReviewDTO(r *review.Review) ReviewDTO {
	return ReviewDTO{
		ID:         r.ID(),
		BookingID:  r.BookingID(),
		CustomerID: r.CustomerID(),
		ArtistID:   r.ArtistID(),
		Rating:     r.Rating(),
		Comment:    r.Comment(),
		CreatedAt:  r.CreatedAt(),
	}
}
