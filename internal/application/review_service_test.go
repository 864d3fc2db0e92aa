package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thushyanthini0507/artzyra-server/internal/domain/review"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/domain"
)

type fakeReviewRepo struct {
	reviews map[uuid.UUID]*review.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[uuid.UUID]*review.Review)}
}

func (r *fakeReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*review.Review, error) {
	rv, ok := r.reviews[id]
	if !ok {
		return nil, domain.NewNotFoundError("Review", id.String())
	}
	return rv, nil
}

func (r *fakeReviewRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) (*review.Review, error) {
	for _, rv := range r.reviews {
		if rv.BookingID() == bookingID {
			return rv, nil
		}
	}
	return nil, domain.NewNotFoundError("Review", bookingID.String())
}

func (r *fakeReviewRepo) FindByArtistID(_ context.Context, artistID uuid.UUID, _, _ int) ([]*review.Review, int64, error) {
	var out []*review.Review
	for _, rv := range r.reviews {
		if rv.ArtistID() == artistID {
			out = append(out, rv)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeReviewRepo) FindByCustomerID(_ context.Context, customerID uuid.UUID, _, _ int) ([]*review.Review, int64, error) {
	var out []*review.Review
	for _, rv := range r.reviews {
		if rv.CustomerID() == customerID {
			out = append(out, rv)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeReviewRepo) Save(_ context.Context, rv *review.Review) error {
	r.reviews[rv.ID()] = rv
	return nil
}

func (r *fakeReviewRepo) Update(_ context.Context, rv *review.Review) error {
	if _, ok := r.reviews[rv.ID()]; !ok {
		return domain.NewNotFoundError("Review", rv.ID().String())
	}
	r.reviews[rv.ID()] = rv
	return nil
}

func (r *fakeReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.reviews[id]; !ok {
		return domain.NewNotFoundError("Review", id.String())
	}
	delete(r.reviews, id)
	return nil
}

type reviewFixture struct {
	*bookingFixture
	reviews *fakeReviewRepo
	svc     *ReviewService
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	bf := newBookingFixture(t)
	reviews := newFakeReviewRepo()
	return &reviewFixture{
		bookingFixture: bf,
		reviews:        reviews,
		svc:            NewReviewService(reviews, bf.repo, bf.users),
	}
}

func (f *reviewFixture) completedBooking(t *testing.T) uuid.UUID {
	t.Helper()
	dto := f.createBooking(t)
	_, err := f.bookingFixture.svc.ForceBookingStatus(context.Background(), dto.ID, uuid.New(), "completed")
	require.NoError(t, err)
	return dto.ID
}

func TestReviewService_CreateReview(t *testing.T) {
	f := newReviewFixture(t)
	bookingID := f.completedBooking(t)

	dto, err := f.svc.CreateReview(context.Background(), f.customer.ID(), CreateReviewRequest{
		BookingID: bookingID,
		Rating:    5,
		Comment:   "stunning work",
	})
	require.NoError(t, err)
	assert.Equal(t, bookingID, dto.BookingID)
	assert.Equal(t, 5, dto.Rating)

	artist, err := f.users.FindByID(context.Background(), f.artist.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, artist.Profile().RatingCount)
	assert.InDelta(t, 5.0, artist.Profile().RatingAverage, 0.001)
}

func TestReviewService_CreateReview_RequiresCompletion(t *testing.T) {
	f := newReviewFixture(t)
	dto := f.createBooking(t)

	_, err := f.svc.CreateReview(context.Background(), f.customer.ID(), CreateReviewRequest{
		BookingID: dto.ID,
		Rating:    4,
	})
	require.Error(t, err)
}

func TestReviewService_CreateReview_OncePerBooking(t *testing.T) {
	f := newReviewFixture(t)
	bookingID := f.completedBooking(t)

	_, err := f.svc.CreateReview(context.Background(), f.customer.ID(), CreateReviewRequest{
		BookingID: bookingID,
		Rating:    4,
	})
	require.NoError(t, err)

	_, err = f.svc.CreateReview(context.Background(), f.customer.ID(), CreateReviewRequest{
		BookingID: bookingID,
		Rating:    5,
	})
	require.Error(t, err)
}

func TestReviewService_UpdateReview_ReplacesRating(t *testing.T) {
	f := newReviewFixture(t)
	bookingID := f.completedBooking(t)

	created, err := f.svc.CreateReview(context.Background(), f.customer.ID(), CreateReviewRequest{
		BookingID: bookingID,
		Rating:    5,
	})
	require.NoError(t, err)

	updated, err := f.svc.UpdateReview(context.Background(), created.ID, f.customer.ID(), UpdateReviewRequest{
		Rating:  3,
		Comment: "revised after delivery issues",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Rating)

	artist, err := f.users.FindByID(context.Background(), f.artist.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, artist.Profile().RatingCount)
	assert.InDelta(t, 3.0, artist.Profile().RatingAverage, 0.001)

	// Only the author may revise.
	_, err = f.svc.UpdateReview(context.Background(), created.ID, uuid.New(), UpdateReviewRequest{Rating: 1})
	require.Error(t, err)
}

func TestReviewService_DeleteReview(t *testing.T) {
	f := newReviewFixture(t)
	bookingID := f.completedBooking(t)

	created, err := f.svc.CreateReview(context.Background(), f.customer.ID(), CreateReviewRequest{
		BookingID: bookingID,
		Rating:    4,
	})
	require.NoError(t, err)

	require.Error(t, f.svc.DeleteReview(context.Background(), created.ID, uuid.New()))
	require.NoError(t, f.svc.DeleteReview(context.Background(), created.ID, f.customer.ID()))

	artist, err := f.users.FindByID(context.Background(), f.artist.ID())
	require.NoError(t, err)
	assert.Equal(t, 0, artist.Profile().RatingCount)
	assert.InDelta(t, 0.0, artist.Profile().RatingAverage, 0.001)

	result, err := f.svc.GetCustomerReviews(context.Background(), f.customer.ID(), 1, 10)
	require.NoError(t, err)
	assert.Empty(t, result.Items)
}
