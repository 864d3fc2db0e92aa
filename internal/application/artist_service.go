package application

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Thushyanthini0507/artzyra-server/internal/domain/user"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/domain"
)

// UpdateArtistProfileRequest holds artist profile edits.
type UpdateArtistProfileRequest struct {
	Bio            string     `json:"bio"`
	CategoryID     *uuid.UUID `json:"category_id"`
	Skills         []string   `json:"skills"`
	PortfolioLinks []string   `json:"portfolio_links"`
	BaseRateCents  int64      `json:"base_rate_cents"`
	AvatarURL      string     `json:"avatar_url"`
}

// ArtistService exposes the artist directory and profile management.
type ArtistService struct {
	users  user.Repository
	logger *zap.Logger
}

// NewArtistService creates a new ArtistService.
func NewArtistService(users user.Repository, logger *zap.Logger) *ArtistService {
	return &ArtistService{users: users, logger: logger}
}

// ListArtists returns the public directory of approved artists, optionally
// filtered by category.
func (s *ArtistService) ListArtists(ctx context.Context, categoryID *uuid.UUID, page, limit int) (*domain.PaginatedResult[UserDTO], error) {
	artists, total, err := s.users.ListArtists(ctx, categoryID, true, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(toUserDTOs(artists), total, page, limit)
	return &result, nil
}

// GetArtist returns one approved artist's public profile.
func (s *ArtistService) GetArtist(ctx context.Context, artistID uuid.UUID) (*UserDTO, error) {
	u, err := s.users.FindByID(ctx, artistID)
	if err != nil {
		return nil, err
	}
	if !u.IsApprovedArtist() {
		return nil, domain.NewNotFoundError("artist", artistID.String())
	}
	dto := toUserDTO(u)
	return &dto, nil
}

// GetOwnProfile returns the authenticated artist's profile, approved or not.
func (s *ArtistService) GetOwnProfile(ctx context.Context, artistID uuid.UUID) (*UserDTO, error) {
	u, err := s.users.FindByID(ctx, artistID)
	if err != nil {
		return nil, err
	}
	if u.Profile() == nil {
		return nil, domain.NewInvalidOperationError("user has no artist profile")
	}
	dto := toUserDTO(u)
	return &dto, nil
}

// UpdateProfile applies the authenticated artist's profile edits.
func (s *ArtistService) UpdateProfile(ctx context.Context, artistID uuid.UUID, req UpdateArtistProfileRequest) (*UserDTO, error) {
	u, err := s.users.FindByID(ctx, artistID)
	if err != nil {
		return nil, err
	}
	if err := u.UpdateProfile(req.Bio, req.CategoryID, req.Skills, req.PortfolioLinks, req.BaseRateCents, req.AvatarURL); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	dto := toUserDTO(u)
	return &dto, nil
}

// --- Admin moderation ---

// ListPendingArtists returns artists awaiting approval (admin).
func (s *ArtistService) ListPendingArtists(ctx context.Context, page, limit int) (*domain.PaginatedResult[UserDTO], error) {
	artists, total, err := s.users.ListPendingArtists(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(toUserDTOs(artists), total, page, limit)
	return &result, nil
}

// SetArtistApproval approves or rejects an artist application (admin).
func (s *ArtistService) SetArtistApproval(ctx context.Context, artistID uuid.UUID, approve bool) (*UserDTO, error) {
	u, err := s.users.FindByID(ctx, artistID)
	if err != nil {
		return nil, err
	}

	status := user.ApprovalRejected
	if approve {
		status = user.ApprovalApproved
	}
	if err := u.SetApproval(status); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("artist approval updated",
		zap.String("artist_id", artistID.String()),
		zap.String("status", string(status)),
	)
	dto := toUserDTO(u)
	return &dto, nil
}

func toUserDTOs(users []*user.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = toUserDTO(u)
	}
	return dtos
}
