package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Thushyanthini0507/artzyra-server/internal/platform/auth"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/domain"
)

// ApprovalStatus is the moderation state of an artist profile.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// User is the aggregate root for an account (customer, artist or admin).
type User struct {
	id           uuid.UUID
	email        string
	passwordHash string
	name         string
	phone        string
	role         auth.Role
	profile      *ArtistProfile
	version      int64
	createdAt    time.Time
	updatedAt    time.Time
}

// ArtistProfile holds the artist-specific fields of a user. Present only for
// users with the artist role.
type ArtistProfile struct {
	Bio            string         `json:"bio,omitempty"`
	CategoryID     *uuid.UUID     `json:"category_id,omitempty"`
	Skills         []string       `json:"skills,omitempty"`
	PortfolioLinks []string       `json:"portfolio_links,omitempty"`
	BaseRateCents  int64          `json:"base_rate_cents"`
	AvatarURL      string         `json:"avatar_url,omitempty"`
	ApprovalStatus ApprovalStatus `json:"approval_status"`
	RatingAverage  float64        `json:"rating_average"`
	RatingCount    int            `json:"rating_count"`
}

// NewCustomer creates a customer account with a validated email.
func NewCustomer(email, passwordHash, name, phone string) (*User, error) {
	return newUser(email, passwordHash, name, phone, auth.RoleCustomer, nil)
}

// NewArtist creates an artist account awaiting admin approval.
func NewArtist(email, passwordHash, name, phone string, profile ArtistProfile) (*User, error) {
	profile.ApprovalStatus = ApprovalPending
	return newUser(email, passwordHash, name, phone, auth.RoleArtist, &profile)
}

func newUser(email, passwordHash, name, phone string, role auth.Role, profile *ArtistProfile) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("a valid email is required")
	}
	if passwordHash == "" {
		return nil, domain.NewValidationError("password is required")
	}
	if name == "" {
		return nil, domain.NewValidationError("name is required")
	}

	now := time.Now().UTC()
	return &User{
		id:           uuid.New(),
		email:        email,
		passwordHash: passwordHash,
		name:         name,
		phone:        phone,
		role:         role,
		profile:      profile,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	email, passwordHash, name, phone string,
	role auth.Role,
	profile *ArtistProfile,
	version int64,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		name:         name,
		phone:        phone,
		role:         role,
		profile:      profile,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// --- Getters ---

func (u *User) ID() uuid.UUID           { return u.id }
func (u *User) Email() string           { return u.email }
func (u *User) PasswordHash() string    { return u.passwordHash }
func (u *User) Name() string            { return u.name }
func (u *User) Phone() string           { return u.phone }
func (u *User) Role() auth.Role         { return u.role }
func (u *User) Profile() *ArtistProfile { return u.profile }
func (u *User) Version() int64          { return u.version }
func (u *User) CreatedAt() time.Time    { return u.createdAt }
func (u *User) UpdatedAt() time.Time    { return u.updatedAt }

// IsApprovedArtist returns true if the user is an artist cleared to take work.
func (u *User) IsApprovedArtist() bool {
	return u.role == auth.RoleArtist && u.profile != nil && u.profile.ApprovalStatus == ApprovalApproved
}

// UpdateProfile applies artist profile edits. Approval status is managed by
// moderation, never by the artist.
func (u *User) UpdateProfile(bio string, categoryID *uuid.UUID, skills, portfolioLinks []string, baseRateCents int64, avatarURL string) error {
	if u.role != auth.RoleArtist || u.profile == nil {
		return domain.NewInvalidOperationError("user has no artist profile")
	}
	if baseRateCents < 0 {
		return domain.NewValidationError("base rate cannot be negative")
	}
	u.profile.Bio = bio
	u.profile.CategoryID = categoryID
	u.profile.Skills = skills
	u.profile.PortfolioLinks = portfolioLinks
	u.profile.BaseRateCents = baseRateCents
	u.profile.AvatarURL = avatarURL
	u.version++
	u.updatedAt = time.Now().UTC()
	return nil
}

// SetApproval moves the artist's moderation state (admin only).
func (u *User) SetApproval(status ApprovalStatus) error {
	if u.role != auth.RoleArtist || u.profile == nil {
		return domain.NewInvalidOperationError("user has no artist profile")
	}
	switch status {
	case ApprovalApproved, ApprovalRejected, ApprovalPending:
	default:
		return domain.NewValidationError(fmt.Sprintf("unknown approval status: %s", status))
	}
	u.profile.ApprovalStatus = status
	u.version++
	u.updatedAt = time.Now().UTC()
	return nil
}

// ApplyRating folds a new review rating into the cached aggregate rating.
func (u *User) ApplyRating(rating int) error {
	if u.profile == nil {
		return domain.NewInvalidOperationError("user has no artist profile")
	}
	total := u.profile.RatingAverage*float64(u.profile.RatingCount) + float64(rating)
	u.profile.RatingCount++
	u.profile.RatingAverage = total / float64(u.profile.RatingCount)
	u.version++
	u.updatedAt = time.Now().UTC()
	return nil
}

// ReplaceRating swaps one rating for another in the cached aggregate,
// used when a customer revises their review.
func (u *User) ReplaceRating(oldRating, newRating int) error {
	if u.profile == nil {
		return domain.NewInvalidOperationError("user has no artist profile")
	}
	if u.profile.RatingCount == 0 {
		return domain.NewInvalidOperationError("artist has no ratings to replace")
	}
	total := u.profile.RatingAverage*float64(u.profile.RatingCount) - float64(oldRating) + float64(newRating)
	u.profile.RatingAverage = total / float64(u.profile.RatingCount)
	u.version++
	u.updatedAt = time.Now().UTC()
	return nil
}

// RemoveRating backs one rating out of the cached aggregate, used when a
// customer deletes their review.
func (u *User) RemoveRating(rating int) error {
	if u.profile == nil {
		return domain.NewInvalidOperationError("user has no artist profile")
	}
	if u.profile.RatingCount == 0 {
		return domain.NewInvalidOperationError("artist has no ratings to remove")
	}
	u.profile.RatingCount--
	if u.profile.RatingCount == 0 {
		u.profile.RatingAverage = 0
	} else {
		total := u.profile.RatingAverage*float64(u.profile.RatingCount+1) - float64(rating)
		u.profile.RatingAverage = total / float64(u.profile.RatingCount)
	}
	u.version++
	u.updatedAt = time.Now().UTC()
	return nil
}

// Repository defines the persistence contract for users.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ListArtists(ctx context.Context, categoryID *uuid.UUID, onlyApproved bool, page, limit int) ([]*User, int64, error)
	ListPendingArtists(ctx context.Context, page, limit int) ([]*User, int64, error)
	Save(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
}
