package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Thushyanthini0507/artzyra-server/internal/domain/user"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/auth"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/domain"
)

// RegisterRequest holds the data for customer or artist registration.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`

	// Artist-only fields, ignored for customer registration.
	Bio            string     `json:"bio"`
	CategoryID     *uuid.UUID `json:"category_id"`
	Skills         []string   `json:"skills"`
	PortfolioLinks []string   `json:"portfolio_links"`
	BaseRateCents  int64      `json:"base_rate_cents"`
}

// LoginRequest holds login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResultDTO is the response for register and login.
type AuthResultDTO struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserDTO   `json:"user"`
}

// UserDTO is the response representation of a user account.
type UserDTO struct {
	ID        uuid.UUID           `json:"id"`
	Email     string              `json:"email"`
	Name      string              `json:"name"`
	Phone     string              `json:"phone,omitempty"`
	Role      string              `json:"role"`
	Profile   *user.ArtistProfile `json:"profile,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

// AuthService handles registration, login and logout.
type AuthService struct {
	users     user.Repository
	jwt       *auth.JWTManager
	blocklist *auth.TokenBlocklist
	logger    *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users user.Repository, jwt *auth.JWTManager, blocklist *auth.TokenBlocklist, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:     users,
		jwt:       jwt,
		blocklist: blocklist,
		logger:    logger,
	}
}

// RegisterCustomer creates a customer account and signs the user in.
func (s *AuthService) RegisterCustomer(ctx context.Context, req RegisterRequest) (*AuthResultDTO, error) {
	return s.register(ctx, req, auth.RoleCustomer)
}

// RegisterArtist creates an artist account awaiting admin approval and signs
// the user in. The artist cannot take bookings until approved.
func (s *AuthService) RegisterArtist(ctx context.Context, req RegisterRequest) (*AuthResultDTO, error) {
	return s.register(ctx, req, auth.RoleArtist)
}

func (s *AuthService) register(ctx context.Context, req RegisterRequest, role auth.Role) (*AuthResultDTO, error) {
	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		var derr *domain.DomainError
		if !errors.As(err, &derr) || derr.Code != domain.CodeNotFound {
			return nil, err
		}
	}
	if existing != nil {
		return nil, domain.NewConflictError("an account with this email already exists")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	var u *user.User
	if role == auth.RoleArtist {
		u, err = user.NewArtist(req.Email, hash, req.Name, req.Phone, user.ArtistProfile{
			Bio:            req.Bio,
			CategoryID:     req.CategoryID,
			Skills:         req.Skills,
			PortfolioLinks: req.PortfolioLinks,
			BaseRateCents:  req.BaseRateCents,
		})
	} else {
		u, err = user.NewCustomer(req.Email, hash, req.Name, req.Phone)
	}
	if err != nil {
		return nil, err
	}

	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", u.ID().String()),
		zap.String("role", string(role)),
	)
	return s.issueToken(u)
}

// Login verifies credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResultDTO, error) {
	u, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		var derr *domain.DomainError
		if errors.As(err, &derr) && derr.Code == domain.CodeNotFound {
			return nil, domain.NewUnauthorizedError("invalid email or password")
		}
		return nil, err
	}

	if !auth.CheckPassword(u.PasswordHash(), req.Password) {
		return nil, domain.NewUnauthorizedError("invalid email or password")
	}

	return s.issueToken(u)
}

// Logout revokes the presented token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	return s.blocklist.Revoke(ctx, jti, expiresAt)
}

// GetProfile returns the account for the authenticated user.
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := toUserDTO(u)
	return &dto, nil
}

func (s *AuthService) issueToken(u *user.User) (*AuthResultDTO, error) {
	token, err := s.jwt.Generate(u.ID(), u.Role())
	if err != nil {
		return nil, err
	}
	return &AuthResultDTO{
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(s.jwt.AccessTTL()),
		User:      toUserDTO(u),
	}, nil
}

func toUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:        u.ID(),
		Email:     u.Email(),
		Name:      u.Name(),
		Phone:     u.Phone(),
		Role:      string(u.Role()),
		Profile:   u.Profile(),
		CreatedAt: u.CreatedAt(),
	}
}
