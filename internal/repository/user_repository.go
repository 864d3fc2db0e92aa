package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userDomain "github.com/Thushyanthini0507/artzyra-server/internal/domain/user"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/auth"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/domain"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Email        string          `gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string          `gorm:"not null;size:255"`
	Name         string          `gorm:"not null;size:200"`
	Phone        string          `gorm:"size:30"`
	Role         string          `gorm:"not null;size:20;index"`
	Profile      json.RawMessage `gorm:"type:jsonb"`
	Version      int64           `gorm:"not null;default:1"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (UserModel) TableName() string {
	return "users"
}

// GormUserRepository is the GORM-based implementation of user.Repository.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID retrieves a user by ID.
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("User", id.String())
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return toDomainUser(&model)
}

// FindByEmail retrieves a user by email, case-insensitively.
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("User", email)
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return toDomainUser(&model)
}

// ListArtists retrieves artists with pagination, optionally filtered by
// category and approval.
func (r *GormUserRepository) ListArtists(ctx context.Context, categoryID *uuid.UUID, onlyApproved bool, page, limit int) ([]*userDomain.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&UserModel{}).Where("role = ?", string(auth.RoleArtist))
	if onlyApproved {
		query = query.Where("profile->>'approval_status' = ?", string(userDomain.ApprovalApproved))
	}
	if categoryID != nil {
		query = query.Where("profile->>'category_id' = ?", categoryID.String())
	}
	return r.findPage(query, page, limit)
}

// ListPendingArtists retrieves artists awaiting approval with pagination.
func (r *GormUserRepository) ListPendingArtists(ctx context.Context, page, limit int) ([]*userDomain.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&UserModel{}).
		Where("role = ?", string(auth.RoleArtist)).
		Where("profile->>'approval_status' = ?", string(userDomain.ApprovalPending))
	return r.findPage(query, page, limit)
}

// Save persists a new user.
func (r *GormUserRepository) Save(ctx context.Context, u *userDomain.User) error {
	model, err := toUserModel(u)
	if err != nil {
		return fmt.Errorf("failed to convert user to model: %w", err)
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// Update persists changes to an existing user with optimistic locking.
func (r *GormUserRepository) Update(ctx context.Context, u *userDomain.User) error {
	model, err := toUserModel(u)
	if err != nil {
		return fmt.Errorf("failed to convert user to model: %w", err)
	}

	expectedVersion := u.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"name":       model.Name,
			"phone":      model.Phone,
			"profile":    model.Profile,
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("user was modified by another transaction")
	}
	return nil
}

func (r *GormUserRepository) findPage(query *gorm.DB, page, limit int) ([]*userDomain.User, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var models []UserModel
	offset := (page - 1) * limit
	if err := query.Session(&gorm.Session{}).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find users: %w", err)
	}

	users := make([]*userDomain.User, len(models))
	for i := range models {
		u, err := toDomainUser(&models[i])
		if err != nil {
			return nil, 0, err
		}
		users[i] = u
	}
	return users, total, nil
}

// --- Conversion Helpers ---

func toUserModel(u *userDomain.User) (*UserModel, error) {
	var profileJSON json.RawMessage
	if u.Profile() != nil {
		data, err := json.Marshal(u.Profile())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal artist profile: %w", err)
		}
		profileJSON = data
	}

	return &UserModel{
		ID:           u.ID(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		Name:         u.Name(),
		Phone:        u.Phone(),
		Role:         string(u.Role()),
		Profile:      profileJSON,
		Version:      u.Version(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}, nil
}

func toDomainUser(m *UserModel) (*userDomain.User, error) {
	var profile *userDomain.ArtistProfile
	if len(m.Profile) > 0 {
		profile = &userDomain.ArtistProfile{}
		if err := json.Unmarshal(m.Profile, profile); err != nil {
			return nil, fmt.Errorf("failed to unmarshal artist profile: %w", err)
		}
	}

	return userDomain.Reconstruct(
		m.ID,
		m.Email,
		m.PasswordHash,
		m.Name,
		m.Phone,
		auth.Role(m.Role),
		profile,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}
