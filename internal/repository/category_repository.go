package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	categoryDomain "github.com/Thushyanthini0507/artzyra-server/internal/domain/category"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/domain"
)

// CategoryModel is the GORM model for the categories table.
type CategoryModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null;size:100"`
	Slug        string    `gorm:"uniqueIndex;not null;size:120"`
	Description string    `gorm:"size:1000"`
	IconURL     string    `gorm:"size:500"`
	Active      bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (CategoryModel) TableName() string {
	return "categories"
}

// GormCategoryRepository is the GORM-based implementation of
// category.Repository.
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository.
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByID retrieves a category by ID.
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*categoryDomain.Category, error) {
	var model CategoryModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Category", id.String())
		}
		return nil, fmt.Errorf("failed to find category by ID: %w", err)
	}
	return toDomainCategory(&model), nil
}

// FindBySlug retrieves a category by slug.
func (r *GormCategoryRepository) FindBySlug(ctx context.Context, slug string) (*categoryDomain.Category, error) {
	var model CategoryModel
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Category", slug)
		}
		return nil, fmt.Errorf("failed to find category by slug: %w", err)
	}
	return toDomainCategory(&model), nil
}

// ListAll retrieves the catalogue ordered by name.
func (r *GormCategoryRepository) ListAll(ctx context.Context, includeInactive bool) ([]*categoryDomain.Category, error) {
	query := r.db.WithContext(ctx)
	if !includeInactive {
		query = query.Where("active = ?", true)
	}

	var models []CategoryModel
	if err := query.Order("name ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]*categoryDomain.Category, len(models))
	for i := range models {
		categories[i] = toDomainCategory(&models[i])
	}
	return categories, nil
}

// Save persists a new category.
func (r *GormCategoryRepository) Save(ctx context.Context, c *categoryDomain.Category) error {
	if err := r.db.WithContext(ctx).Create(toCategoryModel(c)).Error; err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}
	return nil
}

// Update persists changes to an existing category.
func (r *GormCategoryRepository) Update(ctx context.Context, c *categoryDomain.Category) error {
	model := toCategoryModel(c)
	result := r.db.WithContext(ctx).
		Model(&CategoryModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":        model.Name,
			"slug":        model.Slug,
			"description": model.Description,
			"icon_url":    model.IconURL,
			"active":      model.Active,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Category", c.ID().String())
	}
	return nil
}

// Delete removes a category permanently.
func (r *GormCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&CategoryModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Category", id.String())
	}
	return nil
}

// --- Conversion Helpers ---

func toCategoryModel(c *categoryDomain.Category) *CategoryModel {
	return &CategoryModel{
		ID:          c.ID(),
		Name:        c.Name(),
		Slug:        c.Slug(),
		Description: c.Description(),
		IconURL:     c.IconURL(),
		Active:      c.Active(),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
}

func toDomainCategory(m *CategoryModel) *categoryDomain.Category {
	return categoryDomain.Reconstruct(m.ID, m.Name, m.Slug, m.Description, m.IconURL, m.Active, m.CreatedAt, m.UpdatedAt)
}
