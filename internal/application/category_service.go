package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Thushyanthini0507/artzyra-server/internal/domain/category"
)

// CategoryRequest holds the data to create or update a category.
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IconURL     string `json:"icon_url"`
	Active      *bool  `json:"active"`
}

// CategoryDTO is the response representation of a category.
type CategoryDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	IconURL     string    `json:"icon_url,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryService manages the service category catalogue.
type CategoryService struct {
	repo category.Repository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo category.Repository) *CategoryService {
	return &CategoryService{repo: repo}
}

// ListCategories returns the catalogue. The public listing hides inactive
// categories; admins see everything.
func (s *CategoryService) ListCategories(ctx context.Context, includeInactive bool) ([]CategoryDTO, error) {
	cats, err := s.repo.ListAll(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	dtos := make([]CategoryDTO, len(cats))
	for i, c := range cats {
		dtos[i] = toCategoryDTO(c)
	}
	return dtos, nil
}

// GetCategory returns one category by ID.
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*CategoryDTO, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toCategoryDTO(c)
	return &dto, nil
}

// CreateCategory adds a category to the catalogue (admin).
func (s *CategoryService) CreateCategory(ctx context.Context, req CategoryRequest) (*CategoryDTO, error) {
	c, err := category.NewCategory(req.Name, req.Description, req.IconURL)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	dto := toCategoryDTO(c)
	return &dto, nil
}

// UpdateCategory edits a category (admin).
func (s *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req CategoryRequest) (*CategoryDTO, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	active := c.Active()
	if req.Active != nil {
		active = *req.Active
	}
	if err := c.Update(req.Name, req.Description, req.IconURL, active); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	dto := toCategoryDTO(c)
	return &dto, nil
}

// DeleteCategory removes a category (admin).
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func toCategoryDTO(c *category.Category) CategoryDTO {
	return CategoryDTO{
		ID:          c.ID(),
		Name:        c.Name(),
		Slug:        c.Slug(),
		Description: c.Description(),
		IconURL:     c.IconURL(),
		Active:      c.Active(),
		CreatedAt:   c.CreatedAt(),
	}
}
