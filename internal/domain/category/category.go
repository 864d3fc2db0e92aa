package category

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Thushyanthini0507/artzyra-server/internal/platform/domain"
)

// Category is a creative service category artists register under.
type Category struct {
	id          uuid.UUID
	name        string
	slug        string
	description string
	iconURL     string
	active      bool
	createdAt   time.Time
	updatedAt   time.Time
}

// NewCategory creates an active category with a slug derived from the name.
func NewCategory(name, description, iconURL string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("category name is required")
	}
	now := time.Now().UTC()
	return &Category{
		id:          uuid.New(),
		name:        name,
		slug:        Slugify(name),
		description: description,
		iconURL:     iconURL,
		active:      true,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Slugify lowercases a name and folds non-alphanumeric runs to hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Reconstruct rebuilds a Category from persistence data.
func Reconstruct(id uuid.UUID, name, slug, description, iconURL string, active bool, createdAt, updatedAt time.Time) *Category {
	return &Category{
		id:          id,
		name:        name,
		slug:        slug,
		description: description,
		iconURL:     iconURL,
		active:      active,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (c *Category) ID() uuid.UUID        { return c.id }
func (c *Category) Name() string         { return c.name }
func (c *Category) Slug() string         { return c.slug }
func (c *Category) Description() string  { return c.description }
func (c *Category) IconURL() string      { return c.iconURL }
func (c *Category) Active() bool         { return c.active }
func (c *Category) CreatedAt() time.Time { return c.createdAt }
func (c *Category) UpdatedAt() time.Time { return c.updatedAt }

// Update applies edits to the category fields.
func (c *Category) Update(name, description, iconURL string, active bool) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.NewValidationError("category name is required")
	}
	c.name = name
	c.slug = Slugify(name)
	c.description = description
	c.iconURL = iconURL
	c.active = active
	c.updatedAt = time.Now().UTC()
	return nil
}

// Repository defines the persistence contract for categories.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	ListAll(ctx context.Context, includeInactive bool) ([]*Category, error)
	Save(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}
