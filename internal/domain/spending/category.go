package spending

import (
	"time"

	"github.com/google/uuid"
	"github.com/preschool/backend/internal/domain/shared"
)

// Category is an expense classification owned by one school
type Category struct {
	shared.BaseEntity
	SchoolID    uuid.UUID `json:"school_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsCustom    bool      `json:"is_custom"`
}

// NewCategory creates a new school-defined expense category
func NewCategory(schoolID uuid.UUID, name, description string) (*Category, error) {
	if schoolID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SCHOOL", "School ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}

	return &Category{
		BaseEntity:  shared.NewBaseEntity(),
		SchoolID:    schoolID,
		Name:        name,
		Description: description,
		IsCustom:    true,
	}, nil
}

// Patch applies a partial update; nil fields are left untouched
func (c *Category) Patch(name, description *string) error {
	if name != nil {
		if *name == "" {
			return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
		}
		c.Name = *name
	}
	if description != nil {
		c.Description = *description
	}
	c.UpdatedAt = time.Now()
	return nil
}
