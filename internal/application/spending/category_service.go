package spending

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/preschool/backend/internal/domain/spending"
	"go.uber.org/zap"
)

// CategoryService provides application-level expense category operations
type CategoryService struct {
	categoryRepo spending.CategoryRepository
	logger       *zap.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo spending.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// CategoryResponse represents an expense category in API responses
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	SchoolID    uuid.UUID `json:"school_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsCustom    bool      `json:"is_custom"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCategoryRequest represents a request to create an expense category
type CreateCategoryRequest struct {
	SchoolID    uuid.UUID `json:"school_id" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
}

// UpdateCategoryRequest represents a partial category update. Nil fields
// are left untouched.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CreateCategory creates a custom expense category for a school
func (s *CategoryService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := spending.NewCategory(req.SchoolID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("Expense category created",
		zap.String("category_id", category.ID.String()),
		zap.String("name", category.Name))

	return toCategoryResponse(category), nil
}

// GetCategory gets a category by ID
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// ListCategories lists a school's categories ordered by name
func (s *CategoryService) ListCategories(ctx context.Context, schoolID uuid.UUID) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindBySchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		responses[i] = *toCategoryResponse(&c)
	}
	return responses, nil
}

// UpdateCategory applies a partial update to a category
func (s *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := category.Patch(req.Name, req.Description); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// DeleteCategory deletes a category. Expenses referencing it keep their
// rows; the reference is cleared by the database.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Expense category deleted", zap.String("category_id", id.String()))
	return nil
}

func toCategoryResponse(c *spending.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          c.ID,
		SchoolID:    c.SchoolID,
		Name:        c.Name,
		Description: c.Description,
		IsCustom:    c.IsCustom,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
