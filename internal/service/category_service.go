package service

import (
	"context"
	"errors"

	"finance-tracker/internal/models"
	"finance-tracker/internal/repository"

	"go.uber.org/zap"
)

type CategoryStore interface {
	Create(ctx context.Context, c *models.Category) error
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	ListByUserID(ctx context.Context, userID int64) ([]*models.Category, error)
}

type CreateCategoryInput struct {
	Name        string
	Description string
	ParentID    *int64
}

type CategoryService struct {
	categories CategoryStore
	logger     *zap.Logger
}

func NewCategoryService(categories CategoryStore, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categories: categories,
		logger:     logger,
	}
}

// CreateCategory adds a category for userID. A parent must be either shared
// or owned by the same user.
func (s *CategoryService) CreateCategory(ctx context.Context, userID int64, in CreateCategoryInput) (*models.Category, error) {
	name := cleanText(in.Name)
	if name == "" {
		return nil, invalid("name", "is required")
	}

	if in.ParentID != nil {
		if err := s.checkVisible(ctx, userID, *in.ParentID, "parent_id"); err != nil {
			return nil, err
		}
	}

	category := &models.Category{
		UserID:      &userID,
		ParentID:    in.ParentID,
		Name:        name,
		Description: cleanText(in.Description),
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, storageError(s.logger, "create_category", "user", userID, err)
	}

	s.logger.Info("Category created", zap.Int64("category_id", category.ID), zap.Int64("user_id", userID))
	return category, nil
}

func (s *CategoryService) ListCategories(ctx context.Context, userID int64) ([]*models.Category, error) {
	categories, err := s.categories.ListByUserID(ctx, userID)
	if err != nil {
		return nil, storageError(s.logger, "list_categories", "user", userID, err)
	}
	return categories, nil
}

// checkVisible reports a ValidationError on field when the category is
// missing or belongs to someone else.
func (s *CategoryService) checkVisible(ctx context.Context, userID, categoryID int64, field string) error {
	c, err := s.categories.GetByID(ctx, categoryID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return invalid(field, "unknown category")
	case err != nil:
		return storageError(s.logger, "get_category", "category", categoryID, err)
	case c.UserID != nil && *c.UserID != userID:
		return invalid(field, "unknown category")
	}
	return nil
}
