package repository

import (
	"context"

	"finance-tracker/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var categoryColumns = []string{"id", "user_id", "parent_id", "name", "description", "is_active", "created_at", "updated_at"}

type CategoryRepository struct {
	db     DB
	logger *zap.Logger
}

func NewCategoryRepository(db DB, logger *zap.Logger) *CategoryRepository {
	return &CategoryRepository{
		db:     db,
		logger: logger,
	}
}

func scanCategory(row pgx.Row) (*models.Category, error) {
	var c models.Category
	if err := row.Scan(&c.ID, &c.UserID, &c.ParentID, &c.Name, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) error {
	query := squirrel.Insert("categories").
		Columns("user_id", "parent_id", "name", "description").
		Values(c.UserID, c.ParentID, c.Name, c.Description).
		Suffix("RETURNING id, is_active, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	return r.db.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	query := squirrel.Select(categoryColumns...).
		From("categories").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return scanCategory(r.db.QueryRow(ctx, sql, args...))
}

// ListByUserID returns the user's categories plus the shared ones (no owner).
func (r *CategoryRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.Category, error) {
	query := squirrel.Select(categoryColumns...).
		From("categories").
		Where(squirrel.Or{squirrel.Eq{"user_id": userID}, squirrel.Eq{"user_id": nil}}).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}
