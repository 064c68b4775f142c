package repository

import (
	"context"

	"finance-tracker/internal/models"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

// spentExpr sums live expense transactions of the budget owner inside the
// budget period, restricted to the budget category when it has one.
const spentExpr = `COALESCE((
	SELECT SUM(t.amount) FROM transactions t
	WHERE t.user_id = b.user_id
	  AND t.type = 'expense'
	  AND t.deleted_at IS NULL
	  AND t.transaction_date >= b.start_date
	  AND t.transaction_date < b.end_date
	  AND (b.category_id IS NULL OR t.category_id = b.category_id)
), 0) AS spent`

type BudgetRepository struct {
	db     DB
	logger *zap.Logger
}

func NewBudgetRepository(db DB, logger *zap.Logger) *BudgetRepository {
	return &BudgetRepository{
		db:     db,
		logger: logger,
	}
}

func (r *BudgetRepository) Create(ctx context.Context, b *models.Budget) error {
	query := squirrel.Insert("budgets").
		Columns("user_id", "category_id", "budgeted_amount", "start_date", "end_date").
		Values(b.UserID, b.CategoryID, b.BudgetedAmount, b.StartDate, b.EndDate).
		Suffix("RETURNING id, is_active, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	return r.db.QueryRow(ctx, sql, args...).Scan(&b.ID, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
}

// ListByUserID returns active budgets with their spent amount filled in.
func (r *BudgetRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.Budget, error) {
	query := squirrel.Select(
		"b.id", "b.user_id", "b.category_id", "b.budgeted_amount", "b.start_date", "b.end_date",
		"b.is_active", "b.created_at", "b.updated_at", spentExpr,
	).
		From("budgets b").
		Where(squirrel.Eq{"b.user_id": userID, "b.is_active": true}).
		OrderBy("b.start_date DESC").
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

	var budgets []*models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.CategoryID, &b.BudgetedAmount, &b.StartDate, &b.EndDate,
			&b.IsActive, &b.CreatedAt, &b.UpdatedAt, &b.Spent,
		); err != nil {
			return nil, err
		}
		budgets = append(budgets, &b)
	}

	return budgets, rows.Err()
}
