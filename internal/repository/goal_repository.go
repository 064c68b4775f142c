package repository

import (
	"context"
	"strings"

	"finance-tracker/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var goalColumns = []string{
	"id", "account_id", "name", "target_amount", "current_amount", "category", "created_at", "updated_at",
}

type GoalRepository struct {
	db     DB
	logger *zap.Logger
}

func NewGoalRepository(db DB, logger *zap.Logger) *GoalRepository {
	return &GoalRepository{
		db:     db,
		logger: logger,
	}
}

func scanGoal(row pgx.Row) (*models.SavingsGoal, error) {
	var g models.SavingsGoal
	if err := row.Scan(
		&g.ID, &g.AccountID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.Category, &g.CreatedAt, &g.UpdatedAt,
	); err != nil {
		return nil, notFound(err)
	}
	return &g, nil
}

func (r *GoalRepository) Create(ctx context.Context, g *models.SavingsGoal) error {
	query := squirrel.Insert("savings_goals").
		Columns("account_id", "name", "target_amount", "current_amount", "category").
		Values(g.AccountID, g.Name, g.TargetAmount, g.CurrentAmount, g.Category).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	return r.db.QueryRow(ctx, sql, args...).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
}

func (r *GoalRepository) GetByID(ctx context.Context, id int64) (*models.SavingsGoal, error) {
	query := squirrel.Select(goalColumns...).
		From("savings_goals").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return scanGoal(r.db.QueryRow(ctx, sql, args...))
}

// UpdateCurrentAmount overwrites the progress of a goal.
func (r *GoalRepository) UpdateCurrentAmount(ctx context.Context, id int64, amount decimal.Decimal) (*models.SavingsGoal, error) {
	query := squirrel.Update("savings_goals").
		Set("current_amount", amount).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(goalColumns, ", ")).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return scanGoal(r.db.QueryRow(ctx, sql, args...))
}

func (r *GoalRepository) ListByAccountID(ctx context.Context, accountID int64) ([]*models.SavingsGoal, error) {
	query := squirrel.Select(goalColumns...).
		From("savings_goals").
		Where(squirrel.Eq{"account_id": accountID}).
		OrderBy("created_at DESC").
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

	var goals []*models.SavingsGoal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}

	return goals, rows.Err()
}
