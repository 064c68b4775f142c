package repository

import (
	"context"
	"time"

	"finance-tracker/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var recurringColumns = []string{
	"id", "user_id", "account_id", "category_id", "type", "amount", "description", "frequency",
	"anchor_day", "next_occurrence", "end_date", "is_active", "created_at",
}

type RecurringRepository struct {
	db     DB
	logger *zap.Logger
}

func NewRecurringRepository(db DB, logger *zap.Logger) *RecurringRepository {
	return &RecurringRepository{
		db:     db,
		logger: logger,
	}
}

func (r *RecurringRepository) Create(ctx context.Context, rt *models.RecurringTransaction) error {
	query := squirrel.Insert("recurring_transactions").
		Columns("user_id", "account_id", "category_id", "type", "amount", "description", "frequency",
			"anchor_day", "next_occurrence", "end_date").
		Values(rt.UserID, rt.AccountID, rt.CategoryID, rt.Type, rt.Amount, rt.Description, rt.Frequency,
			rt.AnchorDay, rt.NextOccurrence, rt.EndDate).
		Suffix("RETURNING id, is_active, created_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	return r.db.QueryRow(ctx, sql, args...).Scan(&rt.ID, &rt.IsActive, &rt.CreatedAt)
}

func (r *RecurringRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.RecurringTransaction, error) {
	return r.list(ctx, squirrel.Eq{"user_id": userID})
}

// ListDue returns active templates of the user whose next occurrence is on or before day.
func (r *RecurringRepository) ListDue(ctx context.Context, userID int64, day time.Time) ([]*models.RecurringTransaction, error) {
	return r.list(ctx, squirrel.And{
		squirrel.Eq{"user_id": userID, "is_active": true},
		squirrel.LtOrEq{"next_occurrence": day},
	})
}

// Advance moves a template to its next occurrence.
func (r *RecurringRepository) Advance(ctx context.Context, id int64, next time.Time) error {
	return r.update(ctx, id, "next_occurrence", next)
}

// Deactivate stops a template from being picked up by ListDue.
func (r *RecurringRepository) Deactivate(ctx context.Context, id int64) error {
	return r.update(ctx, id, "is_active", false)
}

func (r *RecurringRepository) update(ctx context.Context, id int64, column string, value any) error {
	query := squirrel.Update("recurring_transactions").
		Set(column, value).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RecurringRepository) list(ctx context.Context, where squirrel.Sqlizer) ([]*models.RecurringTransaction, error) {
	query := squirrel.Select(recurringColumns...).
		From("recurring_transactions").
		Where(where).
		OrderBy("next_occurrence", "id").
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

	var out []*models.RecurringTransaction
	for rows.Next() {
		rt, err := scanRecurring(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rt)
	}

	return out, rows.Err()
}

func scanRecurring(row pgx.Row) (*models.RecurringTransaction, error) {
	var rt models.RecurringTransaction
	if err := row.Scan(
		&rt.ID, &rt.UserID, &rt.AccountID, &rt.CategoryID, &rt.Type, &rt.Amount, &rt.Description, &rt.Frequency,
		&rt.AnchorDay, &rt.NextOccurrence, &rt.EndDate, &rt.IsActive, &rt.CreatedAt,
	); err != nil {
		return nil, notFound(err)
	}
	return &rt, nil
}
