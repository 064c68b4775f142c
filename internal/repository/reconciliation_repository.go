package repository

import (
	"context"

	"finance-tracker/internal/models"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

type ReconciliationRepository struct {
	db     DB
	logger *zap.Logger
}

func NewReconciliationRepository(db DB, logger *zap.Logger) *ReconciliationRepository {
	return &ReconciliationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ReconciliationRepository) Create(ctx context.Context, rec *models.AccountReconciliation) error {
	query := squirrel.Insert("account_reconciliations").
		Columns("account_id", "reconciliation_date", "bank_balance", "book_balance", "difference", "status").
		Values(rec.AccountID, rec.ReconciliationDate, rec.BankBalance, rec.BookBalance, rec.Difference, rec.Status).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	return r.db.QueryRow(ctx, sql, args...).Scan(&rec.ID, &rec.CreatedAt)
}

func (r *ReconciliationRepository) ListByAccountID(ctx context.Context, accountID int64) ([]*models.AccountReconciliation, error) {
	query := squirrel.Select("id", "account_id", "reconciliation_date", "bank_balance", "book_balance", "difference", "status", "created_at").
		From("account_reconciliations").
		Where(squirrel.Eq{"account_id": accountID}).
		OrderBy("reconciliation_date DESC").
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

	var recs []*models.AccountReconciliation
	for rows.Next() {
		var rec models.AccountReconciliation
		if err := rows.Scan(
			&rec.ID, &rec.AccountID, &rec.ReconciliationDate, &rec.BankBalance, &rec.BookBalance,
			&rec.Difference, &rec.Status, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		recs = append(recs, &rec)
	}

	return recs, rows.Err()
}
