package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"finance-tracker/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var transactionColumns = []string{
	"id", "account_id", "user_id", "category_id", "type", "amount", "currency", "description",
	"status", "related_transaction_id", "transaction_date", "created_at", "updated_at",
}

type TransactionRepository struct {
	db     DB
	logger *zap.Logger
}

func NewTransactionRepository(db DB, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var tx models.Transaction
	err := row.Scan(
		&tx.ID, &tx.AccountID, &tx.UserID, &tx.CategoryID, &tx.Type, &tx.Amount, &tx.Currency, &tx.Description,
		&tx.Status, &tx.RelatedTransactionID, &tx.TransactionDate, &tx.CreatedAt, &tx.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return &tx, nil
}

// CreateWithBalance records tx and applies its balance delta to the owning
// account inside one database transaction. The account row is locked first,
// so concurrent writers on the same account are serialised by Postgres and the
// balance is changed with server-side arithmetic. It returns the new balance.
// A missing (or soft deleted) account yields ErrNotFound and nothing is written.
func (r *TransactionRepository) CreateWithBalance(ctx context.Context, tx *models.Transaction) (decimal.Decimal, error) {
	var newBalance decimal.Decimal

	err := withTx(ctx, r.db, func(dbTx pgx.Tx) error {
		var (
			currency string
			ownerID  *int64
		)
		lockSQL, lockArgs, err := squirrel.Select("balance", "currency", "user_id").
			From("accounts").
			Where(squirrel.Eq{"id": tx.AccountID}).
			Where("deleted_at IS NULL").
			Suffix("FOR UPDATE").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}
		var current decimal.Decimal
		if err := dbTx.QueryRow(ctx, lockSQL, lockArgs...).Scan(&current, &currency, &ownerID); err != nil {
			return notFound(err)
		}

		if tx.CategoryID != nil {
			if err := checkCategoryVisible(ctx, dbTx, *tx.CategoryID, ownerID); err != nil {
				return err
			}
		}

		if tx.Currency == "" {
			tx.Currency = currency
		}
		if tx.UserID == nil {
			tx.UserID = ownerID
		}
		if tx.Status == "" {
			tx.Status = models.StatusCompleted
		}

		insertSQL, insertArgs, err := squirrel.Insert("transactions").
			Columns("account_id", "user_id", "category_id", "type", "amount", "currency", "description",
				"status", "related_transaction_id").
			Values(tx.AccountID, tx.UserID, tx.CategoryID, tx.Type, tx.Amount, tx.Currency, tx.Description,
				tx.Status, tx.RelatedTransactionID).
			Suffix("RETURNING id, transaction_date, created_at, updated_at").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}
		if err := dbTx.QueryRow(ctx, insertSQL, insertArgs...).Scan(&tx.ID, &tx.TransactionDate, &tx.CreatedAt, &tx.UpdatedAt); err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}

		newBalance, err = applyBalanceDelta(ctx, dbTx, tx.AccountID, tx.Type.BalanceDelta(tx.Amount))
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}

	r.logger.Debug("Transaction recorded",
		zap.Int64("transaction_id", tx.ID),
		zap.Int64("account_id", tx.AccountID),
		zap.String("type", string(tx.Type)),
		zap.String("new_balance", newBalance.String()),
	)
	return newBalance, nil
}

// SoftDelete marks a transaction deleted and reverses its balance delta in the
// same database transaction.
func (r *TransactionRepository) SoftDelete(ctx context.Context, id int64) (*models.Transaction, decimal.Decimal, error) {
	var (
		deleted    *models.Transaction
		newBalance decimal.Decimal
	)

	err := withTx(ctx, r.db, func(dbTx pgx.Tx) error {
		sql, args, err := squirrel.Update("transactions").
			Set("deleted_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": id}).
			Where("deleted_at IS NULL").
			Suffix("RETURNING " + strings.Join(transactionColumns, ", ")).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}
		deleted, err = scanTransaction(dbTx.QueryRow(ctx, sql, args...))
		if err != nil {
			return err
		}

		newBalance, err = applyBalanceDelta(ctx, dbTx, deleted.AccountID, deleted.Type.BalanceDelta(deleted.Amount).Neg())
		return err
	})
	if err != nil {
		return nil, decimal.Zero, err
	}
	return deleted, newBalance, nil
}

// checkCategoryVisible accepts shared categories and active categories of the
// account owner. Anything else yields ErrInvalidCategory.
func checkCategoryVisible(ctx context.Context, q Querier, categoryID int64, ownerID *int64) error {
	owner := squirrel.Sqlizer(squirrel.Eq{"user_id": nil})
	if ownerID != nil {
		owner = squirrel.Or{squirrel.Eq{"user_id": *ownerID}, squirrel.Eq{"user_id": nil}}
	}
	sql, args, err := squirrel.Select("1").
		From("categories").
		Where(squirrel.Eq{"id": categoryID}).
		Where(owner).
		Where("is_active").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	var one int
	if err := q.QueryRow(ctx, sql, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrInvalidCategory
		}
		return fmt.Errorf("check category: %w", err)
	}
	return nil
}

func applyBalanceDelta(ctx context.Context, q Querier, accountID int64, delta decimal.Decimal) (decimal.Decimal, error) {
	sql, args, err := squirrel.Update("accounts").
		Set("balance", squirrel.Expr("balance + ?", delta)).
		Set("last_transaction", squirrel.Expr("NOW()")).
		Set("last_balance_update", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": accountID}).
		Suffix("RETURNING balance").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return decimal.Zero, err
	}

	var balance decimal.Decimal
	if err := q.QueryRow(ctx, sql, args...).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("update balance: %w", notFound(err))
	}
	return balance, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"id": id}).
		Where("deleted_at IS NULL").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return scanTransaction(r.db.QueryRow(ctx, sql, args...))
}

// ListByAccountID returns live transactions, newest first.
func (r *TransactionRepository) ListByAccountID(ctx context.Context, accountID int64, limit, offset int) ([]*models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"account_id": accountID}).
		Where("deleted_at IS NULL").
		OrderBy("transaction_date DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
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

	var transactions []*models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}
