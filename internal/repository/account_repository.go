package repository

import (
	"context"
	"fmt"
	"strings"

	"finance-tracker/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var accountColumns = []string{
	"id", "user_id", "name", "balance", "opening_balance", "monthly_income", "monthly_expense",
	"currency", "account_type", "start_month", "is_default", "last_transaction", "last_balance_update",
	"created_at", "updated_at",
}

// editableAccountColumns maps the allowed field names onto their columns. The
// column used in an UPDATE always comes from this table.
var editableAccountColumns = map[models.AccountField]string{
	models.FieldBalance:        "balance",
	models.FieldMonthlyIncome:  "monthly_income",
	models.FieldMonthlyExpense: "monthly_expense",
	models.FieldStartMonth:     "start_month",
}

type AccountRepository struct {
	db     DB
	logger *zap.Logger
}

func NewAccountRepository(db DB, logger *zap.Logger) *AccountRepository {
	return &AccountRepository{
		db:     db,
		logger: logger,
	}
}

func scanAccount(row pgx.Row) (*models.Account, error) {
	var a models.Account
	err := row.Scan(
		&a.ID, &a.UserID, &a.Name, &a.Balance, &a.OpeningBalance, &a.MonthlyIncome, &a.MonthlyExpense,
		&a.Currency, &a.AccountType, &a.StartMonth, &a.IsDefault, &a.LastTransaction, &a.LastBalanceUpdate,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (r *AccountRepository) Create(ctx context.Context, a *models.Account) error {
	query := squirrel.Insert("accounts").
		Columns("user_id", "name", "balance", "opening_balance", "monthly_income", "monthly_expense",
			"currency", "account_type", "start_month", "is_default").
		Values(a.UserID, a.Name, a.OpeningBalance, a.OpeningBalance, a.MonthlyIncome, a.MonthlyExpense,
			a.Currency, a.AccountType, a.StartMonth, a.IsDefault).
		Suffix("RETURNING id, balance, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	return r.db.QueryRow(ctx, sql, args...).Scan(&a.ID, &a.Balance, &a.CreatedAt, &a.UpdatedAt)
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	query := squirrel.Select(accountColumns...).
		From("accounts").
		Where(squirrel.Eq{"id": id}).
		Where("deleted_at IS NULL").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return scanAccount(r.db.QueryRow(ctx, sql, args...))
}

func (r *AccountRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.Account, error) {
	query := squirrel.Select(accountColumns...).
		From("accounts").
		Where(squirrel.Eq{"user_id": userID}).
		Where("deleted_at IS NULL").
		OrderBy("is_default DESC", "id").
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

	var accounts []*models.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}

	return accounts, rows.Err()
}

// UpdateField sets one allow-listed column. Setting the balance moves the
// opening balance by the same amount so that ledger history stays consistent.
func (r *AccountRepository) UpdateField(ctx context.Context, id int64, field models.AccountField, value any) (*models.Account, error) {
	column, ok := editableAccountColumns[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	query := squirrel.Update("accounts").
		Where(squirrel.Eq{"id": id}).
		Where("deleted_at IS NULL").
		Suffix("RETURNING " + strings.Join(accountColumns, ", ")).
		PlaceholderFormat(squirrel.Dollar)

	if field == models.FieldBalance {
		query = query.
			Set("opening_balance", squirrel.Expr("opening_balance + (? - balance)", value)).
			Set("last_balance_update", squirrel.Expr("NOW()"))
	}
	query = query.Set(column, value)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return scanAccount(r.db.QueryRow(ctx, sql, args...))
}

// Setup writes the balance and start month of an account in one statement.
func (r *AccountRepository) Setup(ctx context.Context, id int64, balance decimal.Decimal, startMonth *string) (*models.Account, error) {
	query := squirrel.Update("accounts").
		Set("opening_balance", squirrel.Expr("opening_balance + (? - balance)", balance)).
		Set("balance", balance).
		Set("start_month", startMonth).
		Set("last_balance_update", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where("deleted_at IS NULL").
		Suffix("RETURNING " + strings.Join(accountColumns, ", ")).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return scanAccount(r.db.QueryRow(ctx, sql, args...))
}
