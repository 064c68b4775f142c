package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"finance-tracker/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// decimalArg matches a decimal.Decimal query argument by value.
type decimalArg string

func (d decimalArg) Match(v any) bool {
	got, ok := v.(decimal.Decimal)
	return ok && got.Equal(decimal.RequireFromString(string(d)))
}

var (
	lockAccountSQL   = regexp.QuoteMeta("SELECT balance, currency, user_id FROM accounts WHERE id = $1 AND deleted_at IS NULL FOR UPDATE")
	insertTxSQL      = regexp.QuoteMeta("INSERT INTO transactions")
	updateBalanceSQL = regexp.QuoteMeta("UPDATE accounts SET balance = balance + $1")
	softDeleteSQL    = regexp.QuoteMeta("UPDATE transactions SET deleted_at = NOW()")
	categorySQL      = regexp.QuoteMeta("SELECT 1 FROM categories WHERE id = $1 AND (user_id = $2 OR user_id IS NULL) AND is_active")
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool() error = %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func insertArgs() []any {
	args := make([]any, 9)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func TestCreateWithBalance(t *testing.T) {
	tests := []struct {
		name      string
		txType    models.TransactionType
		wantDelta string
	}{
		{"income credits", models.TransactionIncome, "50"},
		{"expense debits", models.TransactionExpense, "-50"},
		{"transfer is a no-op", models.TransactionTransfer, "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mock := newMock(t)
			repo := NewTransactionRepository(mock, zap.NewNop())
			now := time.Now()

			mock.ExpectBegin()
			mock.ExpectQuery(lockAccountSQL).
				WithArgs(int64(1)).
				WillReturnRows(pgxmock.NewRows([]string{"balance", "currency", "user_id"}).
					AddRow("100.00", "ZAR", nil))
			mock.ExpectQuery(insertTxSQL).
				WithArgs(insertArgs()...).
				WillReturnRows(pgxmock.NewRows([]string{"id", "transaction_date", "created_at", "updated_at"}).
					AddRow(int64(7), now, now, now))
			newBalance := decimal.RequireFromString("100").Add(decimal.RequireFromString(tc.wantDelta))
			mock.ExpectQuery(updateBalanceSQL).
				WithArgs(decimalArg(tc.wantDelta), int64(1)).
				WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(newBalance.String()))
			mock.ExpectCommit()

			tx := &models.Transaction{
				AccountID:   1,
				Type:        tc.txType,
				Amount:      decimal.RequireFromString("50"),
				Description: "groceries",
			}
			got, err := repo.CreateWithBalance(context.Background(), tx)
			if err != nil {
				t.Fatalf("CreateWithBalance() error = %v", err)
			}
			if !got.Equal(newBalance) {
				t.Errorf("new balance = %s, want %s", got, newBalance)
			}
			if tx.ID != 7 || tx.Currency != "ZAR" || tx.Status != models.StatusCompleted {
				t.Errorf("transaction not filled in: %+v", tx)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestCreateWithBalanceRollsBackWhenBalanceUpdateFails(t *testing.T) {
	mock := newMock(t)
	repo := NewTransactionRepository(mock, zap.NewNop())
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(lockAccountSQL).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"balance", "currency", "user_id"}).
			AddRow("100.00", "ZAR", nil))
	mock.ExpectQuery(insertTxSQL).
		WithArgs(insertArgs()...).
		WillReturnRows(pgxmock.NewRows([]string{"id", "transaction_date", "created_at", "updated_at"}).
			AddRow(int64(7), now, now, now))
	mock.ExpectQuery(updateBalanceSQL).
		WithArgs(pgxmock.AnyArg(), int64(1)).
		WillReturnError(errors.New("connection reset by peer"))
	mock.ExpectRollback()

	_, err := repo.CreateWithBalance(context.Background(), &models.Transaction{
		AccountID: 1,
		Type:      models.TransactionIncome,
		Amount:    decimal.NewFromInt(10),
	})
	if err == nil {
		t.Fatal("expected an error when the balance update fails")
	}
	// No ExpectCommit was registered, so a commit would fail this check.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCreateWithBalanceUnknownAccount(t *testing.T) {
	mock := newMock(t)
	repo := NewTransactionRepository(mock, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectQuery(lockAccountSQL).
		WithArgs(int64(404)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.CreateWithBalance(context.Background(), &models.Transaction{
		AccountID: 404,
		Type:      models.TransactionIncome,
		Amount:    decimal.NewFromInt(1),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCreateWithBalanceRejectsForeignCategory(t *testing.T) {
	mock := newMock(t)
	repo := NewTransactionRepository(mock, zap.NewNop())
	owner := int64(5)

	mock.ExpectBegin()
	mock.ExpectQuery(lockAccountSQL).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"balance", "currency", "user_id"}).
			AddRow("100.00", "ZAR", &owner))
	mock.ExpectQuery(categorySQL).
		WithArgs(int64(33), int64(5)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	categoryID := int64(33)
	_, err := repo.CreateWithBalance(context.Background(), &models.Transaction{
		AccountID:  1,
		CategoryID: &categoryID,
		Type:       models.TransactionExpense,
		Amount:     decimal.NewFromInt(10),
	})
	if !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("error = %v, want ErrInvalidCategory", err)
	}
	// Neither the insert nor the balance update may run.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCreateWithBalanceAcceptsOwnCategory(t *testing.T) {
	mock := newMock(t)
	repo := NewTransactionRepository(mock, zap.NewNop())
	owner := int64(5)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(lockAccountSQL).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"balance", "currency", "user_id"}).
			AddRow("100.00", "ZAR", &owner))
	mock.ExpectQuery(categorySQL).
		WithArgs(int64(3), int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery(insertTxSQL).
		WithArgs(insertArgs()...).
		WillReturnRows(pgxmock.NewRows([]string{"id", "transaction_date", "created_at", "updated_at"}).
			AddRow(int64(8), now, now, now))
	mock.ExpectQuery(updateBalanceSQL).
		WithArgs(decimalArg("-10"), int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow("90.00"))
	mock.ExpectCommit()

	categoryID := int64(3)
	tx := &models.Transaction{
		AccountID:  1,
		CategoryID: &categoryID,
		Type:       models.TransactionExpense,
		Amount:     decimal.NewFromInt(10),
	}
	if _, err := repo.CreateWithBalance(context.Background(), tx); err != nil {
		t.Fatalf("CreateWithBalance() error = %v", err)
	}
	if tx.UserID == nil || *tx.UserID != owner {
		t.Errorf("user id = %v, want %d", tx.UserID, owner)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSoftDeleteReversesBalance(t *testing.T) {
	mock := newMock(t)
	repo := NewTransactionRepository(mock, zap.NewNop())
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(softDeleteSQL).
		WithArgs(int64(9)).
		WillReturnRows(pgxmock.NewRows(transactionColumns).AddRow(
			int64(9), int64(1), nil, nil, models.TransactionExpense, "30.00", "ZAR", "coffee",
			models.StatusCompleted, nil, now, now, now,
		))
	mock.ExpectQuery(updateBalanceSQL).
		WithArgs(decimalArg("30"), int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow("130.00"))
	mock.ExpectCommit()

	deleted, balance, err := repo.SoftDelete(context.Background(), 9)
	if err != nil {
		t.Fatalf("SoftDelete() error = %v", err)
	}
	if deleted.ID != 9 || deleted.Type != models.TransactionExpense {
		t.Errorf("deleted = %+v", deleted)
	}
	if !balance.Equal(decimal.RequireFromString("130")) {
		t.Errorf("balance = %s, want 130", balance)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSoftDeleteMissingTransaction(t *testing.T) {
	mock := newMock(t)
	repo := NewTransactionRepository(mock, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectQuery(softDeleteSQL).WithArgs(int64(9)).WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	if _, _, err := repo.SoftDelete(context.Background(), 9); !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}
