package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionIncome   TransactionType = "income"
	TransactionExpense  TransactionType = "expense"
	TransactionTransfer TransactionType = "transfer"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionIncome, TransactionExpense, TransactionTransfer:
		return true
	}
	return false
}

// BalanceDelta is the signed change a transaction of this type applies to its
// account. Transfers leave the single-account balance untouched.
func (t TransactionType) BalanceDelta(amount decimal.Decimal) decimal.Decimal {
	switch t {
	case TransactionIncome:
		return amount
	case TransactionExpense:
		return amount.Neg()
	default:
		return decimal.Zero
	}
}

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusCancelled TransactionStatus = "cancelled"
)

type Transaction struct {
	ID                   int64             `db:"id"`
	AccountID            int64             `db:"account_id"`
	UserID               *int64            `db:"user_id"`
	CategoryID           *int64            `db:"category_id"`
	Type                 TransactionType   `db:"type"`
	Amount               decimal.Decimal   `db:"amount"`
	Currency             string            `db:"currency"`
	Description          string            `db:"description"`
	Status               TransactionStatus `db:"status"`
	RelatedTransactionID *int64            `db:"related_transaction_id"`
	TransactionDate      time.Time         `db:"transaction_date"`
	CreatedAt            time.Time         `db:"created_at"`
	UpdatedAt            time.Time         `db:"updated_at"`
}
