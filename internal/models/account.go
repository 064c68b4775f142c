package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCredit     AccountType = "credit"
	AccountTypeInvestment AccountType = "investment"
)

func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeCredit, AccountTypeInvestment:
		return true
	}
	return false
}

// AccountField names a column that may be edited directly by the account
// setup routes. Only the constants below are accepted.
type AccountField string

const (
	FieldBalance        AccountField = "balance"
	FieldMonthlyIncome  AccountField = "monthly_income"
	FieldMonthlyExpense AccountField = "monthly_expense"
	FieldStartMonth     AccountField = "start_month"
)

type Account struct {
	ID                int64           `db:"id"`
	UserID            *int64          `db:"user_id"`
	Name              string          `db:"name"`
	Balance           decimal.Decimal `db:"balance"`
	OpeningBalance    decimal.Decimal `db:"opening_balance"`
	MonthlyIncome     decimal.Decimal `db:"monthly_income"`
	MonthlyExpense    decimal.Decimal `db:"monthly_expense"`
	Currency          string          `db:"currency"`
	AccountType       AccountType     `db:"account_type"`
	StartMonth        *string         `db:"start_month"`
	IsDefault         bool            `db:"is_default"`
	LastTransaction   *time.Time      `db:"last_transaction"`
	LastBalanceUpdate *time.Time      `db:"last_balance_update"`
	CreatedAt         time.Time       `db:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at"`
}

// OwnedBy reports whether the account belongs to userID.
func (a *Account) OwnedBy(userID int64) bool {
	return a.UserID != nil && *a.UserID == userID
}
