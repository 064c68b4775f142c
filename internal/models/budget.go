package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Budget struct {
	ID             int64           `db:"id"`
	UserID         int64           `db:"user_id"`
	CategoryID     *int64          `db:"category_id"`
	BudgetedAmount decimal.Decimal `db:"budgeted_amount"`
	StartDate      time.Time       `db:"start_date"`
	EndDate        time.Time       `db:"end_date"`
	IsActive       bool            `db:"is_active"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`

	// Spent is derived from expense transactions in the period, not stored.
	Spent decimal.Decimal `db:"-"`
}
