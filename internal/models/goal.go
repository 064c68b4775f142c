package models

import (
	"time"

	"finance-tracker/pkg/money"

	"github.com/shopspring/decimal"
)

type SavingsGoal struct {
	ID            int64           `db:"id"`
	AccountID     int64           `db:"account_id"`
	Name          string          `db:"name"`
	TargetAmount  decimal.Decimal `db:"target_amount"`
	CurrentAmount decimal.Decimal `db:"current_amount"`
	Category      string          `db:"category"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

// Progress is the completed share of the target in percent, capped at 100.
func (g *SavingsGoal) Progress() decimal.Decimal {
	return money.Percent(g.CurrentAmount, g.TargetAmount)
}
