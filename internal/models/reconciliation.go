package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReconciliationStatus string

const (
	ReconciliationMatched   ReconciliationStatus = "matched"
	ReconciliationUnmatched ReconciliationStatus = "unmatched"
)

type AccountReconciliation struct {
	ID                 int64                `db:"id"`
	AccountID          int64                `db:"account_id"`
	ReconciliationDate time.Time            `db:"reconciliation_date"`
	BankBalance        decimal.Decimal      `db:"bank_balance"`
	BookBalance        decimal.Decimal      `db:"book_balance"`
	Difference         decimal.Decimal      `db:"difference"`
	Status             ReconciliationStatus `db:"status"`
	CreatedAt          time.Time            `db:"created_at"`
}
