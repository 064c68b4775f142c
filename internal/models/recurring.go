package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// Next returns the occurrence after from. Monthly and yearly schedules land on
// anchorDay, or on the last day of a shorter month. anchorDay <= 0 means the
// day of from.
func (f Frequency) Next(from time.Time, anchorDay int) time.Time {
	switch f {
	case FrequencyDaily:
		return from.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case FrequencyMonthly:
		return addMonths(from, 1, anchorDay)
	default:
		return addMonths(from, 12, anchorDay)
	}
}

func addMonths(from time.Time, months, day int) time.Time {
	if day <= 0 {
		day = from.Day()
	}
	y, m, _ := from.Date()
	first := time.Date(y, m+time.Month(months), 1,
		from.Hour(), from.Minute(), from.Second(), from.Nanosecond(), from.Location())
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return first.AddDate(0, 0, day-1)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

type RecurringTransaction struct {
	ID             int64           `db:"id"`
	UserID         int64           `db:"user_id"`
	AccountID      int64           `db:"account_id"`
	CategoryID     *int64          `db:"category_id"`
	Type           TransactionType `db:"type"`
	Amount         decimal.Decimal `db:"amount"`
	Description    string          `db:"description"`
	Frequency      Frequency       `db:"frequency"`
	AnchorDay      int             `db:"anchor_day"`
	NextOccurrence time.Time       `db:"next_occurrence"`
	EndDate        *time.Time      `db:"end_date"`
	IsActive       bool            `db:"is_active"`
	CreatedAt      time.Time       `db:"created_at"`
}

// DueOn reports whether the template should post on day.
func (r *RecurringTransaction) DueOn(day time.Time) bool {
	if !r.IsActive || r.NextOccurrence.After(day) {
		return false
	}
	return r.EndDate == nil || !r.NextOccurrence.After(*r.EndDate)
}

// Following is the occurrence after NextOccurrence.
func (r *RecurringTransaction) Following() time.Time {
	return r.Frequency.Next(r.NextOccurrence, r.AnchorDay)
}
