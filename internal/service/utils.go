package service

import (
	"strings"
	"time"
	"unicode/utf8"

	"finance-tracker/pkg/money"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// sanitizeUTF8 removes invalid UTF-8 sequences from string
// This prevents PostgreSQL encoding errors when saving text
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var result strings.Builder
	result.Grow(len(s))

	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			s = s[1:]
			continue
		}
		result.WriteRune(r)
		s = s[size:]
	}

	return result.String()
}

func cleanText(s string) string {
	return strings.TrimSpace(sanitizeUTF8(s))
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalid(field, "is required")
	}
	return nil
}

func parseAmount(field, raw string) (decimal.Decimal, error) {
	if err := required(field, raw); err != nil {
		return decimal.Zero, err
	}
	d, err := money.Parse(raw)
	if err != nil {
		return decimal.Zero, invalid(field, "must be a number")
	}
	return d, nil
}

func parsePositive(field, raw string) (decimal.Decimal, error) {
	d, err := parseAmount(field, raw)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.IsPositive() {
		return decimal.Zero, invalid(field, "must be greater than zero")
	}
	return d, nil
}

func parseNonNegative(field, raw string) (decimal.Decimal, error) {
	d, err := parseAmount(field, raw)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, invalid(field, "must not be negative")
	}
	return d, nil
}

// parseDate reads a YYYY-MM-DD value; empty input yields fallback.
func parseDate(field, raw string, fallback time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, invalid(field, "must be a date in YYYY-MM-DD format")
	}
	return d, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
