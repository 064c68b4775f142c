// Package money holds decimal parsing and display helpers for currency amounts.
package money

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

var symbols = map[string]string{
	"ZAR": "R",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"RUB": "₽",
	"JPY": "¥",
	"INR": "₹",
	"NGN": "₦",
	"KES": "KSh",
}

// Symbol returns the display prefix for an ISO-4217 code. Unknown codes are
// rendered as the code followed by a space.
func Symbol(currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if s, ok := symbols[code]; ok {
		return s
	}
	if code == "" {
		return ""
	}
	return code + " "
}

// Format renders amount with two decimals, thousands separators and the
// currency symbol, e.g. R1,234.50 or -$12.00.
func Format(amount decimal.Decimal, currency string) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}

	fixed := amount.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.Grow(len(fixed) + len(intPart)/3 + 4)
	b.WriteString(sign)
	b.WriteString(Symbol(currency))
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

// groupedAmount is an amount written with comma thousands separators.
var groupedAmount = regexp.MustCompile(`^[-+]?[0-9]{1,3}(,[0-9]{3})+(\.[0-9]+)?$`)

// Parse reads a user supplied amount. Surrounding spaces and correctly placed
// thousands separators are tolerated; anything else that is not a decimal is
// rejected.
func Parse(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if strings.Contains(s, ",") {
		if !groupedAmount.MatchString(s) {
			return decimal.Zero, ErrInvalidAmount
		}
		s = strings.ReplaceAll(s, ",", "")
	}
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ParsePositive is Parse restricted to amounts strictly greater than zero.
func ParsePositive(raw string) (decimal.Decimal, error) {
	d, err := Parse(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// Percent returns part/whole*100 capped at 100. A non-positive whole yields zero.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	p := part.Div(whole).Mul(decimal.NewFromInt(100))
	if p.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.NewFromInt(100)
	}
	return p.Round(2)
}
