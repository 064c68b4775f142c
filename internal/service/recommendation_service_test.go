package service

import (
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func TestRecommendSavingsRate(t *testing.T) {
	tests := []struct {
		name    string
		income  string
		savings string
		want    string
	}{
		{"healthy reserve", "3000", "10000", "0.05"},
		{"thin reserve", "3000", "1000", "0.07"},
		{"exactly three months", "3000", "9000", "0.05"},
		{"no income", "0", "0", "0.05"},
		{"no savings", "4500.50", "0", "0.07"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := RecommendSavingsRate(decimal.RequireFromString(tc.income), decimal.RequireFromString(tc.savings))
			if !got.Equal(decimal.RequireFromString(tc.want)) {
				t.Errorf("RecommendSavingsRate(%s, %s) = %s, want %s", tc.income, tc.savings, got, tc.want)
			}
		})
	}
}

func TestRecommendSavingsRateRange(t *testing.T) {
	faker := gofakeit.New(42)
	low, high := decimal.RequireFromString("0.05"), decimal.RequireFromString("0.07")

	for i := 0; i < 500; i++ {
		income := decimal.NewFromFloat(faker.Float64Range(0, 50000)).Round(2)
		savings := decimal.NewFromFloat(faker.Float64Range(0, 300000)).Round(2)

		got := RecommendSavingsRate(income, savings)
		want := high
		if savings.GreaterThanOrEqual(income.Mul(decimal.NewFromInt(3))) {
			want = low
		}
		if !got.Equal(want) || got.GreaterThan(maxSavingsRate) {
			t.Fatalf("RecommendSavingsRate(%s, %s) = %s, want %s", income, savings, got, want)
		}
	}
}

func TestCalculate(t *testing.T) {
	svc := NewRecommendationService("ZAR", zap.NewNop())

	rec, err := svc.Calculate("3,000", "1000")
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if rec.Percentage() != 7 {
		t.Errorf("Percentage() = %v, want 7", rec.Percentage())
	}
	if rec.FormattedAmount != "R210.00" {
		t.Errorf("FormattedAmount = %q, want R210.00", rec.FormattedAmount)
	}

	for _, in := range [][2]string{{"abc", "100"}, {"100", ""}, {"-1", "0"}} {
		_, err := svc.Calculate(in[0], in[1])
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("Calculate(%q, %q) error = %v, want ValidationError", in[0], in[1], err)
		}
	}
}
