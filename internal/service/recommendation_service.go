package service

import (
	"finance-tracker/pkg/money"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	baseSavingsRate = decimal.RequireFromString("0.05")
	savingsRateStep = decimal.RequireFromString("0.02")
	maxSavingsRate  = decimal.RequireFromString("0.10")
	reserveMonths   = decimal.NewFromInt(3)
)

// RecommendSavingsRate returns the share of monthly income to set aside. The
// base rate is raised by one step while savings cover less than three months
// of income, and never exceeds the ceiling. Negative inputs are not rejected.
func RecommendSavingsRate(monthlyIncome, currentSavings decimal.Decimal) decimal.Decimal {
	rate := baseSavingsRate
	if currentSavings.LessThan(monthlyIncome.Mul(reserveMonths)) {
		rate = rate.Add(savingsRateStep)
	}
	if rate.GreaterThan(maxSavingsRate) {
		rate = maxSavingsRate
	}
	return rate
}

type SavingsRecommendation struct {
	Rate            decimal.Decimal
	Amount          decimal.Decimal
	FormattedAmount string
	MonthlyIncome   decimal.Decimal
	CurrentSavings  decimal.Decimal
	Currency        string
}

// Percentage is the rate expressed in percent, e.g. 7 for 0.07.
func (r SavingsRecommendation) Percentage() float64 {
	return r.Rate.Mul(decimal.NewFromInt(100)).InexactFloat64()
}

type RecommendationService struct {
	currency string
	logger   *zap.Logger
}

func NewRecommendationService(currency string, logger *zap.Logger) *RecommendationService {
	return &RecommendationService{
		currency: currency,
		logger:   logger,
	}
}

// Recommend builds the recommendation for already validated inputs. An empty
// currency falls back to the configured default.
func (s *RecommendationService) Recommend(monthlyIncome, currentSavings decimal.Decimal, currency string) SavingsRecommendation {
	if currency == "" {
		currency = s.currency
	}
	rate := RecommendSavingsRate(monthlyIncome, currentSavings)
	amount := monthlyIncome.Mul(rate).Round(2)

	return SavingsRecommendation{
		Rate:            rate,
		Amount:          amount,
		FormattedAmount: money.Format(amount, currency),
		MonthlyIncome:   monthlyIncome,
		CurrentSavings:  currentSavings,
		Currency:        currency,
	}
}

// Calculate parses raw calculator input. Both values are required and must be
// non-negative decimals.
func (s *RecommendationService) Calculate(rawIncome, rawSavings string) (SavingsRecommendation, error) {
	income, err := parseNonNegative("monthly_income", rawIncome)
	if err != nil {
		return SavingsRecommendation{}, err
	}
	savings, err := parseNonNegative("current_savings", rawSavings)
	if err != nil {
		return SavingsRecommendation{}, err
	}

	rec := s.Recommend(income, savings, "")
	s.logger.Debug("Savings recommendation calculated",
		zap.String("monthly_income", income.String()),
		zap.String("current_savings", savings.String()),
		zap.String("rate", rec.Rate.String()),
	)
	return rec, nil
}
