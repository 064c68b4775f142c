package service

import (
	"context"
	"time"

	"finance-tracker/internal/models"
	"finance-tracker/pkg/money"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type BudgetStore interface {
	Create(ctx context.Context, b *models.Budget) error
	ListByUserID(ctx context.Context, userID int64) ([]*models.Budget, error)
}

type CreateBudgetInput struct {
	CategoryID *int64
	Amount     string
	StartDate  string
	EndDate    string
}

type BudgetSummary struct {
	Budget      *models.Budget
	Remaining   decimal.Decimal
	PercentUsed decimal.Decimal
}

type BudgetService struct {
	budgets    BudgetStore
	categories *CategoryService
	logger     *zap.Logger
}

func NewBudgetService(budgets BudgetStore, categories *CategoryService, logger *zap.Logger) *BudgetService {
	return &BudgetService{
		budgets:    budgets,
		categories: categories,
		logger:     logger,
	}
}

// CreateBudget defaults to the calendar month containing now when no period
// is given. An end date alone is measured from the start of that month.
func (s *BudgetService) CreateBudget(ctx context.Context, userID int64, in CreateBudgetInput, now time.Time) (*models.Budget, error) {
	amount, err := parsePositive("amount", in.Amount)
	if err != nil {
		return nil, err
	}

	today := startOfDay(now)
	monthStart := today.AddDate(0, 0, 1-today.Day())
	start, err := parseDate("start_date", in.StartDate, monthStart)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("end_date", in.EndDate, start.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, invalid("end_date", "must be after start_date")
	}

	if in.CategoryID != nil {
		if err := s.categories.checkVisible(ctx, userID, *in.CategoryID, "category_id"); err != nil {
			return nil, err
		}
	}

	budget := &models.Budget{
		UserID:         userID,
		CategoryID:     in.CategoryID,
		BudgetedAmount: amount,
		StartDate:      start,
		EndDate:        end,
	}
	if err := s.budgets.Create(ctx, budget); err != nil {
		return nil, storageError(s.logger, "create_budget", "user", userID, err)
	}

	s.logger.Info("Budget created", zap.Int64("budget_id", budget.ID), zap.Int64("user_id", userID))
	return budget, nil
}

func (s *BudgetService) ListBudgets(ctx context.Context, userID int64) ([]BudgetSummary, error) {
	budgets, err := s.budgets.ListByUserID(ctx, userID)
	if err != nil {
		return nil, storageError(s.logger, "list_budgets", "user", userID, err)
	}

	summaries := make([]BudgetSummary, 0, len(budgets))
	for _, b := range budgets {
		summaries = append(summaries, Summarize(b))
	}
	return summaries, nil
}

// Summarize derives what is left of a budget. Overspending yields a negative
// remainder while the used share stops at 100.
func Summarize(b *models.Budget) BudgetSummary {
	return BudgetSummary{
		Budget:      b,
		Remaining:   b.BudgetedAmount.Sub(b.Spent),
		PercentUsed: money.Percent(b.Spent, b.BudgetedAmount),
	}
}
