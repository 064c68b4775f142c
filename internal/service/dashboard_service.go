package service

import (
	"context"
	"time"

	"finance-tracker/internal/models"

	"go.uber.org/zap"
)

type Dashboard struct {
	Account        *models.Account
	Recent         []*models.Transaction
	Goals          []*models.SavingsGoal
	Recommendation SavingsRecommendation
}

// DashboardService assembles the home view of one account.
type DashboardService struct {
	accounts     AccountStore
	transactions TransactionStore
	goals        GoalStore
	savings      *RecommendationService
	recentLimit  int
	logger       *zap.Logger
}

func NewDashboardService(
	accounts AccountStore,
	transactions TransactionStore,
	goals GoalStore,
	savings *RecommendationService,
	recentLimit int,
	logger *zap.Logger,
) *DashboardService {
	if recentLimit <= 0 {
		recentLimit = 10
	}
	return &DashboardService{
		accounts:     accounts,
		transactions: transactions,
		goals:        goals,
		savings:      savings,
		recentLimit:  recentLimit,
		logger:       logger,
	}
}

// Dashboard treats the current balance as the savings figure for the
// recommendation.
func (s *DashboardService) Dashboard(ctx context.Context, accountID int64) (*Dashboard, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, storageError(s.logger, "dashboard", "account", accountID, err)
	}

	recent, err := s.transactions.ListByAccountID(ctx, accountID, s.recentLimit, 0)
	if err != nil {
		return nil, storageError(s.logger, "dashboard", "account", accountID, err)
	}

	goals, err := s.goals.ListByAccountID(ctx, accountID)
	if err != nil {
		return nil, storageError(s.logger, "dashboard", "account", accountID, err)
	}

	return &Dashboard{
		Account:        account,
		Recent:         recent,
		Goals:          goals,
		Recommendation: s.savings.Recommend(account.MonthlyIncome, account.Balance, account.Currency),
	}, nil
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthService struct {
	db      Pinger
	timeout time.Duration
	logger  *zap.Logger
}

func NewHealthService(db Pinger, logger *zap.Logger) *HealthService {
	return &HealthService{
		db:      db,
		timeout: 2 * time.Second,
		logger:  logger,
	}
}

// Check pings the database under a short timeout.
func (s *HealthService) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.db.Ping(ctx); err != nil {
		s.logger.Error("Database health check failed", zap.Error(err))
		return &PersistenceError{Op: "health_check", Err: err}
	}
	return nil
}
