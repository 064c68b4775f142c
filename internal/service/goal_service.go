package service

import (
	"context"

	"finance-tracker/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type GoalStore interface {
	Create(ctx context.Context, g *models.SavingsGoal) error
	GetByID(ctx context.Context, id int64) (*models.SavingsGoal, error)
	UpdateCurrentAmount(ctx context.Context, id int64, amount decimal.Decimal) (*models.SavingsGoal, error)
	ListByAccountID(ctx context.Context, accountID int64) ([]*models.SavingsGoal, error)
}

type AddGoalInput struct {
	AccountID    int64
	Name         string
	TargetAmount string
	Category     string
}

type GoalService struct {
	goals    GoalStore
	accounts AccountStore
	logger   *zap.Logger
}

func NewGoalService(goals GoalStore, accounts AccountStore, logger *zap.Logger) *GoalService {
	return &GoalService{
		goals:    goals,
		accounts: accounts,
		logger:   logger,
	}
}

func (s *GoalService) AddGoal(ctx context.Context, in AddGoalInput) (*models.SavingsGoal, error) {
	if in.AccountID == 0 {
		return nil, invalid("account_id", "is required")
	}
	name := cleanText(in.Name)
	if name == "" {
		return nil, invalid("name", "is required")
	}
	target, err := parsePositive("target_amount", in.TargetAmount)
	if err != nil {
		return nil, err
	}
	category := cleanText(in.Category)
	if category == "" {
		return nil, invalid("category", "is required")
	}

	if _, err := s.accounts.GetByID(ctx, in.AccountID); err != nil {
		return nil, storageError(s.logger, "add_goal", "account", in.AccountID, err)
	}

	goal := &models.SavingsGoal{
		AccountID:     in.AccountID,
		Name:          name,
		TargetAmount:  target,
		CurrentAmount: decimal.Zero,
		Category:      category,
	}
	if err := s.goals.Create(ctx, goal); err != nil {
		return nil, storageError(s.logger, "add_goal", "account", in.AccountID, err)
	}

	s.logger.Info("Savings goal added", zap.Int64("goal_id", goal.ID), zap.Int64("account_id", goal.AccountID))
	return goal, nil
}

func (s *GoalService) GetGoal(ctx context.Context, goalID int64) (*models.SavingsGoal, error) {
	goal, err := s.goals.GetByID(ctx, goalID)
	if err != nil {
		return nil, storageError(s.logger, "get_goal", "goal", goalID, err)
	}
	return goal, nil
}

// UpdateGoalProgress replaces the saved amount of a goal.
func (s *GoalService) UpdateGoalProgress(ctx context.Context, goalID int64, rawAmount string) (*models.SavingsGoal, error) {
	amount, err := parseNonNegative("current_amount", rawAmount)
	if err != nil {
		return nil, err
	}

	goal, err := s.goals.UpdateCurrentAmount(ctx, goalID, amount)
	if err != nil {
		return nil, storageError(s.logger, "update_goal", "goal", goalID, err)
	}

	s.logger.Info("Savings goal updated",
		zap.Int64("goal_id", goalID),
		zap.String("current_amount", amount.String()),
		zap.String("progress", goal.Progress().String()),
	)
	return goal, nil
}

func (s *GoalService) ListGoals(ctx context.Context, accountID int64) ([]*models.SavingsGoal, error) {
	goals, err := s.goals.ListByAccountID(ctx, accountID)
	if err != nil {
		return nil, storageError(s.logger, "list_goals", "account", accountID, err)
	}
	return goals, nil
}
