package dto

import (
	"time"

	"finance-tracker/internal/models"
)

type AddGoalRequest struct {
	AccountID    int64  `json:"account_id" form:"account_id"`
	Name         string `json:"name" form:"name"`
	TargetAmount string `json:"target_amount" form:"target_amount"`
	Category     string `json:"category" form:"category"`
}

type UpdateGoalRequest struct {
	CurrentAmount string `json:"current_amount" form:"current_amount"`
}

type GoalResponse struct {
	ID            int64   `json:"id"`
	AccountID     int64   `json:"account_id"`
	Name          string  `json:"name"`
	TargetAmount  string  `json:"target_amount"`
	CurrentAmount string  `json:"current_amount"`
	Category      string  `json:"category"`
	Progress      float64 `json:"progress"`
	CreatedAt     string  `json:"created_at"`
}

func NewGoalResponse(g *models.SavingsGoal) GoalResponse {
	return GoalResponse{
		ID:            g.ID,
		AccountID:     g.AccountID,
		Name:          g.Name,
		TargetAmount:  g.TargetAmount.StringFixed(2),
		CurrentAmount: g.CurrentAmount.StringFixed(2),
		Category:      g.Category,
		Progress:      g.Progress().InexactFloat64(),
		CreatedAt:     g.CreatedAt.Format(time.RFC3339),
	}
}

func NewGoalList(goals []*models.SavingsGoal) []GoalResponse {
	out := make([]GoalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, NewGoalResponse(g))
	}
	return out
}

type DashboardResponse struct {
	Account            AccountResponse        `json:"account"`
	RecentTransactions []TransactionResponse  `json:"recent_transactions"`
	Goals              []GoalResponse         `json:"goals"`
	Recommendation     RecommendationResponse `json:"recommendation"`
}
