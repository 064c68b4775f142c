package dto

import (
	"time"

	"finance-tracker/internal/models"

	"github.com/shopspring/decimal"
)

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ParentID    *int64 `json:"parent_id,omitempty"`
}

type CategoryResponse struct {
	ID          int64  `json:"id"`
	ParentID    *int64 `json:"parent_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Shared      bool   `json:"shared"`
}

func NewCategoryList(categories []*models.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, NewCategoryResponse(c))
	}
	return out
}

func NewCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		ParentID:    c.ParentID,
		Name:        c.Name,
		Description: c.Description,
		Shared:      c.UserID == nil,
	}
}

type CreateBudgetRequest struct {
	CategoryID *int64 `json:"category_id,omitempty"`
	Amount     string `json:"amount"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

type BudgetResponse struct {
	ID          int64   `json:"id"`
	CategoryID  *int64  `json:"category_id,omitempty"`
	Budgeted    string  `json:"budgeted_amount"`
	Spent       string  `json:"spent"`
	Remaining   string  `json:"remaining"`
	PercentUsed float64 `json:"percent_used"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
}

func NewBudgetResponse(b *models.Budget, remaining, percentUsed decimal.Decimal) BudgetResponse {
	return BudgetResponse{
		ID:          b.ID,
		CategoryID:  b.CategoryID,
		Budgeted:    b.BudgetedAmount.StringFixed(2),
		Spent:       b.Spent.StringFixed(2),
		Remaining:   remaining.StringFixed(2),
		PercentUsed: percentUsed.InexactFloat64(),
		StartDate:   b.StartDate.Format(time.DateOnly),
		EndDate:     b.EndDate.Format(time.DateOnly),
	}
}

type ReconcileRequest struct {
	BankBalance        string `json:"bank_balance"`
	ReconciliationDate string `json:"reconciliation_date"`
}

type ReconciliationResponse struct {
	ID                 int64  `json:"id"`
	AccountID          int64  `json:"account_id"`
	ReconciliationDate string `json:"reconciliation_date"`
	BankBalance        string `json:"bank_balance"`
	BookBalance        string `json:"book_balance"`
	Difference         string `json:"difference"`
	Status             string `json:"status"`
}

func NewReconciliationResponse(r *models.AccountReconciliation) ReconciliationResponse {
	return ReconciliationResponse{
		ID:                 r.ID,
		AccountID:          r.AccountID,
		ReconciliationDate: r.ReconciliationDate.Format(time.RFC3339),
		BankBalance:        r.BankBalance.StringFixed(2),
		BookBalance:        r.BookBalance.StringFixed(2),
		Difference:         r.Difference.StringFixed(2),
		Status:             string(r.Status),
	}
}

type CreateRecurringRequest struct {
	AccountID      int64  `json:"account_id"`
	CategoryID     *int64 `json:"category_id,omitempty"`
	Type           string `json:"type"`
	Amount         string `json:"amount"`
	Description    string `json:"description"`
	Frequency      string `json:"frequency"`
	NextOccurrence string `json:"next_occurrence"`
	EndDate        string `json:"end_date"`
}

type RecurringResponse struct {
	ID             int64   `json:"id"`
	AccountID      int64   `json:"account_id"`
	CategoryID     *int64  `json:"category_id,omitempty"`
	Type           string  `json:"type"`
	Amount         string  `json:"amount"`
	Description    string  `json:"description"`
	Frequency      string  `json:"frequency"`
	AnchorDay      int     `json:"anchor_day"`
	NextOccurrence string  `json:"next_occurrence"`
	EndDate        *string `json:"end_date,omitempty"`
	IsActive       bool    `json:"is_active"`
}

func NewRecurringResponse(rt *models.RecurringTransaction) RecurringResponse {
	var end *string
	if rt.EndDate != nil {
		s := rt.EndDate.Format(time.DateOnly)
		end = &s
	}
	return RecurringResponse{
		ID:             rt.ID,
		AccountID:      rt.AccountID,
		CategoryID:     rt.CategoryID,
		Type:           string(rt.Type),
		Amount:         rt.Amount.StringFixed(2),
		Description:    rt.Description,
		Frequency:      string(rt.Frequency),
		AnchorDay:      rt.AnchorDay,
		NextOccurrence: rt.NextOccurrence.Format(time.DateOnly),
		EndDate:        end,
		IsActive:       rt.IsActive,
	}
}
