package dto

import (
	"time"

	"finance-tracker/internal/models"
)

type AddTransactionRequest struct {
	Type        string `json:"type" form:"type"`
	Amount      string `json:"amount" form:"amount"`
	Description string `json:"description" form:"description"`
	CategoryID  *int64 `json:"category_id,omitempty" form:"category_id"`
}

type TransactionResponse struct {
	ID              int64  `json:"id"`
	AccountID       int64  `json:"account_id"`
	CategoryID      *int64 `json:"category_id,omitempty"`
	Type            string `json:"type"`
	Amount          string `json:"amount"`
	Currency        string `json:"currency"`
	Description     string `json:"description"`
	Status          string `json:"status"`
	TransactionDate string `json:"transaction_date"`
	CreatedAt       string `json:"created_at"`
}

type LedgerResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Balance     string              `json:"balance"`
}

func NewTransactionResponse(tx *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              tx.ID,
		AccountID:       tx.AccountID,
		CategoryID:      tx.CategoryID,
		Type:            string(tx.Type),
		Amount:          tx.Amount.StringFixed(2),
		Currency:        tx.Currency,
		Description:     tx.Description,
		Status:          string(tx.Status),
		TransactionDate: tx.TransactionDate.Format(time.RFC3339),
		CreatedAt:       tx.CreatedAt.Format(time.RFC3339),
	}
}

func NewTransactionList(txs []*models.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, NewTransactionResponse(tx))
	}
	return out
}
