package dto

import (
	"time"

	"finance-tracker/internal/models"
)

type CreateAccountRequest struct {
	Name           string `json:"name"`
	AccountType    string `json:"account_type"`
	Currency       string `json:"currency"`
	OpeningBalance string `json:"opening_balance"`
	MonthlyIncome  string `json:"monthly_income"`
	MonthlyExpense string `json:"monthly_expense"`
	IsDefault      bool   `json:"is_default"`
}

type UpdateFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type SetupAccountRequest struct {
	Balance    string `json:"balance" form:"balance"`
	StartMonth string `json:"start_month" form:"start_month"`
}

type AccountResponse struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Balance           string  `json:"balance"`
	FormattedBalance  string  `json:"formatted_balance"`
	OpeningBalance    string  `json:"opening_balance"`
	MonthlyIncome     string  `json:"monthly_income"`
	MonthlyExpense    string  `json:"monthly_expense"`
	Currency          string  `json:"currency"`
	AccountType       string  `json:"account_type"`
	StartMonth        *string `json:"start_month"`
	IsDefault         bool    `json:"is_default"`
	LastTransaction   *string `json:"last_transaction,omitempty"`
	LastBalanceUpdate *string `json:"last_balance_update,omitempty"`
	CreatedAt         string  `json:"created_at"`
}

type SetupResponse struct {
	Account *AccountResponse `json:"account,omitempty"`
	Message string           `json:"message,omitempty"`
	Error   string           `json:"error,omitempty"`
}

func NewAccountResponse(a *models.Account, formattedBalance string) AccountResponse {
	return AccountResponse{
		ID:                a.ID,
		Name:              a.Name,
		Balance:           a.Balance.StringFixed(2),
		FormattedBalance:  formattedBalance,
		OpeningBalance:    a.OpeningBalance.StringFixed(2),
		MonthlyIncome:     a.MonthlyIncome.StringFixed(2),
		MonthlyExpense:    a.MonthlyExpense.StringFixed(2),
		Currency:          a.Currency,
		AccountType:       string(a.AccountType),
		StartMonth:        a.StartMonth,
		IsDefault:         a.IsDefault,
		LastTransaction:   timestamp(a.LastTransaction),
		LastBalanceUpdate: timestamp(a.LastBalanceUpdate),
		CreatedAt:         a.CreatedAt.Format(time.RFC3339),
	}
}

func timestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
