package handlers

import (
	"context"
	"errors"
	"time"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/models"
	"finance-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Reconciler interface {
	Reconcile(ctx context.Context, accountID int64, rawBankBalance, rawDate string, now time.Time) (*models.AccountReconciliation, error)
	ListReconciliations(ctx context.Context, accountID int64) ([]*models.AccountReconciliation, error)
}

// AccountHandler serves the authenticated account and ledger API. Every
// route checks that the caller owns the account it touches.
type AccountHandler struct {
	ledger          Ledger
	accounts        Accounts
	goals           Goals
	reconciliations Reconciler
	logger          *zap.Logger
}

func NewAccountHandler(ledger Ledger, accounts Accounts, goals Goals, reconciliations Reconciler, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{
		ledger:          ledger,
		accounts:        accounts,
		goals:           goals,
		reconciliations: reconciliations,
		logger:          logger,
	}
}

// owned resolves the :id account of the authenticated user.
func (h *AccountHandler) owned(c *fiber.Ctx) (*models.Account, error) {
	userID, err := getUserID(c)
	if err != nil {
		return nil, err
	}
	accountID, err := paramID(c, "id")
	if err != nil {
		return nil, err
	}
	return h.accounts.Authorize(c.UserContext(), userID, accountID)
}

func (h *AccountHandler) fail(c *fiber.Ctx, op string, err error) error {
	if errors.Is(err, fiber.ErrUnauthorized) {
		return unauthorized(c)
	}
	return respondError(c, h.logger, op, err)
}

// ListAccounts godoc
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.AccountResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/accounts [get]
func (h *AccountHandler) ListAccounts(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return h.fail(c, "list_accounts", err)
	}

	accounts, err := h.accounts.ListAccounts(c.UserContext(), userID)
	if err != nil {
		return h.fail(c, "list_accounts", err)
	}

	out := make([]dto.AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, accountResponse(a))
	}
	return c.JSON(out)
}

// CreateAccount godoc
// @Summary Create an account
// @Tags accounts
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CreateAccountRequest true "Account"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/accounts [post]
func (h *AccountHandler) CreateAccount(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return h.fail(c, "create_account", err)
	}

	var req dto.CreateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	account, err := h.accounts.CreateAccount(c.UserContext(), userID, service.CreateAccountInput{
		Name:           req.Name,
		AccountType:    req.AccountType,
		Currency:       req.Currency,
		OpeningBalance: req.OpeningBalance,
		MonthlyIncome:  req.MonthlyIncome,
		MonthlyExpense: req.MonthlyExpense,
		IsDefault:      req.IsDefault,
	})
	if err != nil {
		return h.fail(c, "create_account", err)
	}

	return c.Status(fiber.StatusCreated).JSON(accountResponse(account))
}

// GetAccount godoc
// @Summary Get an account
// @Tags accounts
// @Produce json
// @Security Bearer
// @Param id path int true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/accounts/{id} [get]
func (h *AccountHandler) GetAccount(c *fiber.Ctx) error {
	account, err := h.owned(c)
	if err != nil {
		return h.fail(c, "get_account", err)
	}
	return c.JSON(accountResponse(account))
}

// UpdateField godoc
// @Summary Update one account field
// @Description Allowed fields: balance, monthly_income, monthly_expense, start_month
// @Tags accounts
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Account ID"
// @Param request body dto.UpdateFieldRequest true "Field and value"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/accounts/{id}/fields [patch]
func (h *AccountHandler) UpdateField(c *fiber.Ctx) error {
	account, err := h.owned(c)
	if err != nil {
		return h.fail(c, "update_account_field", err)
	}

	var req dto.UpdateFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	updated, err := h.accounts.UpdateAccountField(c.UserContext(), account.ID, req.Field, req.Value)
	if err != nil {
		return h.fail(c, "update_account_field", err)
	}
	return c.JSON(accountResponse(updated))
}

// ListTransactions godoc
// @Summary List transactions of an account
// @Tags transactions
// @Produce json
// @Security Bearer
// @Param id path int true "Account ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {array} dto.TransactionResponse
// @Router /api/v1/accounts/{id}/transactions [get]
func (h *AccountHandler) ListTransactions(c *fiber.Ctx) error {
	account, err := h.owned(c)
	if err != nil {
		return h.fail(c, "list_transactions", err)
	}

	txs, err := h.ledger.ListTransactions(c.UserContext(), account.ID, c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return h.fail(c, "list_transactions", err)
	}
	return c.JSON(dto.NewTransactionList(txs))
}

// AddTransaction godoc
// @Summary Add a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Account ID"
// @Param request body dto.AddTransactionRequest true "Transaction"
// @Success 201 {object} dto.LedgerResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/accounts/{id}/transactions [post]
func (h *AccountHandler) AddTransaction(c *fiber.Ctx) error {
	account, err := h.owned(c)
	if err != nil {
		return h.fail(c, "add_transaction", err)
	}

	var req dto.AddTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	tx, balance, err := h.ledger.AddTransaction(c.UserContext(), service.AddTransactionInput{
		AccountID:   account.ID,
		Type:        req.Type,
		Amount:      req.Amount,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return h.fail(c, "add_transaction", err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.LedgerResponse{
		Transaction: dto.NewTransactionResponse(tx),
		Balance:     balance.StringFixed(2),
	})
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Description Soft deletes the transaction and reverses its effect on the balance
// @Tags transactions
// @Produce json
// @Security Bearer
// @Param id path int true "Transaction ID"
// @Success 200 {object} dto.LedgerResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/transactions/{id} [delete]
func (h *AccountHandler) DeleteTransaction(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return h.fail(c, "delete_transaction", err)
	}
	txID, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, "delete_transaction", err)
	}

	ctx := c.UserContext()
	tx, err := h.ledger.GetTransaction(ctx, txID)
	if err != nil {
		return h.fail(c, "delete_transaction", err)
	}
	if _, err := h.accounts.Authorize(ctx, userID, tx.AccountID); err != nil {
		return h.fail(c, "delete_transaction", &service.NotFoundError{Resource: "transaction", ID: txID})
	}

	deleted, balance, err := h.ledger.DeleteTransaction(ctx, txID)
	if err != nil {
		return h.fail(c, "delete_transaction", err)
	}

	return c.JSON(dto.LedgerResponse{
		Transaction: dto.NewTransactionResponse(deleted),
		Balance:     balance.StringFixed(2),
	})
}

// ListGoals godoc
// @Summary List savings goals of an account
// @Tags goals
// @Produce json
// @Security Bearer
// @Param id path int true "Account ID"
// @Success 200 {array} dto.GoalResponse
// @Router /api/v1/accounts/{id}/goals [get]
func (h *AccountHandler) ListGoals(c *fiber.Ctx) error {
	account, err := h.owned(c)
	if err != nil {
		return h.fail(c, "list_goals", err)
	}

	goals, err := h.goals.ListGoals(c.UserContext(), account.ID)
	if err != nil {
		return h.fail(c, "list_goals", err)
	}
	return c.JSON(dto.NewGoalList(goals))
}

// Reconcile godoc
// @Summary Reconcile an account against a bank balance
// @Tags reconciliations
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Account ID"
// @Param request body dto.ReconcileRequest true "Bank balance"
// @Success 201 {object} dto.ReconciliationResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/accounts/{id}/reconciliations [post]
func (h *AccountHandler) Reconcile(c *fiber.Ctx) error {
	account, err := h.owned(c)
	if err != nil {
		return h.fail(c, "reconcile", err)
	}

	var req dto.ReconcileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	rec, err := h.reconciliations.Reconcile(c.UserContext(), account.ID, req.BankBalance, req.ReconciliationDate, time.Now())
	if err != nil {
		return h.fail(c, "reconcile", err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewReconciliationResponse(rec))
}

// ListReconciliations godoc
// @Summary List reconciliations of an account
// @Tags reconciliations
// @Produce json
// @Security Bearer
// @Param id path int true "Account ID"
// @Success 200 {array} dto.ReconciliationResponse
// @Router /api/v1/accounts/{id}/reconciliations [get]
func (h *AccountHandler) ListReconciliations(c *fiber.Ctx) error {
	account, err := h.owned(c)
	if err != nil {
		return h.fail(c, "list_reconciliations", err)
	}

	recs, err := h.reconciliations.ListReconciliations(c.UserContext(), account.ID)
	if err != nil {
		return h.fail(c, "list_reconciliations", err)
	}

	out := make([]dto.ReconciliationResponse, 0, len(recs))
	for _, r := range recs {
		out = append(out, dto.NewReconciliationResponse(r))
	}
	return c.JSON(out)
}
