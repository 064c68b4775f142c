package handlers

import (
	"context"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/models"
	"finance-tracker/internal/service"
	"finance-tracker/pkg/money"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Ledger interface {
	AddTransaction(ctx context.Context, in service.AddTransactionInput) (*models.Transaction, decimal.Decimal, error)
	DeleteTransaction(ctx context.Context, id int64) (*models.Transaction, decimal.Decimal, error)
	GetTransaction(ctx context.Context, id int64) (*models.Transaction, error)
	ListTransactions(ctx context.Context, accountID int64, limit, offset int) ([]*models.Transaction, error)
}

type Accounts interface {
	UpdateAccountField(ctx context.Context, accountID int64, field, raw string) (*models.Account, error)
	SetupAccount(ctx context.Context, accountID int64, rawBalance, rawStartMonth string) (*models.Account, error)
	CreateAccount(ctx context.Context, userID int64, in service.CreateAccountInput) (*models.Account, error)
	GetAccount(ctx context.Context, accountID int64) (*models.Account, error)
	ListAccounts(ctx context.Context, userID int64) ([]*models.Account, error)
	Authorize(ctx context.Context, userID, accountID int64) (*models.Account, error)
}

type Goals interface {
	AddGoal(ctx context.Context, in service.AddGoalInput) (*models.SavingsGoal, error)
	GetGoal(ctx context.Context, goalID int64) (*models.SavingsGoal, error)
	UpdateGoalProgress(ctx context.Context, goalID int64, rawAmount string) (*models.SavingsGoal, error)
	ListGoals(ctx context.Context, accountID int64) ([]*models.SavingsGoal, error)
}

type Savings interface {
	Calculate(rawIncome, rawSavings string) (service.SavingsRecommendation, error)
}

type Dashboards interface {
	Dashboard(ctx context.Context, accountID int64) (*service.Dashboard, error)
}

type HealthChecker interface {
	Check(ctx context.Context) error
}

// WebHandler serves the form routes. They act on the configured default
// account unless a form names another one.
type WebHandler struct {
	ledger           Ledger
	accounts         Accounts
	goals            Goals
	savings          Savings
	dashboards       Dashboards
	health           HealthChecker
	defaultAccountID int64
	logger           *zap.Logger
}

func NewWebHandler(
	ledger Ledger,
	accounts Accounts,
	goals Goals,
	savings Savings,
	dashboards Dashboards,
	health HealthChecker,
	defaultAccountID int64,
	logger *zap.Logger,
) *WebHandler {
	return &WebHandler{
		ledger:           ledger,
		accounts:         accounts,
		goals:            goals,
		savings:          savings,
		dashboards:       dashboards,
		health:           health,
		defaultAccountID: defaultAccountID,
		logger:           logger,
	}
}

// Dashboard godoc
// @Summary Account dashboard
// @Description Account summary, recent transactions, savings goals and the savings recommendation
// @Tags web
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Failure 404 {object} map[string]string
// @Router / [get]
func (h *WebHandler) Dashboard(c *fiber.Ctx) error {
	d, err := h.dashboards.Dashboard(c.UserContext(), h.defaultAccountID)
	if err != nil {
		return respondError(c, h.logger, "dashboard", err)
	}

	return c.JSON(dto.DashboardResponse{
		Account:            accountResponse(d.Account),
		RecentTransactions: dto.NewTransactionList(d.Recent),
		Goals:              dto.NewGoalList(d.Goals),
		Recommendation:     recommendationResponse(d.Recommendation),
	})
}

// AddTransaction godoc
// @Summary Add a transaction
// @Description Records an income, expense or transfer on the default account and updates its balance atomically
// @Tags web
// @Accept x-www-form-urlencoded
// @Produce json
// @Param type formData string true "income, expense or transfer"
// @Param amount formData string true "Positive amount"
// @Param description formData string false "Description"
// @Success 302
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /transactions/add [post]
func (h *WebHandler) AddTransaction(c *fiber.Ctx) error {
	var req dto.AddTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	_, _, err := h.ledger.AddTransaction(c.UserContext(), service.AddTransactionInput{
		AccountID:   h.defaultAccountID,
		Type:        req.Type,
		Amount:      req.Amount,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return respondError(c, h.logger, "add_transaction", err)
	}

	return c.Redirect("/", fiber.StatusFound)
}

// AccountSetup godoc
// @Summary Account setup
// @Description GET shows the account, POST sets balance and start month
// @Tags web
// @Accept x-www-form-urlencoded
// @Produce json
// @Param balance formData string false "Balance"
// @Param start_month formData string false "YYYY-MM"
// @Success 200 {object} dto.SetupResponse
// @Failure 400 {object} dto.SetupResponse
// @Router /account/setup [get]
// @Router /account/setup [post]
func (h *WebHandler) AccountSetup(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if c.Method() == fiber.MethodGet {
		account, err := h.accounts.GetAccount(ctx, h.defaultAccountID)
		if err != nil {
			return respondError(c, h.logger, "account_setup", err)
		}
		resp := accountResponse(account)
		return c.JSON(dto.SetupResponse{Account: &resp})
	}

	var req dto.SetupAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.SetupResponse{Error: "Invalid request body"})
	}

	account, err := h.accounts.SetupAccount(ctx, h.defaultAccountID, req.Balance, req.StartMonth)
	if err != nil {
		return respondError(c, h.logger, "account_setup", err)
	}

	resp := accountResponse(account)
	return c.JSON(dto.SetupResponse{Account: &resp, Message: "Account updated successfully"})
}

// UpdateField returns a handler for one of the single-field form routes
// (/balance, /income, /expense). formKey is the form value that is read.
func (h *WebHandler) UpdateField(field models.AccountField, formKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		value := c.FormValue(formKey)
		if value == "" {
			return badRequest(c, formKey+" is required")
		}

		if _, err := h.accounts.UpdateAccountField(c.UserContext(), h.defaultAccountID, string(field), value); err != nil {
			return respondError(c, h.logger, "update_"+string(field), err)
		}

		return c.Redirect("/", fiber.StatusFound)
	}
}

// AddGoal godoc
// @Summary Add a savings goal
// @Tags web
// @Accept x-www-form-urlencoded
// @Produce json
// @Param account_id formData int true "Account"
// @Param name formData string true "Goal name"
// @Param target_amount formData string true "Target amount"
// @Param category formData string true "Category label"
// @Success 302
// @Failure 400 {object} map[string]string
// @Router /goals/add [post]
func (h *WebHandler) AddGoal(c *fiber.Ctx) error {
	var req dto.AddGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if _, err := h.goals.AddGoal(c.UserContext(), service.AddGoalInput{
		AccountID:    req.AccountID,
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		Category:     req.Category,
	}); err != nil {
		return respondError(c, h.logger, "add_goal", err)
	}

	return c.Redirect("/", fiber.StatusFound)
}

// UpdateGoal godoc
// @Summary Update savings goal progress
// @Tags web
// @Accept x-www-form-urlencoded
// @Produce json
// @Param id path int true "Goal ID"
// @Param current_amount formData string true "Saved so far"
// @Success 302
// @Failure 404 {object} map[string]string
// @Router /goals/{id}/update [post]
func (h *WebHandler) UpdateGoal(c *fiber.Ctx) error {
	goalID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "update_goal", err)
	}

	var req dto.UpdateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if _, err := h.goals.UpdateGoalProgress(c.UserContext(), goalID, req.CurrentAmount); err != nil {
		return respondError(c, h.logger, "update_goal", err)
	}

	return c.Redirect("/", fiber.StatusFound)
}

// Calculator godoc
// @Summary Savings calculator
// @Description Recommended savings rate for a monthly income and current savings
// @Tags web
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param request body dto.CalculatorRequest true "Calculator input"
// @Success 200 {object} dto.RecommendationResponse
// @Failure 400 {object} map[string]string
// @Router /calculator [post]
func (h *WebHandler) Calculator(c *fiber.Ctx) error {
	var req dto.CalculatorRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	rec, err := h.savings.Calculate(req.MonthlyIncome, req.CurrentSavings)
	if err != nil {
		return respondError(c, h.logger, "calculator", err)
	}

	return c.JSON(recommendationResponse(rec))
}

// Health godoc
// @Summary Health check
// @Tags web
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /health [get]
func (h *WebHandler) Health(c *fiber.Ctx) error {
	if err := h.health.Check(c.UserContext()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":   "unhealthy",
			"database": "disconnected",
		})
	}
	return c.JSON(fiber.Map{
		"status":   "healthy",
		"database": "connected",
	})
}

func accountResponse(a *models.Account) dto.AccountResponse {
	return dto.NewAccountResponse(a, money.Format(a.Balance, a.Currency))
}

func recommendationResponse(rec service.SavingsRecommendation) dto.RecommendationResponse {
	return dto.RecommendationResponse{
		RecommendedPercentage: rec.Percentage(),
		RecommendedAmount:     rec.FormattedAmount,
		MonthlyIncome:         rec.MonthlyIncome.StringFixed(2),
		CurrentSavings:        rec.CurrentSavings.StringFixed(2),
	}
}
