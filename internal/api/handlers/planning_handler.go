package handlers

import (
	"context"
	"time"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/models"
	"finance-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Categories interface {
	CreateCategory(ctx context.Context, userID int64, in service.CreateCategoryInput) (*models.Category, error)
	ListCategories(ctx context.Context, userID int64) ([]*models.Category, error)
}

type Budgets interface {
	CreateBudget(ctx context.Context, userID int64, in service.CreateBudgetInput, now time.Time) (*models.Budget, error)
	ListBudgets(ctx context.Context, userID int64) ([]service.BudgetSummary, error)
}

type Recurring interface {
	CreateRecurring(ctx context.Context, userID int64, in service.CreateRecurringInput, now time.Time) (*models.RecurringTransaction, error)
	ListRecurring(ctx context.Context, userID int64) ([]*models.RecurringTransaction, error)
	PostDue(ctx context.Context, userID int64, now time.Time) (*service.RunResult, error)
}

// PlanningHandler serves categories, budgets and recurring transactions.
type PlanningHandler struct {
	categories Categories
	budgets    Budgets
	recurring  Recurring
	accounts   Accounts
	now        func() time.Time
	logger     *zap.Logger
}

func NewPlanningHandler(categories Categories, budgets Budgets, recurring Recurring, accounts Accounts, logger *zap.Logger) *PlanningHandler {
	return &PlanningHandler{
		categories: categories,
		budgets:    budgets,
		recurring:  recurring,
		accounts:   accounts,
		now:        time.Now,
		logger:     logger,
	}
}

// ListCategories godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.CategoryResponse
// @Router /api/v1/categories [get]
func (h *PlanningHandler) ListCategories(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	categories, err := h.categories.ListCategories(c.UserContext(), userID)
	if err != nil {
		return respondError(c, h.logger, "list_categories", err)
	}
	return c.JSON(dto.NewCategoryList(categories))
}

// CreateCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CreateCategoryRequest true "Category"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/categories [post]
func (h *PlanningHandler) CreateCategory(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	category, err := h.categories.CreateCategory(c.UserContext(), userID, service.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
	})
	if err != nil {
		return respondError(c, h.logger, "create_category", err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewCategoryResponse(category))
}

// ListBudgets godoc
// @Summary List budgets with spending
// @Tags budgets
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.BudgetResponse
// @Router /api/v1/budgets [get]
func (h *PlanningHandler) ListBudgets(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	summaries, err := h.budgets.ListBudgets(c.UserContext(), userID)
	if err != nil {
		return respondError(c, h.logger, "list_budgets", err)
	}

	out := make([]dto.BudgetResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, dto.NewBudgetResponse(s.Budget, s.Remaining, s.PercentUsed))
	}
	return c.JSON(out)
}

// CreateBudget godoc
// @Summary Create a budget
// @Description Period defaults to the current calendar month
// @Tags budgets
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CreateBudgetRequest true "Budget"
// @Success 201 {object} dto.BudgetResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/budgets [post]
func (h *PlanningHandler) CreateBudget(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateBudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	budget, err := h.budgets.CreateBudget(c.UserContext(), userID, service.CreateBudgetInput{
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	}, h.now())
	if err != nil {
		return respondError(c, h.logger, "create_budget", err)
	}

	s := service.Summarize(budget)
	return c.Status(fiber.StatusCreated).JSON(dto.NewBudgetResponse(s.Budget, s.Remaining, s.PercentUsed))
}

// ListRecurring godoc
// @Summary List recurring transactions
// @Tags recurring
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.RecurringResponse
// @Router /api/v1/recurring [get]
func (h *PlanningHandler) ListRecurring(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	list, err := h.recurring.ListRecurring(c.UserContext(), userID)
	if err != nil {
		return respondError(c, h.logger, "list_recurring", err)
	}

	out := make([]dto.RecurringResponse, 0, len(list))
	for _, rt := range list {
		out = append(out, dto.NewRecurringResponse(rt))
	}
	return c.JSON(out)
}

// CreateRecurring godoc
// @Summary Create a recurring transaction
// @Tags recurring
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CreateRecurringRequest true "Template"
// @Success 201 {object} dto.RecurringResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/recurring [post]
func (h *PlanningHandler) CreateRecurring(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateRecurringRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	ctx := c.UserContext()
	if req.AccountID != 0 {
		if _, err := h.accounts.Authorize(ctx, userID, req.AccountID); err != nil {
			return respondError(c, h.logger, "create_recurring", err)
		}
	}

	rt, err := h.recurring.CreateRecurring(ctx, userID, service.CreateRecurringInput{
		AccountID:      req.AccountID,
		CategoryID:     req.CategoryID,
		Type:           req.Type,
		Amount:         req.Amount,
		Description:    req.Description,
		Frequency:      req.Frequency,
		NextOccurrence: req.NextOccurrence,
		EndDate:        req.EndDate,
	}, h.now())
	if err != nil {
		return respondError(c, h.logger, "create_recurring", err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewRecurringResponse(rt))
}

// RunRecurring godoc
// @Summary Post due recurring transactions
// @Description Posts every occurrence that is due today or earlier through the ledger
// @Tags recurring
// @Produce json
// @Security Bearer
// @Success 200 {object} service.RunResult
// @Router /api/v1/recurring/run [post]
func (h *PlanningHandler) RunRecurring(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	res, err := h.recurring.PostDue(c.UserContext(), userID, h.now())
	if err != nil {
		return respondError(c, h.logger, "run_recurring", err)
	}
	return c.JSON(res)
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized",
	})
}
