package api

import (
	"errors"
	"time"

	_ "finance-tracker/docs"
	"finance-tracker/internal/api/handlers"
	"finance-tracker/internal/models"
	"finance-tracker/pkg/auth"
	"finance-tracker/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Web      *handlers.WebHandler
	Accounts *handlers.AccountHandler
	Planning *handlers.PlanningHandler
}

type Options struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	RequestTimeout time.Duration
}

func SetupRouter(h Handlers, jwtManager *auth.JWTManager, opts Options, appLogger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "finance-tracker",
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			if code == fiber.StatusInternalServerError {
				appLogger.Error("Unhandled error", zap.String("path", c.Path()), zap.Error(err))
				return c.Status(code).JSON(fiber.Map{
					"error": "Internal server error",
				})
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestID} ${status} - ${latency} ${method} ${path}\n",
	}))
	if opts.RequestTimeout > 0 {
		app.Use(middleware.RequestTimeout(opts.RequestTimeout))
	}

	// Swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Form routes on the default account
	app.Get("/", h.Web.Dashboard)
	app.Get("/health", h.Web.Health)
	app.Post("/transactions/add", h.Web.AddTransaction)
	app.Get("/account/setup", h.Web.AccountSetup)
	app.Post("/account/setup", h.Web.AccountSetup)
	app.Post("/balance", h.Web.UpdateField(models.FieldBalance, "balance"))
	app.Post("/income", h.Web.UpdateField(models.FieldMonthlyIncome, "monthly_income"))
	app.Post("/expense", h.Web.UpdateField(models.FieldMonthlyExpense, "monthly_expense"))
	app.Post("/goals/add", h.Web.AddGoal)
	app.Post("/goals/:id/update", h.Web.UpdateGoal)
	app.Post("/calculator", h.Web.Calculator)

	// Auth routes (public)
	authGroup := app.Group("/user/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	accounts := protected.Group("/accounts")
	accounts.Get("", h.Accounts.ListAccounts)
	accounts.Post("", h.Accounts.CreateAccount)
	accounts.Get("/:id", h.Accounts.GetAccount)
	accounts.Patch("/:id/fields", h.Accounts.UpdateField)
	accounts.Get("/:id/transactions", h.Accounts.ListTransactions)
	accounts.Post("/:id/transactions", h.Accounts.AddTransaction)
	accounts.Get("/:id/goals", h.Accounts.ListGoals)
	accounts.Get("/:id/reconciliations", h.Accounts.ListReconciliations)
	accounts.Post("/:id/reconciliations", h.Accounts.Reconcile)

	protected.Delete("/transactions/:id", h.Accounts.DeleteTransaction)

	protected.Get("/categories", h.Planning.ListCategories)
	protected.Post("/categories", h.Planning.CreateCategory)
	protected.Get("/budgets", h.Planning.ListBudgets)
	protected.Post("/budgets", h.Planning.CreateBudget)
	protected.Get("/recurring", h.Planning.ListRecurring)
	protected.Post("/recurring", h.Planning.CreateRecurring)
	protected.Post("/recurring/run", h.Planning.RunRecurring)

	return app
}
