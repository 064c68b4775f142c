package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"finance-tracker/internal/api"
	"finance-tracker/internal/api/handlers"
	"finance-tracker/internal/migrations"
	"finance-tracker/internal/repository"
	"finance-tracker/internal/service"
	"finance-tracker/pkg/auth"
	"finance-tracker/pkg/config"
	"finance-tracker/pkg/logger"
	"finance-tracker/pkg/postgres"

	"go.uber.org/zap"
)

// @title Finance Tracker API
// @version 1.0
// @description Personal finance tracker: ledger, savings goals and savings recommendations

// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Format); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting finance tracker",
		zap.Int64("default_account_id", cfg.Ledger.DefaultAccountID),
		zap.String("currency", cfg.Ledger.DefaultCurrency),
	)

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.MigrateOnStart {
		if err := migrations.Up(ctx, db, logger.Named("migrations")); err != nil {
			appLogger.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	accountRepo := repository.NewAccountRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)
	goalRepo := repository.NewGoalRepository(db, appLogger)
	categoryRepo := repository.NewCategoryRepository(db, appLogger)
	budgetRepo := repository.NewBudgetRepository(db, appLogger)
	reconciliationRepo := repository.NewReconciliationRepository(db, appLogger)
	recurringRepo := repository.NewRecurringRepository(db, appLogger)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Initialize services
	currency := cfg.Ledger.DefaultCurrency
	ledgerService := service.NewLedgerService(txRepo, appLogger)
	accountService := service.NewAccountService(accountRepo, currency, appLogger)
	authService := service.NewAuthService(userRepo, accountService, jwtManager, appLogger)
	goalService := service.NewGoalService(goalRepo, accountRepo, appLogger)
	recService := service.NewRecommendationService(currency, appLogger)
	dashboardService := service.NewDashboardService(accountRepo, txRepo, goalRepo, recService, cfg.Ledger.RecentLimit, appLogger)
	healthService := service.NewHealthService(db, appLogger)
	categoryService := service.NewCategoryService(categoryRepo, appLogger)
	budgetService := service.NewBudgetService(budgetRepo, categoryService, appLogger)
	reconciliationService := service.NewReconciliationService(reconciliationRepo, accountRepo, appLogger)
	recurringService := service.NewRecurringService(recurringRepo, ledgerService, appLogger)

	// Initialize handlers
	h := api.Handlers{
		Auth: handlers.NewAuthHandler(authService, appLogger),
		Web: handlers.NewWebHandler(ledgerService, accountService, goalService, recService, dashboardService,
			healthService, cfg.Ledger.DefaultAccountID, appLogger),
		Accounts: handlers.NewAccountHandler(ledgerService, accountService, goalService, reconciliationService, appLogger),
		Planning: handlers.NewPlanningHandler(categoryService, budgetService, recurringService, accountService, appLogger),
	}

	// Setup router
	app := api.SetupRouter(h, jwtManager, api.Options{
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		RequestTimeout: cfg.Server.RequestTimeout,
	}, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
