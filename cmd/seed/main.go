package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/migrations"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repository"
	"finance-tracker/internal/service"
	"finance-tracker/pkg/auth"
	"finance-tracker/pkg/config"
	"finance-tracker/pkg/logger"
	"finance-tracker/pkg/postgres"

	"github.com/brianvoe/gofakeit/v6"
	"go.uber.org/zap"
)

var seedCategories = []string{"Salary", "Groceries", "Rent", "Transport", "Entertainment", "Utilities"}

func main() {
	email := flag.String("email", "demo@example.com", "demo user email")
	password := flag.String("password", "demo-password", "demo user password")
	count := flag.Int("transactions", 60, "number of fake transactions to post")
	seed := flag.Int64("seed", 42, "random seed for fake data")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Format); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := migrations.Up(ctx, db, appLogger); err != nil {
		appLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db, appLogger)
	accountRepo := repository.NewAccountRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)
	accountService := service.NewAccountService(accountRepo, cfg.Ledger.DefaultCurrency, appLogger)
	authService := service.NewAuthService(userRepo, accountService, jwtManager, appLogger)
	categoryService := service.NewCategoryService(repository.NewCategoryRepository(db, appLogger), appLogger)
	goalService := service.NewGoalService(repository.NewGoalRepository(db, appLogger), accountRepo, appLogger)
	ledgerService := service.NewLedgerService(txRepo, appLogger)

	appLogger.Info("Starting database seeding...")

	user, err := ensureUser(ctx, authService, userRepo, *email, *password)
	if err != nil {
		appLogger.Fatal("Failed to create demo user", zap.Error(err))
	}

	accounts, err := accountService.ListAccounts(ctx, user.ID)
	if err != nil || len(accounts) == 0 {
		appLogger.Fatal("Demo user has no account", zap.Error(err))
	}
	account := accounts[0]

	if _, err := accountService.SetupAccount(ctx, account.ID, "10000", time.Now().Format("2006-01")); err != nil {
		appLogger.Fatal("Failed to set up account", zap.Error(err))
	}
	for field, value := range map[string]string{"monthly_income": "25000", "monthly_expense": "18000"} {
		if _, err := accountService.UpdateAccountField(ctx, account.ID, field, value); err != nil {
			appLogger.Fatal("Failed to set account field", zap.String("field", field), zap.Error(err))
		}
	}

	categories := make(map[string]int64, len(seedCategories))
	for _, name := range seedCategories {
		c, err := categoryService.CreateCategory(ctx, user.ID, service.CreateCategoryInput{Name: name})
		if err != nil {
			appLogger.Warn("Failed to create category", zap.String("name", name), zap.Error(err))
			continue
		}
		categories[name] = c.ID
	}

	if _, err := goalService.AddGoal(ctx, service.AddGoalInput{
		AccountID:    account.ID,
		Name:         "Emergency fund",
		TargetAmount: "75000",
		Category:     "safety",
	}); err != nil {
		appLogger.Warn("Failed to create goal", zap.Error(err))
	}

	posted := postHistory(ctx, ledgerService, account.ID, categories, gofakeit.New(*seed), *count, appLogger)

	appLogger.Info("Database seeding completed successfully!",
		zap.Int64("user_id", user.ID),
		zap.Int64("account_id", account.ID),
		zap.Int("transactions", posted),
	)
}

// ensureUser registers the demo user, or loads it when it already exists.
func ensureUser(ctx context.Context, authService *service.AuthService, users *repository.UserRepository, email, password string) (*models.User, error) {
	_, err := authService.Register(ctx, &dto.RegisterRequest{
		Email:     email,
		Password:  password,
		FirstName: "Demo",
		LastName:  "User",
	})
	if err != nil && !errors.Is(err, service.ErrUserExists) {
		return nil, err
	}
	return users.GetByEmail(ctx, email)
}

// postHistory posts one salary followed by random expenses through the ledger
// so every balance change goes through the same path as the API.
func postHistory(
	ctx context.Context,
	ledger *service.LedgerService,
	accountID int64,
	categories map[string]int64,
	faker *gofakeit.Faker,
	count int,
	logger *zap.Logger,
) int {
	expenseCategories := []string{"Groceries", "Rent", "Transport", "Entertainment", "Utilities"}

	posted := 0
	for i := 0; i < count; i++ {
		in := service.AddTransactionInput{AccountID: accountID}
		if i%20 == 0 {
			in.Type = string(models.TransactionIncome)
			in.Amount = "25000"
			in.Description = "Salary " + faker.Company()
			in.CategoryID = categoryRef(categories, "Salary")
		} else {
			name := expenseCategories[faker.Number(0, len(expenseCategories)-1)]
			in.Type = string(models.TransactionExpense)
			in.Amount = fmt.Sprintf("%.2f", faker.Price(20, 900))
			in.Description = name + " at " + faker.Company()
			in.CategoryID = categoryRef(categories, name)
		}

		if _, _, err := ledger.AddTransaction(ctx, in); err != nil {
			logger.Warn("Failed to post transaction", zap.Int("index", i), zap.Error(err))
			continue
		}
		posted++
	}
	return posted
}

func categoryRef(categories map[string]int64, name string) *int64 {
	id, ok := categories[name]
	if !ok {
		return nil
	}
	return &id
}
