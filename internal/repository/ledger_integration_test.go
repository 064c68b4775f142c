package repository

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"finance-tracker/internal/migrations"
	"finance-tracker/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Runs against a real database when TEST_DATABASE_URL is set.
func TestConcurrentIncomeHasNoLostUpdates(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		t.Fatalf("pgxpool.New() error = %v", err)
	}
	defer pool.Close()

	if err := migrations.Up(ctx, pool, zap.NewNop()); err != nil {
		t.Fatalf("migrations.Up() error = %v", err)
	}

	accounts := NewAccountRepository(pool, zap.NewNop())
	ledger := NewTransactionRepository(pool, zap.NewNop())

	start := decimal.NewFromInt(1000)
	account := &models.Account{
		Name:           "concurrency",
		OpeningBalance: start,
		Currency:       "ZAR",
		AccountType:    models.AccountTypeChecking,
	}
	if err := accounts.Create(ctx, account); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.CreateWithBalance(ctx, &models.Transaction{
				AccountID: account.ID,
				Type:      models.TransactionIncome,
				Amount:    decimal.NewFromInt(1),
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("CreateWithBalance() error = %v", err)
		}
	}

	got, err := accounts.GetByID(ctx, account.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if want := start.Add(decimal.NewFromInt(n)); !got.Balance.Equal(want) {
		t.Errorf("balance = %s, want %s", got.Balance, want)
	}
}
