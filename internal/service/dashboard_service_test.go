package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestDashboard(t *testing.T) {
	store := newMemLedger(account(1, "1000"))
	ledger := NewLedgerService(store, zap.NewNop())
	goals := newMemGoals()
	svc := NewDashboardService(memAccounts{store}, store, goals, NewRecommendationService("ZAR", zap.NewNop()), 3, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, _, err := ledger.AddTransaction(ctx, AddTransactionInput{AccountID: 1, Type: "expense", Amount: "10"}); err != nil {
			t.Fatal(err)
		}
	}

	d, err := svc.Dashboard(ctx, 1)
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	if len(d.Recent) != 3 {
		t.Errorf("recent = %d, want 3", len(d.Recent))
	}
	// 950 saved against 3000 monthly income is below three months of reserve.
	if d.Recommendation.Percentage() != 7 || d.Recommendation.FormattedAmount != "R210.00" {
		t.Errorf("recommendation = %+v", d.Recommendation)
	}

	var nf *NotFoundError
	if _, err := svc.Dashboard(ctx, 2); !errors.As(err, &nf) {
		t.Errorf("unknown account error = %v, want NotFoundError", err)
	}
}

func TestHealthCheck(t *testing.T) {
	ok := NewHealthService(pingFunc(func(context.Context) error { return nil }), zap.NewNop())
	if err := ok.Check(context.Background()); err != nil {
		t.Errorf("Check() error = %v", err)
	}

	down := NewHealthService(pingFunc(func(ctx context.Context) error {
		if _, has := ctx.Deadline(); !has {
			t.Error("ping should run under a deadline")
		}
		return errors.New("dial tcp: connection refused")
	}), zap.NewNop())
	var perr *PersistenceError
	if err := down.Check(context.Background()); !errors.As(err, &perr) {
		t.Errorf("Check() error = %v, want PersistenceError", err)
	}
}

func TestCreateCategoryParent(t *testing.T) {
	categories := memCategories{}
	svc := NewCategoryService(categories, zap.NewNop())
	ctx := context.Background()

	parent, err := svc.CreateCategory(ctx, 1, CreateCategoryInput{Name: "Food"})
	if err != nil {
		t.Fatalf("CreateCategory() error = %v", err)
	}
	child, err := svc.CreateCategory(ctx, 1, CreateCategoryInput{Name: "Groceries", ParentID: &parent.ID})
	if err != nil || *child.ParentID != parent.ID {
		t.Fatalf("child = %+v, %v", child, err)
	}

	var verr *ValidationError
	if _, err := svc.CreateCategory(ctx, 2, CreateCategoryInput{Name: "Snacks", ParentID: &parent.ID}); !errors.As(err, &verr) {
		t.Errorf("foreign parent error = %v, want ValidationError", err)
	}
	if _, err := svc.CreateCategory(ctx, 1, CreateCategoryInput{Name: " "}); !errors.As(err, &verr) {
		t.Errorf("blank name error = %v, want ValidationError", err)
	}
}
