package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func TestPostDueCatchesUp(t *testing.T) {
	ledgerStore := newMemLedger(account(1, "1000"))
	ledger := NewLedgerService(ledgerStore, zap.NewNop())
	store := &memRecurring{}
	svc := NewRecurringService(store, ledger, zap.NewNop())
	ctx := context.Background()
	now := time.Date(2024, time.March, 20, 15, 0, 0, 0, time.UTC)

	rt, err := svc.CreateRecurring(ctx, 1, CreateRecurringInput{
		AccountID:      1,
		Type:           "expense",
		Amount:         "100",
		Description:    "rent",
		Frequency:      "monthly",
		NextOccurrence: "2024-01-15",
	}, now)
	if err != nil {
		t.Fatalf("CreateRecurring() error = %v", err)
	}

	res, err := svc.PostDue(ctx, 1, now)
	if err != nil {
		t.Fatalf("PostDue() error = %v", err)
	}
	if res.Posted != 3 || res.Failed != 0 {
		t.Errorf("result = %+v, want 3 posted", res)
	}
	if got := ledgerStore.accounts[1].Balance; !got.Equal(decimal.NewFromInt(700)) {
		t.Errorf("balance = %s, want 700", got)
	}
	if want := time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC); !store.advanced[rt.ID].Equal(want) {
		t.Errorf("next occurrence = %s, want %s", store.advanced[rt.ID], want)
	}

	res, err = svc.PostDue(ctx, 1, now)
	if err != nil || res.Posted != 0 {
		t.Errorf("second run = %+v, %v, want nothing posted", res, err)
	}
}

func TestPostDueStopsAtEndDate(t *testing.T) {
	ledgerStore := newMemLedger(account(1, "0"))
	svc := NewRecurringService(&memRecurring{}, NewLedgerService(ledgerStore, zap.NewNop()), zap.NewNop())
	ctx := context.Background()
	now := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)

	if _, err := svc.CreateRecurring(ctx, 1, CreateRecurringInput{
		AccountID:      1,
		Type:           "income",
		Amount:         "5",
		Frequency:      "daily",
		NextOccurrence: "2024-01-01",
		EndDate:        "2024-01-03",
	}, now); err != nil {
		t.Fatal(err)
	}

	res, err := svc.PostDue(ctx, 1, now)
	if err != nil {
		t.Fatalf("PostDue() error = %v", err)
	}
	if res.Posted != 3 {
		t.Errorf("posted = %d, want 3", res.Posted)
	}
}

func TestPostDueDeactivatesTemplateOfMissingAccount(t *testing.T) {
	store := &memRecurring{}
	svc := NewRecurringService(store, NewLedgerService(newMemLedger(), zap.NewNop()), zap.NewNop())
	ctx := context.Background()
	now := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)

	if _, err := svc.CreateRecurring(ctx, 1, CreateRecurringInput{
		AccountID: 5, Amount: "5", Frequency: "weekly", NextOccurrence: "2024-01-01",
	}, now); err != nil {
		t.Fatal(err)
	}

	res, err := svc.PostDue(ctx, 1, now)
	if err != nil {
		t.Fatalf("PostDue() error = %v", err)
	}
	if res.Failed != 1 || res.Posted != 0 {
		t.Errorf("result = %+v, want one failure", res)
	}
	if len(res.Deactivated) != 1 || len(store.deactivated) != 1 || store.items[0].IsActive {
		t.Errorf("template not deactivated: result %+v, store %v", res, store.deactivated)
	}

	// The deactivated template is not retried.
	res, err = svc.PostDue(ctx, 1, now)
	if err != nil || res.Failed != 0 {
		t.Errorf("second run = %+v, %v, want no failures", res, err)
	}
}

func TestPostDueKeepsTemplateOnStorageFailure(t *testing.T) {
	ledgerStore := newMemLedger(account(1, "0"))
	ledgerStore.failWith = errors.New("connection refused")
	store := &memRecurring{}
	svc := NewRecurringService(store, NewLedgerService(ledgerStore, zap.NewNop()), zap.NewNop())
	ctx := context.Background()
	now := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)

	if _, err := svc.CreateRecurring(ctx, 1, CreateRecurringInput{
		AccountID: 1, Amount: "5", Frequency: "weekly", NextOccurrence: "2024-01-01",
	}, now); err != nil {
		t.Fatal(err)
	}

	res, err := svc.PostDue(ctx, 1, now)
	if err != nil {
		t.Fatalf("PostDue() error = %v", err)
	}
	if res.Failed != 1 || len(res.Deactivated) != 0 || !store.items[0].IsActive {
		t.Errorf("result = %+v, want the template kept active for a retry", res)
	}
}

func TestPostDueMonthEndSchedule(t *testing.T) {
	ledgerStore := newMemLedger(account(1, "0"))
	store := &memRecurring{}
	svc := NewRecurringService(store, NewLedgerService(ledgerStore, zap.NewNop()), zap.NewNop())
	ctx := context.Background()
	now := time.Date(2026, time.April, 1, 9, 0, 0, 0, time.UTC)

	rt, err := svc.CreateRecurring(ctx, 1, CreateRecurringInput{
		AccountID: 1, Type: "income", Amount: "10", Frequency: "monthly", NextOccurrence: "2026-01-31",
	}, now)
	if err != nil {
		t.Fatal(err)
	}

	res, err := svc.PostDue(ctx, 1, now)
	if err != nil {
		t.Fatalf("PostDue() error = %v", err)
	}
	// Jan 31, Feb 28 and Mar 31 are due; the next one is Apr 30.
	if res.Posted != 3 {
		t.Errorf("posted = %d, want 3", res.Posted)
	}
	if want := time.Date(2026, time.April, 30, 0, 0, 0, 0, time.UTC); !store.advanced[rt.ID].Equal(want) {
		t.Errorf("next occurrence = %s, want %s", store.advanced[rt.ID], want)
	}
}

func TestCreateRecurringValidation(t *testing.T) {
	svc := NewRecurringService(&memRecurring{}, nil, zap.NewNop())
	now := time.Now()

	for _, in := range []CreateRecurringInput{
		{Amount: "5", Frequency: "daily"},
		{AccountID: 1, Amount: "5", Frequency: "hourly"},
		{AccountID: 1, Amount: "x", Frequency: "daily"},
		{AccountID: 1, Amount: "5", Frequency: "daily", NextOccurrence: "01/02/2024"},
		{AccountID: 1, Amount: "5", Frequency: "daily", NextOccurrence: "2024-02-01", EndDate: "2024-01-01"},
	} {
		_, err := svc.CreateRecurring(context.Background(), 1, in, now)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("CreateRecurring(%+v) error = %v, want ValidationError", in, err)
		}
	}
}
