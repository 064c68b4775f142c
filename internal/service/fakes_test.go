package service

import (
	"context"
	"sync"
	"time"

	"finance-tracker/internal/models"
	"finance-tracker/internal/repository"

	"github.com/shopspring/decimal"
)

// memLedger is an in-memory stand-in for the account and transaction
// repositories. Balance changes happen under one lock.
type memLedger struct {
	mu       sync.Mutex
	accounts map[int64]*models.Account
	txs      map[int64]*models.Transaction
	deleted  map[int64]bool
	nextID   int64
	failWith error
	updates  int
}

func newMemLedger(accounts ...*models.Account) *memLedger {
	m := &memLedger{
		accounts: map[int64]*models.Account{},
		txs:      map[int64]*models.Transaction{},
		deleted:  map[int64]bool{},
	}
	for _, a := range accounts {
		m.accounts[a.ID] = a
		if a.ID > m.nextID {
			m.nextID = a.ID
		}
	}
	return m
}

func (m *memLedger) CreateWithBalance(_ context.Context, tx *models.Transaction) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return decimal.Zero, m.failWith
	}
	a, ok := m.accounts[tx.AccountID]
	if !ok {
		return decimal.Zero, repository.ErrNotFound
	}
	m.nextID++
	tx.ID = m.nextID
	tx.Currency = a.Currency
	tx.TransactionDate = time.Now()
	m.txs[tx.ID] = tx
	a.Balance = a.Balance.Add(tx.Type.BalanceDelta(tx.Amount))
	return a.Balance, nil
}

func (m *memLedger) SoftDelete(_ context.Context, id int64) (*models.Transaction, decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.txs[id]
	if !ok || m.deleted[id] {
		return nil, decimal.Zero, repository.ErrNotFound
	}
	m.deleted[id] = true
	a := m.accounts[tx.AccountID]
	a.Balance = a.Balance.Sub(tx.Type.BalanceDelta(tx.Amount))
	return tx, a.Balance, nil
}

func (m *memLedger) GetByID(_ context.Context, id int64) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.txs[id]
	if !ok || m.deleted[id] {
		return nil, repository.ErrNotFound
	}
	return tx, nil
}

func (m *memLedger) ListByAccountID(_ context.Context, accountID int64, limit, offset int) ([]*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Transaction
	for id := m.nextID; id > 0; id-- {
		tx, ok := m.txs[id]
		if !ok || m.deleted[id] || tx.AccountID != accountID {
			continue
		}
		if offset > 0 {
			offset--
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, tx)
	}
	return out, nil
}

// memAccounts implements AccountStore on top of the same account map.
type memAccounts struct {
	*memLedger
}

func (m memAccounts) Create(_ context.Context, a *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.nextID++
	a.ID = m.nextID
	a.Balance = a.OpeningBalance
	m.accounts[a.ID] = a
	return nil
}

func (m memAccounts) GetByID(_ context.Context, id int64) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m memAccounts) ListByUserID(_ context.Context, userID int64) ([]*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Account
	for _, a := range m.accounts {
		if a.OwnedBy(userID) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m memAccounts) UpdateField(_ context.Context, id int64, field models.AccountField, value any) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates++
	a, ok := m.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	switch field {
	case models.FieldBalance:
		v := value.(decimal.Decimal)
		a.OpeningBalance = a.OpeningBalance.Add(v.Sub(a.Balance))
		a.Balance = v
	case models.FieldMonthlyIncome:
		a.MonthlyIncome = value.(decimal.Decimal)
	case models.FieldMonthlyExpense:
		a.MonthlyExpense = value.(decimal.Decimal)
	case models.FieldStartMonth:
		s := value.(string)
		a.StartMonth = &s
	default:
		return nil, repository.ErrUnknownField
	}
	cp := *a
	return &cp, nil
}

func (m memAccounts) Setup(_ context.Context, id int64, balance decimal.Decimal, startMonth *string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	a.OpeningBalance = a.OpeningBalance.Add(balance.Sub(a.Balance))
	a.Balance = balance
	a.StartMonth = startMonth
	cp := *a
	return &cp, nil
}

type memGoals struct {
	mu    sync.Mutex
	goals map[int64]*models.SavingsGoal
	next  int64
}

func newMemGoals() *memGoals {
	return &memGoals{goals: map[int64]*models.SavingsGoal{}}
}

func (m *memGoals) Create(_ context.Context, g *models.SavingsGoal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	g.ID = m.next
	m.goals[g.ID] = g
	return nil
}

func (m *memGoals) GetByID(_ context.Context, id int64) (*models.SavingsGoal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return g, nil
}

func (m *memGoals) UpdateCurrentAmount(_ context.Context, id int64, amount decimal.Decimal) (*models.SavingsGoal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	g.CurrentAmount = amount
	return g, nil
}

func (m *memGoals) ListByAccountID(_ context.Context, accountID int64) ([]*models.SavingsGoal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.SavingsGoal
	for id := int64(1); id <= m.next; id++ {
		if g, ok := m.goals[id]; ok && g.AccountID == accountID {
			out = append(out, g)
		}
	}
	return out, nil
}

type memRecurring struct {
	items       []*models.RecurringTransaction
	advanced    map[int64]time.Time
	advanceErr  error
	deactivated []int64
}

func (m *memRecurring) Create(_ context.Context, rt *models.RecurringTransaction) error {
	rt.ID = int64(len(m.items) + 1)
	rt.IsActive = true
	m.items = append(m.items, rt)
	return nil
}

func (m *memRecurring) ListByUserID(_ context.Context, userID int64) ([]*models.RecurringTransaction, error) {
	var out []*models.RecurringTransaction
	for _, rt := range m.items {
		if rt.UserID == userID {
			out = append(out, rt)
		}
	}
	return out, nil
}

func (m *memRecurring) ListDue(_ context.Context, userID int64, day time.Time) ([]*models.RecurringTransaction, error) {
	var out []*models.RecurringTransaction
	for _, rt := range m.items {
		if rt.UserID == userID && rt.IsActive && !rt.NextOccurrence.After(day) {
			cp := *rt
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memRecurring) Advance(_ context.Context, id int64, next time.Time) error {
	if m.advanceErr != nil {
		return m.advanceErr
	}
	if m.advanced == nil {
		m.advanced = map[int64]time.Time{}
	}
	m.advanced[id] = next
	for _, rt := range m.items {
		if rt.ID == id {
			rt.NextOccurrence = next
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memRecurring) Deactivate(_ context.Context, id int64) error {
	for _, rt := range m.items {
		if rt.ID == id {
			rt.IsActive = false
			m.deactivated = append(m.deactivated, id)
			return nil
		}
	}
	return repository.ErrNotFound
}

func account(id int64, balance string) *models.Account {
	owner := int64(1)
	return &models.Account{
		ID:            id,
		UserID:        &owner,
		Name:          "Main Account",
		Balance:       decimal.RequireFromString(balance),
		MonthlyIncome: decimal.NewFromInt(3000),
		Currency:      "ZAR",
		AccountType:   models.AccountTypeChecking,
	}
}
