package service

import (
	"context"
	"strings"

	"finance-tracker/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type TransactionStore interface {
	CreateWithBalance(ctx context.Context, tx *models.Transaction) (decimal.Decimal, error)
	SoftDelete(ctx context.Context, id int64) (*models.Transaction, decimal.Decimal, error)
	GetByID(ctx context.Context, id int64) (*models.Transaction, error)
	ListByAccountID(ctx context.Context, accountID int64, limit, offset int) ([]*models.Transaction, error)
}

type AddTransactionInput struct {
	AccountID   int64
	Type        string
	Amount      string
	Description string
	CategoryID  *int64
}

type LedgerService struct {
	transactions TransactionStore
	logger       *zap.Logger
}

func NewLedgerService(transactions TransactionStore, logger *zap.Logger) *LedgerService {
	return &LedgerService{
		transactions: transactions,
		logger:       logger,
	}
}

// AddTransaction validates the input, records the transaction and applies it
// to the account balance as one unit. It returns the stored transaction and
// the account balance after the change.
func (s *LedgerService) AddTransaction(ctx context.Context, in AddTransactionInput) (*models.Transaction, decimal.Decimal, error) {
	if in.AccountID == 0 {
		return nil, decimal.Zero, invalid("account_id", "is required")
	}
	if err := required("type", in.Type); err != nil {
		return nil, decimal.Zero, err
	}
	txType := models.TransactionType(strings.ToLower(strings.TrimSpace(in.Type)))
	if !txType.Valid() {
		return nil, decimal.Zero, invalid("type", "must be one of income, expense, transfer")
	}
	amount, err := parsePositive("amount", in.Amount)
	if err != nil {
		return nil, decimal.Zero, err
	}

	tx := &models.Transaction{
		AccountID:   in.AccountID,
		CategoryID:  in.CategoryID,
		Type:        txType,
		Amount:      amount,
		Description: cleanText(in.Description),
		Status:      models.StatusCompleted,
	}

	balance, err := s.transactions.CreateWithBalance(ctx, tx)
	if err != nil {
		return nil, decimal.Zero, storageError(s.logger, "add_transaction", "account", in.AccountID, err)
	}

	s.logger.Info("Transaction added",
		zap.Int64("transaction_id", tx.ID),
		zap.Int64("account_id", tx.AccountID),
		zap.String("type", string(tx.Type)),
		zap.String("amount", tx.Amount.String()),
		zap.String("balance", balance.String()),
	)
	return tx, balance, nil
}

// DeleteTransaction soft deletes a transaction and reverses its effect on the
// account balance.
func (s *LedgerService) DeleteTransaction(ctx context.Context, id int64) (*models.Transaction, decimal.Decimal, error) {
	tx, balance, err := s.transactions.SoftDelete(ctx, id)
	if err != nil {
		return nil, decimal.Zero, storageError(s.logger, "delete_transaction", "transaction", id, err)
	}

	s.logger.Info("Transaction deleted",
		zap.Int64("transaction_id", id),
		zap.Int64("account_id", tx.AccountID),
		zap.String("balance", balance.String()),
	)
	return tx, balance, nil
}

func (s *LedgerService) GetTransaction(ctx context.Context, id int64) (*models.Transaction, error) {
	tx, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, storageError(s.logger, "get_transaction", "transaction", id, err)
	}
	return tx, nil
}

// ListTransactions pages through live transactions, newest first.
func (s *LedgerService) ListTransactions(ctx context.Context, accountID int64, limit, offset int) ([]*models.Transaction, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	txs, err := s.transactions.ListByAccountID(ctx, accountID, limit, offset)
	if err != nil {
		return nil, storageError(s.logger, "list_transactions", "account", accountID, err)
	}
	return txs, nil
}
