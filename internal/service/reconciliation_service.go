package service

import (
	"context"
	"time"

	"finance-tracker/internal/models"

	"go.uber.org/zap"
)

type ReconciliationStore interface {
	Create(ctx context.Context, rec *models.AccountReconciliation) error
	ListByAccountID(ctx context.Context, accountID int64) ([]*models.AccountReconciliation, error)
}

type ReconciliationService struct {
	reconciliations ReconciliationStore
	accounts        AccountStore
	logger          *zap.Logger
}

func NewReconciliationService(reconciliations ReconciliationStore, accounts AccountStore, logger *zap.Logger) *ReconciliationService {
	return &ReconciliationService{
		reconciliations: reconciliations,
		accounts:        accounts,
		logger:          logger,
	}
}

// Reconcile compares a bank reported balance against the book balance of the
// account and records the outcome. The date defaults to now.
func (s *ReconciliationService) Reconcile(ctx context.Context, accountID int64, rawBankBalance, rawDate string, now time.Time) (*models.AccountReconciliation, error) {
	bank, err := parseAmount("bank_balance", rawBankBalance)
	if err != nil {
		return nil, err
	}
	date, err := parseDate("reconciliation_date", rawDate, now.UTC())
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, storageError(s.logger, "reconcile", "account", accountID, err)
	}

	diff := bank.Sub(account.Balance)
	status := models.ReconciliationUnmatched
	if diff.IsZero() {
		status = models.ReconciliationMatched
	}

	rec := &models.AccountReconciliation{
		AccountID:          accountID,
		ReconciliationDate: date,
		BankBalance:        bank,
		BookBalance:        account.Balance,
		Difference:         diff,
		Status:             status,
	}
	if err := s.reconciliations.Create(ctx, rec); err != nil {
		return nil, storageError(s.logger, "reconcile", "account", accountID, err)
	}

	s.logger.Info("Account reconciled",
		zap.Int64("account_id", accountID),
		zap.String("status", string(status)),
		zap.String("difference", diff.String()),
	)
	return rec, nil
}

func (s *ReconciliationService) ListReconciliations(ctx context.Context, accountID int64) ([]*models.AccountReconciliation, error) {
	recs, err := s.reconciliations.ListByAccountID(ctx, accountID)
	if err != nil {
		return nil, storageError(s.logger, "list_reconciliations", "account", accountID, err)
	}
	return recs, nil
}
