package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"finance-tracker/internal/models"

	"go.uber.org/zap"
)

// maxCatchUp bounds how many missed occurrences of one template a single run posts.
const maxCatchUp = 366

type RecurringStore interface {
	Create(ctx context.Context, rt *models.RecurringTransaction) error
	ListByUserID(ctx context.Context, userID int64) ([]*models.RecurringTransaction, error)
	ListDue(ctx context.Context, userID int64, day time.Time) ([]*models.RecurringTransaction, error)
	Advance(ctx context.Context, id int64, next time.Time) error
	Deactivate(ctx context.Context, id int64) error
}

type CreateRecurringInput struct {
	AccountID      int64
	CategoryID     *int64
	Type           string
	Amount         string
	Description    string
	Frequency      string
	NextOccurrence string
	EndDate        string
}

type RunResult struct {
	Posted      int     `json:"posted"`
	Failed      int     `json:"failed"`
	IDs         []int64 `json:"transaction_ids"`
	Deactivated []int64 `json:"deactivated_recurring_ids"`
}

type RecurringService struct {
	recurring RecurringStore
	ledger    *LedgerService
	logger    *zap.Logger
}

func NewRecurringService(recurring RecurringStore, ledger *LedgerService, logger *zap.Logger) *RecurringService {
	return &RecurringService{
		recurring: recurring,
		ledger:    ledger,
		logger:    logger,
	}
}

func (s *RecurringService) CreateRecurring(ctx context.Context, userID int64, in CreateRecurringInput, now time.Time) (*models.RecurringTransaction, error) {
	if in.AccountID == 0 {
		return nil, invalid("account_id", "is required")
	}
	txType := models.TransactionType(strings.ToLower(strings.TrimSpace(in.Type)))
	if txType == "" {
		txType = models.TransactionExpense
	}
	if !txType.Valid() {
		return nil, invalid("type", "must be one of income, expense, transfer")
	}
	amount, err := parsePositive("amount", in.Amount)
	if err != nil {
		return nil, err
	}
	freq := models.Frequency(strings.ToLower(strings.TrimSpace(in.Frequency)))
	if !freq.Valid() {
		return nil, invalid("frequency", "must be one of daily, weekly, monthly, yearly")
	}
	next, err := parseDate("next_occurrence", in.NextOccurrence, startOfDay(now))
	if err != nil {
		return nil, err
	}

	var endDate *time.Time
	if strings.TrimSpace(in.EndDate) != "" {
		end, err := parseDate("end_date", in.EndDate, time.Time{})
		if err != nil {
			return nil, err
		}
		if end.Before(next) {
			return nil, invalid("end_date", "must not be before next_occurrence")
		}
		endDate = &end
	}

	rt := &models.RecurringTransaction{
		UserID:         userID,
		AccountID:      in.AccountID,
		CategoryID:     in.CategoryID,
		Type:           txType,
		Amount:         amount,
		Description:    cleanText(in.Description),
		Frequency:      freq,
		AnchorDay:      next.Day(),
		NextOccurrence: next,
		EndDate:        endDate,
	}
	if err := s.recurring.Create(ctx, rt); err != nil {
		return nil, storageError(s.logger, "create_recurring", "account", in.AccountID, err)
	}

	s.logger.Info("Recurring transaction created",
		zap.Int64("recurring_id", rt.ID),
		zap.Int64("account_id", rt.AccountID),
		zap.String("frequency", string(freq)),
	)
	return rt, nil
}

func (s *RecurringService) ListRecurring(ctx context.Context, userID int64) ([]*models.RecurringTransaction, error) {
	list, err := s.recurring.ListByUserID(ctx, userID)
	if err != nil {
		return nil, storageError(s.logger, "list_recurring", "user", userID, err)
	}
	return list, nil
}

// PostDue posts every occurrence of the user's templates that fell due on or
// before now, each through the ledger, and moves the templates forward.
// A template whose posting fails on storage is left where it is and retried
// next run. One that can never post (account gone, category no longer
// usable) is deactivated.
func (s *RecurringService) PostDue(ctx context.Context, userID int64, now time.Time) (*RunResult, error) {
	today := startOfDay(now)
	due, err := s.recurring.ListDue(ctx, userID, today)
	if err != nil {
		return nil, storageError(s.logger, "post_due", "user", userID, err)
	}

	result := &RunResult{IDs: []int64{}, Deactivated: []int64{}}
	for _, rt := range due {
		for i := 0; i < maxCatchUp && rt.DueOn(today); i++ {
			tx, _, err := s.ledger.AddTransaction(ctx, AddTransactionInput{
				AccountID:   rt.AccountID,
				Type:        string(rt.Type),
				Amount:      rt.Amount.String(),
				Description: rt.Description,
				CategoryID:  rt.CategoryID,
			})
			if err != nil {
				s.logger.Warn("Failed to post recurring transaction",
					zap.Int64("recurring_id", rt.ID),
					zap.Error(err),
				)
				result.Failed++
				if permanent(err) {
					s.deactivate(ctx, rt, err, result)
				}
				break
			}

			next := rt.Following()
			if err := s.recurring.Advance(ctx, rt.ID, next); err != nil {
				// The posting above is already committed.
				result.Posted++
				result.IDs = append(result.IDs, tx.ID)
				return result, storageError(s.logger, "advance_recurring", "recurring", rt.ID, err)
			}
			rt.NextOccurrence = next
			result.Posted++
			result.IDs = append(result.IDs, tx.ID)
		}
	}

	s.logger.Info("Recurring transactions posted",
		zap.Int64("user_id", userID),
		zap.Int("posted", result.Posted),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

func (s *RecurringService) deactivate(ctx context.Context, rt *models.RecurringTransaction, cause error, result *RunResult) {
	if err := s.recurring.Deactivate(ctx, rt.ID); err != nil {
		s.logger.Error("Failed to deactivate recurring transaction",
			zap.Int64("recurring_id", rt.ID),
			zap.Error(err),
		)
		return
	}
	s.logger.Warn("Recurring transaction deactivated",
		zap.Int64("recurring_id", rt.ID),
		zap.Int64("account_id", rt.AccountID),
		zap.String("reason", cause.Error()),
	)
	result.Deactivated = append(result.Deactivated, rt.ID)
}

// permanent reports errors that a retry cannot fix.
func permanent(err error) bool {
	var (
		nf   *NotFoundError
		verr *ValidationError
	)
	return errors.As(err, &nf) || errors.As(err, &verr)
}
