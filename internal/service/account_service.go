package service

import (
	"context"
	"regexp"
	"strings"

	"finance-tracker/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var startMonthPattern = regexp.MustCompile(`^[0-9]{4}-(0[1-9]|1[0-2])$`)

type AccountStore interface {
	Create(ctx context.Context, a *models.Account) error
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	ListByUserID(ctx context.Context, userID int64) ([]*models.Account, error)
	UpdateField(ctx context.Context, id int64, field models.AccountField, value any) (*models.Account, error)
	Setup(ctx context.Context, id int64, balance decimal.Decimal, startMonth *string) (*models.Account, error)
}

type CreateAccountInput struct {
	Name           string
	AccountType    string
	Currency       string
	OpeningBalance string
	MonthlyIncome  string
	MonthlyExpense string
	IsDefault      bool
}

type AccountService struct {
	accounts AccountStore
	currency string
	logger   *zap.Logger
}

func NewAccountService(accounts AccountStore, defaultCurrency string, logger *zap.Logger) *AccountService {
	return &AccountService{
		accounts: accounts,
		currency: defaultCurrency,
		logger:   logger,
	}
}

// UpdateAccountField sets one of balance, monthly_income, monthly_expense or
// start_month. Any other field name is rejected before storage is touched.
func (s *AccountService) UpdateAccountField(ctx context.Context, accountID int64, field, raw string) (*models.Account, error) {
	f := models.AccountField(strings.TrimSpace(field))

	var value any
	switch f {
	case models.FieldBalance:
		v, err := parseAmount(string(f), raw)
		if err != nil {
			return nil, err
		}
		value = v
	case models.FieldMonthlyIncome, models.FieldMonthlyExpense:
		v, err := parseNonNegative(string(f), raw)
		if err != nil {
			return nil, err
		}
		value = v
	case models.FieldStartMonth:
		m, err := parseStartMonth(raw)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, invalid(string(f), "is required")
		}
		value = *m
	default:
		return nil, invalid("field", "must be one of balance, monthly_income, monthly_expense, start_month")
	}

	account, err := s.accounts.UpdateField(ctx, accountID, f, value)
	if err != nil {
		return nil, storageError(s.logger, "update_account_field", "account", accountID, err)
	}

	s.logger.Info("Account field updated",
		zap.Int64("account_id", accountID),
		zap.String("field", string(f)),
	)
	return account, nil
}

// SetupAccount writes the balance and the optional start month together.
func (s *AccountService) SetupAccount(ctx context.Context, accountID int64, rawBalance, rawStartMonth string) (*models.Account, error) {
	balance, err := parseAmount("balance", rawBalance)
	if err != nil {
		return nil, err
	}
	startMonth, err := parseStartMonth(rawStartMonth)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.Setup(ctx, accountID, balance, startMonth)
	if err != nil {
		return nil, storageError(s.logger, "setup_account", "account", accountID, err)
	}

	s.logger.Info("Account set up", zap.Int64("account_id", accountID), zap.String("balance", balance.String()))
	return account, nil
}

func (s *AccountService) CreateAccount(ctx context.Context, userID int64, in CreateAccountInput) (*models.Account, error) {
	name := cleanText(in.Name)
	if name == "" {
		return nil, invalid("name", "is required")
	}

	accountType := models.AccountTypeChecking
	if strings.TrimSpace(in.AccountType) != "" {
		accountType = models.AccountType(strings.ToLower(strings.TrimSpace(in.AccountType)))
		if !accountType.Valid() {
			return nil, invalid("account_type", "must be one of checking, savings, credit, investment")
		}
	}

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = s.currency
	}
	if len(currency) != 3 {
		return nil, invalid("currency", "must be a three letter code")
	}

	opening, err := optionalAmount("opening_balance", in.OpeningBalance, parseAmount)
	if err != nil {
		return nil, err
	}
	income, err := optionalAmount("monthly_income", in.MonthlyIncome, parseNonNegative)
	if err != nil {
		return nil, err
	}
	expense, err := optionalAmount("monthly_expense", in.MonthlyExpense, parseNonNegative)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		UserID:         &userID,
		Name:           name,
		OpeningBalance: opening,
		MonthlyIncome:  income,
		MonthlyExpense: expense,
		Currency:       currency,
		AccountType:    accountType,
		IsDefault:      in.IsDefault,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, storageError(s.logger, "create_account", "user", userID, err)
	}

	s.logger.Info("Account created", zap.Int64("account_id", account.ID), zap.Int64("user_id", userID))
	return account, nil
}

func (s *AccountService) GetAccount(ctx context.Context, accountID int64) (*models.Account, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, storageError(s.logger, "get_account", "account", accountID, err)
	}
	return account, nil
}

func (s *AccountService) ListAccounts(ctx context.Context, userID int64) ([]*models.Account, error) {
	accounts, err := s.accounts.ListByUserID(ctx, userID)
	if err != nil {
		return nil, storageError(s.logger, "list_accounts", "user", userID, err)
	}
	return accounts, nil
}

// Authorize loads the account and checks that userID owns it. Accounts of
// other users are reported as missing.
func (s *AccountService) Authorize(ctx context.Context, userID, accountID int64) (*models.Account, error) {
	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.OwnedBy(userID) {
		return nil, &NotFoundError{Resource: "account", ID: accountID}
	}
	return account, nil
}

func parseStartMonth(raw string) (*string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if !startMonthPattern.MatchString(raw) {
		return nil, invalid("start_month", "must be in YYYY-MM format")
	}
	return &raw, nil
}

func optionalAmount(field, raw string, parse func(string, string) (decimal.Decimal, error)) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero, nil
	}
	return parse(field, raw)
}
