package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fintrack/fintrack_backend/internal/apperrors"
	"github.com/fintrack/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrack/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack/fintrack_backend/internal/dto"
	"github.com/fintrack/fintrack_backend/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// accountService provides account directory operations outside the
// confirmation flow.
type accountService struct {
	accountRepo     portsrepo.AccountRepositoryFacade
	defaultCurrency string
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, defaultCurrency string) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:     accountRepo,
		defaultCurrency: defaultCurrency,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount implements portssvc.AccountWriterSvc.
func (s *accountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	currency := req.CurrencyCode
	if currency == "" {
		currency = s.defaultCurrency
	}

	account := domain.Account{
		AccountID:     uuid.NewString(),
		UserID:        userID,
		Name:          req.Name,
		Group:         req.Group,
		Category:      req.Category,
		CurrencyCode:  currency,
		Status:        domain.AccountActive,
		Balance:       decimal.Zero,
		RealizedPnL:   decimal.Zero,
		UnrealizedPnL: decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if req.LinkedFundID != nil {
		account.LinkedFundID = *req.LinkedFundID
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("group", string(account.Group)))
	return &account, nil
}

// GetAccountByID implements portssvc.AccountReaderSvc.
func (s *accountService) GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if account.UserID != userID {
		// Obscure existence of other users' accounts.
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// ListAccounts implements portssvc.AccountReaderSvc.
func (s *accountService) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount implements portssvc.AccountWriterSvc.
func (s *accountService) UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.GetAccountByID(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.Category != nil {
		account.Category = *req.Category
		updated = true
	}
	if req.LinkedFundID != nil {
		account.LinkedFundID = *req.LinkedFundID
		updated = true
	}
	if !updated {
		return account, nil
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return account, nil
}

// CloseAccount implements portssvc.AccountWriterSvc. Closing is a status
// transition; balances and history are retained.
func (s *accountService) CloseAccount(ctx context.Context, userID string, accountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.GetAccountByID(ctx, userID, accountID)
	if err != nil {
		return err
	}
	if account.IsClosed() {
		return fmt.Errorf("%w: account %s is already closed", apperrors.ErrConflict, accountID)
	}

	now := time.Now().UTC()
	if err := s.accountRepo.UpdateAccountStatus(ctx, accountID, domain.AccountClosed, userID, now); err != nil {
		logger.Error("Failed to close account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return fmt.Errorf("failed to close account: %w", err)
	}

	logger.Info("Account closed", slog.String("account_id", accountID))
	return nil
}
