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
)

// transactionService manages pending drafts and reads of the confirmed ledger.
type transactionService struct {
	transactionRepo portsrepo.TransactionRepositoryFacade
	defaultCurrency string
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(transactionRepo portsrepo.TransactionRepositoryFacade, defaultCurrency string) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: transactionRepo,
		defaultCurrency: defaultCurrency,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// CreateDraft implements portssvc.TransactionSvcFacade.
func (s *transactionService) CreateDraft(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Type != domain.TypeAssetRevaluation && !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	txnDate := now
	if req.TransactionDate != nil {
		txnDate = *req.TransactionDate
	}

	txn := domain.Transaction{
		TransactionID:     uuid.NewString(),
		UserID:            userID,
		Amount:            req.Amount,
		Type:              req.Type,
		Group:             req.Group,
		Status:            domain.StatusPending,
		Description:       req.Description,
		TargetAccountName: req.TargetAccountName,
		SourceAccountName: req.SourceAccountName,
		Category:          req.Category,
		Units:             req.Units,
		Price:             req.Price,
		Fees:              req.Fees,
		CurrencyCode:      s.defaultCurrency,
		TransactionDate:   txnDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if req.DebitAccountID != nil {
		txn.DebitAccountID = *req.DebitAccountID
	}
	if req.CreditAccountID != nil {
		txn.CreditAccountID = *req.CreditAccountID
	}
	if req.AssetLinkID != nil {
		txn.AssetLinkID = *req.AssetLinkID
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
		logger.Error("Failed to save draft", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}

	logger.Info("Draft recorded", slog.String("transaction_id", txn.TransactionID), slog.String("type", string(txn.Type)))
	return &txn, nil
}

// GetTransactionByID implements portssvc.TransactionSvcFacade.
func (s *transactionService) GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	if txn.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return txn, nil
}

// ListTransactions implements portssvc.TransactionSvcFacade.
func (s *transactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	status := domain.TransactionStatus(params.Status)
	if status != domain.StatusPending && status != domain.StatusConfirmed {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, params.Status)
	}

	txns, nextToken, err := s.transactionRepo.ListTransactions(ctx, userID, status, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

// ListAccountLedger implements portssvc.TransactionSvcFacade.
func (s *transactionService) ListAccountLedger(ctx context.Context, userID string, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	txns, nextToken, err := s.transactionRepo.ListTransactionsByAccount(ctx, userID, accountID, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger for account %s: %w", accountID, err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

// DeleteDraft implements portssvc.TransactionSvcFacade. Only pending drafts
// can be discarded; confirmed entries are immutable facts.
func (s *transactionService) DeleteDraft(ctx context.Context, userID string, transactionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.GetTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return err
	}
	if txn.Status != domain.StatusPending {
		return fmt.Errorf("%w: transaction %s is confirmed and cannot be deleted", apperrors.ErrConflict, transactionID)
	}

	if err := s.transactionRepo.DeleteDraft(ctx, userID, transactionID); err != nil {
		logger.Error("Failed to delete draft", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}
