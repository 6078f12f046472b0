package services

import (
	"context"

	"github.com/fintrack/fintrack_backend/internal/core/domain"
	"github.com/fintrack/fintrack_backend/internal/dto"
)

// TransactionSvcFacade manages pending drafts and reads the confirmed ledger.
type TransactionSvcFacade interface {
	// CreateDraft records a new pending draft from user input or import.
	CreateDraft(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// GetTransactionByID retrieves one entry owned by the user.
	GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error)

	// ListTransactions lists a user's entries by status with pagination.
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// ListAccountLedger lists confirmed entries posted against an account.
	ListAccountLedger(ctx context.Context, userID string, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// DeleteDraft discards a pending draft.
	DeleteDraft(ctx context.Context, userID string, transactionID string) error
}
