package repositories

import (
	"context"

	"github.com/fintrack/fintrack_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TransactionReader defines read operations for ledger entries and drafts.
type TransactionReader interface {
	// FindTransactionByID retrieves a single entry by id.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindPendingByIDs retrieves the selected pending drafts of a user, keyed
	// by transaction id.
	FindPendingByIDs(ctx context.Context, userID string, transactionIDs []string) (map[string]domain.Transaction, error)

	// ListTransactions retrieves a user's entries filtered by status, newest
	// first, with token-based pagination.
	ListTransactions(ctx context.Context, userID string, status domain.TransactionStatus, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// ListTransactionsByAccount retrieves confirmed entries posted against an
	// account, newest first, with token-based pagination.
	ListTransactionsByAccount(ctx context.Context, userID string, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for drafts.
type TransactionWriter interface {
	// SaveTransaction persists a new pending draft.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteDraft discards a pending draft. Confirmed entries are immutable
	// and cannot be deleted.
	DeleteDraft(ctx context.Context, userID string, transactionID string) error
}

// TransactionBatchSupport defines the in-transaction operations of the ledger
// batch committer.
type TransactionBatchSupport interface {
	// ConfirmTransactionsInTx finalizes drafts: fills the resolved legs and
	// flips status to CONFIRMED. The transition is one-way.
	ConfirmTransactionsInTx(ctx context.Context, tx pgx.Tx, transactions []domain.Transaction) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	TransactionBatchSupport
}
