package repositories

import (
	"context"
	"time"

	"github.com/fintrack/fintrack_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves every account owned by a user, in creation order.
	// The confirmation flow relies on this order for category fallbacks.
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's mutable details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// UpdateAccountStatus transitions an account's lifecycle status.
	UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, userID string, now time.Time) error
}

// AccountBatchSupport defines the in-transaction operations the ledger batch
// committer needs. All methods must be called with the batch's pgx.Tx.
type AccountBatchSupport interface {
	// SaveAccountsInTx inserts the accounts synthesized during a batch.
	SaveAccountsInTx(ctx context.Context, tx pgx.Tx, accounts []domain.Account) error

	// FindAccountsByIDsForUpdate selects accounts and locks the rows for update.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// IncrementBalancesInTx applies balance deltas as increments, never as
	// absolute overwrites.
	IncrementBalancesInTx(ctx context.Context, tx pgx.Tx, balanceDeltas map[string]decimal.Decimal, userID string, now time.Time) error

	// UpdateInvestmentDetailsInTx replaces the WAC state of lot-accounted accounts.
	UpdateInvestmentDetailsInTx(ctx context.Context, tx pgx.Tx, updates map[string]domain.InvestmentDetails, userID string, now time.Time) error

	// IncrementPnLInTx applies realized/unrealized P&L accumulator increments.
	IncrementPnLInTx(ctx context.Context, tx pgx.Tx, deltas map[string]domain.PnLDelta, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountBatchSupport
}
