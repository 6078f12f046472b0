package pgsql

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fintrack/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack/fintrack_backend/internal/core/ports/repositories"
	"github.com/fintrack/fintrack_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxLedgerRepository commits confirmation batches. It owns the transaction
// boundary and delegates the individual write sets to the account,
// transaction and usage repositories' in-tx methods.
type PgxLedgerRepository struct {
	BaseRepository
	accounts     portsrepo.AccountRepositoryFacade
	transactions portsrepo.TransactionRepositoryFacade
	usage        portsrepo.UsageRepositoryFacade
}

// newPgxLedgerRepository creates the batch committer.
func newPgxLedgerRepository(pool *pgxpool.Pool, accounts portsrepo.AccountRepositoryFacade, transactions portsrepo.TransactionRepositoryFacade, usage portsrepo.UsageRepositoryFacade) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accounts:       accounts,
		transactions:   transactions,
		usage:          usage,
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// CommitLedgerBatch applies every write of a confirmation batch in a single
// database transaction. Existing touched accounts are row-locked first so
// concurrent batches serialize on the accounts they share.
func (r *PgxLedgerRepository) CommitLedgerBatch(ctx context.Context, batch domain.LedgerBatch) error {
	now := time.Now().UTC()

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := r.Rollback(ctx, tx); rbErr != nil {
			slog.ErrorContext(ctx, "Failed to rollback ledger batch", "error", rbErr)
		}
	}()

	existingIDs := r.touchedExistingAccountIDs(batch)
	if _, err := r.accounts.FindAccountsByIDsForUpdate(ctx, tx, existingIDs); err != nil {
		return fmt.Errorf("failed to lock accounts for batch: %w", err)
	}

	if err := r.accounts.SaveAccountsInTx(ctx, tx, batch.NewAccounts); err != nil {
		return fmt.Errorf("failed to insert batch accounts: %w", err)
	}

	if err := r.transactions.ConfirmTransactionsInTx(ctx, tx, batch.Transactions); err != nil {
		return fmt.Errorf("failed to confirm batch transactions: %w", err)
	}

	if err := r.accounts.IncrementBalancesInTx(ctx, tx, batch.BalanceDeltas, batch.UserID, now); err != nil {
		return fmt.Errorf("failed to apply batch balance deltas: %w", err)
	}

	if err := r.accounts.UpdateInvestmentDetailsInTx(ctx, tx, batch.InvestmentUpdates, batch.UserID, now); err != nil {
		return fmt.Errorf("failed to apply batch investment updates: %w", err)
	}

	if err := r.accounts.IncrementPnLInTx(ctx, tx, batch.PnLDeltas, batch.UserID, now); err != nil {
		return fmt.Errorf("failed to apply batch P&L deltas: %w", err)
	}

	if err := r.insertInvestmentLogsInTx(ctx, tx, batch.InvestmentLogs); err != nil {
		return fmt.Errorf("failed to insert batch investment logs: %w", err)
	}

	if err := r.usage.IncrementUsageInTx(ctx, tx, batch.UserID, batch.UsageMonth, batch.UsageDelta); err != nil {
		return fmt.Errorf("failed to increment usage counter: %w", err)
	}

	return r.Commit(ctx, tx)
}

// touchedExistingAccountIDs collects the ids of already-persisted accounts
// the batch writes to. Accounts created in this batch are excluded; they are
// invisible to other transactions until commit and need no lock.
func (r *PgxLedgerRepository) touchedExistingAccountIDs(batch domain.LedgerBatch) []string {
	newIDs := make(map[string]bool, len(batch.NewAccounts))
	for _, acc := range batch.NewAccounts {
		newIDs[acc.AccountID] = true
	}

	seen := make(map[string]bool)
	ids := []string{}
	add := func(id string) {
		if !newIDs[id] && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for id := range batch.BalanceDeltas {
		add(id)
	}
	for id := range batch.InvestmentUpdates {
		add(id)
	}
	for id := range batch.PnLDeltas {
		add(id)
	}
	return ids
}

// insertInvestmentLogsInTx appends the batch's lot events. Logs are
// append-only; there is no update or delete path.
func (r *PgxLedgerRepository) insertInvestmentLogsInTx(ctx context.Context, tx pgx.Tx, logs []domain.InvestmentLog) error {
	if len(logs) == 0 {
		return nil
	}

	query := `
		INSERT INTO investment_logs (log_id, account_id, user_id, action, units, price, fees, realized_pnl, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`

	pgxBatch := &pgx.Batch{}
	for _, log := range logs {
		m := mapping.ToModelInvestmentLog(log)
		pgxBatch.Queue(query, m.LogID, m.AccountID, m.UserID, m.Action, m.Units, m.Price, m.Fees, m.RealizedPnL, m.CreatedAt)
	}

	br := tx.SendBatch(ctx, pgxBatch)
	var batchErr error
	for i := 0; i < pgxBatch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to insert investment log %s: %w", logs[i].LogID, err)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close investment log batch: %w", err)
	}
	return batchErr
}
