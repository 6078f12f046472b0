package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fintrack/fintrack_backend/internal/apperrors"
	"github.com/fintrack/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack/fintrack_backend/internal/core/ports/repositories"
	"github.com/fintrack/fintrack_backend/internal/models"
	"github.com/fintrack/fintrack_backend/internal/utils/mapping"
	"github.com/fintrack/fintrack_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `transaction_id, user_id, amount, transaction_type, transaction_group, status, description, debit_account_id, credit_account_id, asset_link_id, target_account_name, source_account_name, category, units, price, fees, currency_code, transaction_date, created_at, created_by, last_updated_at, last_updated_by`

const defaultTransactionLimit = 20

type PgxTransactionRepository struct {
	pool *pgxpool.Pool
}

// newPgxTransactionRepository creates a new repository for ledger entries.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{pool: pool}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// scanTransaction reads one entry row into a model. The column order must
// stay in sync with transactionColumns.
func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	var debitID, creditID, assetLinkID sql.NullString
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.Amount,
		&m.Type,
		&m.TxnGroup,
		&m.Status,
		&m.Description,
		&debitID,
		&creditID,
		&assetLinkID,
		&m.TargetAccountName,
		&m.SourceAccountName,
		&m.Category,
		&m.Units,
		&m.Price,
		&m.Fees,
		&m.CurrencyCode,
		&m.TransactionDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Transaction{}, err
	}
	if debitID.Valid {
		m.DebitAccountID = debitID.String
	}
	if creditID.Valid {
		m.CreditAccountID = creditID.String
	}
	if assetLinkID.Valid {
		m.AssetLinkID = assetLinkID.String
	}
	return m, nil
}

// SaveTransaction persists a new pending draft.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);
	`
	_, err := r.pool.Exec(ctx, query,
		m.TransactionID,
		m.UserID,
		m.Amount,
		m.Type,
		m.TxnGroup,
		m.Status,
		m.Description,
		nullableString(m.DebitAccountID),
		nullableString(m.CreditAccountID),
		nullableString(m.AssetLinkID),
		m.TargetAccountName,
		m.SourceAccountName,
		m.Category,
		m.Units,
		m.Price,
		m.Fees,
		m.CurrencyCode,
		m.TransactionDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a single entry by id.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	m, err := scanTransaction(r.pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

// FindPendingByIDs retrieves the selected pending drafts of a user, keyed by
// transaction id. Confirmed or foreign entries are simply absent from the map.
func (r *PgxTransactionRepository) FindPendingByIDs(ctx context.Context, userID string, transactionIDs []string) (map[string]domain.Transaction, error) {
	if len(transactionIDs) == 0 {
		return map[string]domain.Transaction{}, nil
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND status = $2 AND transaction_id = ANY($3);
	`

	rows, err := r.pool.Query(ctx, query, userID, string(domain.StatusPending), transactionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending drafts: %w", err)
	}
	defer rows.Close()

	drafts := make(map[string]domain.Transaction)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan draft row: %w", err)
		}
		drafts[m.TransactionID] = mapping.ToDomainTransaction(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating draft rows: %w", err)
	}

	return drafts, nil
}

// ListTransactions retrieves a user's entries filtered by status, newest
// first, with token-based pagination.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string, status domain.TransactionStatus, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = defaultTransactionLimit
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND status = $2
	`
	args := []any{userID, string(status)}

	if nextToken != nil && *nextToken != "" {
		txnDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (transaction_date, created_at) < ($3, $4)`
		args = append(args, txnDate, createdAt)
	}

	query += fmt.Sprintf(` ORDER BY transaction_date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1) // fetch one extra row to detect a next page

	return r.queryPage(ctx, query, args, limit)
}

// ListTransactionsByAccount retrieves confirmed entries posted against an
// account, newest first, with token-based pagination.
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, userID string, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = defaultTransactionLimit
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND status = $2
		  AND (debit_account_id = $3 OR credit_account_id = $3)
	`
	args := []any{userID, string(domain.StatusConfirmed), accountID}

	if nextToken != nil && *nextToken != "" {
		txnDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (transaction_date, created_at) < ($4, $5)`
		args = append(args, txnDate, createdAt)
	}

	query += fmt.Sprintf(` ORDER BY transaction_date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	return r.queryPage(ctx, query, args, limit)
}

// queryPage runs a paginated entry query and builds the next-page token from
// the last returned row.
func (r *PgxTransactionRepository) queryPage(ctx context.Context, query string, args []any, limit int) ([]domain.Transaction, *string, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, mapping.ToDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	var token *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		t := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		token = &t
	}

	return txns, token, nil
}

// DeleteDraft discards a pending draft. Confirmed entries never match the
// status filter, so they cannot be deleted through this path.
func (r *PgxTransactionRepository) DeleteDraft(ctx context.Context, userID string, transactionID string) error {
	query := `
		DELETE FROM transactions
		WHERE transaction_id = $1 AND user_id = $2 AND status = $3;
	`
	ct, err := r.pool.Exec(ctx, query, transactionID, userID, string(domain.StatusPending))
	if err != nil {
		return fmt.Errorf("failed to delete draft %s: %w", transactionID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ConfirmTransactionsInTx finalizes drafts within the batch transaction:
// fills the resolved legs and flips status to CONFIRMED. The WHERE clause
// keeps the transition one-way.
func (r *PgxTransactionRepository) ConfirmTransactionsInTx(ctx context.Context, tx pgx.Tx, transactions []domain.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	query := `
		UPDATE transactions
		SET status = $2, debit_account_id = $3, credit_account_id = $4, asset_link_id = $5,
		    transaction_group = $6, currency_code = $7, last_updated_at = $8, last_updated_by = $9
		WHERE transaction_id = $1 AND status = $10;
	`

	batch := &pgx.Batch{}
	for _, txn := range transactions {
		m := mapping.ToModelTransaction(txn)
		batch.Queue(query,
			m.TransactionID,
			m.Status,
			nullableString(m.DebitAccountID),
			nullableString(m.CreditAccountID),
			nullableString(m.AssetLinkID),
			m.TxnGroup,
			m.CurrencyCode,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
			string(domain.StatusPending),
		)
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = fmt.Errorf("failed to confirm transaction %s: %w", transactions[i].TransactionID, err)
			}
		} else if ct.RowsAffected() == 0 && batchErr == nil {
			batchErr = fmt.Errorf("%w: transaction %s is not a pending draft", apperrors.ErrConflict, transactions[i].TransactionID)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close confirmation batch: %w", err)
	}
	return batchErr
}
