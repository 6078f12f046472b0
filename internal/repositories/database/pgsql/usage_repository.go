package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrack/fintrack_backend/internal/apperrors"
	"github.com/fintrack/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack/fintrack_backend/internal/core/ports/repositories"
	"github.com/fintrack/fintrack_backend/internal/models"
	"github.com/fintrack/fintrack_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUsageRepository struct {
	pool *pgxpool.Pool
}

// newPgxUsageRepository creates a new repository for usage counters.
func newPgxUsageRepository(pool *pgxpool.Pool) portsrepo.UsageRepositoryFacade {
	return &PgxUsageRepository{pool: pool}
}

// Ensure PgxUsageRepository implements portsrepo.UsageRepositoryFacade
var _ portsrepo.UsageRepositoryFacade = (*PgxUsageRepository)(nil)

// GetUsage returns the usage row for a month. A missing row reads as zero
// rather than an error; months without activity simply have no row.
func (r *PgxUsageRepository) GetUsage(ctx context.Context, userID string, month string) (*domain.Usage, error) {
	query := `SELECT user_id, month, count FROM usage_counters WHERE user_id = $1 AND month = $2;`

	var m models.Usage
	err := r.pool.QueryRow(ctx, query, userID, month).Scan(&m.UserID, &m.Month, &m.Count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.Usage{UserID: userID, Month: month}, nil
		}
		return nil, fmt.Errorf("failed to query usage for user %s month %s: %w", userID, month, err)
	}
	usage := mapping.ToDomainUsage(m)
	return &usage, nil
}

// IncrementUsageInTx upserts the month's counter by delta within the batch
// transaction.
func (r *PgxUsageRepository) IncrementUsageInTx(ctx context.Context, tx pgx.Tx, userID string, month string, delta int) error {
	if delta == 0 {
		return nil
	}
	if delta < 0 {
		return fmt.Errorf("%w: usage delta must be non-negative", apperrors.ErrValidation)
	}

	query := `
		INSERT INTO usage_counters (user_id, month, count)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, month) DO UPDATE SET count = usage_counters.count + EXCLUDED.count;
	`
	if _, err := tx.Exec(ctx, query, userID, month, delta); err != nil {
		return fmt.Errorf("failed to increment usage for user %s month %s: %w", userID, month, err)
	}
	return nil
}
