package repositories

import (
	"context"

	"github.com/fintrack/fintrack_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// UsageRepositoryFacade tracks the per-user monthly transaction quota.
type UsageRepositoryFacade interface {
	// GetUsage returns the usage row for a month; a missing row reads as zero.
	GetUsage(ctx context.Context, userID string, month string) (*domain.Usage, error)

	// IncrementUsageInTx upserts the month's counter by delta within the
	// batch transaction.
	IncrementUsageInTx(ctx context.Context, tx pgx.Tx, userID string, month string, delta int) error
}
