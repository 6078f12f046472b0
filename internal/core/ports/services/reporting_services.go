package services

import (
	"context"

	"github.com/fintrack/fintrack_backend/internal/core/domain"
)

// ReportingSvcFacade derives headline figures from a user's accounts.
type ReportingSvcFacade interface {
	// GetSummary computes net worth, totals and P&L from current balances.
	GetSummary(ctx context.Context, userID string) (*domain.Summary, error)

	// GetUsage returns the user's transaction count for the given month
	// ("2006-01"); empty month means the current month.
	GetUsage(ctx context.Context, userID string, month string) (*domain.Usage, error)
}
