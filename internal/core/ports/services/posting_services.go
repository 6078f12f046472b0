package services

import (
	"context"

	"github.com/fintrack/fintrack_backend/internal/core/domain"
	"github.com/fintrack/fintrack_backend/internal/dto"
)

// PostingSvcFacade is the ledger batch committer: it resolves the selected
// pending drafts into double-entry postings and commits them atomically.
type PostingSvcFacade interface {
	// ConfirmTransactions processes the selected drafts in the given order and
	// commits the resulting batch. A failed commit leaves accounts and drafts
	// exactly as before the call.
	ConfirmTransactions(ctx context.Context, userID string, req dto.ConfirmTransactionsRequest) (*dto.ConfirmTransactionsResponse, error)
}

// ReactionNotifier is the optional post-commit collaborator. It receives the
// largest expense of a committed batch, fire-and-forget, outside the
// transactional boundary.
type ReactionNotifier interface {
	NotifyLargestExpense(ctx context.Context, txn domain.Transaction, summary domain.BatchSummary)
}
