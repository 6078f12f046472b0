package repositories

import (
	"context"

	"github.com/fintrack/fintrack_backend/internal/core/domain"
)

// LedgerRepositoryFacade commits a whole confirmation batch atomically.
type LedgerRepositoryFacade interface {
	// CommitLedgerBatch applies every write in the batch (account creations,
	// draft confirmations, balance increments, investment updates, lot logs
	// and the usage counter) inside one database transaction. Either the
	// entire batch commits or none of it does.
	CommitLedgerBatch(ctx context.Context, batch domain.LedgerBatch) error
}
