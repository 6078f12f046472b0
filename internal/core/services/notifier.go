package services

import (
	"context"
	"log/slog"

	"github.com/fintrack/fintrack_backend/internal/core/domain"
	portssvc "github.com/fintrack/fintrack_backend/internal/core/ports/services"
)

// logNotifier is the default reaction collaborator: it records the largest
// expense of a committed batch in the application log. Real deployments can
// swap in a push/webhook implementation of the same port.
type logNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a logging reaction notifier.
func NewLogNotifier(logger *slog.Logger) portssvc.ReactionNotifier {
	return &logNotifier{logger: logger}
}

var _ portssvc.ReactionNotifier = (*logNotifier)(nil)

func (n *logNotifier) NotifyLargestExpense(_ context.Context, txn domain.Transaction, summary domain.BatchSummary) {
	n.logger.Info("Largest expense in committed batch",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("amount", txn.Amount.String()),
		slog.String("description", txn.Description),
		slog.String("net_worth", summary.NetWorth.String()),
		slog.String("total_assets", summary.TotalAssets.String()),
		slog.String("total_debt", summary.TotalDebt.String()),
	)
}
