package dto

import "github.com/fintrack/fintrack_backend/internal/core/domain"

// ConfirmTransactionsRequest selects pending drafts for atomic confirmation.
// Order is significant: drafts are posted exactly in the order given.
type ConfirmTransactionsRequest struct {
	TransactionIDs []string `json:"transactionIDs" binding:"required,min=1"`
}

// ConfirmTransactionsResponse reports the outcome of a committed batch.
type ConfirmTransactionsResponse struct {
	ConfirmedCount    int                 `json:"confirmedCount"`
	ConfirmedIDs      []string            `json:"confirmedIDs"`
	CreatedAccountIDs []string            `json:"createdAccountIDs,omitempty"`
	Summary           domain.BatchSummary `json:"summary"`
}
