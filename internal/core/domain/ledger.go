package domain

import "github.com/shopspring/decimal"

// PnLDelta holds increment-only adjustments to an account's P&L accumulators.
type PnLDelta struct {
	Realized   decimal.Decimal
	Unrealized decimal.Decimal
}

// LedgerBatch is the complete write set of one confirmation call. The
// repository commits all of it in a single database transaction; either the
// whole batch is applied or none of it is.
type LedgerBatch struct {
	UserID string

	// Accounts synthesized by the resolver during this batch.
	NewAccounts []Account

	// Drafts finalized to CONFIRMED with resolved legs, in processing order.
	Transactions []Transaction

	// Net balance increment per account id. Applied as deltas, never as
	// absolute overwrites, so concurrent batches compose.
	BalanceDeltas map[string]decimal.Decimal

	// New WAC state per lot-accounted account id.
	InvestmentUpdates map[string]InvestmentDetails

	// P&L accumulator increments per account id.
	PnLDeltas map[string]PnLDelta

	// Append-only lot events, in processing order.
	InvestmentLogs []InvestmentLog

	// Monthly usage counter increment, part of the same atomic write.
	UsageMonth string
	UsageDelta int
}

// BatchSummary is the post-commit snapshot handed to the reaction collaborator.
type BatchSummary struct {
	NetWorth    decimal.Decimal `json:"netWorth"`
	TotalAssets decimal.Decimal `json:"totalAssets"`
	TotalDebt   decimal.Decimal `json:"totalDebt"`
}
