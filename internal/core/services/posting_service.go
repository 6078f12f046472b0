package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fintrack/fintrack_backend/internal/apperrors"
	"github.com/fintrack/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrack/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack/fintrack_backend/internal/dto"
	"github.com/fintrack/fintrack_backend/internal/middleware"
	"github.com/fintrack/fintrack_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var (
	// ErrBatchTooLarge is returned before any work begins when the selection
	// exceeds the configured cap.
	ErrBatchTooLarge = fmt.Errorf("%w: batch exceeds the confirmation cap", apperrors.ErrValidation)

	// ErrConfirmInFlight is returned when a confirmation for the same service
	// instance is already running. Both calls would mutate the same working
	// snapshot, so they must not interleave.
	ErrConfirmInFlight = fmt.Errorf("%w: a confirmation is already in progress", apperrors.ErrConflict)
)

// postingService is the ledger batch committer. It resolves each selected
// draft through the posting rules table and the valuation engine, accumulates
// per-account balance deltas, and commits everything as one atomic batch.
type postingService struct {
	accountRepo     portsrepo.AccountRepositoryFacade
	transactionRepo portsrepo.TransactionRepositoryFacade
	ledgerRepo      portsrepo.LedgerRepositoryFacade
	notifier        portssvc.ReactionNotifier

	batchCap        int
	defaultCurrency string

	mu sync.Mutex
}

// NewPostingService creates the ledger batch committer. notifier may be nil.
func NewPostingService(
	accountRepo portsrepo.AccountRepositoryFacade,
	transactionRepo portsrepo.TransactionRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	notifier portssvc.ReactionNotifier,
	batchCap int,
	defaultCurrency string,
) portssvc.PostingSvcFacade {
	return &postingService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		ledgerRepo:      ledgerRepo,
		notifier:        notifier,
		batchCap:        batchCap,
		defaultCurrency: defaultCurrency,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// ConfirmTransactions implements portssvc.PostingSvcFacade.
func (s *postingService) ConfirmTransactions(ctx context.Context, userID string, req dto.ConfirmTransactionsRequest) (*dto.ConfirmTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Input rejection happens before any work: no reads, no side effects.
	if len(req.TransactionIDs) > s.batchCap {
		return nil, fmt.Errorf("%w: %d selected, cap is %d", ErrBatchTooLarge, len(req.TransactionIDs), s.batchCap)
	}

	if !s.mu.TryLock() {
		return nil, ErrConfirmInFlight
	}
	defer s.mu.Unlock()

	drafts, err := s.transactionRepo.FindPendingByIDs(ctx, userID, req.TransactionIDs)
	if err != nil {
		logger.Error("Failed to fetch pending drafts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch pending drafts: %w", err)
	}

	snapshot, err := s.accountRepo.ListAccounts(ctx, userID)
	if err != nil {
		logger.Error("Failed to fetch account snapshot", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch account snapshot: %w", err)
	}

	now := time.Now().UTC()
	resolver := newAccountResolver(userID, s.defaultCurrency, snapshot, now)
	engine := newValuationEngine(now)

	batch := domain.LedgerBatch{
		UserID:            userID,
		BalanceDeltas:     make(map[string]decimal.Decimal),
		InvestmentUpdates: make(map[string]domain.InvestmentDetails),
		PnLDeltas:         make(map[string]domain.PnLDelta),
		UsageMonth:        now.Format("2006-01"),
	}

	// Processing order is exactly the order given: later drafts may reference
	// accounts created by earlier ones through the resolver's working snapshot.
	for _, id := range req.TransactionIDs {
		draft, ok := drafts[id]
		if !ok {
			return nil, fmt.Errorf("%w: transaction %s is not a pending draft", apperrors.ErrNotFound, id)
		}

		if err := validateDraftAmount(draft); err != nil {
			return nil, err
		}

		legs, err := resolvePostingLegs(resolver, draft)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve postings for %s: %w", id, err)
		}

		if !knownTransactionType(draft.Type) {
			logger.Warn("Unknown transaction type posted as daily cashflow",
				slog.String("transaction_id", id), slog.String("type", string(draft.Type)))
		}
		if legs.valuation == valuationSell && legs.assetLink.Investment != nil &&
			draft.Units.GreaterThan(legs.assetLink.Investment.TotalUnits) {
			logger.Warn("Sell exceeds held units, position will clamp at zero",
				slog.String("transaction_id", id), slog.String("account_id", legs.assetLink.AccountID))
		}

		if err := s.post(resolver, engine, &batch, draft, legs, now); err != nil {
			return nil, err
		}
	}

	batch.NewAccounts = zeroedForInsert(resolver.newAccounts())
	batch.UsageDelta = len(batch.Transactions)

	if err := s.ledgerRepo.CommitLedgerBatch(ctx, batch); err != nil {
		// Atomicity by construction: nothing was applied.
		logger.Error("Ledger batch commit failed", slog.String("error", err.Error()), slog.Int("batch_size", len(batch.Transactions)))
		return nil, fmt.Errorf("failed to commit ledger batch: %w", err)
	}

	summary := summarizeAccounts(resolver.snapshotAccounts())

	logger.Info("Ledger batch committed",
		slog.Int("confirmed", len(batch.Transactions)),
		slog.Int("accounts_created", len(batch.NewAccounts)),
	)

	s.reactToLargestExpense(ctx, batch.Transactions, summary)

	resp := &dto.ConfirmTransactionsResponse{
		ConfirmedCount: len(batch.Transactions),
		Summary:        summary,
	}
	for _, txn := range batch.Transactions {
		resp.ConfirmedIDs = append(resp.ConfirmedIDs, txn.TransactionID)
	}
	for _, acc := range batch.NewAccounts {
		resp.CreatedAccountIDs = append(resp.CreatedAccountIDs, acc.AccountID)
	}
	return resp, nil
}

// post applies one resolved draft to the working snapshot and the batch:
// valuation side effects, the double-entry balance deltas, and the finalized
// transaction record.
func (s *postingService) post(r *accountResolver, engine *valuationEngine, batch *domain.LedgerBatch, draft domain.Transaction, legs postingLegs, now time.Time) error {
	magnitude := draft.Amount.Abs()

	switch legs.valuation {
	case valuationBuy:
		log := engine.ApplyBuy(legs.assetLink, draft.Units, draft.Price, draft.Fees)
		batch.InvestmentLogs = append(batch.InvestmentLogs, log)
		batch.InvestmentUpdates[legs.assetLink.AccountID] = *legs.assetLink.Investment

	case valuationSell:
		realized, log := engine.ApplySell(legs.assetLink, draft.Units, draft.Price, draft.Fees)
		batch.InvestmentLogs = append(batch.InvestmentLogs, log)
		batch.InvestmentUpdates[legs.assetLink.AccountID] = *legs.assetLink.Investment

		pnl := batch.PnLDeltas[legs.assetLink.AccountID]
		pnl.Realized = pnl.Realized.Add(realized)
		batch.PnLDeltas[legs.assetLink.AccountID] = pnl

		// The realized P&L lands on the linked fund as a plain increment,
		// outside the double-entry pair.
		fund := linkedFund(r, legs.assetLink)
		applyDelta(batch, fund, realized)

	case valuationRevalue:
		gain := draft.Amount // signed for revaluations
		log := engine.ApplyRevalue(legs.assetLink, draft.Price, gain)
		batch.InvestmentLogs = append(batch.InvestmentLogs, log)
		batch.InvestmentUpdates[legs.assetLink.AccountID] = *legs.assetLink.Investment

		pnl := batch.PnLDeltas[legs.assetLink.AccountID]
		pnl.Unrealized = pnl.Unrealized.Add(gain)
		batch.PnLDeltas[legs.assetLink.AccountID] = pnl
	}

	debitDelta, creditDelta, err := accounting.EntryDeltas(legs.debit.Group, legs.credit.Group, magnitude)
	if err != nil {
		return fmt.Errorf("failed to compute balance deltas for %s: %w", draft.TransactionID, err)
	}
	applyDelta(batch, legs.debit, debitDelta)
	applyDelta(batch, legs.credit, creditDelta)

	confirmed := draft
	confirmed.Status = domain.StatusConfirmed
	confirmed.DebitAccountID = legs.debit.AccountID
	confirmed.CreditAccountID = legs.credit.AccountID
	if legs.assetLink != nil {
		confirmed.AssetLinkID = legs.assetLink.AccountID
	}
	if confirmed.CurrencyCode == "" {
		confirmed.CurrencyCode = s.defaultCurrency
	}
	confirmed.LastUpdatedAt = now
	confirmed.LastUpdatedBy = draft.UserID
	batch.Transactions = append(batch.Transactions, confirmed)
	return nil
}

// applyDelta records a balance increment in the batch and mirrors it on the
// working copy so later drafts in the same batch observe it.
func applyDelta(batch *domain.LedgerBatch, acc *domain.Account, delta decimal.Decimal) {
	if delta.IsZero() {
		return
	}
	batch.BalanceDeltas[acc.AccountID] = batch.BalanceDeltas[acc.AccountID].Add(delta)
	acc.Balance = acc.Balance.Add(delta)
}

func validateDraftAmount(draft domain.Transaction) error {
	if draft.Type == domain.TypeAssetRevaluation {
		// Revaluation drafts carry a signed amount; only zero is meaningless.
		return nil
	}
	if !draft.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive for transaction %s", apperrors.ErrValidation, draft.TransactionID)
	}
	return nil
}

// zeroedForInsert strips working-state mutations from accounts created during
// the batch. They are inserted pristine; the same batch's deltas and
// investment updates then bring them to their final state.
func zeroedForInsert(accounts []domain.Account) []domain.Account {
	for i := range accounts {
		accounts[i].Balance = decimal.Zero
		accounts[i].RealizedPnL = decimal.Zero
		accounts[i].UnrealizedPnL = decimal.Zero
		accounts[i].Investment = nil
	}
	return accounts
}

// summarizeAccounts folds the working snapshot into the figures the reaction
// collaborator receives.
func summarizeAccounts(accounts []domain.Account) domain.BatchSummary {
	totalAssets := decimal.Zero
	totalDebt := decimal.Zero
	for _, acc := range accounts {
		switch acc.Group {
		case domain.GroupAssets:
			totalAssets = totalAssets.Add(acc.Balance)
		case domain.GroupCapital:
			if isDebtCategory(acc.Category) {
				totalDebt = totalDebt.Add(acc.Balance)
			}
		}
	}
	return domain.BatchSummary{
		NetWorth:    totalAssets.Sub(totalDebt),
		TotalAssets: totalAssets,
		TotalDebt:   totalDebt,
	}
}

func isDebtCategory(category string) bool {
	switch category {
	case domain.CategoryLiability, domain.CategoryLoan, domain.CategoryCreditCard:
		return true
	}
	return false
}

// reactToLargestExpense hands the batch's largest expense to the reaction
// collaborator, fire-and-forget. It runs outside the transactional boundary;
// failures here never affect the committed batch.
func (s *postingService) reactToLargestExpense(ctx context.Context, confirmed []domain.Transaction, summary domain.BatchSummary) {
	if s.notifier == nil {
		return
	}

	var largest *domain.Transaction
	for i := range confirmed {
		txn := &confirmed[i]
		if txn.Group != domain.GroupExpenses {
			continue
		}
		if largest == nil || txn.Amount.GreaterThan(largest.Amount) {
			largest = txn
		}
	}
	if largest == nil {
		return
	}

	go s.notifier.NotifyLargestExpense(context.WithoutCancel(ctx), *largest, summary)
}
