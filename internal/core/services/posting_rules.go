package services

import (
	"fmt"

	"github.com/fintrack/fintrack_backend/internal/apperrors"
	"github.com/fintrack/fintrack_backend/internal/core/domain"
)

// valuationKind identifies the lot-accounting side effect a posting rule
// requires.
type valuationKind int

const (
	valuationNone valuationKind = iota
	valuationBuy
	valuationSell
	valuationRevalue
)

// postingLegs is the resolved (debit, credit, asset link) triple for one
// draft, plus the valuation effect to apply.
type postingLegs struct {
	debit     *domain.Account
	credit    *domain.Account
	assetLink *domain.Account
	valuation valuationKind
}

// explicitAccount returns the working copy for an explicit account id set on
// the draft, or nil when the draft left the leg to the defaults. An id that
// is not in the snapshot is a data error, not a resolution miss.
func explicitAccount(r *accountResolver, accountID string) (*domain.Account, error) {
	if accountID == "" {
		return nil, nil
	}
	acc := r.byID(accountID)
	if acc == nil {
		return nil, fmt.Errorf("%w: account %s referenced by draft", apperrors.ErrNotFound, accountID)
	}
	return acc, nil
}

// resolvePostingLegs is the posting rules table: a fixed dispatch on the
// draft's type that derives both legs and the asset link. Explicit account
// ids on the draft always win; defaults are resolved lazily and created on
// first use.
func resolvePostingLegs(r *accountResolver, txn domain.Transaction) (postingLegs, error) {
	debit, err := explicitAccount(r, txn.DebitAccountID)
	if err != nil {
		return postingLegs{}, err
	}
	credit, err := explicitAccount(r, txn.CreditAccountID)
	if err != nil {
		return postingLegs{}, err
	}

	switch txn.Type {
	case domain.TypeCreditSpending:
		if debit == nil {
			debit = r.defaultFund()
		}
		if credit == nil {
			credit = r.resolveOrCategory(txn.TargetAccountName, domain.GroupCapital, domain.CategoryCreditCard)
		}
		return postingLegs{debit: debit, credit: credit}, nil

	case domain.TypeAssetBuy:
		if debit == nil {
			debit = r.resolve(txn.TargetAccountName, domain.GroupAssets, assetCategory(txn))
		}
		if credit == nil {
			credit = r.defaultCash()
		}
		return postingLegs{debit: debit, credit: credit, assetLink: debit, valuation: valuationBuy}, nil

	case domain.TypeAssetSell:
		asset, err := sellSideAsset(r, txn)
		if err != nil {
			return postingLegs{}, err
		}
		if debit == nil {
			debit = r.defaultCash()
		}
		return postingLegs{debit: debit, credit: asset, assetLink: asset, valuation: valuationSell}, nil

	case domain.TypeAssetRevaluation:
		asset, err := sellSideAsset(r, txn)
		if err != nil {
			return postingLegs{}, err
		}
		fund := linkedFund(r, asset)
		// Gains debit the asset, losses debit the fund.
		if txn.Amount.IsNegative() {
			return postingLegs{debit: fund, credit: asset, assetLink: asset, valuation: valuationRevalue}, nil
		}
		return postingLegs{debit: asset, credit: fund, assetLink: asset, valuation: valuationRevalue}, nil

	case domain.TypeInitialBalance, domain.TypeCapitalInjection:
		if debit == nil {
			debit = r.defaultCash()
		}
		if credit == nil {
			credit = r.defaultFund()
		}
		return postingLegs{debit: debit, credit: credit, assetLink: debit}, nil

	case domain.TypeInternalTransfer:
		if debit == nil {
			debit = r.resolve(txn.TargetAccountName, domain.GroupAssets, domain.CategoryCash)
		}
		if credit == nil {
			credit = r.resolve(txn.SourceAccountName, domain.GroupAssets, domain.CategoryCash)
		}
		return postingLegs{debit: debit, credit: credit}, nil

	case domain.TypeFundAllocation:
		if debit == nil {
			debit = r.resolve(txn.TargetAccountName, domain.GroupCapital, domain.CategoryEquityFund)
		}
		if credit == nil {
			if txn.SourceAccountName != "" {
				credit = r.resolve(txn.SourceAccountName, domain.GroupCapital, domain.CategoryEquityFund)
			} else {
				credit = r.defaultFund()
			}
		}
		return postingLegs{debit: debit, credit: credit}, nil

	case domain.TypeBorrowing:
		if debit == nil {
			debit = r.defaultCash()
		}
		if credit == nil {
			credit = r.resolve(txn.TargetAccountName, domain.GroupCapital, domain.CategoryLiability)
		}
		return postingLegs{debit: debit, credit: credit, assetLink: credit}, nil

	case domain.TypeDebtRepayment:
		if debit == nil {
			debit = r.resolve(txn.TargetAccountName, domain.GroupCapital, domain.CategoryLoan)
		}
		if credit == nil {
			credit = r.defaultCash()
		}
		return postingLegs{debit: debit, credit: credit, assetLink: debit}, nil

	case domain.TypeLending:
		if debit == nil {
			debit = r.resolve(txn.TargetAccountName, domain.GroupAssets, domain.CategoryReceivables)
		}
		if credit == nil {
			credit = r.defaultCash()
		}
		return postingLegs{debit: debit, credit: credit, assetLink: debit}, nil

	case domain.TypeDailyCashflow, domain.TypeInterestLog:
		return cashflowLegs(r, txn, debit, credit), nil

	default:
		// Permissive fallback: unrecognized types post as daily cashflow.
		return cashflowLegs(r, txn, debit, credit), nil
	}
}

// cashflowLegs covers DAILY_CASHFLOW and INTEREST_LOG: income flows into the
// cash wallet against the fund; expenses flow out of the fund against cash.
func cashflowLegs(r *accountResolver, txn domain.Transaction, debit, credit *domain.Account) postingLegs {
	if txn.Group == domain.GroupIncome {
		if debit == nil {
			debit = r.defaultCash()
		}
		if credit == nil {
			credit = r.defaultFund()
		}
		return postingLegs{debit: debit, credit: credit}
	}
	if debit == nil {
		debit = r.defaultFund()
	}
	if credit == nil {
		credit = r.defaultCash()
	}
	return postingLegs{debit: debit, credit: credit}
}

// sellSideAsset locates the investment account a sell/revaluation applies to:
// the explicit asset link when present, otherwise by name.
func sellSideAsset(r *accountResolver, txn domain.Transaction) (*domain.Account, error) {
	if txn.AssetLinkID != "" {
		asset := r.byID(txn.AssetLinkID)
		if asset == nil {
			return nil, fmt.Errorf("%w: asset account %s referenced by draft", apperrors.ErrNotFound, txn.AssetLinkID)
		}
		return asset, nil
	}
	return r.resolve(txn.TargetAccountName, domain.GroupAssets, assetCategory(txn)), nil
}

// linkedFund returns the equity fund an asset's P&L posts against, falling
// back to the default fund when the asset is unlinked or the link is stale.
func linkedFund(r *accountResolver, asset *domain.Account) *domain.Account {
	if asset.LinkedFundID != "" {
		if fund := r.byID(asset.LinkedFundID); fund != nil {
			return fund
		}
	}
	return r.defaultFund()
}

// knownTransactionType reports whether the type has a dedicated posting rule.
func knownTransactionType(t domain.TransactionType) bool {
	switch t {
	case domain.TypeDailyCashflow, domain.TypeCreditSpending,
		domain.TypeAssetBuy, domain.TypeAssetSell, domain.TypeAssetRevaluation,
		domain.TypeInitialBalance, domain.TypeCapitalInjection,
		domain.TypeInternalTransfer, domain.TypeFundAllocation,
		domain.TypeBorrowing, domain.TypeDebtRepayment,
		domain.TypeLending, domain.TypeInterestLog:
		return true
	}
	return false
}

func assetCategory(txn domain.Transaction) string {
	if txn.Category != "" {
		return txn.Category
	}
	return domain.CategoryStocks
}
