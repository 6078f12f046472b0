package accounting

import (
	"fmt"

	"github.com/fintrack/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedDelta applies the dual-group sign convention to a posting leg.
// DEBIT to ASSETS  -> positive (+)
// CREDIT to ASSETS -> negative (-)
// DEBIT to CAPITAL  -> negative (-)
// CREDIT to CAPITAL -> positive (+)
// This convention is what lets a single magnitude self-balance across the
// asset/capital divide.
func SignedDelta(group domain.AccountGroup, isDebit bool, amount decimal.Decimal) (decimal.Decimal, error) {
	switch group {
	case domain.GroupAssets:
		if !isDebit {
			return amount.Neg(), nil
		}
		return amount, nil
	case domain.GroupCapital:
		if isDebit {
			return amount.Neg(), nil
		}
		return amount, nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account group '%s'", group)
	}
}

// EntryDeltas computes the balance increments for both legs of a confirmed
// transaction. The deltas net to zero in total system value when assets are
// counted positive-on-debit and capital positive-on-credit.
func EntryDeltas(debitGroup, creditGroup domain.AccountGroup, amount decimal.Decimal) (debitDelta, creditDelta decimal.Decimal, err error) {
	debitDelta, err = SignedDelta(debitGroup, true, amount)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	creditDelta, err = SignedDelta(creditGroup, false, amount)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return debitDelta, creditDelta, nil
}
