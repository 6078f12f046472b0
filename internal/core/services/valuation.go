package services

import (
	"time"

	"github.com/fintrack/fintrack_backend/internal/core/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// valuationEngine applies weighted-average-cost lot accounting to an
// investment account's working copy. Every operation appends a lot log entry;
// the log is append-only and prior entries are never touched.
type valuationEngine struct {
	now time.Time
}

func newValuationEngine(now time.Time) *valuationEngine {
	return &valuationEngine{now: now}
}

func (e *valuationEngine) ensureDetails(acc *domain.Account) *domain.InvestmentDetails {
	if acc.Investment == nil {
		acc.Investment = &domain.InvestmentDetails{
			TotalUnits:  decimal.Zero,
			AvgPrice:    decimal.Zero,
			MarketPrice: decimal.Zero,
		}
	}
	return acc.Investment
}

// ApplyBuy folds a purchase into the average cost:
// avg' = (units*avg + u*p + fees) / (units + u). Fees are capitalized into
// the cost basis.
func (e *valuationEngine) ApplyBuy(acc *domain.Account, units, price, fees decimal.Decimal) domain.InvestmentLog {
	inv := e.ensureDetails(acc)

	newUnits := inv.TotalUnits.Add(units)
	if newUnits.IsPositive() {
		totalCost := inv.TotalUnits.Mul(inv.AvgPrice).Add(units.Mul(price)).Add(fees)
		inv.AvgPrice = totalCost.Div(newUnits)
	}
	inv.TotalUnits = newUnits
	inv.LastSync = e.now

	return e.appendLog(acc, domain.LotBuy, units, price, fees, decimal.Zero)
}

// ApplySell realizes P&L against the current average cost:
// realized = u*(p - avg) - fees. The average cost is unchanged by a sell.
// Selling more units than held clamps the position at zero instead of
// erroring; the realized figure still uses the requested units.
func (e *valuationEngine) ApplySell(acc *domain.Account, units, price, fees decimal.Decimal) (decimal.Decimal, domain.InvestmentLog) {
	inv := e.ensureDetails(acc)

	realized := units.Mul(price.Sub(inv.AvgPrice)).Sub(fees)

	remaining := inv.TotalUnits.Sub(units)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	inv.TotalUnits = remaining
	inv.LastSync = e.now

	acc.RealizedPnL = acc.RealizedPnL.Add(realized)

	return realized, e.appendLog(acc, domain.LotSell, units, price, fees, realized)
}

// ApplyRevalue sets the market price directly and accumulates the signed
// gain/loss into the unrealized P&L counter.
func (e *valuationEngine) ApplyRevalue(acc *domain.Account, marketPrice, gain decimal.Decimal) domain.InvestmentLog {
	inv := e.ensureDetails(acc)

	inv.MarketPrice = marketPrice
	inv.LastSync = e.now
	acc.UnrealizedPnL = acc.UnrealizedPnL.Add(gain)

	// The REVALUE entry records the unit count held at revaluation time.
	return e.appendLog(acc, domain.LotRevalue, inv.TotalUnits, marketPrice, decimal.Zero, decimal.Zero)
}

func (e *valuationEngine) appendLog(acc *domain.Account, action domain.InvestmentAction, units, price, fees, realized decimal.Decimal) domain.InvestmentLog {
	return domain.InvestmentLog{
		LogID:       uuid.NewString(),
		AccountID:   acc.AccountID,
		UserID:      acc.UserID,
		Action:      action,
		Units:       units,
		Price:       price,
		Fees:        fees,
		RealizedPnL: realized,
		CreatedAt:   e.now,
	}
}
