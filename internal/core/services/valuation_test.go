package services

import (
	"testing"
	"time"

	"github.com/fintrack/fintrack_backend/internal/core/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInvestmentAccount(units, avg string) *domain.Account {
	return &domain.Account{
		AccountID: uuid.NewString(),
		UserID:    uuid.NewString(),
		Group:     domain.GroupAssets,
		Category:  domain.CategoryStocks,
		Investment: &domain.InvestmentDetails{
			TotalUnits:  decimal.RequireFromString(units),
			AvgPrice:    decimal.RequireFromString(avg),
			MarketPrice: decimal.Zero,
		},
	}
}

func TestApplyBuyCapitalizesFeesIntoAverage(t *testing.T) {
	now := time.Now().UTC()
	engine := newValuationEngine(now)
	acc := newInvestmentAccount("0", "0")

	// 10 units at 100000 with 5000 fees: avg = (10*100000 + 5000) / 10 = 100500
	log := engine.ApplyBuy(acc, decimal.NewFromInt(10), decimal.NewFromInt(100000), decimal.NewFromInt(5000))

	assert.True(t, acc.Investment.TotalUnits.Equal(decimal.NewFromInt(10)), "units should accumulate")
	assert.True(t, acc.Investment.AvgPrice.Equal(decimal.NewFromInt(100500)), "fees should be folded into average cost, got %s", acc.Investment.AvgPrice)
	assert.Equal(t, domain.LotBuy, log.Action)
	assert.True(t, log.RealizedPnL.IsZero(), "a buy realizes nothing")
	assert.Equal(t, now, acc.Investment.LastSync)
}

func TestApplyBuyBlendsWithExistingPosition(t *testing.T) {
	engine := newValuationEngine(time.Now().UTC())
	acc := newInvestmentAccount("10", "100500")

	engine.ApplyBuy(acc, decimal.NewFromInt(10), decimal.NewFromInt(110000), decimal.Zero)

	// avg = (10*100500 + 10*110000) / 20 = 105250
	assert.True(t, acc.Investment.TotalUnits.Equal(decimal.NewFromInt(20)))
	assert.True(t, acc.Investment.AvgPrice.Equal(decimal.NewFromInt(105250)), "got %s", acc.Investment.AvgPrice)
}

func TestApplySellRealizesAgainstAverage(t *testing.T) {
	engine := newValuationEngine(time.Now().UTC())
	acc := newInvestmentAccount("10", "100500")

	realized, log := engine.ApplySell(acc, decimal.NewFromInt(4), decimal.NewFromInt(120000), decimal.NewFromInt(1000))

	// realized = 4*(120000 - 100500) - 1000 = 77000
	assert.True(t, realized.Equal(decimal.NewFromInt(77000)), "got %s", realized)
	assert.True(t, acc.Investment.TotalUnits.Equal(decimal.NewFromInt(6)), "requested units should leave the position")
	assert.True(t, acc.Investment.AvgPrice.Equal(decimal.NewFromInt(100500)), "a sell must not move the average cost")
	assert.True(t, acc.RealizedPnL.Equal(decimal.NewFromInt(77000)), "realized P&L should accumulate on the account")
	assert.Equal(t, domain.LotSell, log.Action)
	assert.True(t, log.RealizedPnL.Equal(realized))
}

func TestApplySellClampsPositionAtZero(t *testing.T) {
	engine := newValuationEngine(time.Now().UTC())
	acc := newInvestmentAccount("5", "100")

	realized, _ := engine.ApplySell(acc, decimal.NewFromInt(8), decimal.NewFromInt(150), decimal.Zero)

	assert.True(t, acc.Investment.TotalUnits.IsZero(), "over-selling clamps the position at zero")
	// The realized figure still uses the requested units: 8*(150-100) = 400
	assert.True(t, realized.Equal(decimal.NewFromInt(400)), "got %s", realized)
}

func TestApplyRevalueSetsMarketPriceAndUnrealized(t *testing.T) {
	engine := newValuationEngine(time.Now().UTC())
	acc := newInvestmentAccount("10", "100500")

	log := engine.ApplyRevalue(acc, decimal.NewFromInt(115000), decimal.NewFromInt(145000))

	assert.True(t, acc.Investment.MarketPrice.Equal(decimal.NewFromInt(115000)))
	assert.True(t, acc.UnrealizedPnL.Equal(decimal.NewFromInt(145000)))
	assert.Equal(t, domain.LotRevalue, log.Action)
	assert.True(t, log.Units.Equal(decimal.NewFromInt(10)), "the log records the position at revaluation time")

	// A loss accumulates on top of the previous figure.
	engine.ApplyRevalue(acc, decimal.NewFromInt(110000), decimal.NewFromInt(-50000))
	assert.True(t, acc.UnrealizedPnL.Equal(decimal.NewFromInt(95000)), "got %s", acc.UnrealizedPnL)
}

func TestApplyBuyInitializesMissingDetails(t *testing.T) {
	engine := newValuationEngine(time.Now().UTC())
	acc := &domain.Account{AccountID: uuid.NewString(), Group: domain.GroupAssets}

	require.Nil(t, acc.Investment)
	engine.ApplyBuy(acc, decimal.NewFromInt(2), decimal.NewFromInt(500), decimal.Zero)

	require.NotNil(t, acc.Investment)
	assert.True(t, acc.Investment.AvgPrice.Equal(decimal.NewFromInt(500)))
}
