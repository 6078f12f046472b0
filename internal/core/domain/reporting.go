package domain

import "github.com/shopspring/decimal"

// Summary aggregates a user's account balances into headline figures.
type Summary struct {
	NetWorth      decimal.Decimal `json:"netWorth"`
	TotalAssets   decimal.Decimal `json:"totalAssets"`
	TotalCapital  decimal.Decimal `json:"totalCapital"`
	TotalDebt     decimal.Decimal `json:"totalDebt"`
	RealizedPnL   decimal.Decimal `json:"realizedPnl"`
	UnrealizedPnL decimal.Decimal `json:"unrealizedPnl"`
}
