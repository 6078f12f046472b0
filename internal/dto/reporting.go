package dto

import (
	"github.com/fintrack/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SummaryResponse mirrors domain.Summary.
type SummaryResponse struct {
	NetWorth      decimal.Decimal `json:"netWorth"`
	TotalAssets   decimal.Decimal `json:"totalAssets"`
	TotalCapital  decimal.Decimal `json:"totalCapital"`
	TotalDebt     decimal.Decimal `json:"totalDebt"`
	RealizedPnL   decimal.Decimal `json:"realizedPnl"`
	UnrealizedPnL decimal.Decimal `json:"unrealizedPnl"`
}

// ToSummaryResponse converts a domain.Summary to its response DTO.
func ToSummaryResponse(s *domain.Summary) SummaryResponse {
	return SummaryResponse{
		NetWorth:      s.NetWorth,
		TotalAssets:   s.TotalAssets,
		TotalCapital:  s.TotalCapital,
		TotalDebt:     s.TotalDebt,
		RealizedPnL:   s.RealizedPnL,
		UnrealizedPnL: s.UnrealizedPnL,
	}
}

// UsageResponse reports the monthly transaction count.
type UsageResponse struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// ToUsageResponse converts a domain.Usage to its response DTO.
func ToUsageResponse(u *domain.Usage) UsageResponse {
	return UsageResponse{Month: u.Month, Count: u.Count}
}
