package dto

import (
	"time"

	"github.com/fintrack/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name         string              `json:"name" binding:"required"`
	Group        domain.AccountGroup `json:"group" binding:"required,oneof=ASSETS CAPITAL"`
	Category     string              `json:"category" binding:"required"`
	CurrencyCode string              `json:"currencyCode"` // Defaults to the configured currency
	LinkedFundID *string             `json:"linkedFundID"` // Optional weak reference
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateAccountRequest struct {
	Name         *string `json:"name"`
	Category     *string `json:"category"`
	LinkedFundID *string `json:"linkedFundID"`
}

// InvestmentDetailsResponse mirrors domain.InvestmentDetails.
type InvestmentDetailsResponse struct {
	TotalUnits  decimal.Decimal `json:"totalUnits"`
	AvgPrice    decimal.Decimal `json:"avgPrice"`
	MarketPrice decimal.Decimal `json:"marketPrice"`
	LastSync    time.Time       `json:"lastSync"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string                     `json:"accountID"`
	Name          string                     `json:"name"`
	Group         domain.AccountGroup        `json:"group"`
	Category      string                     `json:"category"`
	CurrencyCode  string                     `json:"currencyCode"`
	Status        domain.AccountStatus       `json:"status"`
	Balance       decimal.Decimal            `json:"balance"`
	Investment    *InvestmentDetailsResponse `json:"investment,omitempty"`
	LinkedFundID  string                     `json:"linkedFundID,omitempty"`
	RealizedPnL   decimal.Decimal            `json:"realizedPnl"`
	UnrealizedPnL decimal.Decimal            `json:"unrealizedPnl"`
	CreatedAt     time.Time                  `json:"createdAt"`
	LastUpdatedAt time.Time                  `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	resp := AccountResponse{
		AccountID:     acc.AccountID,
		Name:          acc.Name,
		Group:         acc.Group,
		Category:      acc.Category,
		CurrencyCode:  acc.CurrencyCode,
		Status:        acc.Status,
		Balance:       acc.Balance,
		LinkedFundID:  acc.LinkedFundID,
		RealizedPnL:   acc.RealizedPnL,
		UnrealizedPnL: acc.UnrealizedPnL,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
	if acc.Investment != nil {
		resp.Investment = &InvestmentDetailsResponse{
			TotalUnits:  acc.Investment.TotalUnits,
			AvgPrice:    acc.Investment.AvgPrice,
			MarketPrice: acc.Investment.MarketPrice,
			LastSync:    acc.Investment.LastSync,
		}
	}
	return resp
}

// ToListAccountResponse converts a slice of accounts to response DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
