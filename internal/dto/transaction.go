package dto

import (
	"time"

	"github.com/fintrack/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a pending draft.
type CreateTransactionRequest struct {
	Amount      decimal.Decimal         `json:"amount" binding:"required"`
	Type        domain.TransactionType  `json:"type" binding:"required"`
	Group       domain.TransactionGroup `json:"group" binding:"required,oneof=INCOME EXPENSES ASSETS CAPITAL"`
	Description string                  `json:"description"`

	// Optional explicit legs; when present they win over defaults.
	DebitAccountID  *string `json:"debitAccountID"`
	CreditAccountID *string `json:"creditAccountID"`
	AssetLinkID     *string `json:"assetLinkID"`

	// Resolver hints for the counterparty and source accounts.
	TargetAccountName string `json:"targetAccountName"`
	SourceAccountName string `json:"sourceAccountName"`
	Category          string `json:"category"`

	// Investment entries only.
	Units decimal.Decimal `json:"units"`
	Price decimal.Decimal `json:"price"`
	Fees  decimal.Decimal `json:"fees"`

	TransactionDate *time.Time `json:"transactionDate"`
}

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	TransactionID   string                   `json:"transactionID"`
	Amount          decimal.Decimal          `json:"amount"`
	Type            domain.TransactionType   `json:"type"`
	Group           domain.TransactionGroup  `json:"group"`
	Status          domain.TransactionStatus `json:"status"`
	Description     string                   `json:"description"`
	DebitAccountID  string                   `json:"debitAccountID,omitempty"`
	CreditAccountID string                   `json:"creditAccountID,omitempty"`
	AssetLinkID     string                   `json:"assetLinkID,omitempty"`
	Units           decimal.Decimal          `json:"units"`
	Price           decimal.Decimal          `json:"price"`
	Fees            decimal.Decimal          `json:"fees"`
	CurrencyCode    string                   `json:"currencyCode"`
	TransactionDate time.Time                `json:"transactionDate"`
	CreatedAt       time.Time                `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		Amount:          txn.Amount,
		Type:            txn.Type,
		Group:           txn.Group,
		Status:          txn.Status,
		Description:     txn.Description,
		DebitAccountID:  txn.DebitAccountID,
		CreditAccountID: txn.CreditAccountID,
		AssetLinkID:     txn.AssetLinkID,
		Units:           txn.Units,
		Price:           txn.Price,
		Fees:            txn.Fees,
		CurrencyCode:    txn.CurrencyCode,
		TransactionDate: txn.TransactionDate,
		CreatedAt:       txn.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of entries to response DTOs.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// ListTransactionsParams defines query parameters for listing entries.
type ListTransactionsParams struct {
	Status    string  `form:"status,default=PENDING"`
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of entries and the next-page token.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
