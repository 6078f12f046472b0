package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountGroup determines the balance-sign convention of an account.
// A debit increases an ASSETS balance; a credit increases a CAPITAL balance.
type AccountGroup string

const (
	GroupAssets  AccountGroup = "ASSETS"
	GroupCapital AccountGroup = "CAPITAL"
)

// AccountStatus indicates the lifecycle state of an account.
type AccountStatus string

const (
	AccountActive            AccountStatus = "ACTIVE"
	AccountClosed            AccountStatus = "CLOSED"
	AccountLiquidated        AccountStatus = "LIQUIDATED"
	AccountLiquidatedPartial AccountStatus = "LIQUIDATED_PARTIAL"
)

// Well-known account categories. Category is free-form; these are the values
// the posting rules create accounts under.
const (
	CategoryCash        = "Cash"
	CategoryCreditCard  = "Credit Card"
	CategoryEquityFund  = "Equity Fund"
	CategoryStocks      = "Stocks"
	CategoryLiability   = "Liability"
	CategoryLoan        = "Loan"
	CategoryReceivables = "Receivables"
)

// Names of the per-user default accounts, created lazily on first use.
const (
	DefaultCashAccountName = "Cash Wallet"
	DefaultFundAccountName = "Spending Fund"
)

// InvestmentDetails holds the weighted-average-cost state of a lot-accounted
// account. Present only on investment-style assets.
type InvestmentDetails struct {
	TotalUnits  decimal.Decimal `json:"totalUnits"`
	AvgPrice    decimal.Decimal `json:"avgPrice"`
	MarketPrice decimal.Decimal `json:"marketPrice"`
	LastSync    time.Time       `json:"lastSync"`
}

// Account represents a named bucket of value within a user's ledger.
type Account struct {
	AccountID     string             `json:"accountID"` // Primary key (UUID), immutable
	UserID        string             `json:"userID"`    // Owner partition
	Name          string             `json:"name"`
	Group         AccountGroup       `json:"group"`
	Category      string             `json:"category"`
	CurrencyCode  string             `json:"currencyCode"`
	Status        AccountStatus      `json:"status"`
	Balance       decimal.Decimal    `json:"balance"` // Mutated only via posted increments
	Investment    *InvestmentDetails `json:"investment,omitempty"`
	LinkedFundID  string             `json:"linkedFundID,omitempty"` // Weak reference, no ownership
	RealizedPnL   decimal.Decimal    `json:"realizedPnl"`
	UnrealizedPnL decimal.Decimal    `json:"unrealizedPnl"`
	AuditFields
}

// IsClosed reports whether the account can no longer receive postings.
func (a *Account) IsClosed() bool {
	return a.Status == AccountClosed || a.Status == AccountLiquidated
}

// InvestmentAction identifies a lot-log event kind.
type InvestmentAction string

const (
	LotBuy     InvestmentAction = "BUY"
	LotSell    InvestmentAction = "SELL"
	LotRevalue InvestmentAction = "REVALUE"
)

// InvestmentLog is a single append-only lot event. Entries are never edited
// or removed once written.
type InvestmentLog struct {
	LogID       string           `json:"logID"`
	AccountID   string           `json:"accountID"`
	UserID      string           `json:"userID"`
	Action      InvestmentAction `json:"action"`
	Units       decimal.Decimal  `json:"units"`
	Price       decimal.Decimal  `json:"price"`
	Fees        decimal.Decimal  `json:"fees"`
	RealizedPnL decimal.Decimal  `json:"realizedPnl"` // Zero for BUY/REVALUE
	CreatedAt   time.Time        `json:"createdAt"`
}
