package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the fixed enumeration of money movements the posting
// rules know how to resolve.
type TransactionType string

const (
	TypeDailyCashflow    TransactionType = "DAILY_CASHFLOW"
	TypeCreditSpending   TransactionType = "CREDIT_SPENDING"
	TypeAssetBuy         TransactionType = "ASSET_BUY"
	TypeAssetSell        TransactionType = "ASSET_SELL"
	TypeAssetRevaluation TransactionType = "ASSET_REVALUATION"
	TypeInitialBalance   TransactionType = "INITIAL_BALANCE"
	TypeCapitalInjection TransactionType = "CAPITAL_INJECTION"
	TypeInternalTransfer TransactionType = "INTERNAL_TRANSFER"
	TypeFundAllocation   TransactionType = "FUND_ALLOCATION"
	TypeBorrowing        TransactionType = "BORROWING"
	TypeDebtRepayment    TransactionType = "DEBT_REPAYMENT"
	TypeLending          TransactionType = "LENDING"
	TypeInterestLog      TransactionType = "INTEREST_LOG"
)

// TransactionGroup classifies the economic direction of an entry.
type TransactionGroup string

const (
	GroupIncome     TransactionGroup = "INCOME"
	GroupExpenses   TransactionGroup = "EXPENSES"
	GroupTxnAssets  TransactionGroup = "ASSETS"
	GroupTxnCapital TransactionGroup = "CAPITAL"
)

// TransactionStatus is a one-way PENDING -> CONFIRMED transition.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusConfirmed TransactionStatus = "CONFIRMED"
)

// Transaction is a ledger entry. As a draft only the descriptive fields are
// set; confirmation resolves the debit/credit legs and flips the status, after
// which the record is immutable.
type Transaction struct {
	TransactionID string            `json:"transactionID"`
	UserID        string            `json:"userID"`
	Amount        decimal.Decimal   `json:"amount"` // Unsigned magnitude (signed for ASSET_REVALUATION drafts)
	Type          TransactionType   `json:"type"`
	Group         TransactionGroup  `json:"group"`
	Status        TransactionStatus `json:"status"`
	Description   string            `json:"description"`

	// Resolved at confirmation time, immutable thereafter.
	DebitAccountID  string `json:"debitAccountID,omitempty"`
	CreditAccountID string `json:"creditAccountID,omitempty"`
	AssetLinkID     string `json:"assetLinkID,omitempty"` // Weak reference to the lot-accounted account

	// Resolver hints supplied by the draft. TargetAccountName names the
	// counterparty account (asset, liability, debtor, target wallet or fund);
	// SourceAccountName names the source side of transfers and allocations.
	TargetAccountName string `json:"targetAccountName,omitempty"`
	SourceAccountName string `json:"sourceAccountName,omitempty"`
	Category          string `json:"category,omitempty"` // Category for synthesized accounts

	// Investment entries only.
	Units decimal.Decimal `json:"units"`
	Price decimal.Decimal `json:"price"`
	Fees  decimal.Decimal `json:"fees"`

	CurrencyCode    string    `json:"currencyCode"`
	TransactionDate time.Time `json:"transactionDate"`
	AuditFields
}

// IsInvestment reports whether the entry carries lot fields.
func (t *Transaction) IsInvestment() bool {
	switch t.Type {
	case TypeAssetBuy, TypeAssetSell, TypeAssetRevaluation:
		return true
	}
	return false
}
