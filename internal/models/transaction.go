package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the persisted form of a ledger entry. Leg columns are empty
// while the entry is a pending draft.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	UserID        string          `db:"user_id"`
	Amount        decimal.Decimal `db:"amount"`
	Type          string          `db:"transaction_type"`
	TxnGroup      string          `db:"transaction_group"`
	Status        string          `db:"status"`
	Description   string          `db:"description"`

	DebitAccountID  string `db:"debit_account_id"`  // Nullable, empty until confirmed
	CreditAccountID string `db:"credit_account_id"` // Nullable, empty until confirmed
	AssetLinkID     string `db:"asset_link_id"`     // Nullable

	TargetAccountName string `db:"target_account_name"`
	SourceAccountName string `db:"source_account_name"`
	Category          string `db:"category"`

	Units decimal.Decimal `db:"units"`
	Price decimal.Decimal `db:"price"`
	Fees  decimal.Decimal `db:"fees"`

	CurrencyCode    string    `db:"currency_code"`
	TransactionDate time.Time `db:"transaction_date"`
	AuditFields
}
