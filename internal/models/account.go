package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountGroup mirrors the domain balance-sign convention.
type AccountGroup string

const (
	GroupAssets  AccountGroup = "ASSETS"
	GroupCapital AccountGroup = "CAPITAL"
)

// Account is the persisted form of a ledger account. The investment columns
// are nullable and populated only for lot-accounted assets.
type Account struct {
	AccountID     string          `db:"account_id"`
	UserID        string          `db:"user_id"`
	Name          string          `db:"name"`
	AccountGroup  AccountGroup    `db:"account_group"`
	Category      string          `db:"category"`
	CurrencyCode  string          `db:"currency_code"`
	Status        string          `db:"status"`
	Balance       decimal.Decimal `db:"balance"`
	LinkedFundID  string          `db:"linked_fund_id"` // Nullable, stored as empty string
	RealizedPnL   decimal.Decimal `db:"realized_pnl"`
	UnrealizedPnL decimal.Decimal `db:"unrealized_pnl"`

	TotalUnits  *decimal.Decimal `db:"total_units"`
	AvgPrice    *decimal.Decimal `db:"avg_price"`
	MarketPrice *decimal.Decimal `db:"market_price"`
	LastSync    *time.Time       `db:"last_sync"`

	AuditFields
}
