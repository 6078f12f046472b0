package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvestmentLog is an append-only lot event row.
type InvestmentLog struct {
	LogID       string          `db:"log_id"`
	AccountID   string          `db:"account_id"`
	UserID      string          `db:"user_id"`
	Action      string          `db:"action"`
	Units       decimal.Decimal `db:"units"`
	Price       decimal.Decimal `db:"price"`
	Fees        decimal.Decimal `db:"fees"`
	RealizedPnL decimal.Decimal `db:"realized_pnl"`
	CreatedAt   time.Time       `db:"created_at"`
}
