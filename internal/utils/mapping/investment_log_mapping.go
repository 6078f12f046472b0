package mapping

import (
	"github.com/fintrack/fintrack_backend/internal/core/domain"
	"github.com/fintrack/fintrack_backend/internal/models"
)

// ToModelInvestmentLog converts a domain InvestmentLog to a model InvestmentLog
func ToModelInvestmentLog(d domain.InvestmentLog) models.InvestmentLog {
	return models.InvestmentLog{
		LogID:       d.LogID,
		AccountID:   d.AccountID,
		UserID:      d.UserID,
		Action:      string(d.Action),
		Units:       d.Units,
		Price:       d.Price,
		Fees:        d.Fees,
		RealizedPnL: d.RealizedPnL,
		CreatedAt:   d.CreatedAt,
	}
}
