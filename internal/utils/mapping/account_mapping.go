package mapping

import (
	"github.com/fintrack/fintrack_backend/internal/core/domain"
	"github.com/fintrack/fintrack_backend/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	m := models.Account{
		AccountID:     d.AccountID,
		UserID:        d.UserID,
		Name:          d.Name,
		AccountGroup:  models.AccountGroup(d.Group),
		Category:      d.Category,
		CurrencyCode:  d.CurrencyCode,
		Status:        string(d.Status),
		Balance:       d.Balance,
		LinkedFundID:  d.LinkedFundID,
		RealizedPnL:   d.RealizedPnL,
		UnrealizedPnL: d.UnrealizedPnL,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
	if d.Investment != nil {
		inv := *d.Investment
		m.TotalUnits = &inv.TotalUnits
		m.AvgPrice = &inv.AvgPrice
		m.MarketPrice = &inv.MarketPrice
		m.LastSync = &inv.LastSync
	}
	return m
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	d := domain.Account{
		AccountID:     m.AccountID,
		UserID:        m.UserID,
		Name:          m.Name,
		Group:         domain.AccountGroup(m.AccountGroup),
		Category:      m.Category,
		CurrencyCode:  m.CurrencyCode,
		Status:        domain.AccountStatus(m.Status),
		Balance:       m.Balance,
		LinkedFundID:  m.LinkedFundID,
		RealizedPnL:   m.RealizedPnL,
		UnrealizedPnL: m.UnrealizedPnL,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
	if m.TotalUnits != nil && m.AvgPrice != nil && m.MarketPrice != nil {
		inv := domain.InvestmentDetails{
			TotalUnits:  *m.TotalUnits,
			AvgPrice:    *m.AvgPrice,
			MarketPrice: *m.MarketPrice,
		}
		if m.LastSync != nil {
			inv.LastSync = *m.LastSync
		}
		d.Investment = &inv
	}
	return d
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
