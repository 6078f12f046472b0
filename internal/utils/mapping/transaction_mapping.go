package mapping

import (
	"github.com/fintrack/fintrack_backend/internal/core/domain"
	"github.com/fintrack/fintrack_backend/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:     d.TransactionID,
		UserID:            d.UserID,
		Amount:            d.Amount,
		Type:              string(d.Type),
		TxnGroup:          string(d.Group),
		Status:            string(d.Status),
		Description:       d.Description,
		DebitAccountID:    d.DebitAccountID,
		CreditAccountID:   d.CreditAccountID,
		AssetLinkID:       d.AssetLinkID,
		TargetAccountName: d.TargetAccountName,
		SourceAccountName: d.SourceAccountName,
		Category:          d.Category,
		Units:             d.Units,
		Price:             d.Price,
		Fees:              d.Fees,
		CurrencyCode:      d.CurrencyCode,
		TransactionDate:   d.TransactionDate,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:     m.TransactionID,
		UserID:            m.UserID,
		Amount:            m.Amount,
		Type:              domain.TransactionType(m.Type),
		Group:             domain.TransactionGroup(m.TxnGroup),
		Status:            domain.TransactionStatus(m.Status),
		Description:       m.Description,
		DebitAccountID:    m.DebitAccountID,
		CreditAccountID:   m.CreditAccountID,
		AssetLinkID:       m.AssetLinkID,
		TargetAccountName: m.TargetAccountName,
		SourceAccountName: m.SourceAccountName,
		Category:          m.Category,
		Units:             m.Units,
		Price:             m.Price,
		Fees:              m.Fees,
		CurrencyCode:      m.CurrencyCode,
		TransactionDate:   m.TransactionDate,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
