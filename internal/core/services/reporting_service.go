package services

import (
	"context"
	"fmt"
	"time"

	"github.com/fintrack/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrack/fintrack_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reportingService derives headline figures from current account balances.
// Balances are maintained transactionally by the committer, so no ledger
// replay is needed here.
type reportingService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	usageRepo   portsrepo.UsageRepositoryFacade
}

// NewReportingService creates a new reporting service.
func NewReportingService(accountRepo portsrepo.AccountRepositoryFacade, usageRepo portsrepo.UsageRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{
		accountRepo: accountRepo,
		usageRepo:   usageRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetSummary implements portssvc.ReportingSvcFacade.
func (s *reportingService) GetSummary(ctx context.Context, userID string) (*domain.Summary, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for summary: %w", err)
	}

	summary := domain.Summary{
		NetWorth:      decimal.Zero,
		TotalAssets:   decimal.Zero,
		TotalCapital:  decimal.Zero,
		TotalDebt:     decimal.Zero,
		RealizedPnL:   decimal.Zero,
		UnrealizedPnL: decimal.Zero,
	}
	for _, acc := range accounts {
		switch acc.Group {
		case domain.GroupAssets:
			summary.TotalAssets = summary.TotalAssets.Add(acc.Balance)
		case domain.GroupCapital:
			summary.TotalCapital = summary.TotalCapital.Add(acc.Balance)
			if isDebtCategory(acc.Category) {
				summary.TotalDebt = summary.TotalDebt.Add(acc.Balance)
			}
		}
		summary.RealizedPnL = summary.RealizedPnL.Add(acc.RealizedPnL)
		summary.UnrealizedPnL = summary.UnrealizedPnL.Add(acc.UnrealizedPnL)
	}
	summary.NetWorth = summary.TotalAssets.Sub(summary.TotalDebt)

	return &summary, nil
}

// GetUsage implements portssvc.ReportingSvcFacade.
func (s *reportingService) GetUsage(ctx context.Context, userID string, month string) (*domain.Usage, error) {
	if month == "" {
		month = time.Now().UTC().Format("2006-01")
	}
	usage, err := s.usageRepo.GetUsage(ctx, userID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch usage for %s: %w", month, err)
	}
	return usage, nil
}
