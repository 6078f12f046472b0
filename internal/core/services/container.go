package services

import (
	"log/slog"

	portsrepo "github.com/fintrack/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrack/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack/fintrack_backend/internal/platform/config"
)

// NewServiceContainer wires every service with its repository dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, logger *slog.Logger) *portssvc.ServiceContainer {
	notifier := NewLogNotifier(logger)

	return &portssvc.ServiceContainer{
		Account:     NewAccountService(repos.AccountRepo, cfg.DefaultCurrency),
		Transaction: NewTransactionService(repos.TransactionRepo, cfg.DefaultCurrency),
		Posting: NewPostingService(
			repos.AccountRepo,
			repos.TransactionRepo,
			repos.LedgerRepo,
			notifier,
			cfg.ConfirmBatchCap,
			cfg.DefaultCurrency,
		),
		Reporting: NewReportingService(repos.AccountRepo, repos.UsageRepo),
		User:      NewUserService(repos.UserRepo),
	}
}
