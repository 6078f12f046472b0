package repositories

// RepositoryProvider bundles every repository facade for dependency injection.
type RepositoryProvider struct {
	AccountRepo     AccountRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
	LedgerRepo      LedgerRepositoryFacade
	UsageRepo       UsageRepositoryFacade
	UserRepo        UserRepositoryFacade
}
