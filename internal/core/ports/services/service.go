package services

// ServiceContainer bundles every service facade for handler wiring.
type ServiceContainer struct {
	Account     AccountSvcFacade
	Transaction TransactionSvcFacade
	Posting     PostingSvcFacade
	Reporting   ReportingSvcFacade
	User        UserSvcFacade
}
