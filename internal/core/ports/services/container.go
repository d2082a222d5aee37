package services

// ServiceContainer bundles the service facades for injection into the
// presentation layer.
type ServiceContainer struct {
	Customer CustomerSvcFacade
	Account  AccountSvcFacade
	Transfer TransferSvcFacade
	Loan     LoanSvcFacade
}
