package services

// ServiceContainer bundles every service facade so wiring code can hand the
// full set to route registration.
type ServiceContainer struct {
	Account     AccountSvcFacade
	Transaction TransactionSvcFacade
	Purchase    PurchaseSvcFacade
	Vendor      VendorSvcFacade
	Reporting   ReportingSvcFacade
}
