package repositories

// RepositoryProvider bundles every repository implementation so wiring code
// can hand the full set to the service container.
type RepositoryProvider struct {
	AccountRepo     AccountRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
	PurchaseRepo    PurchaseOrderRepositoryFacade
	VendorRepo      VendorRepositoryFacade
	ReportingRepo   ReportingRepository
}
