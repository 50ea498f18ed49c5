package services

import (
	portsrepo "github.com/ledgerhouse/bookkeeper/internal/core/ports/repositories"
	portssvc "github.com/ledgerhouse/bookkeeper/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Account service first since journal and purchase services depend on it
	container.Account = NewAccountService(repos.AccountRepo, repos.TransactionRepo)
	container.Vendor = NewVendorService(repos.VendorRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo, container.Account)
	container.Purchase = NewPurchaseService(repos.PurchaseRepo, container.Account, container.Vendor)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.AccountRepo, repos.PurchaseRepo)

	return container
}

// Compile-time interface checks
var (
	_ portssvc.AccountSvcFacade     = (*accountService)(nil)
	_ portssvc.TransactionSvcFacade = (*transactionService)(nil)
	_ portssvc.PurchaseSvcFacade    = (*purchaseService)(nil)
	_ portssvc.VendorSvcFacade      = (*vendorService)(nil)
	_ portssvc.ReportingSvcFacade   = (*reportingService)(nil)
)
