package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/ledgerhouse/bookkeeper/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every PostgreSQL repository over one shared
// connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     NewPgxAccountRepository(pool),
		TransactionRepo: NewPgxTransactionRepository(pool),
		PurchaseRepo:    NewPgxPurchaseRepository(pool),
		VendorRepo:      NewPgxVendorRepository(pool),
		ReportingRepo:   NewPgxReportingRepository(pool),
	}
}
