package repositories

import (
	"context"
	"time"

	"github.com/ledgerhouse/bookkeeper/internal/core/domain"
)

// TransactionReader defines read operations for transactions and their splits.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction with its splits.
	FindTransactionByID(ctx context.Context, guid string) (*domain.Transaction, error)

	// ListTransactions retrieves transactions newest post date first,
	// inclusively bounded by either date when supplied.
	ListTransactions(ctx context.Context, startDate, endDate *time.Time) ([]domain.Transaction, error)

	// ListTransactionsByAccounts retrieves transactions that have at least one
	// split in any of the given accounts, newest post date first.
	ListTransactionsByAccounts(ctx context.Context, accountGUIDs []string) ([]domain.Transaction, error)

	// CountTransactionsByAccount counts distinct transactions with a split
	// posted directly to the account.
	CountTransactionsByAccount(ctx context.Context, accountGUID string) (int, error)
}

// TransactionWriter defines write operations for transactions.
type TransactionWriter interface {
	// SaveTransaction persists the transaction and all of its splits in a
	// single database transaction: after it returns, either every row exists
	// or none do.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
}

// TransactionRepositoryFacade combines transaction read and write operations.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
