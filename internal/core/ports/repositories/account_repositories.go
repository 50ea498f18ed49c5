package repositories

import (
	"context"
	"time"

	"github.com/ledgerhouse/bookkeeper/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, guid string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their identifiers.
	FindAccountsByIDs(ctx context.Context, guids []string) (map[string]domain.Account, error)

	// ListAccounts retrieves every account. Tree structure is assembled in
	// memory by callers to avoid per-node child queries.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// FindAccountsByNameAndType retrieves accounts matching an exact name and type.
	FindAccountsByNameAndType(ctx context.Context, name string, accountType domain.AccountType) ([]domain.Account, error)

	// CountRootAccountsByType counts root accounts (no parent) of the given type.
	CountRootAccountsByType(ctx context.Context, accountType domain.AccountType) (int, error)

	// CountChildAccounts counts the direct children of an account.
	CountChildAccounts(ctx context.Context, parentGUID string) (int, error)

	// CountSplitsByAccount counts splits posted directly to an account.
	CountSplitsByAccount(ctx context.Context, guid string) (int, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccountName renames an account. Name is the only mutable attribute.
	UpdateAccountName(ctx context.Context, guid string, name string, now time.Time) error

	// DeleteAccount removes an account row. Dependent checks (children,
	// posted splits) are the service's responsibility.
	DeleteAccount(ctx context.Context, guid string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
