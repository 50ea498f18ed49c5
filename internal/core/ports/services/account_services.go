package services

import (
	"context"

	"github.com/ledgerhouse/bookkeeper/internal/core/domain"
	"github.com/ledgerhouse/bookkeeper/internal/dto"
)

// AccountSvcFacade defines the account operations consumed by handlers and
// by sibling services.
type AccountSvcFacade interface {
	// CreateAccount validates the parent reference and persists a new
	// account, auto-assigning a hierarchical code when none is supplied.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)

	// GetAccountByID retrieves a single account.
	GetAccountByID(ctx context.Context, guid string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts keyed by GUID.
	GetAccountsByIDs(ctx context.Context, guids []string) (map[string]domain.Account, error)

	// ListAccounts retrieves all accounts as flat rows.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// UpdateAccountName renames an account; name is the only mutable field.
	UpdateAccountName(ctx context.Context, guid, name string) (*domain.Account, error)

	// DeleteAccount removes an account, refusing when it has children or
	// directly posted splits.
	DeleteAccount(ctx context.Context, guid string) error

	// Descendants returns the recursive closure of the account and all of
	// its sub-accounts.
	Descendants(ctx context.Context, guid string) ([]string, error)

	// TransactionCount counts distinct transactions posted directly to the
	// account.
	TransactionCount(ctx context.Context, guid string) (int, error)

	// FindOrCreateByNameAndType resolves an account by exact name and type,
	// creating a root account when none exists.
	FindOrCreateByNameAndType(ctx context.Context, name string, accountType domain.AccountType) (*domain.Account, error)
}
