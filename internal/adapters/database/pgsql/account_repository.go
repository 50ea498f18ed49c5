package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerhouse/bookkeeper/internal/apperrors"
	"github.com/ledgerhouse/bookkeeper/internal/core/domain"
	portsrepo "github.com/ledgerhouse/bookkeeper/internal/core/ports/repositories"
	"github.com/ledgerhouse/bookkeeper/internal/models"
)

const accountColumns = "guid, name, account_type, parent_guid, placeholder, code, created_at, last_updated_at"

// PgxAccountRepository stores accounts in PostgreSQL.
type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// NewPgxAccountRepository creates a new repository for account data.
func NewPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{pool: pool}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func toModelAccount(d domain.Account) models.Account {
	return models.Account{
		GUID:        d.GUID,
		Name:        d.Name,
		AccountType: models.AccountType(d.AccountType),
		ParentGUID:  d.ParentGUID,
		Placeholder: d.Placeholder,
		Code:        d.Code,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		GUID:        m.GUID,
		Name:        m.Name,
		AccountType: domain.AccountType(m.AccountType),
		ParentGUID:  m.ParentGUID,
		Placeholder: m.Placeholder,
		Code:        m.Code,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

// scanAccount scans one account row into a domain account.
func scanAccount(row pgx.Row) (domain.Account, error) {
	var m models.Account
	var parentGUID sql.NullString
	err := row.Scan(
		&m.GUID,
		&m.Name,
		&m.AccountType,
		&parentGUID,
		&m.Placeholder,
		&m.Code,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return domain.Account{}, err
	}
	if parentGUID.Valid {
		m.ParentGUID = parentGUID.String
	}
	return toDomainAccount(m), nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := toModelAccount(account)

	query := `
		INSERT INTO accounts (guid, name, account_type, parent_guid, placeholder, code, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	var parentGUID sql.NullString
	if m.ParentGUID != "" {
		parentGUID = sql.NullString{String: m.ParentGUID, Valid: true}
	}

	_, err := r.pool.Exec(ctx, query,
		m.GUID,
		m.Name,
		m.AccountType,
		parentGUID,
		m.Placeholder,
		m.Code,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: account %s already exists", apperrors.ErrDuplicate, m.GUID)
		}
		return fmt.Errorf("failed to save account %s: %w", m.GUID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its GUID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, guid string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE guid = $1;`

	account, err := scanAccount(r.pool.QueryRow(ctx, query, guid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %s: %w", guid, err)
	}
	return &account, nil
}

// FindAccountsByIDs retrieves multiple accounts by their GUIDs. Missing
// accounts are simply absent from the result map.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, guids []string) (map[string]domain.Account, error) {
	if len(guids) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE guid = ANY($1);`

	rows, err := r.pool.Query(ctx, query, guids)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by GUIDs: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts[account.GUID] = account
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// ListAccounts retrieves every account ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY code, name;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// FindAccountsByNameAndType retrieves accounts matching an exact name and type.
func (r *PgxAccountRepository) FindAccountsByNameAndType(ctx context.Context, name string, accountType domain.AccountType) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE name = $1 AND account_type = $2 ORDER BY created_at;`

	rows, err := r.pool.Query(ctx, query, name, string(accountType))
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by name %q: %w", name, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// CountRootAccountsByType counts root accounts of the given type.
func (r *PgxAccountRepository) CountRootAccountsByType(ctx context.Context, accountType domain.AccountType) (int, error) {
	query := `SELECT COUNT(*) FROM accounts WHERE parent_guid IS NULL AND account_type = $1;`

	var count int
	if err := r.pool.QueryRow(ctx, query, string(accountType)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count root accounts: %w", err)
	}
	return count, nil
}

// CountChildAccounts counts the direct children of an account.
func (r *PgxAccountRepository) CountChildAccounts(ctx context.Context, parentGUID string) (int, error) {
	query := `SELECT COUNT(*) FROM accounts WHERE parent_guid = $1;`

	var count int
	if err := r.pool.QueryRow(ctx, query, parentGUID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count child accounts: %w", err)
	}
	return count, nil
}

// CountSplitsByAccount counts splits posted directly to an account.
func (r *PgxAccountRepository) CountSplitsByAccount(ctx context.Context, guid string) (int, error) {
	query := `SELECT COUNT(*) FROM splits WHERE account_guid = $1;`

	var count int
	if err := r.pool.QueryRow(ctx, query, guid).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count account splits: %w", err)
	}
	return count, nil
}

// UpdateAccountName renames an account.
func (r *PgxAccountRepository) UpdateAccountName(ctx context.Context, guid string, name string, now time.Time) error {
	query := `
		UPDATE accounts
		SET name = $2, last_updated_at = $3
		WHERE guid = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query, guid, name, now)
	if err != nil {
		return fmt.Errorf("failed to rename account %s: %w", guid, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAccount removes an account row.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, guid string) error {
	query := `DELETE FROM accounts WHERE guid = $1;`

	cmdTag, err := r.pool.Exec(ctx, query, guid)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			// Foreign key violation: splits or children still reference it.
			return fmt.Errorf("%w: account %s is still referenced", apperrors.ErrValidation, guid)
		}
		return fmt.Errorf("failed to delete account %s: %w", guid, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
