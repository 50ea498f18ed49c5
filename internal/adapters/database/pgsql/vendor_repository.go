package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerhouse/bookkeeper/internal/apperrors"
	"github.com/ledgerhouse/bookkeeper/internal/core/domain"
	portsrepo "github.com/ledgerhouse/bookkeeper/internal/core/ports/repositories"
	"github.com/ledgerhouse/bookkeeper/internal/models"
)

const vendorColumns = "guid, number, name, contact, phone, email, address, category, status, created_at, last_updated_at"

// PgxVendorRepository stores vendors in PostgreSQL.
type PgxVendorRepository struct {
	pool *pgxpool.Pool
}

// NewPgxVendorRepository creates a new repository for vendor data.
func NewPgxVendorRepository(pool *pgxpool.Pool) *PgxVendorRepository {
	return &PgxVendorRepository{pool: pool}
}

var _ portsrepo.VendorRepositoryFacade = (*PgxVendorRepository)(nil)

func toDomainVendor(m models.Vendor) domain.Vendor {
	return domain.Vendor{
		GUID:     m.GUID,
		Number:   m.Number,
		Name:     m.Name,
		Contact:  m.Contact,
		Phone:    m.Phone,
		Email:    m.Email,
		Address:  m.Address,
		Category: m.Category,
		Status:   m.Status,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

func scanVendor(row pgx.Row) (domain.Vendor, error) {
	var m models.Vendor
	err := row.Scan(
		&m.GUID,
		&m.Number,
		&m.Name,
		&m.Contact,
		&m.Phone,
		&m.Email,
		&m.Address,
		&m.Category,
		&m.Status,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return domain.Vendor{}, err
	}
	return toDomainVendor(m), nil
}

// SaveVendor inserts a new vendor.
func (r *PgxVendorRepository) SaveVendor(ctx context.Context, vendor domain.Vendor) error {
	query := `
		INSERT INTO vendors (guid, number, name, contact, phone, email, address, category, status, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		vendor.GUID,
		vendor.Number,
		vendor.Name,
		vendor.Contact,
		vendor.Phone,
		vendor.Email,
		vendor.Address,
		vendor.Category,
		vendor.Status,
		vendor.CreatedAt,
		vendor.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: vendor number %s already exists", apperrors.ErrDuplicate, vendor.Number)
		}
		return fmt.Errorf("failed to save vendor %s: %w", vendor.GUID, err)
	}
	return nil
}

// FindVendorByID retrieves a vendor by its GUID.
func (r *PgxVendorRepository) FindVendorByID(ctx context.Context, guid string) (*domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE guid = $1;`

	vendor, err := scanVendor(r.pool.QueryRow(ctx, query, guid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find vendor %s: %w", guid, err)
	}
	return &vendor, nil
}

// ListVendors retrieves all vendors ordered by number.
func (r *PgxVendorRepository) ListVendors(ctx context.Context) ([]domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors ORDER BY number;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query vendors: %w", err)
	}
	defer rows.Close()

	vendors := []domain.Vendor{}
	for rows.Next() {
		vendor, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vendor row: %w", err)
		}
		vendors = append(vendors, vendor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vendor rows: %w", err)
	}
	return vendors, nil
}

// CountVendors counts all vendors.
func (r *PgxVendorRepository) CountVendors(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM vendors;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count vendors: %w", err)
	}
	return count, nil
}

// UpdateVendor updates a vendor's mutable details.
func (r *PgxVendorRepository) UpdateVendor(ctx context.Context, vendor domain.Vendor) error {
	query := `
		UPDATE vendors
		SET name = $2, contact = $3, phone = $4, email = $5, address = $6, category = $7, status = $8, last_updated_at = $9
		WHERE guid = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		vendor.GUID,
		vendor.Name,
		vendor.Contact,
		vendor.Phone,
		vendor.Email,
		vendor.Address,
		vendor.Category,
		vendor.Status,
		vendor.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update vendor %s: %w", vendor.GUID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
