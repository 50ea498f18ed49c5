package repositories

import (
	"context"

	"github.com/ledgerhouse/bookkeeper/internal/core/domain"
)

// VendorReader defines read operations for vendor data.
type VendorReader interface {
	// FindVendorByID retrieves a vendor by its unique identifier.
	FindVendorByID(ctx context.Context, guid string) (*domain.Vendor, error)

	// ListVendors retrieves all vendors ordered by number.
	ListVendors(ctx context.Context) ([]domain.Vendor, error)

	// CountVendors counts all vendors; used to assign the next vendor number.
	CountVendors(ctx context.Context) (int, error)
}

// VendorWriter defines write operations for vendor data.
type VendorWriter interface {
	// SaveVendor persists a new vendor.
	SaveVendor(ctx context.Context, vendor domain.Vendor) error

	// UpdateVendor updates a vendor's mutable details.
	UpdateVendor(ctx context.Context, vendor domain.Vendor) error
}

// VendorRepositoryFacade combines vendor read and write operations.
type VendorRepositoryFacade interface {
	VendorReader
	VendorWriter
}
