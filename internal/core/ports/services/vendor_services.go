package services

import (
	"context"

	"github.com/ledgerhouse/bookkeeper/internal/core/domain"
	"github.com/ledgerhouse/bookkeeper/internal/dto"
)

// VendorSvcFacade defines the vendor operations consumed by handlers.
type VendorSvcFacade interface {
	CreateVendor(ctx context.Context, req dto.CreateVendorRequest) (*domain.Vendor, error)
	GetVendorByID(ctx context.Context, guid string) (*domain.Vendor, error)
	ListVendors(ctx context.Context) ([]domain.Vendor, error)
	UpdateVendor(ctx context.Context, guid string, req dto.UpdateVendorRequest) (*domain.Vendor, error)
}
