package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerhouse/bookkeeper/internal/core/domain"
	portsrepo "github.com/ledgerhouse/bookkeeper/internal/core/ports/repositories"
	"github.com/ledgerhouse/bookkeeper/internal/dto"
)

// vendorService implements vendor management.
type vendorService struct {
	BaseService
	repo portsrepo.VendorRepositoryFacade

	// numberMu serializes vendor number assignment (count-then-use).
	numberMu sync.Mutex
}

// NewVendorService creates a new vendor service.
func NewVendorService(repo portsrepo.VendorRepositoryFacade) *vendorService {
	return &vendorService{repo: repo}
}

// CreateVendor persists a new active vendor with the next sequential number.
func (s *vendorService) CreateVendor(ctx context.Context, req dto.CreateVendorRequest) (*domain.Vendor, error) {
	now := time.Now()
	vendor := domain.Vendor{
		GUID:        uuid.NewString(),
		Name:        req.Name,
		Contact:     req.Contact,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		Category:    req.Category,
		Status:      domain.VendorActive,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	s.numberMu.Lock()
	defer s.numberMu.Unlock()

	count, err := s.repo.CountVendors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count vendors: %w", err)
	}
	vendor.Number = fmt.Sprintf("SUP-%03d", count+1)

	if err := s.repo.SaveVendor(ctx, vendor); err != nil {
		s.LogError(ctx, err, "failed to save vendor", slog.String("name", vendor.Name))
		return nil, fmt.Errorf("failed to save vendor: %w", err)
	}

	s.LogInfo(ctx, "vendor created", slog.String("guid", vendor.GUID), slog.String("number", vendor.Number))
	return &vendor, nil
}

// GetVendorByID retrieves a vendor.
func (s *vendorService) GetVendorByID(ctx context.Context, guid string) (*domain.Vendor, error) {
	return s.repo.FindVendorByID(ctx, guid)
}

// ListVendors retrieves all vendors.
func (s *vendorService) ListVendors(ctx context.Context) ([]domain.Vendor, error) {
	return s.repo.ListVendors(ctx)
}

// UpdateVendor applies the supplied fields to a vendor. Number is immutable.
func (s *vendorService) UpdateVendor(ctx context.Context, guid string, req dto.UpdateVendorRequest) (*domain.Vendor, error) {
	vendor, err := s.repo.FindVendorByID(ctx, guid)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		vendor.Name = *req.Name
	}
	if req.Contact != nil {
		vendor.Contact = *req.Contact
	}
	if req.Phone != nil {
		vendor.Phone = *req.Phone
	}
	if req.Email != nil {
		vendor.Email = *req.Email
	}
	if req.Address != nil {
		vendor.Address = *req.Address
	}
	if req.Category != nil {
		vendor.Category = *req.Category
	}
	if req.Status != nil {
		vendor.Status = *req.Status
	}
	vendor.LastUpdatedAt = time.Now()

	if err := s.repo.UpdateVendor(ctx, *vendor); err != nil {
		s.LogError(ctx, err, "failed to update vendor", slog.String("guid", guid))
		return nil, fmt.Errorf("failed to update vendor: %w", err)
	}
	return vendor, nil
}
