package services

import (
	"context"

	"github.com/ledgerhouse/bookkeeper/internal/core/domain"
	"github.com/ledgerhouse/bookkeeper/internal/dto"
)

// PurchaseSvcFacade defines the purchase order operations consumed by handlers.
type PurchaseSvcFacade interface {
	// CreateOrder persists a new OPEN order with its entries, assigning the
	// next sequential order number for the current year.
	CreateOrder(ctx context.Context, req dto.CreatePurchaseOrderRequest) (*domain.PurchaseOrder, error)

	// ApproveOrder moves an order from OPEN to APPROVED, generating the
	// balanced journal transaction for its line items. Approving an already
	// approved order is a no-op success.
	ApproveOrder(ctx context.Context, guid string) (*domain.PurchaseOrder, error)

	// GetOrderByID retrieves an order with its entries.
	GetOrderByID(ctx context.Context, guid string) (*domain.PurchaseOrder, error)

	// ListOrders retrieves one page of orders plus the total count.
	ListOrders(ctx context.Context, page, perPage int) ([]domain.PurchaseOrder, int, error)
}
