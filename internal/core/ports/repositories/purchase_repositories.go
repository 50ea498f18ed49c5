package repositories

import (
	"context"

	"github.com/ledgerhouse/bookkeeper/internal/core/domain"
)

// PurchaseOrderReader defines read operations for purchase orders.
type PurchaseOrderReader interface {
	// FindOrderByID retrieves an order with its entries.
	FindOrderByID(ctx context.Context, guid string) (*domain.PurchaseOrder, error)

	// ListOrders retrieves a page of orders, newest opened first, and the
	// total order count for pagination.
	ListOrders(ctx context.Context, limit, offset int) ([]domain.PurchaseOrder, int, error)

	// CountOrdersOpenedInYear counts orders opened in the given calendar
	// year; used to assign the next sequential order number.
	CountOrdersOpenedInYear(ctx context.Context, year int) (int, error)

	// CountOrdersByStatus counts orders in the given status.
	CountOrdersByStatus(ctx context.Context, status domain.OrderStatus) (int, error)
}

// PurchaseOrderWriter defines write operations for purchase orders.
type PurchaseOrderWriter interface {
	// SaveOrder persists a new order and its entries atomically.
	SaveOrder(ctx context.Context, order domain.PurchaseOrder) error

	// ApproveOrder persists the generated journal transaction with its splits
	// and flips the order from OPEN to APPROVED, all in one database
	// transaction. Returns apperrors.ErrDuplicate if the order was no longer
	// OPEN, in which case nothing is written.
	ApproveOrder(ctx context.Context, orderGUID string, txn domain.Transaction) error
}

// PurchaseOrderRepositoryFacade combines purchase order read and write operations.
type PurchaseOrderRepositoryFacade interface {
	PurchaseOrderReader
	PurchaseOrderWriter
}
