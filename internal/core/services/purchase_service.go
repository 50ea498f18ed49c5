package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerhouse/bookkeeper/internal/apperrors"
	"github.com/ledgerhouse/bookkeeper/internal/core/domain"
	portsrepo "github.com/ledgerhouse/bookkeeper/internal/core/ports/repositories"
	portssvc "github.com/ledgerhouse/bookkeeper/internal/core/ports/services"
	"github.com/ledgerhouse/bookkeeper/internal/dto"
)

// payableAccountName is the liability account credited when an order does not
// name its own credit account. Created on first use.
const payableAccountName = "Accounts Payable"

// approvalDriftLimit bounds the allowed difference between the order total
// and the sum of per-line journal amounts. Line math is exact decimal, so any
// larger residual indicates corrupted entries.
var approvalDriftLimit = decimal.RequireFromString("0.01")

// purchaseService implements the purchase order workflow: open an order,
// then convert it into a balanced journal entry on approval.
type purchaseService struct {
	BaseService
	repo       portsrepo.PurchaseOrderRepositoryFacade
	accountSvc portssvc.AccountSvcFacade
	vendorSvc  portssvc.VendorSvcFacade

	// numberMu serializes order number assignment (count-then-use).
	numberMu sync.Mutex
	// payableMu serializes the find-or-create of the default payable
	// account so concurrent approvals cannot create duplicates.
	payableMu sync.Mutex
}

// NewPurchaseService creates a new purchase order service.
func NewPurchaseService(repo portsrepo.PurchaseOrderRepositoryFacade, accountSvc portssvc.AccountSvcFacade, vendorSvc portssvc.VendorSvcFacade) *purchaseService {
	return &purchaseService{repo: repo, accountSvc: accountSvc, vendorSvc: vendorSvc}
}

// CreateOrder validates references, assigns the next order number for the
// year, and persists the order as OPEN.
func (s *purchaseService) CreateOrder(ctx context.Context, req dto.CreatePurchaseOrderRequest) (*domain.PurchaseOrder, error) {
	dateOpened, err := parseDate(req.DateOpened)
	if err != nil {
		return nil, err
	}

	if _, err := s.vendorSvc.GetVendorByID(ctx, req.VendorGUID); err != nil {
		return nil, err
	}

	expenseGUIDs := make([]string, 0, len(req.Entries))
	for _, e := range req.Entries {
		if e.Quantity.Sign() < 0 {
			return nil, fmt.Errorf("%w: entry quantity must not be negative", apperrors.ErrValidation)
		}
		if e.Price.Sign() < 0 {
			return nil, fmt.Errorf("%w: entry price must not be negative", apperrors.ErrValidation)
		}
		expenseGUIDs = append(expenseGUIDs, e.ExpenseAccountGUID)
	}

	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, expenseGUIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve expense accounts: %w", err)
	}
	for _, guid := range expenseGUIDs {
		if _, ok := accounts[guid]; !ok {
			return nil, fmt.Errorf("%w: expense account %s", apperrors.ErrNotFound, guid)
		}
	}

	order := domain.PurchaseOrder{
		GUID:       uuid.NewString(),
		VendorGUID: req.VendorGUID,
		Status:     domain.OrderOpen,
		DateOpened: dateOpened,
	}
	if req.CreditAccountGUID != nil && *req.CreditAccountGUID != "" {
		credit, err := s.accountSvc.GetAccountByID(ctx, *req.CreditAccountGUID)
		if err != nil {
			return nil, err
		}
		order.CreditAccountGUID = credit.GUID
	}
	for _, e := range req.Entries {
		order.Entries = append(order.Entries, domain.OrderEntry{
			GUID:               uuid.NewString(),
			OrderGUID:          order.GUID,
			Description:        e.Description,
			Quantity:           e.Quantity,
			Price:              e.Price,
			ExpenseAccountGUID: e.ExpenseAccountGUID,
		})
	}

	s.numberMu.Lock()
	defer s.numberMu.Unlock()

	year := dateOpened.Year()
	count, err := s.repo.CountOrdersOpenedInYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders for year %d: %w", year, err)
	}
	order.Number = fmt.Sprintf("PO-%d-%04d", year, count+1)

	if err := s.repo.SaveOrder(ctx, order); err != nil {
		s.LogError(ctx, err, "failed to save purchase order", slog.String("number", order.Number))
		return nil, fmt.Errorf("failed to save purchase order: %w", err)
	}

	s.LogInfo(ctx, "purchase order opened",
		slog.String("guid", order.GUID),
		slog.String("number", order.Number),
	)
	return &order, nil
}

// ApproveOrder converts an OPEN order into a balanced journal entry and flips
// its status, atomically. Approving an already approved order succeeds
// without writing anything.
func (s *purchaseService) ApproveOrder(ctx context.Context, guid string) (*domain.PurchaseOrder, error) {
	order, err := s.repo.FindOrderByID(ctx, guid)
	if err != nil {
		return nil, err
	}
	if order.Status == domain.OrderApproved {
		s.LogInfo(ctx, "order already approved", slog.String("guid", guid))
		return order, nil
	}
	if len(order.Entries) == 0 {
		return nil, fmt.Errorf("%w: order has no entries", apperrors.ErrValidation)
	}

	creditGUID := order.CreditAccountGUID
	if creditGUID == "" {
		payable, err := s.resolvePayableAccount(ctx)
		if err != nil {
			return nil, err
		}
		creditGUID = payable.GUID
	}

	txn, err := s.buildApprovalTransaction(order, creditGUID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.ApproveOrder(ctx, order.GUID, *txn); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost the race to another approval; the journal entry exists.
			s.LogInfo(ctx, "order approved concurrently", slog.String("guid", guid))
			return s.repo.FindOrderByID(ctx, guid)
		}
		s.LogError(ctx, err, "failed to approve order", slog.String("guid", guid))
		return nil, fmt.Errorf("failed to approve order: %w", err)
	}

	order.Status = domain.OrderApproved
	order.CreditAccountGUID = creditGUID
	s.LogInfo(ctx, "purchase order approved",
		slog.String("guid", order.GUID),
		slog.String("number", order.Number),
		slog.String("transaction_guid", txn.GUID),
	)
	return order, nil
}

// buildApprovalTransaction debits each line's expense account and credits the
// payable account with the exact order total. The splits sum to zero by
// construction.
func (s *purchaseService) buildApprovalTransaction(order *domain.PurchaseOrder, creditGUID string) (*domain.Transaction, error) {
	now := time.Now()
	txn := domain.Transaction{
		GUID:        uuid.NewString(),
		PostDate:    time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		EnterDate:   now,
		Description: fmt.Sprintf("Purchase order %s", order.Number),
	}

	debits := decimal.Zero
	for _, e := range order.Entries {
		split := domain.Split{
			GUID:           uuid.NewString(),
			TxGUID:         txn.GUID,
			AccountGUID:    e.ExpenseAccountGUID,
			Memo:           e.Description,
			ReconcileState: domain.NotReconciled,
		}
		line := e.LineTotal()
		if err := split.SetAmount(line); err != nil {
			return nil, fmt.Errorf("%w: line amount %s: %v", apperrors.ErrValidation, line, err)
		}
		debits = debits.Add(split.Amount())
		txn.Splits = append(txn.Splits, split)
	}

	if drift := debits.Sub(order.Total()).Abs(); drift.GreaterThan(approvalDriftLimit) {
		return nil, fmt.Errorf("%w: order total drifts from line sum by %s", apperrors.ErrValidation, drift)
	}

	credit := domain.Split{
		GUID:           uuid.NewString(),
		TxGUID:         txn.GUID,
		AccountGUID:    creditGUID,
		Memo:           fmt.Sprintf("Payable for %s", order.Number),
		ReconcileState: domain.NotReconciled,
	}
	// Credit the exact debit sum so the entry balances to zero even if a
	// line amount was clamped during conversion.
	if err := credit.SetAmount(debits.Neg()); err != nil {
		return nil, fmt.Errorf("%w: credit amount %s: %v", apperrors.ErrValidation, debits, err)
	}
	txn.Splits = append(txn.Splits, credit)

	if !txn.SplitsTotal().IsZero() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnbalanced, txn.SplitsTotal())
	}
	return &txn, nil
}

// resolvePayableAccount finds the default payable liability account or
// creates it. Serialized so concurrent approvals share one account.
func (s *purchaseService) resolvePayableAccount(ctx context.Context) (*domain.Account, error) {
	s.payableMu.Lock()
	defer s.payableMu.Unlock()
	return s.accountSvc.FindOrCreateByNameAndType(ctx, payableAccountName, domain.Liability)
}

// GetOrderByID retrieves an order with its entries.
func (s *purchaseService) GetOrderByID(ctx context.Context, guid string) (*domain.PurchaseOrder, error) {
	return s.repo.FindOrderByID(ctx, guid)
}

// ListOrders retrieves one page of orders plus the total count.
func (s *purchaseService) ListOrders(ctx context.Context, page, perPage int) ([]domain.PurchaseOrder, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return s.repo.ListOrders(ctx, perPage, (page-1)*perPage)
}
