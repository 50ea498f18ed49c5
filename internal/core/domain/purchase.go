package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the state of a purchase order. The only transition is
// OPEN -> APPROVED.
type OrderStatus string

const (
	OrderOpen     OrderStatus = "OPEN"
	OrderApproved OrderStatus = "APPROVED"
)

// PurchaseOrder is a commercial document that, on approval, is converted into
// a balanced journal entry debiting each line's expense account and crediting
// the order's payable account.
type PurchaseOrder struct {
	GUID              string       `json:"guid"`
	Number            string       `json:"number"` // Human-facing, e.g. "PO-2025-0001"
	VendorGUID        string       `json:"vendorGUID"`
	Status            OrderStatus  `json:"status"`
	DateOpened        time.Time    `json:"dateOpened"`
	CreditAccountGUID string       `json:"creditAccountGUID"` // Empty means resolve Accounts Payable on approval
	Entries           []OrderEntry `json:"entries"`
}

// Total sums the exact line totals of all entries.
func (o PurchaseOrder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range o.Entries {
		total = total.Add(e.LineTotal())
	}
	return total
}

// OrderEntry is a single line item on a purchase order.
type OrderEntry struct {
	GUID               string          `json:"guid"`
	OrderGUID          string          `json:"orderGUID"`
	Description        string          `json:"description"`
	Quantity           decimal.Decimal `json:"quantity"`
	Price              decimal.Decimal `json:"price"`
	ExpenseAccountGUID string          `json:"expenseAccountGUID"` // Debited on approval
}

// LineTotal is quantity * price, computed with exact decimal arithmetic so
// sums across many lines never drift.
func (e OrderEntry) LineTotal() decimal.Decimal {
	return e.Quantity.Mul(e.Price)
}
