package dto

import (
	"github.com/ledgerhouse/bookkeeper/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateOrderEntryRequest is a single line item on a purchase order.
type CreateOrderEntryRequest struct {
	Description        string          `json:"description" binding:"required,max=255"`
	Quantity           decimal.Decimal `json:"quantity" binding:"required"`
	Price              decimal.Decimal `json:"price" binding:"required"`
	ExpenseAccountGUID string          `json:"expense_account_guid" binding:"required,uuid"`
}

// CreatePurchaseOrderRequest carries the payload for opening a purchase
// order.
type CreatePurchaseOrderRequest struct {
	VendorGUID        string                    `json:"vendor_guid" binding:"required,uuid"`
	DateOpened        string                    `json:"date_opened" binding:"required,datetime=2006-01-02"`
	CreditAccountGUID *string                   `json:"credit_account_guid" binding:"omitempty,uuid"`
	Entries           []CreateOrderEntryRequest `json:"entries" binding:"required,min=1,dive"`
}

// OrderEntryResponse is the wire representation of an order line item.
type OrderEntryResponse struct {
	GUID               string          `json:"guid"`
	Description        string          `json:"description"`
	Quantity           decimal.Decimal `json:"quantity"`
	Price              decimal.Decimal `json:"price"`
	LineTotal          decimal.Decimal `json:"line_total"`
	ExpenseAccountGUID string          `json:"expense_account_guid"`
}

// PurchaseOrderResponse is the wire representation of a purchase order.
type PurchaseOrderResponse struct {
	GUID              string               `json:"guid"`
	Number            string               `json:"number"`
	VendorGUID        string               `json:"vendor_guid"`
	Status            string               `json:"status"`
	DateOpened        string               `json:"date_opened"`
	CreditAccountGUID string               `json:"credit_account_guid,omitempty"`
	Total             decimal.Decimal      `json:"total"`
	Entries           []OrderEntryResponse `json:"entries"`
}

// PurchaseOrderListResponse is one page of orders plus the total count.
type PurchaseOrderListResponse struct {
	Orders  []PurchaseOrderResponse `json:"orders"`
	Total   int                     `json:"total"`
	Page    int                     `json:"page"`
	PerPage int                     `json:"per_page"`
}

// ToPurchaseOrderResponse maps a domain order to its wire form.
func ToPurchaseOrderResponse(o *domain.PurchaseOrder) PurchaseOrderResponse {
	entries := make([]OrderEntryResponse, 0, len(o.Entries))
	for i := range o.Entries {
		e := &o.Entries[i]
		entries = append(entries, OrderEntryResponse{
			GUID:               e.GUID,
			Description:        e.Description,
			Quantity:           e.Quantity,
			Price:              e.Price,
			LineTotal:          e.LineTotal(),
			ExpenseAccountGUID: e.ExpenseAccountGUID,
		})
	}
	return PurchaseOrderResponse{
		GUID:              o.GUID,
		Number:            o.Number,
		VendorGUID:        o.VendorGUID,
		Status:            string(o.Status),
		DateOpened:        o.DateOpened.Format("2006-01-02"),
		CreditAccountGUID: o.CreditAccountGUID,
		Total:             o.Total(),
		Entries:           entries,
	}
}

// ToPurchaseOrderResponses maps a slice of domain orders.
func ToPurchaseOrderResponses(orders []domain.PurchaseOrder) []PurchaseOrderResponse {
	out := make([]PurchaseOrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, ToPurchaseOrderResponse(&orders[i]))
	}
	return out
}
