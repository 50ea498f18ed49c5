package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder is the database model for a purchase order row.
type PurchaseOrder struct {
	GUID              string
	Number            string
	VendorGUID        string
	Status            string
	DateOpened        time.Time
	CreditAccountGUID string
}

// OrderEntry is the database model for an order line item row.
type OrderEntry struct {
	GUID               string
	OrderGUID          string
	Description        string
	Quantity           decimal.Decimal
	Price              decimal.Decimal
	ExpenseAccountGUID string
}
