package models

import "time"

// Transaction is the database model for a journal transaction row.
type Transaction struct {
	GUID        string
	PostDate    time.Time
	EnterDate   time.Time
	Description string
}

// Split is the database model for a split row. The amount is stored as an
// exact integer pair, never as a float or rounded decimal.
type Split struct {
	GUID           string
	TxGUID         string
	AccountGUID    string
	Memo           string
	ValueNum       int64
	ValueDenom     int64
	ReconcileState string
}
