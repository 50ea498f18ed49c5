package dto

import (
	"time"

	"github.com/ledgerhouse/bookkeeper/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSplitRequest is one leg of a journal transaction. Amount is signed:
// positive debits the account, negative credits it.
type CreateSplitRequest struct {
	AccountGUID string          `json:"account_guid" binding:"required,uuid"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Memo        string          `json:"memo" binding:"omitempty,max=255"`
}

// CreateTransactionRequest carries the payload for posting a journal
// transaction. Splits must sum to zero.
type CreateTransactionRequest struct {
	PostDate    string               `json:"post_date" binding:"required,datetime=2006-01-02"`
	Description string               `json:"description" binding:"required,max=255"`
	Splits      []CreateSplitRequest `json:"splits" binding:"required,min=2,dive"`
}

// QuickEntryRequest posts a simple two-legged entry against an account.
// Amount is the change from the primary account's point of view; the service
// derives debit/credit polarity from the account type.
type QuickEntryRequest struct {
	PostDate        string          `json:"post_date" binding:"required,datetime=2006-01-02"`
	Description     string          `json:"description" binding:"required,max=255"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	OppositeAccount string          `json:"opposite_account_guid" binding:"required,uuid"`
}

// SplitResponse is the wire representation of a split.
type SplitResponse struct {
	GUID           string          `json:"guid"`
	AccountGUID    string          `json:"account_guid"`
	Amount         decimal.Decimal `json:"amount"`
	Memo           string          `json:"memo,omitempty"`
	ReconcileState string          `json:"reconcile_state"`
}

// TransactionResponse is the wire representation of a transaction and its
// splits.
type TransactionResponse struct {
	GUID        string          `json:"guid"`
	PostDate    string          `json:"post_date"`
	EnterDate   time.Time       `json:"enter_date"`
	Description string          `json:"description"`
	Splits      []SplitResponse `json:"splits"`
}

// ToTransactionResponse maps a domain transaction to its wire form.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	splits := make([]SplitResponse, 0, len(t.Splits))
	for i := range t.Splits {
		s := &t.Splits[i]
		splits = append(splits, SplitResponse{
			GUID:           s.GUID,
			AccountGUID:    s.AccountGUID,
			Amount:         s.Amount(),
			Memo:           s.Memo,
			ReconcileState: s.ReconcileState,
		})
	}
	return TransactionResponse{
		GUID:        t.GUID,
		PostDate:    t.PostDate.Format("2006-01-02"),
		EnterDate:   t.EnterDate,
		Description: t.Description,
		Splits:      splits,
	}
}

// ToTransactionResponses maps a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for i := range txns {
		out = append(out, ToTransactionResponse(&txns[i]))
	}
	return out
}
