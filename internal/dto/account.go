package dto

import (
	"time"

	"github.com/ledgerhouse/bookkeeper/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest carries the payload for creating an account.
type CreateAccountRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	AccountType string  `json:"account_type" binding:"required,oneof=ASSET LIABILITY INCOME EXPENSE EQUITY"`
	ParentGUID  *string `json:"parent_guid" binding:"omitempty,uuid"`
	Code        string  `json:"code" binding:"omitempty,max=20"`
	Placeholder bool    `json:"placeholder"`
}

// UpdateAccountRequest carries the payload for renaming an account.
type UpdateAccountRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// AccountResponse is the wire representation of an account.
type AccountResponse struct {
	GUID          string    `json:"guid"`
	Name          string    `json:"name"`
	AccountType   string    `json:"account_type"`
	ParentGUID    string    `json:"parent_guid,omitempty"`
	Code          string    `json:"code"`
	Placeholder   bool      `json:"placeholder"`
	CreatedAt     time.Time `json:"created_at"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

// AccountNodeResponse is an account plus its aggregated balance and children,
// used by the tree endpoint and the balance sheet.
type AccountNodeResponse struct {
	GUID        string                `json:"guid"`
	Name        string                `json:"name"`
	AccountType string                `json:"account_type"`
	Code        string                `json:"code"`
	Placeholder bool                  `json:"placeholder"`
	Balance     decimal.Decimal       `json:"balance"`
	Children    []AccountNodeResponse `json:"children"`
}

// AccountBalanceResponse is the wire representation of a single aggregated
// balance.
type AccountBalanceResponse struct {
	GUID    string          `json:"guid"`
	Balance decimal.Decimal `json:"balance"`
	AsOf    *string         `json:"as_of,omitempty"`
}

// TransactionCountResponse reports how many transactions touch an account.
type TransactionCountResponse struct {
	GUID  string `json:"guid"`
	Count int    `json:"count"`
}

// ToAccountResponse maps a domain account to its wire form.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		GUID:          a.GUID,
		Name:          a.Name,
		AccountType:   string(a.AccountType),
		ParentGUID:    a.ParentGUID,
		Code:          a.Code,
		Placeholder:   a.Placeholder,
		CreatedAt:     a.CreatedAt,
		LastUpdatedAt: a.LastUpdatedAt,
	}
}

// ToAccountResponses maps a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, ToAccountResponse(&accounts[i]))
	}
	return out
}

// ToAccountNodeResponse maps a balance tree node recursively.
func ToAccountNodeResponse(n *domain.AccountNode) AccountNodeResponse {
	children := make([]AccountNodeResponse, 0, len(n.Children))
	for _, c := range n.Children {
		children = append(children, ToAccountNodeResponse(c))
	}
	return AccountNodeResponse{
		GUID:        n.GUID,
		Name:        n.Name,
		AccountType: string(n.AccountType),
		Code:        n.Code,
		Placeholder: n.Placeholder,
		Balance:     n.Balance,
		Children:    children,
	}
}

// ToAccountNodeResponses maps a forest of balance tree nodes.
func ToAccountNodeResponses(nodes []*domain.AccountNode) []AccountNodeResponse {
	out := make([]AccountNodeResponse, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, ToAccountNodeResponse(n))
	}
	return out
}
