package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
	Equity    AccountType = "EQUITY"
)

// CodePrefix returns the leading digit used when auto-assigning codes to root
// accounts of this type.
func (t AccountType) CodePrefix() string {
	switch t {
	case Asset:
		return "1"
	case Liability:
		return "2"
	case Equity:
		return "3"
	case Income:
		return "4"
	case Expense:
		return "5"
	}
	return ""
}

// IsValid reports whether t is one of the five known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Income, Expense, Equity:
		return true
	}
	return false
}

// Account represents one node in the chart of accounts. Accounts form a
// forest via ParentGUID; an empty ParentGUID marks a root account.
type Account struct {
	GUID        string      `json:"guid"`
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"` // Immutable after creation
	ParentGUID  string      `json:"parentGUID"`  // Empty for root accounts
	Placeholder bool        `json:"placeholder"` // Structural grouping node, advisory only
	Code        string      `json:"code"`        // Human-facing code, e.g. "101" or "101001"
	AuditFields
}
