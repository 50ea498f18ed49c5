package domain

import (
	"time"

	"github.com/ledgerhouse/bookkeeper/internal/utils/money"
	"github.com/shopspring/decimal"
)

// ReconcileState values for a split. Only "not reconciled" is ever written by
// this service; the column exists for interoperability with reconciliation
// tooling.
const (
	NotReconciled = "n"
	Reconciled    = "y"
)

// Transaction is a balanced journal entry composed of two or more splits.
// The sum of all split amounts is exactly zero.
type Transaction struct {
	GUID        string    `json:"guid"`
	PostDate    time.Time `json:"postDate"`  // Accounting-effective date
	EnterDate   time.Time `json:"enterDate"` // Timestamp of recording, informational
	Description string    `json:"description"`
	Splits      []Split   `json:"splits"`
}

// SplitsTotal sums the amounts of all splits. Zero for any persisted
// transaction; exposed for validation before persistence.
func (t Transaction) SplitsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, s := range t.Splits {
		total = total.Add(s.Amount())
	}
	return total
}

// Split is one leg of a transaction, posted to exactly one account.
// Positive amounts are debits, negative amounts are credits, uniformly
// across all account types.
type Split struct {
	GUID           string         `json:"guid"`
	TxGUID         string         `json:"txGUID"`
	AccountGUID    string         `json:"accountGUID"`
	Memo           string         `json:"memo"`
	Value          money.Fraction `json:"value"` // Exact stored representation
	ReconcileState string         `json:"reconcileState"`
}

// Amount returns the split's value as a decimal. Serialization layers must go
// through this conversion rather than reading the raw integer pair.
func (s Split) Amount() decimal.Decimal {
	return s.Value.Decimal()
}

// SetAmount stores the decimal amount in exact fraction form.
func (s *Split) SetAmount(d decimal.Decimal) error {
	f, err := money.FromDecimal(d)
	if err != nil {
		return err
	}
	s.Value = f
	return nil
}
