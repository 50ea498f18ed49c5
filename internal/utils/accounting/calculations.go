package accounting

import (
	"fmt"

	"github.com/ledgerhouse/bookkeeper/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the maximum absolute residual a set of splits may carry
// and still count as balanced. Amounts are exact rationals, so this only
// absorbs rounding introduced by callers, never by storage.
var BalanceTolerance = decimal.RequireFromString("0.000000001")

// StoredAmountForChange converts a change expressed from the account's point
// of view (positive = the account grows) into the stored signed amount.
// Debits are stored positive and credits negative for every account type, so
// growth of a credit-normal account flips the sign.
//
// Increase to ASSET/EXPENSE   -> debit  (+)
// Increase to LIABILITY/EQUITY/INCOME -> credit (-)
func StoredAmountForChange(accountType domain.AccountType, change decimal.Decimal) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return change, nil
	case domain.Liability, domain.Equity, domain.Income:
		return change.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type %q", accountType)
	}
}

// SumSplitAmounts totals the signed amounts of a transaction's splits.
func SumSplitAmounts(splits []domain.Split) decimal.Decimal {
	sum := decimal.Zero
	for i := range splits {
		sum = sum.Add(splits[i].Amount())
	}
	return sum
}

// CheckBalanced reports whether the signed amounts sum to zero within
// BalanceTolerance, returning the residual either way.
func CheckBalanced(amounts []decimal.Decimal) (decimal.Decimal, bool) {
	sum := decimal.Zero
	for _, a := range amounts {
		sum = sum.Add(a)
	}
	return sum, sum.Abs().LessThanOrEqual(BalanceTolerance)
}
