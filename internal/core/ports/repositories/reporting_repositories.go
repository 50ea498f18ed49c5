package repositories

import (
	"context"
	"time"

	"github.com/ledgerhouse/bookkeeper/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines the aggregate read queries behind balance
// computation and report generation. All sums are over the exact stored
// value_num/value_denom representation.
type ReportingRepository interface {
	// SumSplitsByAccount returns each account's direct split total for
	// transactions posted within [startDate, endDate]; either bound may be
	// nil for an open interval. Accounts with no splits are absent from the
	// result.
	SumSplitsByAccount(ctx context.Context, startDate, endDate *time.Time) (map[string]decimal.Decimal, error)

	// SumSplitFlows returns the separate positive (debit) and negative
	// (credit) split totals across the given accounts for the period. The
	// outflow total is returned as stored, i.e. negative or zero.
	SumSplitFlows(ctx context.Context, accountGUIDs []string, startDate, endDate time.Time) (inflows, outflows decimal.Decimal, err error)

	// CountTransactions counts all transactions.
	CountTransactions(ctx context.Context) (int, error)

	// ListRecentTransactions retrieves the most recently entered
	// transactions with their splits.
	ListRecentTransactions(ctx context.Context, limit int) ([]domain.Transaction, error)
}
