package services

import (
	"context"
	"time"

	"github.com/ledgerhouse/bookkeeper/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingSvcFacade defines balance aggregation and derived reports.
type ReportingSvcFacade interface {
	// AccountBalance computes the account's balance as of the optional
	// cutoff date: its own splits plus all descendant balances.
	AccountBalance(ctx context.Context, guid string, asOf *time.Time) (decimal.Decimal, error)

	// TreeWithBalances returns the full account forest with aggregated
	// per-node balances.
	TreeWithBalances(ctx context.Context, asOf *time.Time) ([]*domain.AccountNode, error)

	// BalanceSheet reports asset, liability and equity trees as of a date.
	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error)

	// IncomeStatement reports income and expenses over a period.
	IncomeStatement(ctx context.Context, startDate, endDate time.Time) (*domain.IncomeStatementReport, error)

	// CashFlow reports movement through cash accounts over a period.
	CashFlow(ctx context.Context, startDate, endDate time.Time) (*domain.CashFlowReport, error)

	// Dashboard reports the aggregate snapshot for the dashboard view.
	Dashboard(ctx context.Context) (*domain.DashboardReport, error)

	// VerifyEquation cross-checks Assets = Liabilities + Equity + retained
	// earnings; imbalance is reported as data, never as an error.
	VerifyEquation(ctx context.Context, asOf *time.Time) (*domain.EquationReport, error)
}
