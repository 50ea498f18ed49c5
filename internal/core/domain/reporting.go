package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountNode is one node of the account tree annotated with its aggregated
// balance: the sum of the account's own splits plus all descendant balances.
type AccountNode struct {
	GUID        string          `json:"guid"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Code        string          `json:"code"`
	Placeholder bool            `json:"placeholder"`
	Balance     decimal.Decimal `json:"balance"`
	Children    []*AccountNode  `json:"children"`
}

// AccountAmount pairs an account with a single amount for report rows.
type AccountAmount struct {
	AccountGUID string          `json:"accountGUID"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
}

// BalanceSheetReport holds per-type account trees and their totals in the
// stored sign convention (liability and equity balances are credit-normal,
// hence negative).
type BalanceSheetReport struct {
	Assets           []*AccountNode  `json:"assets"`
	Liabilities      []*AccountNode  `json:"liabilities"`
	Equity           []*AccountNode  `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
}

// IncomeStatementReport holds period income and expense totals as magnitudes
// (income stored credit-normal is negated for presentation).
type IncomeStatementReport struct {
	Income        []AccountAmount `json:"income"`
	Expenses      []AccountAmount `json:"expenses"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetIncome     decimal.Decimal `json:"netIncome"`
}

// CashFlowReport summarizes movement through cash accounts over a period.
type CashFlowReport struct {
	StartDate      time.Time       `json:"startDate"`
	EndDate        time.Time       `json:"endDate"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Inflows        decimal.Decimal `json:"inflows"`
	Outflows       decimal.Decimal `json:"outflows"` // Reported as a positive magnitude
	NetChange      decimal.Decimal `json:"netChange"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	CashAccounts   []AccountAmount `json:"cashAccounts"`
}

// DashboardReport is the aggregate snapshot served to the dashboard view.
type DashboardReport struct {
	TotalAssets        decimal.Decimal `json:"totalAssets"`
	TotalLiabilities   decimal.Decimal `json:"totalLiabilities"` // Magnitude
	MonthIncome        decimal.Decimal `json:"monthIncome"`      // Magnitude, current month
	MonthExpenses      decimal.Decimal `json:"monthExpenses"`
	MonthNetIncome     decimal.Decimal `json:"monthNetIncome"`
	AccountCount       int             `json:"accountCount"`
	TransactionCount   int             `json:"transactionCount"`
	OpenOrderCount     int             `json:"openOrderCount"`
	ApprovedOrderCount int             `json:"approvedOrderCount"`
	RecentTransactions []Transaction   `json:"recentTransactions"`
}

// EquationReport is the result of the accounting equation consistency check
// Assets = Liabilities + Equity (+ retained current-period earnings). An
// out-of-balance ledger is reported as data, not an error, since historical
// data may already be inconsistent.
type EquationReport struct {
	IsBalanced       bool            `json:"isBalanced"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	NetIncome        decimal.Decimal `json:"netIncome"`
	Difference       decimal.Decimal `json:"difference"`
	Tolerance        decimal.Decimal `json:"tolerance"`
}
