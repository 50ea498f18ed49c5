package dto

import (
	"github.com/ledgerhouse/bookkeeper/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountAmountResponse is one report row.
type AccountAmountResponse struct {
	AccountGUID string          `json:"account_guid"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
}

// BalanceSheetResponse is the wire representation of a balance sheet.
type BalanceSheetResponse struct {
	AsOf             string                `json:"as_of"`
	Assets           []AccountNodeResponse `json:"assets"`
	Liabilities      []AccountNodeResponse `json:"liabilities"`
	Equity           []AccountNodeResponse `json:"equity"`
	TotalAssets      decimal.Decimal       `json:"total_assets"`
	TotalLiabilities decimal.Decimal       `json:"total_liabilities"`
	TotalEquity      decimal.Decimal       `json:"total_equity"`
}

// IncomeStatementResponse is the wire representation of an income statement.
type IncomeStatementResponse struct {
	StartDate     string                  `json:"start_date"`
	EndDate       string                  `json:"end_date"`
	Income        []AccountAmountResponse `json:"income"`
	Expenses      []AccountAmountResponse `json:"expenses"`
	TotalIncome   decimal.Decimal         `json:"total_income"`
	TotalExpenses decimal.Decimal         `json:"total_expenses"`
	NetIncome     decimal.Decimal         `json:"net_income"`
}

// CashFlowResponse is the wire representation of a cash flow report.
type CashFlowResponse struct {
	StartDate      string                  `json:"start_date"`
	EndDate        string                  `json:"end_date"`
	OpeningBalance decimal.Decimal         `json:"opening_balance"`
	Inflows        decimal.Decimal         `json:"inflows"`
	Outflows       decimal.Decimal         `json:"outflows"`
	NetChange      decimal.Decimal         `json:"net_change"`
	ClosingBalance decimal.Decimal         `json:"closing_balance"`
	CashAccounts   []AccountAmountResponse `json:"cash_accounts"`
}

// DashboardResponse is the wire representation of the dashboard snapshot.
type DashboardResponse struct {
	TotalAssets        decimal.Decimal       `json:"total_assets"`
	TotalLiabilities   decimal.Decimal       `json:"total_liabilities"`
	MonthIncome        decimal.Decimal       `json:"month_income"`
	MonthExpenses      decimal.Decimal       `json:"month_expenses"`
	MonthNetIncome     decimal.Decimal       `json:"month_net_income"`
	AccountCount       int                   `json:"account_count"`
	TransactionCount   int                   `json:"transaction_count"`
	OpenOrderCount     int                   `json:"open_order_count"`
	ApprovedOrderCount int                   `json:"approved_order_count"`
	RecentTransactions []TransactionResponse `json:"recent_transactions"`
}

// EquationResponse is the wire representation of the accounting equation
// check.
type EquationResponse struct {
	IsBalanced       bool            `json:"is_balanced"`
	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	TotalEquity      decimal.Decimal `json:"total_equity"`
	NetIncome        decimal.Decimal `json:"net_income"`
	Difference       decimal.Decimal `json:"difference"`
	Tolerance        decimal.Decimal `json:"tolerance"`
}

func toAccountAmountResponses(rows []domain.AccountAmount) []AccountAmountResponse {
	out := make([]AccountAmountResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, AccountAmountResponse{
			AccountGUID: r.AccountGUID,
			Name:        r.Name,
			Amount:      r.Amount,
		})
	}
	return out
}

// ToBalanceSheetResponse maps a balance sheet report to its wire form.
func ToBalanceSheetResponse(r *domain.BalanceSheetReport, asOf string) BalanceSheetResponse {
	return BalanceSheetResponse{
		AsOf:             asOf,
		Assets:           ToAccountNodeResponses(r.Assets),
		Liabilities:      ToAccountNodeResponses(r.Liabilities),
		Equity:           ToAccountNodeResponses(r.Equity),
		TotalAssets:      r.TotalAssets,
		TotalLiabilities: r.TotalLiabilities,
		TotalEquity:      r.TotalEquity,
	}
}

// ToIncomeStatementResponse maps an income statement to its wire form.
func ToIncomeStatementResponse(r *domain.IncomeStatementReport, start, end string) IncomeStatementResponse {
	return IncomeStatementResponse{
		StartDate:     start,
		EndDate:       end,
		Income:        toAccountAmountResponses(r.Income),
		Expenses:      toAccountAmountResponses(r.Expenses),
		TotalIncome:   r.TotalIncome,
		TotalExpenses: r.TotalExpenses,
		NetIncome:     r.NetIncome,
	}
}

// ToCashFlowResponse maps a cash flow report to its wire form.
func ToCashFlowResponse(r *domain.CashFlowReport) CashFlowResponse {
	return CashFlowResponse{
		StartDate:      r.StartDate.Format("2006-01-02"),
		EndDate:        r.EndDate.Format("2006-01-02"),
		OpeningBalance: r.OpeningBalance,
		Inflows:        r.Inflows,
		Outflows:       r.Outflows,
		NetChange:      r.NetChange,
		ClosingBalance: r.ClosingBalance,
		CashAccounts:   toAccountAmountResponses(r.CashAccounts),
	}
}

// ToDashboardResponse maps the dashboard snapshot to its wire form.
func ToDashboardResponse(r *domain.DashboardReport) DashboardResponse {
	return DashboardResponse{
		TotalAssets:        r.TotalAssets,
		TotalLiabilities:   r.TotalLiabilities,
		MonthIncome:        r.MonthIncome,
		MonthExpenses:      r.MonthExpenses,
		MonthNetIncome:     r.MonthNetIncome,
		AccountCount:       r.AccountCount,
		TransactionCount:   r.TransactionCount,
		OpenOrderCount:     r.OpenOrderCount,
		ApprovedOrderCount: r.ApprovedOrderCount,
		RecentTransactions: ToTransactionResponses(r.RecentTransactions),
	}
}

// ToEquationResponse maps the equation check to its wire form.
func ToEquationResponse(r *domain.EquationReport) EquationResponse {
	return EquationResponse{
		IsBalanced:       r.IsBalanced,
		TotalAssets:      r.TotalAssets,
		TotalLiabilities: r.TotalLiabilities,
		TotalEquity:      r.TotalEquity,
		NetIncome:        r.NetIncome,
		Difference:       r.Difference,
		Tolerance:        r.Tolerance,
	}
}
