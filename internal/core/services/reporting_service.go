package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerhouse/bookkeeper/internal/core/domain"
	portsrepo "github.com/ledgerhouse/bookkeeper/internal/core/ports/repositories"
)

// equationTolerance bounds the residual the accounting equation check
// accepts before flagging the ledger as out of balance.
var equationTolerance = decimal.RequireFromString("0.01")

// recentTransactionLimit is how many transactions the dashboard shows.
const recentTransactionLimit = 5

// reportingService computes balances and derived reports. All aggregation
// happens over one grouped split-sum query per report; trees are assembled
// and rolled up in memory.
type reportingService struct {
	BaseService
	repo         portsrepo.ReportingRepository
	accountRepo  portsrepo.AccountReader
	purchaseRepo portsrepo.PurchaseOrderReader
}

// NewReportingService creates a new reporting service.
func NewReportingService(repo portsrepo.ReportingRepository, accountRepo portsrepo.AccountReader, purchaseRepo portsrepo.PurchaseOrderReader) *reportingService {
	return &reportingService{repo: repo, accountRepo: accountRepo, purchaseRepo: purchaseRepo}
}

// buildForest assembles the account forest and rolls balances up bottom-up:
// each node's balance is its own split sum plus all child balances.
func buildForest(accounts []domain.Account, ownSums map[string]decimal.Decimal) []*domain.AccountNode {
	nodes := make(map[string]*domain.AccountNode, len(accounts))
	for i := range accounts {
		a := &accounts[i]
		nodes[a.GUID] = &domain.AccountNode{
			GUID:        a.GUID,
			Name:        a.Name,
			AccountType: a.AccountType,
			Code:        a.Code,
			Placeholder: a.Placeholder,
			Balance:     ownSums[a.GUID],
			Children:    []*domain.AccountNode{},
		}
	}

	var roots []*domain.AccountNode
	for i := range accounts {
		a := &accounts[i]
		node := nodes[a.GUID]
		if a.ParentGUID == "" {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[a.ParentGUID]; ok {
			parent.Children = append(parent.Children, node)
		} else {
			// Orphaned parent reference; surface the node at top level
			// rather than losing its balance.
			roots = append(roots, node)
		}
	}

	var rollup func(n *domain.AccountNode) decimal.Decimal
	rollup = func(n *domain.AccountNode) decimal.Decimal {
		for _, c := range n.Children {
			n.Balance = n.Balance.Add(rollup(c))
		}
		return n.Balance
	}
	for _, r := range roots {
		rollup(r)
	}
	return roots
}

// loadForest fetches all accounts plus their split sums up to the cutoff and
// returns the rolled-up forest.
func (s *reportingService) loadForest(ctx context.Context, asOf *time.Time) ([]*domain.AccountNode, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	sums, err := s.repo.SumSplitsByAccount(ctx, nil, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to sum splits: %w", err)
	}
	return buildForest(accounts, sums), nil
}

// AccountBalance computes one account's aggregated balance: its own splits
// plus every descendant's.
func (s *reportingService) AccountBalance(ctx context.Context, guid string, asOf *time.Time) (decimal.Decimal, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, guid); err != nil {
		return decimal.Zero, err
	}
	forest, err := s.loadForest(ctx, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	if node := findNode(forest, guid); node != nil {
		return node.Balance, nil
	}
	return decimal.Zero, nil
}

func findNode(nodes []*domain.AccountNode, guid string) *domain.AccountNode {
	for _, n := range nodes {
		if n.GUID == guid {
			return n
		}
		if found := findNode(n.Children, guid); found != nil {
			return found
		}
	}
	return nil
}

// TreeWithBalances returns the full account forest with aggregated balances.
func (s *reportingService) TreeWithBalances(ctx context.Context, asOf *time.Time) ([]*domain.AccountNode, error) {
	return s.loadForest(ctx, asOf)
}

// BalanceSheet reports the asset, liability and equity trees as of a date.
// Totals keep the stored sign convention: liabilities and equity are
// credit-normal, hence negative.
func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	forest, err := s.loadForest(ctx, &asOf)
	if err != nil {
		return nil, err
	}

	report := &domain.BalanceSheetReport{
		Assets:      []*domain.AccountNode{},
		Liabilities: []*domain.AccountNode{},
		Equity:      []*domain.AccountNode{},
	}
	for _, root := range forest {
		switch root.AccountType {
		case domain.Asset:
			report.Assets = append(report.Assets, root)
			report.TotalAssets = report.TotalAssets.Add(root.Balance)
		case domain.Liability:
			report.Liabilities = append(report.Liabilities, root)
			report.TotalLiabilities = report.TotalLiabilities.Add(root.Balance)
		case domain.Equity:
			report.Equity = append(report.Equity, root)
			report.TotalEquity = report.TotalEquity.Add(root.Balance)
		}
	}
	return report, nil
}

// IncomeStatement reports per-account income and expense activity within the
// period, as magnitudes. Income is stored credit-normal and negated for
// presentation.
func (s *reportingService) IncomeStatement(ctx context.Context, startDate, endDate time.Time) (*domain.IncomeStatementReport, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	sums, err := s.repo.SumSplitsByAccount(ctx, &startDate, &endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to sum splits: %w", err)
	}

	report := &domain.IncomeStatementReport{
		Income:   []domain.AccountAmount{},
		Expenses: []domain.AccountAmount{},
	}
	for i := range accounts {
		a := &accounts[i]
		sum, ok := sums[a.GUID]
		if !ok || sum.IsZero() {
			continue
		}
		switch a.AccountType {
		case domain.Income:
			amount := sum.Neg()
			report.Income = append(report.Income, domain.AccountAmount{
				AccountGUID: a.GUID, Name: a.Name, Amount: amount,
			})
			report.TotalIncome = report.TotalIncome.Add(amount)
		case domain.Expense:
			report.Expenses = append(report.Expenses, domain.AccountAmount{
				AccountGUID: a.GUID, Name: a.Name, Amount: sum,
			})
			report.TotalExpenses = report.TotalExpenses.Add(sum)
		}
	}
	report.NetIncome = report.TotalIncome.Sub(report.TotalExpenses)
	return report, nil
}

// isCashAccount reports whether an asset account counts as cash for the cash
// flow report. Matched by name, as the chart carries no liquidity flag.
func isCashAccount(a *domain.Account) bool {
	if a.AccountType != domain.Asset {
		return false
	}
	name := strings.ToLower(a.Name)
	return strings.Contains(name, "cash") || strings.Contains(name, "bank")
}

// CashFlow reports movement through cash accounts over a period.
func (s *reportingService) CashFlow(ctx context.Context, startDate, endDate time.Time) (*domain.CashFlowReport, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	var cashAccounts []*domain.Account
	var cashGUIDs []string
	for i := range accounts {
		if isCashAccount(&accounts[i]) {
			cashAccounts = append(cashAccounts, &accounts[i])
			cashGUIDs = append(cashGUIDs, accounts[i].GUID)
		}
	}

	report := &domain.CashFlowReport{
		StartDate:    startDate,
		EndDate:      endDate,
		CashAccounts: []domain.AccountAmount{},
	}
	if len(cashGUIDs) == 0 {
		return report, nil
	}

	dayBefore := startDate.AddDate(0, 0, -1)
	openingSums, err := s.repo.SumSplitsByAccount(ctx, nil, &dayBefore)
	if err != nil {
		return nil, fmt.Errorf("failed to sum opening balances: %w", err)
	}
	for _, guid := range cashGUIDs {
		report.OpeningBalance = report.OpeningBalance.Add(openingSums[guid])
	}

	inflows, outflows, err := s.repo.SumSplitFlows(ctx, cashGUIDs, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to sum cash flows: %w", err)
	}
	report.Inflows = inflows
	report.Outflows = outflows.Abs()
	report.NetChange = inflows.Add(outflows)
	report.ClosingBalance = report.OpeningBalance.Add(report.NetChange)

	periodSums, err := s.repo.SumSplitsByAccount(ctx, &startDate, &endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to sum period splits: %w", err)
	}
	for _, a := range cashAccounts {
		report.CashAccounts = append(report.CashAccounts, domain.AccountAmount{
			AccountGUID: a.GUID,
			Name:        a.Name,
			Amount:      periodSums[a.GUID],
		})
	}
	return report, nil
}

// Dashboard assembles the aggregate snapshot: lifetime asset and liability
// totals, current-month income and expenses, entity counts, and the latest
// transactions.
func (s *reportingService) Dashboard(ctx context.Context) (*domain.DashboardReport, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	sums, err := s.repo.SumSplitsByAccount(ctx, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to sum splits: %w", err)
	}

	report := &domain.DashboardReport{AccountCount: len(accounts)}
	for i := range accounts {
		a := &accounts[i]
		switch a.AccountType {
		case domain.Asset:
			report.TotalAssets = report.TotalAssets.Add(sums[a.GUID])
		case domain.Liability:
			report.TotalLiabilities = report.TotalLiabilities.Add(sums[a.GUID])
		}
	}
	report.TotalLiabilities = report.TotalLiabilities.Neg()

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthSums, err := s.repo.SumSplitsByAccount(ctx, &monthStart, &now)
	if err != nil {
		return nil, fmt.Errorf("failed to sum month splits: %w", err)
	}
	for i := range accounts {
		a := &accounts[i]
		switch a.AccountType {
		case domain.Income:
			report.MonthIncome = report.MonthIncome.Add(monthSums[a.GUID].Neg())
		case domain.Expense:
			report.MonthExpenses = report.MonthExpenses.Add(monthSums[a.GUID])
		}
	}
	report.MonthNetIncome = report.MonthIncome.Sub(report.MonthExpenses)

	report.TransactionCount, err = s.repo.CountTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}
	report.OpenOrderCount, err = s.purchaseRepo.CountOrdersByStatus(ctx, domain.OrderOpen)
	if err != nil {
		return nil, fmt.Errorf("failed to count open orders: %w", err)
	}
	report.ApprovedOrderCount, err = s.purchaseRepo.CountOrdersByStatus(ctx, domain.OrderApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to count approved orders: %w", err)
	}
	report.RecentTransactions, err = s.repo.ListRecentTransactions(ctx, recentTransactionLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent transactions: %w", err)
	}
	return report, nil
}

// VerifyEquation cross-checks Assets = Liabilities + Equity + net income.
// Since both sides derive from the same zero-sum splits the equation holds by
// construction; a residual indicates data damage. The result is always
// reported as data.
func (s *reportingService) VerifyEquation(ctx context.Context, asOf *time.Time) (*domain.EquationReport, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	sums, err := s.repo.SumSplitsByAccount(ctx, nil, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to sum splits: %w", err)
	}

	var assets, liabilities, equity, income, expenses decimal.Decimal
	for i := range accounts {
		a := &accounts[i]
		sum := sums[a.GUID]
		switch a.AccountType {
		case domain.Asset:
			assets = assets.Add(sum)
		case domain.Liability:
			liabilities = liabilities.Add(sum)
		case domain.Equity:
			equity = equity.Add(sum)
		case domain.Income:
			income = income.Add(sum)
		case domain.Expense:
			expenses = expenses.Add(sum)
		}
	}

	netIncome := income.Neg().Sub(expenses)
	report := &domain.EquationReport{
		TotalAssets:      assets,
		TotalLiabilities: liabilities.Abs(),
		TotalEquity:      equity.Abs(),
		NetIncome:        netIncome,
		Tolerance:        equationTolerance,
	}
	report.Difference = assets.Sub(report.TotalLiabilities.Add(report.TotalEquity).Add(netIncome))
	report.IsBalanced = report.Difference.Abs().LessThanOrEqual(equationTolerance)
	return report, nil
}
