package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ledgerhouse/bookkeeper/internal/core/domain"
	portssvc "github.com/ledgerhouse/bookkeeper/internal/core/ports/services"
	"github.com/ledgerhouse/bookkeeper/internal/core/services"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo         *MockReportingRepository
	mockAccountRepo  *MockAccountRepository
	mockPurchaseRepo *MockPurchaseRepository
	service          portssvc.ReportingSvcFacade
	ctx              context.Context
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockPurchaseRepo = new(MockPurchaseRepository)
	suite.service = services.NewReportingService(suite.mockRepo, suite.mockAccountRepo, suite.mockPurchaseRepo)
	suite.ctx = context.Background()
}

func (suite *ReportingServiceTestSuite) TestAccountBalanceRollsUpDescendants() {
	parent := domain.Account{GUID: "parent", Name: "Current Assets", AccountType: domain.Asset, Code: "101"}
	child := domain.Account{GUID: "child", Name: "Cash", AccountType: domain.Asset, ParentGUID: "parent", Code: "101001"}
	grandchild := domain.Account{GUID: "grandchild", Name: "Petty Cash", AccountType: domain.Asset, ParentGUID: "child", Code: "101001001"}

	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "parent").Return(&parent, nil)
	suite.mockAccountRepo.On("ListAccounts", suite.ctx).Return([]domain.Account{parent, child, grandchild}, nil)
	suite.mockRepo.On("SumSplitsByAccount", suite.ctx, (*time.Time)(nil), (*time.Time)(nil)).Return(map[string]decimal.Decimal{
		"parent":     decimal.RequireFromString("10.00"),
		"child":      decimal.RequireFromString("40.00"),
		"grandchild": decimal.RequireFromString("5.00"),
	}, nil)

	balance, err := suite.service.AccountBalance(suite.ctx, "parent", nil)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.RequireFromString("55.00")))
}

func (suite *ReportingServiceTestSuite) TestTreeWithBalancesSurfacesOrphans() {
	orphan := domain.Account{GUID: "orphan", Name: "Lost", AccountType: domain.Asset, ParentGUID: "gone"}

	suite.mockAccountRepo.On("ListAccounts", suite.ctx).Return([]domain.Account{orphan}, nil)
	suite.mockRepo.On("SumSplitsByAccount", suite.ctx, (*time.Time)(nil), (*time.Time)(nil)).Return(map[string]decimal.Decimal{
		"orphan": decimal.RequireFromString("12.00"),
	}, nil)

	forest, err := suite.service.TreeWithBalances(suite.ctx, nil)

	suite.Require().NoError(err)
	suite.Require().Len(forest, 1)
	suite.Equal("orphan", forest[0].GUID)
	suite.True(forest[0].Balance.Equal(decimal.RequireFromString("12.00")))
}

func (suite *ReportingServiceTestSuite) TestBalanceSheetPartitionsByType() {
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	accounts := []domain.Account{
		{GUID: "cash", Name: "Cash", AccountType: domain.Asset},
		{GUID: "loan", Name: "Bank Loan", AccountType: domain.Liability},
		{GUID: "capital", Name: "Owner Capital", AccountType: domain.Equity},
		{GUID: "sales", Name: "Sales", AccountType: domain.Income},
	}
	suite.mockAccountRepo.On("ListAccounts", suite.ctx).Return(accounts, nil)
	suite.mockRepo.On("SumSplitsByAccount", suite.ctx, (*time.Time)(nil), &asOf).Return(map[string]decimal.Decimal{
		"cash":    decimal.RequireFromString("800.00"),
		"loan":    decimal.RequireFromString("-300.00"),
		"capital": decimal.RequireFromString("-500.00"),
	}, nil)

	report, err := suite.service.BalanceSheet(suite.ctx, asOf)

	suite.Require().NoError(err)
	suite.Len(report.Assets, 1)
	suite.Len(report.Liabilities, 1)
	suite.Len(report.Equity, 1)
	suite.True(report.TotalAssets.Equal(decimal.RequireFromString("800.00")))
	suite.True(report.TotalLiabilities.Equal(decimal.RequireFromString("-300.00")))
	suite.True(report.TotalEquity.Equal(decimal.RequireFromString("-500.00")))
}

func (suite *ReportingServiceTestSuite) TestIncomeStatementReportsMagnitudes() {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	accounts := []domain.Account{
		{GUID: "sales", Name: "Sales", AccountType: domain.Income},
		{GUID: "rent", Name: "Rent", AccountType: domain.Expense},
		{GUID: "idle", Name: "Idle Expense", AccountType: domain.Expense},
	}
	suite.mockAccountRepo.On("ListAccounts", suite.ctx).Return(accounts, nil)
	suite.mockRepo.On("SumSplitsByAccount", suite.ctx, &start, &end).Return(map[string]decimal.Decimal{
		"sales": decimal.RequireFromString("-400.00"),
		"rent":  decimal.RequireFromString("150.00"),
	}, nil)

	report, err := suite.service.IncomeStatement(suite.ctx, start, end)

	suite.Require().NoError(err)
	suite.Require().Len(report.Income, 1)
	suite.Require().Len(report.Expenses, 1)
	suite.True(report.Income[0].Amount.Equal(decimal.RequireFromString("400.00")))
	suite.True(report.TotalIncome.Equal(decimal.RequireFromString("400.00")))
	suite.True(report.TotalExpenses.Equal(decimal.RequireFromString("150.00")))
	suite.True(report.NetIncome.Equal(decimal.RequireFromString("250.00")))
}

func (suite *ReportingServiceTestSuite) TestCashFlowMatchesAccountsByName() {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	dayBefore := start.AddDate(0, 0, -1)
	accounts := []domain.Account{
		{GUID: "cash", Name: "Cash on Hand", AccountType: domain.Asset},
		{GUID: "bank", Name: "Checking Bank Account", AccountType: domain.Asset},
		{GUID: "equipment", Name: "Equipment", AccountType: domain.Asset},
		{GUID: "sales", Name: "Cash Sales", AccountType: domain.Income},
	}
	suite.mockAccountRepo.On("ListAccounts", suite.ctx).Return(accounts, nil)
	suite.mockRepo.On("SumSplitsByAccount", suite.ctx, (*time.Time)(nil), &dayBefore).Return(map[string]decimal.Decimal{
		"cash": decimal.RequireFromString("100.00"),
		"bank": decimal.RequireFromString("400.00"),
	}, nil)
	suite.mockRepo.On("SumSplitFlows", suite.ctx, []string{"cash", "bank"}, start, end).
		Return(decimal.RequireFromString("250.00"), decimal.RequireFromString("-90.00"), nil)
	suite.mockRepo.On("SumSplitsByAccount", suite.ctx, &start, &end).Return(map[string]decimal.Decimal{
		"cash": decimal.RequireFromString("60.00"),
		"bank": decimal.RequireFromString("100.00"),
	}, nil)

	report, err := suite.service.CashFlow(suite.ctx, start, end)

	suite.Require().NoError(err)
	suite.True(report.OpeningBalance.Equal(decimal.RequireFromString("500.00")))
	suite.True(report.Inflows.Equal(decimal.RequireFromString("250.00")))
	suite.True(report.Outflows.Equal(decimal.RequireFromString("90.00")))
	suite.True(report.NetChange.Equal(decimal.RequireFromString("160.00")))
	suite.True(report.ClosingBalance.Equal(decimal.RequireFromString("660.00")))
	suite.Len(report.CashAccounts, 2)
}

func (suite *ReportingServiceTestSuite) TestCashFlowWithoutCashAccountsIsEmpty() {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	suite.mockAccountRepo.On("ListAccounts", suite.ctx).Return([]domain.Account{
		{GUID: "equipment", Name: "Equipment", AccountType: domain.Asset},
	}, nil)

	report, err := suite.service.CashFlow(suite.ctx, start, end)

	suite.Require().NoError(err)
	suite.True(report.OpeningBalance.IsZero())
	suite.Empty(report.CashAccounts)
	suite.mockRepo.AssertNotCalled(suite.T(), "SumSplitFlows", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestDashboardAggregatesCountsAndTotals() {
	accounts := []domain.Account{
		{GUID: "cash", Name: "Cash", AccountType: domain.Asset},
		{GUID: "loan", Name: "Loan", AccountType: domain.Liability},
		{GUID: "sales", Name: "Sales", AccountType: domain.Income},
		{GUID: "rent", Name: "Rent", AccountType: domain.Expense},
	}
	recent := []domain.Transaction{{GUID: "t1"}, {GUID: "t2"}}

	suite.mockAccountRepo.On("ListAccounts", suite.ctx).Return(accounts, nil)
	suite.mockRepo.On("SumSplitsByAccount", suite.ctx, (*time.Time)(nil), (*time.Time)(nil)).Return(map[string]decimal.Decimal{
		"cash": decimal.RequireFromString("700.00"),
		"loan": decimal.RequireFromString("-200.00"),
	}, nil)
	suite.mockRepo.On("SumSplitsByAccount", suite.ctx, mock.AnythingOfType("*time.Time"), mock.AnythingOfType("*time.Time")).Return(map[string]decimal.Decimal{
		"sales": decimal.RequireFromString("-300.00"),
		"rent":  decimal.RequireFromString("120.00"),
	}, nil)
	suite.mockRepo.On("CountTransactions", suite.ctx).Return(42, nil)
	suite.mockPurchaseRepo.On("CountOrdersByStatus", suite.ctx, domain.OrderOpen).Return(3, nil)
	suite.mockPurchaseRepo.On("CountOrdersByStatus", suite.ctx, domain.OrderApproved).Return(9, nil)
	suite.mockRepo.On("ListRecentTransactions", suite.ctx, 5).Return(recent, nil)

	report, err := suite.service.Dashboard(suite.ctx)

	suite.Require().NoError(err)
	suite.True(report.TotalAssets.Equal(decimal.RequireFromString("700.00")))
	suite.True(report.TotalLiabilities.Equal(decimal.RequireFromString("200.00")))
	suite.True(report.MonthIncome.Equal(decimal.RequireFromString("300.00")))
	suite.True(report.MonthExpenses.Equal(decimal.RequireFromString("120.00")))
	suite.True(report.MonthNetIncome.Equal(decimal.RequireFromString("180.00")))
	suite.Equal(4, report.AccountCount)
	suite.Equal(42, report.TransactionCount)
	suite.Equal(3, report.OpenOrderCount)
	suite.Equal(9, report.ApprovedOrderCount)
	suite.Len(report.RecentTransactions, 2)
}

func (suite *ReportingServiceTestSuite) TestVerifyEquationHoldsOnConsistentLedger() {
	accounts := []domain.Account{
		{GUID: "cash", Name: "Cash", AccountType: domain.Asset},
		{GUID: "loan", Name: "Loan", AccountType: domain.Liability},
		{GUID: "capital", Name: "Capital", AccountType: domain.Equity},
		{GUID: "sales", Name: "Sales", AccountType: domain.Income},
		{GUID: "rent", Name: "Rent", AccountType: domain.Expense},
	}
	suite.mockAccountRepo.On("ListAccounts", suite.ctx).Return(accounts, nil)
	suite.mockRepo.On("SumSplitsByAccount", suite.ctx, (*time.Time)(nil), (*time.Time)(nil)).Return(map[string]decimal.Decimal{
		"cash":    decimal.RequireFromString("1000.00"),
		"loan":    decimal.RequireFromString("-300.00"),
		"capital": decimal.RequireFromString("-500.00"),
		"sales":   decimal.RequireFromString("-400.00"),
		"rent":    decimal.RequireFromString("200.00"),
	}, nil)

	report, err := suite.service.VerifyEquation(suite.ctx, nil)

	suite.Require().NoError(err)
	suite.True(report.IsBalanced)
	suite.True(report.TotalAssets.Equal(decimal.RequireFromString("1000.00")))
	suite.True(report.TotalLiabilities.Equal(decimal.RequireFromString("300.00")))
	suite.True(report.TotalEquity.Equal(decimal.RequireFromString("500.00")))
	suite.True(report.NetIncome.Equal(decimal.RequireFromString("200.00")))
	suite.True(report.Difference.IsZero())
}

func (suite *ReportingServiceTestSuite) TestVerifyEquationFlagsDamagedLedger() {
	accounts := []domain.Account{
		{GUID: "cash", Name: "Cash", AccountType: domain.Asset},
		{GUID: "capital", Name: "Capital", AccountType: domain.Equity},
	}
	suite.mockAccountRepo.On("ListAccounts", suite.ctx).Return(accounts, nil)
	suite.mockRepo.On("SumSplitsByAccount", suite.ctx, (*time.Time)(nil), (*time.Time)(nil)).Return(map[string]decimal.Decimal{
		"cash":    decimal.RequireFromString("1000.00"),
		"capital": decimal.RequireFromString("-950.00"),
	}, nil)

	report, err := suite.service.VerifyEquation(suite.ctx, nil)

	suite.Require().NoError(err)
	suite.False(report.IsBalanced)
	suite.True(report.Difference.Equal(decimal.RequireFromString("50.00")))
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
