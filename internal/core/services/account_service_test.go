package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ledgerhouse/bookkeeper/internal/apperrors"
	"github.com/ledgerhouse/bookkeeper/internal/core/domain"
	portssvc "github.com/ledgerhouse/bookkeeper/internal/core/ports/services"
	"github.com/ledgerhouse/bookkeeper/internal/core/services"
	"github.com/ledgerhouse/bookkeeper/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo   *MockAccountRepository
	mockTxRepo *MockTransactionRepository
	service    portssvc.AccountSvcFacade
	ctx        context.Context
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.mockTxRepo = new(MockTransactionRepository)
	suite.service = services.NewAccountService(suite.mockRepo, suite.mockTxRepo)
	suite.ctx = context.Background()
}

func (suite *AccountServiceTestSuite) TestCreateRootAccountAssignsCode() {
	suite.mockRepo.On("CountRootAccountsByType", suite.ctx, domain.Asset).Return(0, nil)
	suite.mockRepo.On("SaveAccount", suite.ctx, mock.AnythingOfType("domain.Account")).Return(nil)

	account, err := suite.service.CreateAccount(suite.ctx, dto.CreateAccountRequest{
		Name:        "Cash",
		AccountType: "ASSET",
	})

	suite.Require().NoError(err)
	suite.Equal("101", account.Code)
	suite.Equal(domain.Asset, account.AccountType)
	suite.Empty(account.ParentGUID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateChildAccountAppendsSequence() {
	parent := domain.Account{
		GUID:        uuid.NewString(),
		Name:        "Current Assets",
		AccountType: domain.Asset,
		Code:        "101",
	}
	suite.mockRepo.On("FindAccountByID", suite.ctx, parent.GUID).Return(&parent, nil)
	suite.mockRepo.On("CountChildAccounts", suite.ctx, parent.GUID).Return(2, nil)
	suite.mockRepo.On("SaveAccount", suite.ctx, mock.AnythingOfType("domain.Account")).Return(nil)

	account, err := suite.service.CreateAccount(suite.ctx, dto.CreateAccountRequest{
		Name:        "Petty Cash",
		AccountType: "ASSET",
		ParentGUID:  &parent.GUID,
	})

	suite.Require().NoError(err)
	suite.Equal("101003", account.Code)
	suite.Equal(parent.GUID, account.ParentGUID)
}

func (suite *AccountServiceTestSuite) TestCreateAccountAllowsTypeMismatchWithParent() {
	parent := domain.Account{
		GUID:        uuid.NewString(),
		AccountType: domain.Asset,
		Code:        "101",
	}
	suite.mockRepo.On("FindAccountByID", suite.ctx, parent.GUID).Return(&parent, nil)
	suite.mockRepo.On("CountChildAccounts", suite.ctx, parent.GUID).Return(0, nil)
	suite.mockRepo.On("SaveAccount", suite.ctx, mock.AnythingOfType("domain.Account")).Return(nil)

	account, err := suite.service.CreateAccount(suite.ctx, dto.CreateAccountRequest{
		Name:        "Rent",
		AccountType: "EXPENSE",
		ParentGUID:  &parent.GUID,
	})

	suite.Require().NoError(err)
	suite.Equal(domain.Expense, account.AccountType)
	suite.Equal(parent.GUID, account.ParentGUID)
	suite.Equal("101001", account.Code)
}

func (suite *AccountServiceTestSuite) TestCreateAccountRejectsUnknownType() {
	_, err := suite.service.CreateAccount(suite.ctx, dto.CreateAccountRequest{
		Name:        "Mystery",
		AccountType: "REVENUE",
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestCreateAccountKeepsExplicitCode() {
	suite.mockRepo.On("SaveAccount", suite.ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Code == "199"
	})).Return(nil)

	account, err := suite.service.CreateAccount(suite.ctx, dto.CreateAccountRequest{
		Name:        "Special",
		AccountType: "ASSET",
		Code:        "199",
	})

	suite.Require().NoError(err)
	suite.Equal("199", account.Code)
	suite.mockRepo.AssertNotCalled(suite.T(), "CountRootAccountsByType", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccountRefusesWhenChildrenExist() {
	guid := uuid.NewString()
	account := domain.Account{GUID: guid, AccountType: domain.Asset}
	suite.mockRepo.On("FindAccountByID", suite.ctx, guid).Return(&account, nil)
	suite.mockRepo.On("CountChildAccounts", suite.ctx, guid).Return(3, nil)

	err := suite.service.DeleteAccount(suite.ctx, guid)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccountRefusesWhenSplitsExist() {
	guid := uuid.NewString()
	account := domain.Account{GUID: guid, AccountType: domain.Expense}
	suite.mockRepo.On("FindAccountByID", suite.ctx, guid).Return(&account, nil)
	suite.mockRepo.On("CountChildAccounts", suite.ctx, guid).Return(0, nil)
	suite.mockRepo.On("CountSplitsByAccount", suite.ctx, guid).Return(7, nil)

	err := suite.service.DeleteAccount(suite.ctx, guid)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccountSucceedsWhenUnreferenced() {
	guid := uuid.NewString()
	account := domain.Account{GUID: guid, AccountType: domain.Expense}
	suite.mockRepo.On("FindAccountByID", suite.ctx, guid).Return(&account, nil)
	suite.mockRepo.On("CountChildAccounts", suite.ctx, guid).Return(0, nil)
	suite.mockRepo.On("CountSplitsByAccount", suite.ctx, guid).Return(0, nil)
	suite.mockRepo.On("DeleteAccount", suite.ctx, guid).Return(nil)

	err := suite.service.DeleteAccount(suite.ctx, guid)

	suite.NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDescendantsWalksSubtree() {
	root := domain.Account{GUID: "root", AccountType: domain.Asset}
	child1 := domain.Account{GUID: "child1", ParentGUID: "root", AccountType: domain.Asset}
	child2 := domain.Account{GUID: "child2", ParentGUID: "root", AccountType: domain.Asset}
	grandchild := domain.Account{GUID: "grandchild", ParentGUID: "child1", AccountType: domain.Asset}
	unrelated := domain.Account{GUID: "other", AccountType: domain.Income}

	suite.mockRepo.On("FindAccountByID", suite.ctx, "root").Return(&root, nil)
	suite.mockRepo.On("ListAccounts", suite.ctx).Return([]domain.Account{root, child1, child2, grandchild, unrelated}, nil)

	guids, err := suite.service.Descendants(suite.ctx, "root")

	suite.Require().NoError(err)
	suite.ElementsMatch([]string{"root", "child1", "child2", "grandchild"}, guids)
}

func (suite *AccountServiceTestSuite) TestUpdateAccountNameRejectsEmptyName() {
	_, err := suite.service.UpdateAccountName(suite.ctx, uuid.NewString(), "")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestTransactionCountDelegates() {
	guid := uuid.NewString()
	account := domain.Account{GUID: guid, AccountType: domain.Asset}
	suite.mockRepo.On("FindAccountByID", suite.ctx, guid).Return(&account, nil)
	suite.mockTxRepo.On("CountTransactionsByAccount", suite.ctx, guid).Return(12, nil)

	count, err := suite.service.TransactionCount(suite.ctx, guid)

	suite.Require().NoError(err)
	suite.Equal(12, count)
}

func (suite *AccountServiceTestSuite) TestFindOrCreateReturnsExistingAccount() {
	existing := domain.Account{GUID: uuid.NewString(), Name: "Accounts Payable", AccountType: domain.Liability}
	suite.mockRepo.On("FindAccountsByNameAndType", suite.ctx, "Accounts Payable", domain.Liability).
		Return([]domain.Account{existing}, nil)

	account, err := suite.service.FindOrCreateByNameAndType(suite.ctx, "Accounts Payable", domain.Liability)

	suite.Require().NoError(err)
	suite.Equal(existing.GUID, account.GUID)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestFindOrCreateCreatesWhenMissing() {
	suite.mockRepo.On("FindAccountsByNameAndType", suite.ctx, "Accounts Payable", domain.Liability).
		Return([]domain.Account{}, nil)
	suite.mockRepo.On("CountRootAccountsByType", suite.ctx, domain.Liability).Return(0, nil)
	suite.mockRepo.On("SaveAccount", suite.ctx, mock.AnythingOfType("domain.Account")).Return(nil)

	account, err := suite.service.FindOrCreateByNameAndType(suite.ctx, "Accounts Payable", domain.Liability)

	suite.Require().NoError(err)
	suite.Equal("Accounts Payable", account.Name)
	suite.Equal("201", account.Code)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

func TestAccountTypeCodePrefix(t *testing.T) {
	assert.Equal(t, "1", domain.Asset.CodePrefix())
	assert.Equal(t, "2", domain.Liability.CodePrefix())
	assert.Equal(t, "3", domain.Equity.CodePrefix())
	assert.Equal(t, "4", domain.Income.CodePrefix())
	assert.Equal(t, "5", domain.Expense.CodePrefix())
}
