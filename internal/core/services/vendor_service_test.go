package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ledgerhouse/bookkeeper/internal/core/domain"
	portssvc "github.com/ledgerhouse/bookkeeper/internal/core/ports/services"
	"github.com/ledgerhouse/bookkeeper/internal/core/services"
	"github.com/ledgerhouse/bookkeeper/internal/dto"
)

type VendorServiceTestSuite struct {
	suite.Suite
	mockRepo *MockVendorRepository
	service  portssvc.VendorSvcFacade
	ctx      context.Context
}

func (suite *VendorServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockVendorRepository)
	suite.service = services.NewVendorService(suite.mockRepo)
	suite.ctx = context.Background()
}

func (suite *VendorServiceTestSuite) TestCreateVendorAssignsSequentialNumber() {
	suite.mockRepo.On("CountVendors", suite.ctx).Return(0, nil)
	suite.mockRepo.On("SaveVendor", suite.ctx, mock.AnythingOfType("domain.Vendor")).Return(nil)

	vendor, err := suite.service.CreateVendor(suite.ctx, dto.CreateVendorRequest{
		Name:  "Acme Supplies",
		Email: "billing@acme.example",
	})

	suite.Require().NoError(err)
	suite.Equal("SUP-001", vendor.Number)
	suite.Equal(domain.VendorActive, vendor.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *VendorServiceTestSuite) TestCreateVendorContinuesSequence() {
	suite.mockRepo.On("CountVendors", suite.ctx).Return(41, nil)
	suite.mockRepo.On("SaveVendor", suite.ctx, mock.MatchedBy(func(v domain.Vendor) bool {
		return v.Number == "SUP-042"
	})).Return(nil)

	vendor, err := suite.service.CreateVendor(suite.ctx, dto.CreateVendorRequest{Name: "Northwind"})

	suite.Require().NoError(err)
	suite.Equal("SUP-042", vendor.Number)
}

func (suite *VendorServiceTestSuite) TestUpdateVendorAppliesOnlyProvidedFields() {
	existing := domain.Vendor{
		GUID:    uuid.NewString(),
		Number:  "SUP-003",
		Name:    "Old Name",
		Email:   "old@example.com",
		Status:  domain.VendorActive,
		Contact: "Jordan",
	}
	newName := "New Name"
	inactive := domain.VendorInactive
	suite.mockRepo.On("FindVendorByID", suite.ctx, existing.GUID).Return(&existing, nil)
	suite.mockRepo.On("UpdateVendor", suite.ctx, mock.AnythingOfType("domain.Vendor")).Return(nil)

	vendor, err := suite.service.UpdateVendor(suite.ctx, existing.GUID, dto.UpdateVendorRequest{
		Name:   &newName,
		Status: &inactive,
	})

	suite.Require().NoError(err)
	suite.Equal("New Name", vendor.Name)
	suite.Equal(domain.VendorInactive, vendor.Status)
	suite.Equal("old@example.com", vendor.Email)
	suite.Equal("Jordan", vendor.Contact)
	suite.Equal("SUP-003", vendor.Number)
}

func TestVendorServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VendorServiceTestSuite))
}
