package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/library_circulation/internal/apperrors"
	"github.com/SscSPs/library_circulation/internal/core/domain"
	portssvc "github.com/SscSPs/library_circulation/internal/core/ports/services"
	"github.com/SscSPs/library_circulation/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CatalogServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockCatalog
	mockGuard *MockLoanGuard
	service   portssvc.CatalogSvcFacade
}

func (suite *CatalogServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCatalog)
	suite.mockGuard = new(MockLoanGuard)
	suite.service = services.NewCatalogService(suite.mockRepo, suite.mockGuard)
}

func (suite *CatalogServiceTestSuite) TestDeleteItem_VetoedWhileOnLoan() {
	ctx := context.Background()
	suite.mockGuard.On("IsItemOnLoan", ctx, "book-1").Return(true, nil).Once()

	err := suite.service.DeleteItem(ctx, "book-1")

	suite.ErrorIs(err, apperrors.ErrItemOnLoan)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteItem", mock.Anything, mock.Anything)
}

func (suite *CatalogServiceTestSuite) TestDeleteItem_Success() {
	ctx := context.Background()
	suite.mockGuard.On("IsItemOnLoan", ctx, "book-1").Return(false, nil).Once()
	suite.mockRepo.On("DeleteItem", ctx, "book-1").Return(nil).Once()

	suite.Require().NoError(suite.service.DeleteItem(ctx, "book-1"))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CatalogServiceTestSuite) TestDeleteItem_GuardFailure() {
	ctx := context.Background()
	boom := errors.New("store unavailable")
	suite.mockGuard.On("IsItemOnLoan", ctx, "book-1").Return(false, boom).Once()

	suite.ErrorIs(suite.service.DeleteItem(ctx, "book-1"), boom)
}

func (suite *CatalogServiceTestSuite) TestAddItem() {
	ctx := context.Background()
	item := domain.Item{ItemID: "book-9", Title: "Macunaíma"}
	suite.mockRepo.On("SaveItem", ctx, item).Return(nil).Once()
	suite.mockRepo.On("FindItemByID", ctx, "book-9").Return(&item, nil).Once()

	got, err := suite.service.AddItem(ctx, item)
	suite.Require().NoError(err)
	suite.Equal("Macunaíma", got.Title)

	_, err = suite.service.AddItem(ctx, domain.Item{ItemID: "  "})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CatalogServiceTestSuite) TestListItems_NeverNil() {
	ctx := context.Background()
	suite.mockRepo.On("ListItems", ctx).Return(nil, nil).Once()

	items, err := suite.service.ListItems(ctx)
	suite.Require().NoError(err)
	suite.NotNil(items)
	suite.Empty(items)
}

func TestCatalogServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceTestSuite))
}
