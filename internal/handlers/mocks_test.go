package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/library_circulation/internal/core/domain"
	portssvc "github.com/SscSPs/library_circulation/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock LendingService ---
type MockLendingService struct {
	mock.Mock
}

func (m *MockLendingService) Lend(ctx context.Context, itemID string, borrower string, termDays int) (*domain.Loan, error) {
	args := m.Called(ctx, itemID, borrower, termDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLendingService) AttemptReturn(ctx context.Context, loanID string, today time.Time) (*domain.ReturnOutcome, error) {
	args := m.Called(ctx, loanID, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReturnOutcome), args.Error(1)
}
func (m *MockLendingService) PayFine(ctx context.Context, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLendingService) DeleteLoan(ctx context.Context, loanID string) error {
	args := m.Called(ctx, loanID)
	return args.Error(0)
}
func (m *MockLendingService) IsItemOnLoan(ctx context.Context, itemID string) (bool, error) {
	args := m.Called(ctx, itemID)
	return args.Bool(0), args.Error(1)
}
func (m *MockLendingService) GetLoan(ctx context.Context, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLendingService) ListActiveLoans(ctx context.Context) ([]domain.Loan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockLendingService) ListLoans(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockLendingService) ListOverdueLoans(ctx context.Context, today time.Time) ([]domain.Loan, error) {
	args := m.Called(ctx, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockLendingService) QuoteFine(ctx context.Context, loanID string, today time.Time) (*domain.FineAssessment, error) {
	args := m.Called(ctx, loanID, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FineAssessment), args.Error(1)
}
func (m *MockLendingService) Stats(ctx context.Context, today time.Time) (*domain.CirculationStats, error) {
	args := m.Called(ctx, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CirculationStats), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LendingSvcFacade = (*MockLendingService)(nil)

// --- Mock CatalogService ---
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ItemExists(ctx context.Context, itemID string) (bool, error) {
	args := m.Called(ctx, itemID)
	return args.Bool(0), args.Error(1)
}
func (m *MockCatalogService) GetItem(ctx context.Context, itemID string) (*domain.Item, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}
func (m *MockCatalogService) ListItems(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}
func (m *MockCatalogService) AddItem(ctx context.Context, item domain.Item) (*domain.Item, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}
func (m *MockCatalogService) DeleteItem(ctx context.Context, itemID string) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

var _ portssvc.CatalogSvcFacade = (*MockCatalogService)(nil)
