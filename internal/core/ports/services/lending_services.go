package services

import (
	"context"
	"time"

	"github.com/SscSPs/library_circulation/internal/core/domain"
)

// ItemExistenceChecker is the only thing lending needs from the catalog.
type ItemExistenceChecker interface {
	ItemExists(ctx context.Context, itemID string) (bool, error)
}

// LoanGuard is the only thing the catalog needs from lending: a veto on deleting lent items.
type LoanGuard interface {
	IsItemOnLoan(ctx context.Context, itemID string) (bool, error)
}

// LendingWriterSvc defines the loan lifecycle operations.
type LendingWriterSvc interface {
	// Lend creates a loan of termDays for itemID to borrower.
	Lend(ctx context.Context, itemID string, borrower string, termDays int) (*domain.Loan, error)

	// AttemptReturn tries to close the loan on today. Under fine gating an unpaid fine
	// yields a FINE_DUE outcome and leaves the loan untouched.
	AttemptReturn(ctx context.Context, loanID string, today time.Time) (*domain.ReturnOutcome, error)

	// PayFine records payment of the loan's fine. It does not return the item.
	PayFine(ctx context.Context, loanID string) (*domain.Loan, error)

	// DeleteLoan removes a returned loan.
	DeleteLoan(ctx context.Context, loanID string) error
}

// LendingReaderSvc defines read-only loan queries and reporting.
type LendingReaderSvc interface {
	LoanGuard

	GetLoan(ctx context.Context, loanID string) (*domain.Loan, error)
	ListActiveLoans(ctx context.Context) ([]domain.Loan, error)
	ListLoans(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error)
	ListOverdueLoans(ctx context.Context, today time.Time) ([]domain.Loan, error)

	// QuoteFine assesses the fine a loan owes on today without changing anything.
	QuoteFine(ctx context.Context, loanID string, today time.Time) (*domain.FineAssessment, error)

	Stats(ctx context.Context, today time.Time) (*domain.CirculationStats, error)
}

// LendingSvcFacade combines all lending service interfaces.
type LendingSvcFacade interface {
	LendingReaderSvc
	LendingWriterSvc
}
