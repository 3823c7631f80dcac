package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/library_circulation/internal/core/domain"
)

// LoanReader defines read operations for loan data.
// Implementations return copies; mutating a returned loan never changes the store.
type LoanReader interface {
	// FindLoanByID retrieves a loan by its id, or apperrors.ErrNotFound.
	FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)

	// FindActiveLoanByItem returns the active loan for an item, if any.
	FindActiveLoanByItem(ctx context.Context, itemID string) (*domain.Loan, bool, error)

	// ListLoans returns every loan in creation order.
	ListLoans(ctx context.Context) ([]domain.Loan, error)

	// ListActiveLoans returns loans whose return date is unset, in creation order.
	ListActiveLoans(ctx context.Context) ([]domain.Loan, error)

	// IsItemOnLoan reports whether the item has an active loan.
	IsItemOnLoan(ctx context.Context, itemID string) (bool, error)
}

// LoanWriter defines the only mutations a loan ever goes through.
type LoanWriter interface {
	// CreateLoan atomically checks that itemID has no active loan and records a new one
	// dated today with dueDate = loanDate + freeDays. Fails with apperrors.ErrItemAlreadyOnLoan.
	CreateLoan(ctx context.Context, itemID string, borrower string, freeDays int) (*domain.Loan, error)

	// MarkReturned sets the return date once. Fails with apperrors.ErrAlreadyReturned on a second call.
	MarkReturned(ctx context.Context, loanID string, returnDate time.Time) (*domain.Loan, error)

	// MarkFinePaid flags the loan's fine as paid. Idempotent.
	MarkFinePaid(ctx context.Context, loanID string) (*domain.Loan, error)

	// DeleteLoan removes a returned loan. Fails with apperrors.ErrLoanActive for active loans.
	DeleteLoan(ctx context.Context, loanID string) error
}

// LoanRepositoryFacade combines all loan repository interfaces.
type LoanRepositoryFacade interface {
	LoanReader
	LoanWriter
}
