package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanStatus is the externally visible state of a loan.
type LoanStatus string

const (
	LoanStatusActive   LoanStatus = "ACTIVE"
	LoanStatusOverdue  LoanStatus = "ACTIVE_FINE_DUE" // derived, never persisted
	LoanStatusReturned LoanStatus = "RETURNED"
)

// Loan is one circulation event of one item to one borrower.
type Loan struct {
	LoanID     string     `json:"loanID"`
	ItemID     string     `json:"itemID"`   // weak reference into the catalog
	Borrower   string     `json:"borrower"` // display name, immutable
	LoanDate   time.Time  `json:"loanDate"`
	DueDate    time.Time  `json:"dueDate"`  // always LoanDate + TermDays
	TermDays   int        `json:"termDays"` // grace period before fines accrue
	ReturnDate *time.Time `json:"returnDate,omitempty"`
	FinePaid   bool       `json:"finePaid"`
}

// IsActive reports whether the loan has not been returned yet.
func (l Loan) IsActive() bool {
	return l.ReturnDate == nil
}

// Status derives the loan status as seen on asOf.
func (l Loan) Status(asOf time.Time) LoanStatus {
	if !l.IsActive() {
		return LoanStatusReturned
	}
	if DateOf(asOf).After(l.DueDate) {
		return LoanStatusOverdue
	}
	return LoanStatusActive
}

// Clone returns a copy that does not share the ReturnDate pointer.
func (l Loan) Clone() Loan {
	out := l
	if l.ReturnDate != nil {
		rd := *l.ReturnDate
		out.ReturnDate = &rd
	}
	return out
}

// FineAssessment is the outcome of running the fine engine against a reference date.
type FineAssessment struct {
	OverdueDays   int             `json:"overdueDays"`
	Amount        decimal.Decimal `json:"amount"`
	ReferenceDate time.Time       `json:"referenceDate"`
}

// IsDue reports whether any money is owed.
func (f FineAssessment) IsDue() bool {
	return f.Amount.IsPositive()
}

// ReturnStatus distinguishes the two outcomes of a return attempt.
type ReturnStatus string

const (
	ReturnStatusReturned ReturnStatus = "RETURNED"
	ReturnStatusFineDue  ReturnStatus = "FINE_DUE"
)

// ReturnOutcome is what AttemptReturn reports back to the caller.
// When Status is FINE_DUE the loan was not modified.
type ReturnOutcome struct {
	Status ReturnStatus   `json:"status"`
	Loan   Loan           `json:"loan"`
	Fine   FineAssessment `json:"fine"`
}

// LoanStatusFilter restricts loan listings.
type LoanStatusFilter string

const (
	FilterAll      LoanStatusFilter = "all"
	FilterActive   LoanStatusFilter = "active"
	FilterReturned LoanStatusFilter = "returned"
	FilterOverdue  LoanStatusFilter = "overdue"
)

// LoanFilter describes a loan search. Zero values match everything.
type LoanFilter struct {
	Borrower string           // case-insensitive substring
	ItemID   string           // exact match
	Status   LoanStatusFilter // defaults to FilterAll
	AsOf     time.Time        // reference date for FilterOverdue
}

// Matches reports whether the loan satisfies the filter.
func (f LoanFilter) Matches(l Loan) bool {
	if f.ItemID != "" && l.ItemID != f.ItemID {
		return false
	}
	if f.Borrower != "" && !containsFold(l.Borrower, f.Borrower) {
		return false
	}
	switch f.Status {
	case FilterActive:
		return l.IsActive()
	case FilterReturned:
		return !l.IsActive()
	case FilterOverdue:
		return l.Status(f.AsOf) == LoanStatusOverdue
	}
	return true
}

// CirculationStats summarizes the loan store as of a date.
type CirculationStats struct {
	Total    int       `json:"total"`
	Active   int       `json:"active"`
	Returned int       `json:"returned"`
	Overdue  int       `json:"overdue"`
	AsOf     time.Time `json:"asOf"`
}
