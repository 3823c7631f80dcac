// Package accounting holds the pure money arithmetic of the circulation domain.
package accounting

import (
	"fmt"
	"time"

	"github.com/SscSPs/library_circulation/internal/apperrors"
	"github.com/SscSPs/library_circulation/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AmountPlaces is the number of decimal places fines are expressed in.
const AmountPlaces = 2

// FineSchedule prices overdue days.
type FineSchedule struct {
	BaseFee   decimal.Decimal // charged once as soon as a loan is overdue
	PerDayFee decimal.Decimal // charged for every overdue day
}

// DefaultFineSchedule is 5.00 plus 0.50 per overdue day.
var DefaultFineSchedule = FineSchedule{
	BaseFee:   decimal.RequireFromString("5.00"),
	PerDayFee: decimal.RequireFromString("0.50"),
}

// Validate checks that no fee is negative.
func (s FineSchedule) Validate() error {
	if s.BaseFee.IsNegative() || s.PerDayFee.IsNegative() {
		return fmt.Errorf("%w: fine fees must not be negative", apperrors.ErrValidation)
	}
	return nil
}

// AssessFine computes overdue days and the fine owed for a loan that started on loanDate
// with freeDays of grace, as seen on referenceDate. Dates are compared as calendar days.
//
// The grace period is inclusive: referenceDate == loanDate+freeDays owes nothing.
// A referenceDate before loanDate is a caller error.
func AssessFine(loanDate time.Time, freeDays int, referenceDate time.Time, schedule FineSchedule) (domain.FineAssessment, error) {
	if freeDays < 1 {
		return domain.FineAssessment{}, fmt.Errorf("%w: free days must be at least 1, got %d", apperrors.ErrValidation, freeDays)
	}
	loanDay := domain.DateOf(loanDate)
	refDay := domain.DateOf(referenceDate)
	if refDay.Before(loanDay) {
		return domain.FineAssessment{}, fmt.Errorf("%w: reference date %s is before loan date %s",
			apperrors.ErrValidation, refDay.Format(domain.DateLayout), loanDay.Format(domain.DateLayout))
	}

	assessment := domain.FineAssessment{
		Amount:        decimal.Zero.Round(AmountPlaces),
		ReferenceDate: refDay,
	}

	threshold := domain.AddDays(loanDay, freeDays)
	if !refDay.After(threshold) {
		return assessment, nil
	}

	overdue := domain.DaysBetween(threshold, refDay)
	assessment.OverdueDays = overdue
	assessment.Amount = schedule.BaseFee.
		Add(schedule.PerDayFee.Mul(decimal.NewFromInt(int64(overdue)))).
		Round(AmountPlaces)
	return assessment, nil
}

// AssessLoan runs AssessFine for a loan using its own term as the grace period.
// Returned loans are always assessed at their return date.
func AssessLoan(loan domain.Loan, today time.Time, schedule FineSchedule) (domain.FineAssessment, error) {
	ref := today
	if loan.ReturnDate != nil {
		ref = *loan.ReturnDate
	}
	return AssessFine(loan.LoanDate, loan.TermDays, ref, schedule)
}
