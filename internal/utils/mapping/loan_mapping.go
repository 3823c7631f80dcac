package mapping

import (
	"github.com/SscSPs/library_circulation/internal/core/domain"
	"github.com/SscSPs/library_circulation/internal/models"
)

// ToModelLoan converts a domain Loan to a model Loan. Dates are truncated to the calendar day.
func ToModelLoan(d domain.Loan) models.Loan {
	m := models.Loan{
		LoanID:   d.LoanID,
		ItemID:   d.ItemID,
		Borrower: d.Borrower,
		LoanDate: domain.DateOf(d.LoanDate),
		DueDate:  domain.DateOf(d.DueDate),
		TermDays: d.TermDays,
		FinePaid: d.FinePaid,
	}
	if d.ReturnDate != nil {
		rd := domain.DateOf(*d.ReturnDate)
		m.ReturnDate = &rd
	}
	return m
}

// ToDomainLoan converts a model Loan to a domain Loan
func ToDomainLoan(m models.Loan) domain.Loan {
	d := domain.Loan{
		LoanID:   m.LoanID,
		ItemID:   m.ItemID,
		Borrower: m.Borrower,
		LoanDate: domain.DateOf(m.LoanDate),
		DueDate:  domain.DateOf(m.DueDate),
		TermDays: m.TermDays,
		FinePaid: m.FinePaid,
	}
	if m.ReturnDate != nil {
		rd := domain.DateOf(*m.ReturnDate)
		d.ReturnDate = &rd
	}
	return d
}

// ToDomainLoanSlice converts a slice of model Loans to a slice of domain Loans
func ToDomainLoanSlice(ms []models.Loan) []domain.Loan {
	ds := make([]domain.Loan, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLoan(m)
	}
	return ds
}
