package dto

import (
	"time"

	"github.com/SscSPs/library_circulation/internal/core/domain"
	"github.com/SscSPs/library_circulation/internal/utils"
)

// LendRequest defines the data needed to lend an item.
type LendRequest struct {
	ItemID   string `json:"itemID" binding:"required"`
	Borrower string `json:"borrower" binding:"required"`
	// TermDays defaults to the configured loan term when omitted.
	TermDays *int `json:"termDays,omitempty"`
}

// DateQuery carries the optional reference date used by fine and overdue queries.
// An empty date means today.
type DateQuery struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// ListLoansQuery defines the filters accepted by the loan listing.
type ListLoansQuery struct {
	DateQuery
	Borrower  string `form:"borrower"`
	ItemID    string `form:"itemID"`
	Status    string `form:"status" binding:"omitempty,oneof=all active returned overdue"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=500"`
	NextToken string `form:"nextToken"`
}

// LoanResponse defines the data returned for a loan.
type LoanResponse struct {
	LoanID     string  `json:"loanID"`
	ItemID     string  `json:"itemID"`
	Borrower   string  `json:"borrower"`
	LoanDate   string  `json:"loanDate"`
	DueDate    string  `json:"dueDate"`
	TermDays   int     `json:"termDays"`
	ReturnDate *string `json:"returnDate,omitempty"`
	FinePaid   bool    `json:"finePaid"`
	Status     string  `json:"status"`
}

// ListLoansResponse is one page of loans.
type ListLoansResponse struct {
	Loans     []LoanResponse `json:"loans"`
	NextToken string         `json:"nextToken,omitempty"`
}

// FineResponse defines the data returned for a fine assessment.
type FineResponse struct {
	OverdueDays   int    `json:"overdueDays"`
	Amount        string `json:"amount"`
	ReferenceDate string `json:"referenceDate"`
	Due           bool   `json:"due"`
}

// ReturnResponse reports the outcome of a return attempt.
type ReturnResponse struct {
	Status string       `json:"status"`
	Loan   LoanResponse `json:"loan"`
	Fine   FineResponse `json:"fine"`
}

// StatsResponse summarizes circulation.
type StatsResponse struct {
	Total    int    `json:"total"`
	Active   int    `json:"active"`
	Returned int    `json:"returned"`
	Overdue  int    `json:"overdue"`
	AsOf     string `json:"asOf"`
}

// ToLoanResponse converts a domain.Loan to LoanResponse; the status is derived as of asOf.
func ToLoanResponse(l domain.Loan, asOf time.Time) LoanResponse {
	res := LoanResponse{
		LoanID:   l.LoanID,
		ItemID:   l.ItemID,
		Borrower: l.Borrower,
		LoanDate: l.LoanDate.Format(domain.DateLayout),
		DueDate:  l.DueDate.Format(domain.DateLayout),
		TermDays: l.TermDays,
		FinePaid: l.FinePaid,
		Status:   string(l.Status(asOf)),
	}
	if l.ReturnDate != nil {
		rd := l.ReturnDate.Format(domain.DateLayout)
		res.ReturnDate = &rd
	}
	return res
}

// ToListLoanResponse converts a slice of domain.Loan to LoanResponse DTOs
func ToListLoanResponse(loans []domain.Loan, asOf time.Time) []LoanResponse {
	res := make([]LoanResponse, len(loans))
	for i, l := range loans {
		res[i] = ToLoanResponse(l, asOf)
	}
	return res
}

func ToFineResponse(f domain.FineAssessment) FineResponse {
	return FineResponse{
		OverdueDays:   f.OverdueDays,
		Amount:        utils.FormatAmount(f.Amount),
		ReferenceDate: f.ReferenceDate.Format(domain.DateLayout),
		Due:           f.IsDue(),
	}
}

func ToReturnResponse(o domain.ReturnOutcome, asOf time.Time) ReturnResponse {
	return ReturnResponse{
		Status: string(o.Status),
		Loan:   ToLoanResponse(o.Loan, asOf),
		Fine:   ToFineResponse(o.Fine),
	}
}

func ToStatsResponse(s domain.CirculationStats) StatsResponse {
	return StatsResponse{
		Total:    s.Total,
		Active:   s.Active,
		Returned: s.Returned,
		Overdue:  s.Overdue,
		AsOf:     s.AsOf.Format(domain.DateLayout),
	}
}
