package models

import "time"

// Loan is the persisted shape of a loan row.
type Loan struct {
	LoanID     string     `db:"loan_id"`
	ItemID     string     `db:"item_id"`
	Borrower   string     `db:"borrower"`
	LoanDate   time.Time  `db:"loan_date"`
	DueDate    time.Time  `db:"due_date"`
	TermDays   int        `db:"term_days"`
	ReturnDate *time.Time `db:"return_date"` // NULL while the loan is active
	FinePaid   bool       `db:"fine_paid"`
	AuditFields
}
