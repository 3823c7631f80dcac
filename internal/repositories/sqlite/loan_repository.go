// Package sqlite persists loans to a single SQLite file. The working set lives in
// the in-memory store; every mutation is written through before it becomes visible.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/SscSPs/library_circulation/internal/core/domain"
	"github.com/SscSPs/library_circulation/internal/repositories/memory"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

const driverName = "sqlite"

func init() {
	sqlx.BindDriver(driverName, sqlx.QUESTION)
}

const schema = `
CREATE TABLE IF NOT EXISTS loans (
	seq         INTEGER PRIMARY KEY AUTOINCREMENT,
	loan_id     TEXT NOT NULL UNIQUE,
	item_id     TEXT NOT NULL,
	borrower    TEXT NOT NULL,
	loan_date   TEXT NOT NULL,
	due_date    TEXT NOT NULL,
	term_days   INTEGER NOT NULL,
	return_date TEXT NULL,
	fine_paid   INTEGER NOT NULL DEFAULT 0
);
CREATE UNIQUE INDEX IF NOT EXISTS loans_active_item_uidx ON loans (item_id) WHERE return_date IS NULL;
`

// loanRow stores dates as YYYY-MM-DD text.
type loanRow struct {
	LoanID     string  `db:"loan_id"`
	ItemID     string  `db:"item_id"`
	Borrower   string  `db:"borrower"`
	LoanDate   string  `db:"loan_date"`
	DueDate    string  `db:"due_date"`
	TermDays   int     `db:"term_days"`
	ReturnDate *string `db:"return_date"`
	FinePaid   bool    `db:"fine_paid"`
}

func toRow(l domain.Loan) loanRow {
	row := loanRow{
		LoanID:   l.LoanID,
		ItemID:   l.ItemID,
		Borrower: l.Borrower,
		LoanDate: l.LoanDate.Format(domain.DateLayout),
		DueDate:  l.DueDate.Format(domain.DateLayout),
		TermDays: l.TermDays,
		FinePaid: l.FinePaid,
	}
	if l.ReturnDate != nil {
		rd := l.ReturnDate.Format(domain.DateLayout)
		row.ReturnDate = &rd
	}
	return row
}

func (r loanRow) toDomain() (domain.Loan, error) {
	loanDate, err := time.Parse(domain.DateLayout, r.LoanDate)
	if err != nil {
		return domain.Loan{}, fmt.Errorf("loan %s: bad loan_date %q: %w", r.LoanID, r.LoanDate, err)
	}
	dueDate, err := time.Parse(domain.DateLayout, r.DueDate)
	if err != nil {
		return domain.Loan{}, fmt.Errorf("loan %s: bad due_date %q: %w", r.LoanID, r.DueDate, err)
	}
	l := domain.Loan{
		LoanID:   r.LoanID,
		ItemID:   r.ItemID,
		Borrower: r.Borrower,
		LoanDate: loanDate,
		DueDate:  dueDate,
		TermDays: r.TermDays,
		FinePaid: r.FinePaid,
	}
	if r.ReturnDate != nil {
		rd, err := time.Parse(domain.DateLayout, *r.ReturnDate)
		if err != nil {
			return domain.Loan{}, fmt.Errorf("loan %s: bad return_date %q: %w", r.LoanID, *r.ReturnDate, err)
		}
		l.ReturnDate = &rd
	}
	return l, nil
}

// LoanRepository is the sqlite-backed loan store.
type LoanRepository struct {
	*memory.LoanRepository
	db   *sqlx.DB
	path string
}

// NewLoanRepository opens (or creates) the database at path and hydrates the store from it.
// Options are forwarded to the in-memory store; a commit hook passed here is replaced.
func NewLoanRepository(ctx context.Context, path string, opts ...memory.LoanOption) (*LoanRepository, error) {
	if path == "" {
		path = "circulation.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sqlx.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer at a time; the memory store already serializes mutations.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create loans table: %w", err)
	}

	s := &LoanRepository{db: db, path: path}
	s.LoanRepository = memory.NewLoanRepository(append(opts, memory.WithCommitHook(s.writeThrough))...)
	if err := s.load(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *LoanRepository) load(ctx context.Context) error {
	var rows []loanRow
	err := s.db.SelectContext(ctx, &rows, `SELECT loan_id, item_id, borrower, loan_date, due_date, term_days, return_date, fine_paid FROM loans ORDER BY seq`)
	if err != nil {
		return fmt.Errorf("select loans: %w", err)
	}
	loans := make([]domain.Loan, 0, len(rows))
	for _, row := range rows {
		l, err := row.toDomain()
		if err != nil {
			return err
		}
		loans = append(loans, l)
	}
	if err := s.ImportLoans(loans); err != nil {
		return fmt.Errorf("import loans from %s: %w", s.path, err)
	}
	return nil
}

func (s *LoanRepository) writeThrough(ctx context.Context, op memory.CommitOp, loan domain.Loan) error {
	var err error
	switch op {
	case memory.OpInsert, memory.OpUpdate:
		_, err = s.db.NamedExecContext(ctx, `
			INSERT INTO loans (loan_id, item_id, borrower, loan_date, due_date, term_days, return_date, fine_paid)
			VALUES (:loan_id, :item_id, :borrower, :loan_date, :due_date, :term_days, :return_date, :fine_paid)
			ON CONFLICT (loan_id) DO UPDATE SET
				return_date = excluded.return_date,
				fine_paid = excluded.fine_paid`, toRow(loan))
	case memory.OpDelete:
		_, err = s.db.ExecContext(ctx, `DELETE FROM loans WHERE loan_id = ?`, loan.LoanID)
	default:
		err = fmt.Errorf("unknown commit op %q", op)
	}
	if err != nil {
		return fmt.Errorf("persist loan %s (%s): %w", loan.LoanID, op, err)
	}
	return nil
}

// Close releases the database handle.
func (s *LoanRepository) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *LoanRepository) Path() string { return s.path }
