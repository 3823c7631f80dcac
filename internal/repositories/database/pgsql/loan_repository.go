package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/library_circulation/internal/apperrors"
	"github.com/SscSPs/library_circulation/internal/core/domain"
	portsrepo "github.com/SscSPs/library_circulation/internal/core/ports/repositories"
	"github.com/SscSPs/library_circulation/internal/models"
	"github.com/SscSPs/library_circulation/internal/utils/idgen"
	"github.com/SscSPs/library_circulation/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const loanColumns = `loan_id, item_id, borrower, loan_date, due_date, term_days, return_date, fine_paid, created_at, last_updated_at`

// PgxLoanRepository stores loans in postgres. The partial unique index on
// loans(item_id) WHERE return_date IS NULL enforces one active loan per item.
type PgxLoanRepository struct {
	BaseRepository
	ids   idgen.Generator
	nowFn func() time.Time
}

// LoanRepoOption configures a PgxLoanRepository.
type LoanRepoOption func(*PgxLoanRepository)

// WithIDGenerator overrides the loan id generator.
func WithIDGenerator(gen idgen.Generator) LoanRepoOption {
	return func(r *PgxLoanRepository) {
		r.ids = gen
	}
}

// WithClock overrides the clock used to date new loans.
func WithClock(now func() time.Time) LoanRepoOption {
	return func(r *PgxLoanRepository) {
		r.nowFn = now
	}
}

func newPgxLoanRepository(pool *pgxpool.Pool, opts ...LoanRepoOption) *PgxLoanRepository {
	r := &PgxLoanRepository{
		BaseRepository: BaseRepository{Pool: pool},
		ids:            idgen.UUIDGenerator{},
		nowFn:          func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var (
	_ portsrepo.LoanRepositoryFacade = (*PgxLoanRepository)(nil)
	_ portsrepo.TransactionManager   = (*PgxLoanRepository)(nil)
)

func scanLoan(row pgx.Row) (models.Loan, error) {
	var m models.Loan
	err := row.Scan(
		&m.LoanID,
		&m.ItemID,
		&m.Borrower,
		&m.LoanDate,
		&m.DueDate,
		&m.TermDays,
		&m.ReturnDate,
		&m.FinePaid,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// CreateLoan inserts a new active loan. The insert itself is the availability check.
func (r *PgxLoanRepository) CreateLoan(ctx context.Context, itemID string, borrower string, freeDays int) (*domain.Loan, error) {
	if domain.IsBlank(itemID) {
		return nil, fmt.Errorf("%w: item id is required", apperrors.ErrValidation)
	}
	if domain.IsBlank(borrower) {
		return nil, fmt.Errorf("%w: borrower is required", apperrors.ErrValidation)
	}
	if freeDays < 1 {
		return nil, fmt.Errorf("%w: free days must be at least 1, got %d", apperrors.ErrValidation, freeDays)
	}

	loanID, err := r.ids.NewID()
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to generate loan id", err)
	}
	now := r.nowFn()
	loanDate := domain.DateOf(now)
	m := mapping.ToModelLoan(domain.Loan{
		LoanID:   loanID,
		ItemID:   itemID,
		Borrower: strings.TrimSpace(borrower),
		LoanDate: loanDate,
		DueDate:  domain.AddDays(loanDate, freeDays),
		TermDays: freeDays,
	})

	query := `
		INSERT INTO loans (loan_id, item_id, borrower, loan_date, due_date, term_days, return_date, fine_paid, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULL, FALSE, $7, $7);
	`
	_, err = r.Pool.Exec(ctx, query, m.LoanID, m.ItemID, m.Borrower, m.LoanDate, m.DueDate, m.TermDays, now)
	if err != nil {
		if constraint, ok := uniqueViolationOn(err); ok {
			if constraint == activeItemIndexName {
				return nil, fmt.Errorf("%w: item %s", apperrors.ErrItemAlreadyOnLoan, itemID)
			}
			return nil, fmt.Errorf("%w: loan id %s", apperrors.ErrDuplicate, loanID)
		}
		return nil, fmt.Errorf("failed to insert loan for item %s: %w", itemID, err)
	}

	d := mapping.ToDomainLoan(m)
	return &d, nil
}

// FindLoanByID retrieves a loan by its id.
func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1;`
	m, err := scanLoan(r.Pool.QueryRow(ctx, query, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find loan %s: %w", loanID, err)
	}
	d := mapping.ToDomainLoan(m)
	return &d, nil
}

// FindActiveLoanByItem returns the active loan for an item, if any.
func (r *PgxLoanRepository) FindActiveLoanByItem(ctx context.Context, itemID string) (*domain.Loan, bool, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE item_id = $1 AND return_date IS NULL;`
	m, err := scanLoan(r.Pool.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to find active loan for item %s: %w", itemID, err)
	}
	d := mapping.ToDomainLoan(m)
	return &d, true, nil
}

// IsItemOnLoan reports whether the item has an active loan.
func (r *PgxLoanRepository) IsItemOnLoan(ctx context.Context, itemID string) (bool, error) {
	var onLoan bool
	query := `SELECT EXISTS (SELECT 1 FROM loans WHERE item_id = $1 AND return_date IS NULL);`
	if err := r.Pool.QueryRow(ctx, query, itemID).Scan(&onLoan); err != nil {
		return false, fmt.Errorf("failed to check loans for item %s: %w", itemID, err)
	}
	return onLoan, nil
}

// ListLoans returns every loan in creation order.
func (r *PgxLoanRepository) ListLoans(ctx context.Context) ([]domain.Loan, error) {
	return r.list(ctx, `SELECT `+loanColumns+` FROM loans ORDER BY seq;`)
}

// ListActiveLoans returns the active loans in creation order.
func (r *PgxLoanRepository) ListActiveLoans(ctx context.Context) ([]domain.Loan, error) {
	return r.list(ctx, `SELECT `+loanColumns+` FROM loans WHERE return_date IS NULL ORDER BY seq;`)
}

func (r *PgxLoanRepository) list(ctx context.Context, query string, args ...any) ([]domain.Loan, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query loans: %w", err)
	}
	defer rows.Close()

	modelLoans, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Loan, error) {
		return scanLoan(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan loans: %w", err)
	}
	return mapping.ToDomainLoanSlice(modelLoans), nil
}

// lockLoan loads a loan row under FOR UPDATE inside tx.
func (r *PgxLoanRepository) lockLoan(ctx context.Context, tx pgx.Tx, loanID string) (models.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1 FOR UPDATE;`
	m, err := scanLoan(tx.QueryRow(ctx, query, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return m, apperrors.ErrNotFound
		}
		return m, fmt.Errorf("failed to lock loan %s: %w", loanID, err)
	}
	return m, nil
}

// MarkReturned sets the return date of an active loan.
func (r *PgxLoanRepository) MarkReturned(ctx context.Context, loanID string, returnDate time.Time) (*domain.Loan, error) {
	returnDay := domain.DateOf(returnDate)
	now := r.nowFn()

	var m models.Loan
	err := r.InTx(ctx, func(tx pgx.Tx) error {
		var err error
		if m, err = r.lockLoan(ctx, tx, loanID); err != nil {
			return err
		}
		if m.ReturnDate != nil {
			return fmt.Errorf("%w: loan %s returned on %s", apperrors.ErrAlreadyReturned, loanID, m.ReturnDate.Format(domain.DateLayout))
		}
		if returnDay.Before(domain.DateOf(m.LoanDate)) {
			return fmt.Errorf("%w: return date %s is before loan date %s", apperrors.ErrValidation,
				returnDay.Format(domain.DateLayout), m.LoanDate.Format(domain.DateLayout))
		}
		query := `UPDATE loans SET return_date = $2, last_updated_at = $3 WHERE loan_id = $1;`
		if _, err := tx.Exec(ctx, query, loanID, returnDay, now); err != nil {
			return fmt.Errorf("failed to mark loan %s returned: %w", loanID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.ReturnDate = &returnDay
	m.LastUpdatedAt = now
	d := mapping.ToDomainLoan(m)
	return &d, nil
}

// MarkFinePaid flags the fine of a loan as paid. Repeated calls are no-ops.
func (r *PgxLoanRepository) MarkFinePaid(ctx context.Context, loanID string) (*domain.Loan, error) {
	query := `
		UPDATE loans
		SET fine_paid = TRUE,
			last_updated_at = CASE WHEN fine_paid THEN last_updated_at ELSE $2 END
		WHERE loan_id = $1
		RETURNING ` + loanColumns + `;
	`
	m, err := scanLoan(r.Pool.QueryRow(ctx, query, loanID, r.nowFn()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to mark fine paid for loan %s: %w", loanID, err)
	}
	d := mapping.ToDomainLoan(m)
	return &d, nil
}

// DeleteLoan removes a returned loan.
func (r *PgxLoanRepository) DeleteLoan(ctx context.Context, loanID string) error {
	return r.InTx(ctx, func(tx pgx.Tx) error {
		m, err := r.lockLoan(ctx, tx, loanID)
		if err != nil {
			return err
		}
		if m.ReturnDate == nil {
			return fmt.Errorf("%w: loan %s", apperrors.ErrLoanActive, loanID)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM loans WHERE loan_id = $1;`, loanID); err != nil {
			return fmt.Errorf("failed to delete loan %s: %w", loanID, err)
		}
		return nil
	})
}
