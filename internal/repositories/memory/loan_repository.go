// Package memory provides in-memory implementations of the circulation repositories
// used for tests, ephemeral deployments and as the working set of the sqlite store.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/library_circulation/internal/apperrors"
	"github.com/SscSPs/library_circulation/internal/core/domain"
	portsrepo "github.com/SscSPs/library_circulation/internal/core/ports/repositories"
	"github.com/SscSPs/library_circulation/internal/utils/idgen"
)

// Compile-time contract assertion.
var _ portsrepo.LoanRepositoryFacade = (*LoanRepository)(nil)

// CommitOp names the kind of change handed to a CommitHook.
type CommitOp string

const (
	OpInsert CommitOp = "insert"
	OpUpdate CommitOp = "update"
	OpDelete CommitOp = "delete"
)

// CommitHook runs inside the write lock, after validation and before the change is applied.
// Returning an error aborts the change and leaves the store untouched.
type CommitHook func(ctx context.Context, op CommitOp, loan domain.Loan) error

// LoanOption configures a LoanRepository.
type LoanOption func(*LoanRepository)

// WithClock overrides the clock used to date new loans.
func WithClock(now func() time.Time) LoanOption {
	return func(r *LoanRepository) {
		r.nowFn = now
	}
}

// WithIDGenerator overrides the loan id generator.
func WithIDGenerator(gen idgen.Generator) LoanOption {
	return func(r *LoanRepository) {
		r.ids = gen
	}
}

// WithCommitHook installs a write-through hook.
func WithCommitHook(hook CommitHook) LoanOption {
	return func(r *LoanRepository) {
		r.hook = hook
	}
}

// LoanRepository is the in-memory loan store. A single RWMutex guards the by-id map,
// the creation order and the active-by-item index, so create-if-absent is atomic.
type LoanRepository struct {
	mu           sync.RWMutex
	loans        map[string]domain.Loan
	order        []string
	activeByItem map[string]string // itemID -> loanID, active loans only
	ids          idgen.Generator
	nowFn        func() time.Time
	hook         CommitHook
}

// NewLoanRepository constructs an empty store.
func NewLoanRepository(opts ...LoanOption) *LoanRepository {
	r := &LoanRepository{
		loans:        make(map[string]domain.Loan),
		activeByItem: make(map[string]string),
		ids:          idgen.UUIDGenerator{},
		nowFn:        func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ImportLoans replaces the store contents, e.g. when hydrating from disk.
// The slice order becomes the listing order.
func (r *LoanRepository) ImportLoans(loans []domain.Loan) error {
	loansByID := make(map[string]domain.Loan, len(loans))
	order := make([]string, 0, len(loans))
	active := make(map[string]string)
	for _, l := range loans {
		if _, dup := loansByID[l.LoanID]; dup {
			return fmt.Errorf("%w: loan %s imported twice", apperrors.ErrDuplicate, l.LoanID)
		}
		if l.IsActive() {
			if other, taken := active[l.ItemID]; taken {
				return fmt.Errorf("%w: item %s has active loans %s and %s", apperrors.ErrItemAlreadyOnLoan, l.ItemID, other, l.LoanID)
			}
			active[l.ItemID] = l.LoanID
		}
		loansByID[l.LoanID] = l.Clone()
		order = append(order, l.LoanID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.loans = loansByID
	r.order = order
	r.activeByItem = active
	return nil
}

func (r *LoanRepository) commit(ctx context.Context, op CommitOp, loan domain.Loan) error {
	if r.hook == nil {
		return nil
	}
	return r.hook(ctx, op, loan)
}

// CreateLoan implements portsrepo.LoanWriter.
func (r *LoanRepository) CreateLoan(ctx context.Context, itemID string, borrower string, freeDays int) (*domain.Loan, error) {
	if domain.IsBlank(itemID) {
		return nil, fmt.Errorf("%w: item id is required", apperrors.ErrValidation)
	}
	if domain.IsBlank(borrower) {
		return nil, fmt.Errorf("%w: borrower is required", apperrors.ErrValidation)
	}
	if freeDays < 1 {
		return nil, fmt.Errorf("%w: free days must be at least 1, got %d", apperrors.ErrValidation, freeDays)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.activeByItem[itemID]; ok {
		return nil, fmt.Errorf("%w: item %s (loan %s)", apperrors.ErrItemAlreadyOnLoan, itemID, existing)
	}

	loanID, err := r.ids.NewID()
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to generate loan id", err)
	}
	if _, clash := r.loans[loanID]; clash {
		return nil, fmt.Errorf("%w: loan id %s", apperrors.ErrDuplicate, loanID)
	}

	loanDate := domain.DateOf(r.nowFn())
	loan := domain.Loan{
		LoanID:   loanID,
		ItemID:   itemID,
		Borrower: strings.TrimSpace(borrower),
		LoanDate: loanDate,
		DueDate:  domain.AddDays(loanDate, freeDays),
		TermDays: freeDays,
	}

	if err := r.commit(ctx, OpInsert, loan); err != nil {
		return nil, err
	}

	r.loans[loanID] = loan
	r.order = append(r.order, loanID)
	r.activeByItem[itemID] = loanID

	out := loan.Clone()
	return &out, nil
}

// FindLoanByID implements portsrepo.LoanReader.
func (r *LoanRepository) FindLoanByID(_ context.Context, loanID string) (*domain.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	loan, ok := r.loans[loanID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	out := loan.Clone()
	return &out, nil
}

// FindActiveLoanByItem implements portsrepo.LoanReader.
func (r *LoanRepository) FindActiveLoanByItem(_ context.Context, itemID string) (*domain.Loan, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	loanID, ok := r.activeByItem[itemID]
	if !ok {
		return nil, false, nil
	}
	out := r.loans[loanID].Clone()
	return &out, true, nil
}

// IsItemOnLoan implements portsrepo.LoanReader.
func (r *LoanRepository) IsItemOnLoan(_ context.Context, itemID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.activeByItem[itemID]
	return ok, nil
}

// ListLoans implements portsrepo.LoanReader.
func (r *LoanRepository) ListLoans(_ context.Context) ([]domain.Loan, error) {
	return r.snapshot(func(domain.Loan) bool { return true }), nil
}

// ListActiveLoans implements portsrepo.LoanReader.
func (r *LoanRepository) ListActiveLoans(_ context.Context) ([]domain.Loan, error) {
	return r.snapshot(domain.Loan.IsActive), nil
}

func (r *LoanRepository) snapshot(keep func(domain.Loan) bool) []domain.Loan {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Loan, 0, len(r.order))
	for _, id := range r.order {
		loan := r.loans[id]
		if keep(loan) {
			out = append(out, loan.Clone())
		}
	}
	return out
}

// MarkReturned implements portsrepo.LoanWriter.
func (r *LoanRepository) MarkReturned(ctx context.Context, loanID string, returnDate time.Time) (*domain.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	loan, ok := r.loans[loanID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if !loan.IsActive() {
		return nil, fmt.Errorf("%w: loan %s returned on %s", apperrors.ErrAlreadyReturned, loanID, loan.ReturnDate.Format(domain.DateLayout))
	}
	returnDay := domain.DateOf(returnDate)
	if returnDay.Before(loan.LoanDate) {
		return nil, fmt.Errorf("%w: return date %s is before loan date %s", apperrors.ErrValidation,
			returnDay.Format(domain.DateLayout), loan.LoanDate.Format(domain.DateLayout))
	}

	updated := loan.Clone()
	updated.ReturnDate = &returnDay
	if err := r.commit(ctx, OpUpdate, updated); err != nil {
		return nil, err
	}

	r.loans[loanID] = updated
	if r.activeByItem[loan.ItemID] == loanID {
		delete(r.activeByItem, loan.ItemID)
	}

	out := updated.Clone()
	return &out, nil
}

// MarkFinePaid implements portsrepo.LoanWriter.
func (r *LoanRepository) MarkFinePaid(ctx context.Context, loanID string) (*domain.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	loan, ok := r.loans[loanID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if !loan.FinePaid {
		updated := loan.Clone()
		updated.FinePaid = true
		if err := r.commit(ctx, OpUpdate, updated); err != nil {
			return nil, err
		}
		r.loans[loanID] = updated
		loan = updated
	}

	out := loan.Clone()
	return &out, nil
}

// DeleteLoan implements portsrepo.LoanWriter.
func (r *LoanRepository) DeleteLoan(ctx context.Context, loanID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	loan, ok := r.loans[loanID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if loan.IsActive() {
		return fmt.Errorf("%w: loan %s", apperrors.ErrLoanActive, loanID)
	}
	if err := r.commit(ctx, OpDelete, loan); err != nil {
		return err
	}

	delete(r.loans, loanID)
	for i, id := range r.order {
		if id == loanID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
