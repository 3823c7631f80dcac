package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/library_circulation/internal/apperrors"
	"github.com/SscSPs/library_circulation/internal/core/domain"
	portsrepo "github.com/SscSPs/library_circulation/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/library_circulation/internal/core/ports/services"
	"github.com/SscSPs/library_circulation/internal/platform/metrics"
	"github.com/SscSPs/library_circulation/internal/utils/accounting"
)

// lendingService sequences catalog checks, loan store calls and fine assessment.
type lendingService struct {
	BaseService
	loans       portsrepo.LoanRepositoryFacade
	catalog     portssvc.ItemExistenceChecker
	schedule    accounting.FineSchedule
	fineGated   bool
	maxTermDays int
	metrics     *metrics.LendingMetrics
}

// LendingOption is a functional option for configuring the lending service
type LendingOption func(*lendingService)

// WithFineSchedule overrides the default 5.00 + 0.50/day schedule.
func WithFineSchedule(schedule accounting.FineSchedule) LendingOption {
	return func(s *lendingService) {
		s.schedule = schedule
	}
}

// WithFineGating selects the return policy. When gated (the default) a return
// with an unpaid fine is refused; otherwise returns always succeed and the fine is informational.
func WithFineGating(gated bool) LendingOption {
	return func(s *lendingService) {
		s.fineGated = gated
	}
}

// WithMaxTermDays caps the requested loan term. Zero disables the cap.
func WithMaxTermDays(days int) LendingOption {
	return func(s *lendingService) {
		s.maxTermDays = days
	}
}

// WithMetrics adds Prometheus instrumentation.
func WithMetrics(m *metrics.LendingMetrics) LendingOption {
	return func(s *lendingService) {
		s.metrics = m
	}
}

// NewLendingService creates a lending service over the given loan store and catalog.
func NewLendingService(loans portsrepo.LoanRepositoryFacade, catalog portssvc.ItemExistenceChecker, options ...LendingOption) portssvc.LendingSvcFacade {
	svc := &lendingService{
		loans:     loans,
		catalog:   catalog,
		schedule:  accounting.DefaultFineSchedule,
		fineGated: true,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LendingSvcFacade = (*lendingService)(nil)

// track records duration and failures for op. Use as: defer s.track("lend", time.Now(), &err).
func (s *lendingService) track(op string, start time.Time, errp *error) {
	s.metrics.ObserveDuration(op, time.Since(start))
	if errp != nil && *errp != nil {
		s.metrics.OperationFailed(op, *errp)
	}
}

// isExpected reports whether err is a caller-caused failure rather than an infrastructure fault.
func isExpected(err error) bool {
	return errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrItemNotFound) ||
		errors.Is(err, apperrors.ErrItemAlreadyOnLoan) ||
		errors.Is(err, apperrors.ErrAlreadyReturned) ||
		errors.Is(err, apperrors.ErrLoanActive)
}

func (s *lendingService) logFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	if isExpected(err) {
		s.LogWarn(ctx, err, msg, keyvals...)
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}

func (s *lendingService) Lend(ctx context.Context, itemID string, borrower string, termDays int) (_ *domain.Loan, err error) {
	defer s.track("lend", time.Now(), &err)

	if domain.IsBlank(itemID) {
		return nil, fmt.Errorf("%w: item id is required", apperrors.ErrValidation)
	}
	if domain.IsBlank(borrower) {
		return nil, fmt.Errorf("%w: borrower is required", apperrors.ErrValidation)
	}
	if termDays < 1 {
		return nil, fmt.Errorf("%w: term must be at least 1 day, got %d", apperrors.ErrValidation, termDays)
	}
	if s.maxTermDays > 0 && termDays > s.maxTermDays {
		return nil, fmt.Errorf("%w: term of %d days exceeds the maximum of %d", apperrors.ErrValidation, termDays, s.maxTermDays)
	}

	exists, err := s.catalog.ItemExists(ctx, itemID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check catalog", slog.String("item_id", itemID))
		return nil, fmt.Errorf("failed to check item %s: %w", itemID, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrItemNotFound, itemID)
	}

	loan, err := s.loans.CreateLoan(ctx, itemID, borrower, termDays)
	if err != nil {
		s.logFailure(ctx, err, "Failed to create loan",
			slog.String("item_id", itemID),
			slog.String("borrower", borrower))
		return nil, err
	}

	s.metrics.LoanCreated()
	s.LogInfo(ctx, "Loan created",
		slog.String("loan_id", loan.LoanID),
		slog.String("item_id", loan.ItemID),
		slog.String("due_date", loan.DueDate.Format(domain.DateLayout)))
	return loan, nil
}

func (s *lendingService) AttemptReturn(ctx context.Context, loanID string, today time.Time) (_ *domain.ReturnOutcome, err error) {
	defer s.track("return", time.Now(), &err)

	loan, err := s.loans.FindLoanByID(ctx, loanID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to load loan for return", slog.String("loan_id", loanID))
		return nil, err
	}
	if !loan.IsActive() {
		return nil, fmt.Errorf("%w: loan %s", apperrors.ErrAlreadyReturned, loanID)
	}

	fine, err := accounting.AssessFine(loan.LoanDate, loan.TermDays, today, s.schedule)
	if err != nil {
		return nil, err
	}

	if s.fineGated && fine.IsDue() && !loan.FinePaid {
		s.metrics.ReturnAttempted(domain.ReturnStatusFineDue, fine.Amount)
		s.LogInfo(ctx, "Return refused until fine is paid",
			slog.String("loan_id", loanID),
			slog.Int("overdue_days", fine.OverdueDays),
			slog.String("fine", fine.Amount.StringFixed(accounting.AmountPlaces)))
		return &domain.ReturnOutcome{Status: domain.ReturnStatusFineDue, Loan: *loan, Fine: fine}, nil
	}

	returned, err := s.loans.MarkReturned(ctx, loanID, today)
	if err != nil {
		s.logFailure(ctx, err, "Failed to mark loan returned", slog.String("loan_id", loanID))
		return nil, err
	}

	s.metrics.ReturnAttempted(domain.ReturnStatusReturned, fine.Amount)
	s.LogInfo(ctx, "Loan returned",
		slog.String("loan_id", loanID),
		slog.String("item_id", returned.ItemID),
		slog.String("fine", fine.Amount.StringFixed(accounting.AmountPlaces)))
	return &domain.ReturnOutcome{Status: domain.ReturnStatusReturned, Loan: *returned, Fine: fine}, nil
}

func (s *lendingService) PayFine(ctx context.Context, loanID string) (_ *domain.Loan, err error) {
	defer s.track("pay_fine", time.Now(), &err)

	loan, err := s.loans.MarkFinePaid(ctx, loanID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to record fine payment", slog.String("loan_id", loanID))
		return nil, err
	}
	s.metrics.FinePaid()
	s.LogInfo(ctx, "Fine payment recorded", slog.String("loan_id", loanID))
	return loan, nil
}

func (s *lendingService) DeleteLoan(ctx context.Context, loanID string) (err error) {
	defer s.track("delete", time.Now(), &err)

	if err := s.loans.DeleteLoan(ctx, loanID); err != nil {
		s.logFailure(ctx, err, "Failed to delete loan", slog.String("loan_id", loanID))
		return err
	}
	s.LogInfo(ctx, "Loan deleted", slog.String("loan_id", loanID))
	return nil
}

func (s *lendingService) IsItemOnLoan(ctx context.Context, itemID string) (bool, error) {
	return s.loans.IsItemOnLoan(ctx, itemID)
}

func (s *lendingService) GetLoan(ctx context.Context, loanID string) (*domain.Loan, error) {
	loan, err := s.loans.FindLoanByID(ctx, loanID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to get loan", slog.String("loan_id", loanID))
		return nil, err
	}
	return loan, nil
}

func (s *lendingService) ListActiveLoans(ctx context.Context) ([]domain.Loan, error) {
	loans, err := s.loans.ListActiveLoans(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list active loans")
		return nil, err
	}
	if loans == nil {
		return []domain.Loan{}, nil
	}
	return loans, nil
}

func (s *lendingService) ListLoans(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error) {
	switch filter.Status {
	case "", domain.FilterAll, domain.FilterActive, domain.FilterReturned, domain.FilterOverdue:
	default:
		return nil, fmt.Errorf("%w: unknown status filter %q", apperrors.ErrValidation, filter.Status)
	}

	var (
		loans []domain.Loan
		err   error
	)
	if filter.Status == domain.FilterActive || filter.Status == domain.FilterOverdue {
		loans, err = s.loans.ListActiveLoans(ctx)
	} else {
		loans, err = s.loans.ListLoans(ctx)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to list loans")
		return nil, err
	}

	out := make([]domain.Loan, 0, len(loans))
	for _, l := range loans {
		if filter.Matches(l) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *lendingService) ListOverdueLoans(ctx context.Context, today time.Time) ([]domain.Loan, error) {
	return s.ListLoans(ctx, domain.LoanFilter{Status: domain.FilterOverdue, AsOf: today})
}

func (s *lendingService) QuoteFine(ctx context.Context, loanID string, today time.Time) (*domain.FineAssessment, error) {
	loan, err := s.loans.FindLoanByID(ctx, loanID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to load loan for fine quote", slog.String("loan_id", loanID))
		return nil, err
	}
	fine, err := accounting.AssessLoan(*loan, today, s.schedule)
	if err != nil {
		return nil, err
	}
	return &fine, nil
}

func (s *lendingService) Stats(ctx context.Context, today time.Time) (*domain.CirculationStats, error) {
	loans, err := s.loans.ListLoans(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute circulation stats")
		return nil, err
	}
	stats := &domain.CirculationStats{Total: len(loans), AsOf: domain.DateOf(today)}
	for _, l := range loans {
		switch l.Status(today) {
		case domain.LoanStatusReturned:
			stats.Returned++
		case domain.LoanStatusOverdue:
			stats.Overdue++
			stats.Active++
		default:
			stats.Active++
		}
	}
	return stats, nil
}
