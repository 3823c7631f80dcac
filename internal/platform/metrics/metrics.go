// Package metrics exposes circulation counters to Prometheus.
package metrics

import (
	"errors"
	"time"

	"github.com/SscSPs/library_circulation/internal/apperrors"
	"github.com/SscSPs/library_circulation/internal/core/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

const namespace = "circulation"

// LendingMetrics records lending outcomes. All methods are safe on a nil receiver.
type LendingMetrics struct {
	loansCreated prometheus.Counter
	returns      *prometheus.CounterVec
	finesPaid    prometheus.Counter
	fineAssessed prometheus.Counter
	errors       *prometheus.CounterVec
	opDuration   *prometheus.HistogramVec
}

// NewLendingMetrics creates the collectors and registers them on reg.
func NewLendingMetrics(reg prometheus.Registerer) (*LendingMetrics, error) {
	m := &LendingMetrics{
		loansCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loans_created_total",
			Help:      "Loans successfully created.",
		}),
		returns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "returns_total",
			Help:      "Return attempts by outcome.",
		}, []string{"outcome"}),
		finesPaid: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fines_paid_total",
			Help:      "Fine payments recorded.",
		}),
		fineAssessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fine_amount_assessed_total",
			Help:      "Sum of fines owed on completed returns.",
		}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lending_errors_total",
			Help:      "Failed lending operations by operation and error kind.",
		}, []string{"operation", "kind"}),
		opDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lending_operation_duration_seconds",
			Help:      "Latency of lending operations.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"operation"}),
	}

	for _, c := range []prometheus.Collector{m.loansCreated, m.returns, m.finesPaid, m.fineAssessed, m.errors, m.opDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *LendingMetrics) LoanCreated() {
	if m == nil {
		return
	}
	m.loansCreated.Inc()
}

// ReturnAttempted counts a return outcome; fines are only summed once the item is back.
func (m *LendingMetrics) ReturnAttempted(status domain.ReturnStatus, fine decimal.Decimal) {
	if m == nil {
		return
	}
	switch status {
	case domain.ReturnStatusReturned:
		m.returns.WithLabelValues("returned").Inc()
		m.fineAssessed.Add(fine.InexactFloat64())
	case domain.ReturnStatusFineDue:
		m.returns.WithLabelValues("fine_due").Inc()
	}
}

func (m *LendingMetrics) FinePaid() {
	if m == nil {
		return
	}
	m.finesPaid.Inc()
}

func (m *LendingMetrics) OperationFailed(operation string, err error) {
	if m == nil || err == nil {
		return
	}
	m.errors.WithLabelValues(operation, ErrorKind(err)).Inc()
}

func (m *LendingMetrics) ObserveDuration(operation string, d time.Duration) {
	if m == nil {
		return
	}
	m.opDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// ErrorKind maps an error to a low-cardinality label value.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return "invalid_argument"
	case errors.Is(err, apperrors.ErrItemNotFound):
		return "item_not_found"
	case errors.Is(err, apperrors.ErrItemAlreadyOnLoan):
		return "item_already_on_loan"
	case errors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperrors.ErrAlreadyReturned):
		return "already_returned"
	case errors.Is(err, apperrors.ErrLoanActive):
		return "loan_active"
	default:
		return "internal"
	}
}
