package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/library_circulation/internal/apperrors"
	"github.com/SscSPs/library_circulation/internal/core/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLendingMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewLendingMetrics(reg)
	require.NoError(t, err)

	m.LoanCreated()
	m.LoanCreated()
	m.ReturnAttempted(domain.ReturnStatusFineDue, decimal.RequireFromString("6.00"))
	m.ReturnAttempted(domain.ReturnStatusReturned, decimal.RequireFromString("6.00"))
	m.FinePaid()
	m.OperationFailed("lend", fmt.Errorf("wrapped: %w", apperrors.ErrItemAlreadyOnLoan))
	m.OperationFailed("lend", nil)
	m.ObserveDuration("lend", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.loansCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.returns.WithLabelValues("fine_due")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.returns.WithLabelValues("returned")))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.fineAssessed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.finesPaid))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errors.WithLabelValues("lend", "item_already_on_loan")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.opDuration))

	_, err = NewLendingMetrics(reg)
	assert.Error(t, err, "registering twice must fail")
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *LendingMetrics
	assert.NotPanics(t, func() {
		m.LoanCreated()
		m.ReturnAttempted(domain.ReturnStatusReturned, decimal.Zero)
		m.FinePaid()
		m.OperationFailed("x", errors.New("boom"))
		m.ObserveDuration("x", time.Second)
	})
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{apperrors.ErrValidation, "invalid_argument"},
		{apperrors.ErrItemNotFound, "item_not_found"},
		{apperrors.ErrItemAlreadyOnLoan, "item_already_on_loan"},
		{apperrors.ErrNotFound, "not_found"},
		{apperrors.ErrAlreadyReturned, "already_returned"},
		{apperrors.ErrLoanActive, "loan_active"},
		{errors.New("disk"), "internal"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorKind(fmt.Errorf("ctx: %w", tt.err)))
		})
	}
}
