package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/library_circulation/internal/core/domain"
	portsrepo "github.com/SscSPs/library_circulation/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/library_circulation/internal/core/ports/services"
	"github.com/SscSPs/library_circulation/internal/core/services"
	"github.com/SscSPs/library_circulation/internal/dto"
	"github.com/SscSPs/library_circulation/internal/handlers"
	"github.com/SscSPs/library_circulation/internal/middleware"
	"github.com/SscSPs/library_circulation/internal/platform/config"
	"github.com/SscSPs/library_circulation/internal/repositories/memory"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCirculationServer(t *testing.T, gated bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog, err := memory.NewCatalogRepository(
		domain.Item{ItemID: "dune", Title: "Dune"},
		domain.Item{ItemID: "emma", Title: "Emma"},
	)
	require.NoError(t, err)
	loans := memory.NewLoanRepository(memory.WithClock(func() time.Time { return march1 }))

	cfg := &config.Config{
		IsProduction:     true,
		LoanFreeDays:     10,
		LoanMaxTermDays:  10,
		FineBaseFee:      decimal.RequireFromString("5.00"),
		FinePerDayFee:    decimal.RequireFromString("0.50"),
		FineGatedReturns: gated,
		RateLimit:        "1000-M",
	}
	container, err := services.NewServiceContainer(cfg, portsrepo.RepositoryProvider{LoanRepo: loans, CatalogRepo: catalog}, nil)
	require.NoError(t, err)

	limiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	require.NoError(t, err)

	r := gin.New()
	handlers.RegisterRoutes(r, cfg, container, fixedClock, middleware.RateLimit(limiter))
	return r
}

func call(t *testing.T, r *gin.Engine, method, path string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if out != nil && w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

func TestCirculationOverHTTP(t *testing.T) {
	r := newCirculationServer(t, true)

	// Ana borrows Dune; Bob cannot take it until it comes back.
	var ana dto.LoanResponse
	require.Equal(t, http.StatusCreated, call(t, r, http.MethodPost, "/api/v1/loans", dto.LendRequest{ItemID: "dune", Borrower: "Ana"}, &ana))
	assert.Equal(t, "2024-03-11", ana.DueDate)
	assert.Equal(t, http.StatusConflict, call(t, r, http.MethodPost, "/api/v1/loans", dto.LendRequest{ItemID: "dune", Borrower: "Bob"}, nil))
	assert.Equal(t, http.StatusNotFound, call(t, r, http.MethodPost, "/api/v1/loans", dto.LendRequest{ItemID: "ghost", Borrower: "Bob"}, nil))

	var item dto.ItemResponse
	require.Equal(t, http.StatusOK, call(t, r, http.MethodGet, "/api/v1/items/dune", nil, &item))
	require.NotNil(t, item.OnLoan)
	assert.True(t, *item.OnLoan)
	assert.Equal(t, http.StatusConflict, call(t, r, http.MethodDelete, "/api/v1/items/dune", nil, nil))

	// Returned four days late: refused until the fine is paid.
	var outcome dto.ReturnResponse
	require.Equal(t, http.StatusPaymentRequired, call(t, r, http.MethodPost, "/api/v1/loans/"+ana.LoanID+"/return?date=2024-03-15", nil, &outcome))
	assert.Equal(t, 4, outcome.Fine.OverdueDays)
	assert.Equal(t, "7.00", outcome.Fine.Amount)

	var stats dto.StatsResponse
	require.Equal(t, http.StatusOK, call(t, r, http.MethodGet, "/api/v1/loans/stats?date=2024-03-15", nil, &stats))
	assert.Equal(t, 1, stats.Overdue)

	require.Equal(t, http.StatusOK, call(t, r, http.MethodPost, "/api/v1/loans/"+ana.LoanID+"/fine-payment", nil, nil))
	require.Equal(t, http.StatusOK, call(t, r, http.MethodPost, "/api/v1/loans/"+ana.LoanID+"/return?date=2024-03-15", nil, &outcome))
	assert.Equal(t, "RETURNED", outcome.Status)
	assert.Equal(t, http.StatusConflict, call(t, r, http.MethodPost, "/api/v1/loans/"+ana.LoanID+"/return?date=2024-03-16", nil, nil))

	// The fine on a returned loan is frozen at its return date.
	var fine dto.FineResponse
	require.Equal(t, http.StatusOK, call(t, r, http.MethodGet, "/api/v1/loans/"+ana.LoanID+"/fine?date=2024-04-30", nil, &fine))
	assert.Equal(t, "7.00", fine.Amount)

	var bob dto.LoanResponse
	require.Equal(t, http.StatusCreated, call(t, r, http.MethodPost, "/api/v1/loans", dto.LendRequest{ItemID: "dune", Borrower: "Bob"}, &bob))

	var list dto.ListLoansResponse
	require.Equal(t, http.StatusOK, call(t, r, http.MethodGet, "/api/v1/loans?itemID=dune", nil, &list))
	require.Len(t, list.Loans, 2)
	assert.Equal(t, ana.LoanID, list.Loans[0].LoanID)
	assert.Equal(t, bob.LoanID, list.Loans[1].LoanID)

	assert.Equal(t, http.StatusConflict, call(t, r, http.MethodDelete, "/api/v1/loans/"+bob.LoanID, nil, nil))
	assert.Equal(t, http.StatusNoContent, call(t, r, http.MethodDelete, "/api/v1/loans/"+ana.LoanID, nil, nil))
	assert.Equal(t, http.StatusNotFound, call(t, r, http.MethodGet, "/api/v1/loans/"+ana.LoanID, nil, nil))
}

func TestUngatedReturnOverHTTP(t *testing.T) {
	r := newCirculationServer(t, false)

	var loan dto.LoanResponse
	require.Equal(t, http.StatusCreated, call(t, r, http.MethodPost, "/api/v1/loans", dto.LendRequest{ItemID: "emma", Borrower: "Cleo"}, &loan))

	var outcome dto.ReturnResponse
	require.Equal(t, http.StatusOK, call(t, r, http.MethodPost, "/api/v1/loans/"+loan.LoanID+"/return?date=2024-03-20", nil, &outcome))
	assert.Equal(t, "RETURNED", outcome.Status)
	assert.True(t, outcome.Fine.Due)
	assert.False(t, outcome.Loan.FinePaid)

	var overdue []dto.LoanResponse
	require.Equal(t, http.StatusOK, call(t, r, http.MethodGet, "/api/v1/loans/overdue?date=2024-03-20", nil, &overdue))
	assert.Empty(t, overdue)
}

func TestRateLimitAppliesToAPI(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter, err := middleware.NewRateLimiter("1-M")
	require.NoError(t, err)

	container := &portssvc.ServiceContainer{Lending: new(MockLendingService), Catalog: new(MockCatalogService)}
	r := gin.New()
	handlers.RegisterRoutes(r, &config.Config{LoanFreeDays: 10, IsProduction: true}, container, fixedClock, middleware.RateLimit(limiter))

	assert.Equal(t, http.StatusOK, call(t, r, http.MethodGet, "/api/v1/", nil, nil))
	assert.Equal(t, http.StatusTooManyRequests, call(t, r, http.MethodGet, "/api/v1/", nil, nil))
	// health is outside the limited group
	assert.Equal(t, http.StatusOK, call(t, r, http.MethodGet, "/health", nil, nil))
}
