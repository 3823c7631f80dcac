package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/library_circulation/internal/core/domain"
	portssvc "github.com/SscSPs/library_circulation/internal/core/ports/services"
	"github.com/SscSPs/library_circulation/internal/dto"
	"github.com/SscSPs/library_circulation/internal/middleware"
	"github.com/SscSPs/library_circulation/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// loanHandler handles HTTP requests related to loans.
type loanHandler struct {
	lending         portssvc.LendingSvcFacade
	defaultTermDays int
	now             func() time.Time
}

func newLoanHandler(lending portssvc.LendingSvcFacade, defaultTermDays int, now func() time.Time) *loanHandler {
	return &loanHandler{lending: lending, defaultTermDays: defaultTermDays, now: now}
}

// registerLoanRoutes registers routes related to loans.
func registerLoanRoutes(rg *gin.RouterGroup, lending portssvc.LendingSvcFacade, defaultTermDays int, now func() time.Time) {
	h := newLoanHandler(lending, defaultTermDays, now)

	loans := rg.Group("/loans")
	{
		loans.POST("", h.lend)
		loans.GET("", h.listLoans)
		loans.GET("/overdue", h.listOverdueLoans)
		loans.GET("/stats", h.stats)
		loans.GET("/:loanID", h.getLoan)
		loans.GET("/:loanID/fine", h.quoteFine)
		loans.POST("/:loanID/return", h.attemptReturn)
		loans.POST("/:loanID/fine-payment", h.payFine)
		loans.DELETE("/:loanID", h.deleteLoan)
	}
}

// today resolves the reference date from ?date=, defaulting to the handler clock.
func (h *loanHandler) today(c *gin.Context) (time.Time, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.DateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, logger, err)
		return time.Time{}, false
	}
	return h.resolveDate(q.Date), true
}

func (h *loanHandler) resolveDate(raw string) time.Time {
	if raw != "" {
		if d, err := time.Parse(domain.DateLayout, raw); err == nil {
			return d
		}
	}
	return domain.DateOf(h.now())
}

// lend godoc
// @Summary Lend an item
// @Description Creates a loan for a catalog item. The item must exist and must not already be on loan.
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   loan body dto.LendRequest true "Loan details"
// @Success 201 {object} dto.LoanResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Failure 409 {object} dto.ErrorResponse "Item already on loan"
// @Failure 500 {object} dto.ErrorResponse "Failed to create loan"
// @Router /loans [post]
func (h *loanHandler) lend(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	term := h.defaultTermDays
	if req.TermDays != nil {
		term = *req.TermDays
	}

	logger.Info("Received request to lend item", slog.String("item_id", req.ItemID), slog.Int("term_days", term))

	loan, err := h.lending.Lend(c.Request.Context(), req.ItemID, req.Borrower, term)
	if err != nil {
		respondError(c, logger, err, "Failed to create loan")
		return
	}
	c.JSON(http.StatusCreated, dto.ToLoanResponse(*loan, h.now()))
}

// listLoans godoc
// @Summary List loans
// @Description Lists loans in creation order, optionally filtered by borrower, item and status.
// @Tags loans
// @Produce  json
// @Param   borrower query string false "Case-insensitive borrower substring"
// @Param   itemID query string false "Exact item id"
// @Param   status query string false "all | active | returned | overdue"
// @Param   date query string false "Reference date for status (YYYY-MM-DD)"
// @Param   limit query int false "Page size (max 500)"
// @Param   nextToken query string false "Token from a previous page"
// @Success 200 {object} dto.ListLoansResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 500 {object} dto.ErrorResponse "Failed to list loans"
// @Router /loans [get]
func (h *loanHandler) listLoans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.ListLoansQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, logger, err)
		return
	}
	asOf := h.resolveDate(q.Date)

	loans, err := h.lending.ListLoans(c.Request.Context(), domain.LoanFilter{
		Borrower: q.Borrower,
		ItemID:   q.ItemID,
		Status:   domain.LoanStatusFilter(q.Status),
		AsOf:     asOf,
	})
	if err != nil {
		respondError(c, logger, err, "Failed to list loans")
		return
	}

	page, next, err := pagination.Page(loans, q.Limit, q.NextToken)
	if err != nil {
		respondBindError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListLoansResponse{Loans: dto.ToListLoanResponse(page, asOf), NextToken: next})
}

// listOverdueLoans godoc
// @Summary List overdue loans
// @Tags loans
// @Produce  json
// @Param   date query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {array} dto.LoanResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid date"
// @Failure 500 {object} dto.ErrorResponse "Failed to list overdue loans"
// @Router /loans/overdue [get]
func (h *loanHandler) listOverdueLoans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	today, ok := h.today(c)
	if !ok {
		return
	}
	loans, err := h.lending.ListOverdueLoans(c.Request.Context(), today)
	if err != nil {
		respondError(c, logger, err, "Failed to list overdue loans")
		return
	}
	c.JSON(http.StatusOK, dto.ToListLoanResponse(loans, today))
}

// stats godoc
// @Summary Circulation statistics
// @Tags loans
// @Produce  json
// @Param   date query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.StatsResponse
// @Failure 500 {object} dto.ErrorResponse "Failed to compute stats"
// @Router /loans/stats [get]
func (h *loanHandler) stats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	today, ok := h.today(c)
	if !ok {
		return
	}
	stats, err := h.lending.Stats(c.Request.Context(), today)
	if err != nil {
		respondError(c, logger, err, "Failed to compute stats")
		return
	}
	c.JSON(http.StatusOK, dto.ToStatsResponse(*stats))
}

// getLoan godoc
// @Summary Get a loan by ID
// @Tags loans
// @Produce  json
// @Param   loanID path string true "Loan ID"
// @Success 200 {object} dto.LoanResponse
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve loan"
// @Router /loans/{loanID} [get]
func (h *loanHandler) getLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("loanID")

	loan, err := h.lending.GetLoan(c.Request.Context(), loanID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve loan")
		return
	}
	c.JSON(http.StatusOK, dto.ToLoanResponse(*loan, h.now()))
}

// quoteFine godoc
// @Summary Quote the fine owed on a loan
// @Description Read-only. For returned loans the fine is assessed at the return date.
// @Tags loans
// @Produce  json
// @Param   loanID path string true "Loan ID"
// @Param   date query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.FineResponse
// @Failure 400 {object} dto.ErrorResponse "Date before loan date"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Router /loans/{loanID}/fine [get]
func (h *loanHandler) quoteFine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	today, ok := h.today(c)
	if !ok {
		return
	}
	fine, err := h.lending.QuoteFine(c.Request.Context(), c.Param("loanID"), today)
	if err != nil {
		respondError(c, logger, err, "Failed to quote fine")
		return
	}
	c.JSON(http.StatusOK, dto.ToFineResponse(*fine))
}

// attemptReturn godoc
// @Summary Return a loaned item
// @Description Returns the item. When returns are gated by fines and an unpaid fine is owed,
// @Description the loan is left untouched and 402 is returned with the amount due.
// @Tags loans
// @Produce  json
// @Param   loanID path string true "Loan ID"
// @Param   date query string false "Return date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.ReturnResponse "Returned"
// @Failure 402 {object} dto.ReturnResponse "Fine due"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 409 {object} dto.ErrorResponse "Loan already returned"
// @Router /loans/{loanID}/return [post]
func (h *loanHandler) attemptReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	today, ok := h.today(c)
	if !ok {
		return
	}
	loanID := c.Param("loanID")

	outcome, err := h.lending.AttemptReturn(c.Request.Context(), loanID, today)
	if err != nil {
		respondError(c, logger, err, "Failed to return loan")
		return
	}

	status := http.StatusOK
	if outcome.Status == domain.ReturnStatusFineDue {
		status = http.StatusPaymentRequired
	}
	c.JSON(status, dto.ToReturnResponse(*outcome, today))
}

// payFine godoc
// @Summary Record payment of a loan's fine
// @Description Marks the fine as paid. Does not return the item. Repeated calls are harmless.
// @Tags loans
// @Produce  json
// @Param   loanID path string true "Loan ID"
// @Success 200 {object} dto.LoanResponse
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Router /loans/{loanID}/fine-payment [post]
func (h *loanHandler) payFine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loan, err := h.lending.PayFine(c.Request.Context(), c.Param("loanID"))
	if err != nil {
		respondError(c, logger, err, "Failed to record fine payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToLoanResponse(*loan, h.now()))
}

// deleteLoan godoc
// @Summary Delete a returned loan
// @Tags loans
// @Param   loanID path string true "Loan ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 409 {object} dto.ErrorResponse "Loan still active"
// @Router /loans/{loanID} [delete]
func (h *loanHandler) deleteLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.lending.DeleteLoan(c.Request.Context(), c.Param("loanID")); err != nil {
		respondError(c, logger, err, "Failed to delete loan")
		return
	}
	c.Status(http.StatusNoContent)
}
