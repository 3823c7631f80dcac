package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/library_circulation/internal/apperrors"
	"github.com/SscSPs/library_circulation/internal/dto"
	"github.com/SscSPs/library_circulation/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// statusFor maps service errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrItemNotFound), errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrItemAlreadyOnLoan),
		errors.Is(err, apperrors.ErrAlreadyReturned),
		errors.Is(err, apperrors.ErrLoanActive),
		errors.Is(err, apperrors.ErrItemOnLoan),
		errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error response for err. Internal failures are logged and
// masked behind fallbackMsg; everything else is echoed to the caller.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		res := dto.ErrorResponse{Error: fallbackMsg}
		res.RequestID, _ = middleware.GetRequestIDFromCtx(c.Request.Context())
		c.JSON(status, res)
		return
	}
	logger.Warn(fallbackMsg, slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, dto.ErrorResponse{Error: err.Error()})
}

// respondBindError renders request binding failures, field by field when the validator produced them.
func respondBindError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request", Fields: fields})
		return
	}
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
}
