package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrItemNotFound indicates that the catalog does not know the requested item.
var ErrItemNotFound = errors.New("catalog item not found")

// ErrItemAlreadyOnLoan indicates that the item already has an active loan.
var ErrItemAlreadyOnLoan = errors.New("item is already on loan")

// ErrAlreadyReturned indicates that the loan has already been returned.
var ErrAlreadyReturned = errors.New("loan already returned")

// ErrLoanActive indicates that an operation requires a returned loan.
var ErrLoanActive = errors.New("loan is still active")

// ErrItemOnLoan indicates that a catalog item cannot be removed while it is lent out.
var ErrItemOnLoan = errors.New("item is currently on loan")

// AppError carries an HTTP-ish status code alongside an underlying infrastructure error.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError wraps err with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
