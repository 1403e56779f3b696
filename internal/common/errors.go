package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")

	// ErrNoInvoiceLines aborts the whole run: zero extractable invoice line
	// items means there is nothing to import.
	ErrNoInvoiceLines = errors.New("no invoice line items extracted")

	// Catalog load-time failures, all fatal before any output is produced.
	ErrNoCatalog        = errors.New("no catalog source found")
	ErrMultipleCatalogs = errors.New("multiple catalog sources found; keep only one per vendor")
	ErrMissingColumn    = errors.New("catalog is missing the canonical product column")
	ErrEmptyCatalog     = errors.New("catalog has no product entries")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
