package domain

import "errors"

var (
	ErrRateNotFound      = errors.New("rate not found")
	ErrRateConflict      = errors.New("rate for this currency pair already exists")
	ErrNotConvertible    = errors.New("no conversion path between currencies")
	ErrValidation        = errors.New("validation error")
	ErrUnauthenticated   = errors.New("authentication required")
	ErrForbidden         = errors.New("insufficient permissions")
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)

// ValidationError carries a client-facing message and matches ErrValidation.
type ValidationError struct {
	Msg string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

var (
	ErrInvalidAmount     = NewValidationError("amount must be greater than zero")
	ErrInvalidRate       = NewValidationError("rate must be greater than zero")
	ErrInvalidPagination = NewValidationError("page and limit must be positive integers")
	ErrAmountOutOfRange  = NewValidationError("amount is out of range")
	ErrRateOutOfRange    = NewValidationError("rate must be less than 10000000000000")
	ErrRatePrecision     = NewValidationError("rate must have at most 6 decimal places")
)
