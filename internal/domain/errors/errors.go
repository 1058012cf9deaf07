package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")

	// Booking lifecycle
	ErrSlotUnavailable            = errors.New("slot unavailable")
	ErrInvalidTimeRange           = errors.New("invalid time range")
	ErrCannotCompleteUnpaidBooking = errors.New("cannot complete unpaid booking")
	ErrAlreadyCompleted           = errors.New("booking already completed")
	ErrBookingNotCompletable      = errors.New("booking not completable")
	ErrInvalidTransition          = errors.New("invalid booking transition")

	// Funds and payouts
	ErrPayoutAmountNonPositive = errors.New("payout amount must be positive")
	ErrBusinessNotActive       = errors.New("business not active")
)

// AppError represents an application error carrying an HTTP status
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrInvalidInput)
}

func Conflict(message string, err error) *AppError {
	return NewAppError(http.StatusConflict, message, err)
}

func Unprocessable(message string, err error) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, message, err)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, ErrForbidden)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "internal server error", err)
}
