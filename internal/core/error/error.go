package errx

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// RedisNotFoundMessage is used when a key is missing.
	RedisNotFoundMessage = "redis key not found"
)

// Domain failures. Callers match them with errors.Is; the AppError wrapper
// carries the status and the safe message shown to the buyer or admin.
var (
	ErrInvalidCoupon     = errors.New("invalid coupon")
	ErrMinSpendNotMet    = errors.New("minimum spend not met")
	ErrCouponExpired     = errors.New("coupon expired")
	ErrCouponExists      = errors.New("coupon code already exists")
	ErrInvalidCouponSpec = errors.New("invalid coupon definition")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrNotFound          = errors.New("not found")
	ErrIllegalTransition = errors.New("illegal order status transition")
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrNotLoggedIn       = errors.New("no user is logged in")
	ErrInvalidInput      = errors.New("invalid input")
)

// AppError wraps an underlying error with an HTTP status and safe message.
type AppError struct {
	Err     error
	Status  int
	Message string
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the provided information.
func New(err error, status int, message string) *AppError {
	return &AppError{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

// Domain wraps one of the sentinel domain errors with its status code and a
// caller supplied message, e.g. "Minimum spend of ₹1500 required.".
func Domain(err error, message string) *AppError {
	if message == "" {
		message = err.Error()
	}
	return New(err, statusFor(err), message)
}

// Domainf is Domain with a formatted message.
func Domainf(err error, format string, args ...any) *AppError {
	return Domain(err, fmt.Sprintf(format, args...))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrCouponExists):
		return http.StatusConflict
	case errors.Is(err, ErrIllegalTransition), errors.Is(err, ErrEmptyCart):
		return http.StatusConflict
	case errors.Is(err, ErrNotLoggedIn):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvalidCoupon), errors.Is(err, ErrMinSpendNotMet),
		errors.Is(err, ErrCouponExpired), errors.Is(err, ErrInvalidCouponSpec),
		errors.Is(err, ErrUnknownStatus), errors.Is(err, ErrInvalidInput):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// StatusOf returns the status carried by err, or 500 when err is not an AppError.
func StatusOf(err error) int {
	var app *AppError
	if errors.As(err, &app) {
		return app.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the safe message for err.
func MessageOf(err error) string {
	var app *AppError
	if errors.As(err, &app) {
		return app.Message
	}
	return SystemErrorMessage
}
