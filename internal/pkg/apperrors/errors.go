package apperrors

import (
	"errors"
	"fmt"
)

// Taxonomy roots. Every error returned by a service unwraps to exactly one of these.
var (
	ErrValidationFailed  = errors.New("validation failed")
	ErrDuplicate         = errors.New("duplicate")
	ErrResourceNotFound  = errors.New("resource not found")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrStore             = errors.New("store error")

	// Authentication / authorization
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrInvalidFormat      = errors.New("invalid token format")
)

// Duplicates
var (
	ErrEmailAlreadyExists = fmt.Errorf("%w: email already exists", ErrDuplicate)
	ErrCollegeIDExists    = fmt.Errorf("%w: college ID already exists", ErrDuplicate)
	ErrSupervisorIDExists = fmt.Errorf("%w: supervisor ID already exists", ErrDuplicate)
)

// Not found
var (
	ErrUserNotFound        = fmt.Errorf("%w: user not found", ErrResourceNotFound)
	ErrStudentNotFound     = fmt.Errorf("%w: student not found", ErrResourceNotFound)
	ErrSupervisorNotFound  = fmt.Errorf("%w: supervisor not found", ErrResourceNotFound)
	ErrComplaintNotFound   = fmt.Errorf("%w: complaint not found", ErrResourceNotFound)
	ErrMenuRequestNotFound = fmt.Errorf("%w: menu request not found", ErrResourceNotFound)
)

// ErrorKind names an error class of the public result contract
type ErrorKind string

const (
	KindValidation        ErrorKind = "ValidationError"
	KindDuplicate         ErrorKind = "DuplicateError"
	KindNotFound          ErrorKind = "NotFoundError"
	KindInvalidTransition ErrorKind = "InvalidTransition"
	KindStore             ErrorKind = "StoreError"
	KindPermission        ErrorKind = "PermissionDenied"
	KindUnauthenticated   ErrorKind = "Unauthenticated"
)

// Kind classifies err. Unknown errors are reported as store errors.
func Kind(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrValidationFailed):
		return KindValidation
	case errors.Is(err, ErrDuplicate):
		return KindDuplicate
	case errors.Is(err, ErrResourceNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidTransition):
		return KindInvalidTransition
	case errors.Is(err, ErrPermissionDenied):
		return KindPermission
	case Is(err, ErrInvalidCredentials, ErrTokenExpired, ErrTokenInvalid, ErrInvalidFormat):
		return KindUnauthenticated
	default:
		return KindStore
	}
}

// Validation returns a validation error with a user-facing message
func Validation(format string, args ...interface{}) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: fmt.Sprintf(format, args...),
	}
}

// InvalidTransition returns an invalid-transition error with a user-facing message
func InvalidTransition(format string, args ...interface{}) error {
	return &CustomError{
		Err:     ErrInvalidTransition,
		Message: fmt.Sprintf(format, args...),
	}
}

// Store wraps an underlying persistence failure. The cause is kept for logs and
// errors.Is/As, while Error() only exposes the operation name.
func Store(op string, cause error) error {
	if cause == nil {
		return nil
	}
	if Classified(cause) {
		return cause
	}
	return &CustomError{
		Err:     ErrStore,
		Message: "store error: " + op + " failed",
		Cause:   cause,
	}
}

// Classified reports whether err already unwraps to a taxonomy root
func Classified(err error) bool {
	return Is(err, ErrValidationFailed, ErrDuplicate, ErrResourceNotFound, ErrInvalidTransition, ErrStore, ErrPermissionDenied, ErrInvalidCredentials)
}

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// Is returns whether err matches target or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Cause   error
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap exposes both the taxonomy root and the original cause
func (e *CustomError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// Diagnostic returns the message plus the wrapped cause, for logs only
func (e *CustomError) Diagnostic() string {
	if e.Cause == nil {
		return e.Error()
	}
	return e.Error() + ": " + e.Cause.Error()
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// PublicMessage returns the message safe to show to API callers
func PublicMessage(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Error()
	}
	switch Kind(err) {
	case KindStore:
		return "internal store error"
	default:
		return err.Error()
	}
}

// Diagnostic returns the most detailed description of err available, for logs
func Diagnostic(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Diagnostic()
	}
	return err.Error()
}
