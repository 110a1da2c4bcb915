// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrInvalidReference  = errors.New("invalid reference")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidOperation  = errors.New("invalid operation")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrAlreadyApproved   = errors.New("already approved")
	ErrAccountDisabled   = errors.New("account disabled")
	ErrTokenInvalid      = errors.New("token invalid")
	ErrTokenExpired      = errors.New("token expired")
	ErrUnsupportedFormat = errors.New("unsupported format")
)

const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeDuplicateKey     = "DUPLICATE_KEY"
	CodeInvalidReference = "INVALID_REFERENCE"
	CodeInvalidOperation = "INVALID_OPERATION"
	CodeUnauthenticated  = "UNAUTHENTICATED"
	CodeInvalidToken     = "INVALID_TOKEN"
	CodeForbidden        = "FORBIDDEN"
	CodeNotFound         = "NOT_FOUND"
	CodeAlreadyApproved  = "ALREADY_APPROVED"
	CodeStorageFailure   = "STORAGE_FAILURE"
	CodeRateLimited      = "RATE_LIMITED"
)

// AppError carries everything the response boundary needs to render an
// error: status, machine code, human message and an optional form field.
type AppError struct {
	Err     error
	Message string
	Status  int
	Code    string
	Field   string
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(err error, message string, status int, code string) *AppError {
	return &AppError{
		Err:     err,
		Message: message,
		Status:  status,
		Code:    code,
	}
}

// WithField returns a copy of e pointing at the offending form field.
func (e *AppError) WithField(field string) *AppError {
	clone := *e
	clone.Field = field
	return &clone
}

func ValidationError(message string) *AppError {
	return NewAppError(ErrInvalidInput, message, http.StatusBadRequest, CodeValidation)
}

func DuplicateError(field string) *AppError {
	return &AppError{
		Err:     ErrDuplicateKey,
		Message: fmt.Sprintf("%s already exists", field),
		Status:  http.StatusBadRequest,
		Code:    CodeDuplicateKey,
		Field:   field,
	}
}

func InvalidReferenceError(field string) *AppError {
	return &AppError{
		Err:     ErrInvalidReference,
		Message: fmt.Sprintf("%s references a missing record", field),
		Status:  http.StatusBadRequest,
		Code:    CodeInvalidReference,
		Field:   field,
	}
}

func InvalidOperationError(message string) *AppError {
	return NewAppError(ErrInvalidOperation, message, http.StatusBadRequest, CodeInvalidOperation)
}

func UnauthorizedError(message string) *AppError {
	if message == "" {
		message = "authentication required"
	}
	return NewAppError(ErrUnauthorized, message, http.StatusUnauthorized, CodeUnauthenticated)
}

func TokenInvalidError() *AppError {
	return NewAppError(ErrTokenInvalid, "invalid or expired token", http.StatusUnauthorized, CodeInvalidToken)
}

func ForbiddenError(message string) *AppError {
	if message == "" {
		message = "access forbidden"
	}
	return NewAppError(ErrForbidden, message, http.StatusForbidden, CodeForbidden)
}

func NotFoundError(resource string) *AppError {
	return NewAppError(ErrNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound, CodeNotFound)
}

func AlreadyApprovedError() *AppError {
	return NewAppError(ErrAlreadyApproved, "violation is already approved", http.StatusBadRequest, CodeAlreadyApproved)
}

// FieldError attaches a form field hint to err while keeping its chain, so
// errors.Is still matches the underlying sentinel.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func WithField(err error, field string) error {
	return &FieldError{Field: field, Err: err}
}

func FieldOf(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Field
	}
	return ""
}

// ToAppError maps a domain error onto the response taxonomy. Anything not
// recognised becomes a StorageFailure.
func ToAppError(err error, resource string) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	field := FieldOf(err)

	switch {
	case errors.Is(err, ErrNotFound):
		return NotFoundError(resource)
	case errors.Is(err, ErrDuplicateKey):
		if field == "" {
			field = resource
		}
		return DuplicateError(field)
	case errors.Is(err, ErrInvalidReference):
		return InvalidReferenceError(field)
	case errors.Is(err, ErrInvalidInput):
		return ValidationError(unwrapMessage(err)).WithField(field)
	case errors.Is(err, ErrInvalidOperation):
		return InvalidOperationError(unwrapMessage(err))
	case errors.Is(err, ErrAlreadyApproved):
		return AlreadyApprovedError()
	case errors.Is(err, ErrForbidden):
		return ForbiddenError(unwrapMessage(err))
	case errors.Is(err, ErrAccountDisabled):
		return NewAppError(err, "account is deactivated", http.StatusForbidden, CodeForbidden)
	case errors.Is(err, ErrTokenInvalid), errors.Is(err, ErrTokenExpired):
		return TokenInvalidError()
	case errors.Is(err, ErrUnauthorized):
		return UnauthorizedError("")
	case errors.Is(err, ErrUnsupportedFormat):
		return ValidationError("unsupported export format").WithField("format")
	}

	return NewAppError(err, "internal server error", http.StatusInternalServerError, CodeStorageFailure)
}

// Reason wraps a sentinel with the user-facing message the response
// boundary should show for it.
func Reason(sentinel error, message string) error {
	return &reasonError{msg: message, err: sentinel}
}

type reasonError struct {
	msg string
	err error
}

func (e *reasonError) Error() string {
	return e.msg
}

func (e *reasonError) Unwrap() error {
	return e.err
}

func unwrapMessage(err error) string {
	var re *reasonError
	if errors.As(err, &re) {
		return re.msg
	}
	switch {
	case errors.Is(err, ErrForbidden):
		return "access forbidden"
	case errors.Is(err, ErrInvalidOperation):
		return "operation not allowed"
	}
	return "invalid input"
}
