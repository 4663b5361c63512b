package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrPermission        = errors.New("permission denied")
	ErrInvalidInput      = errors.New("invalid input")
	ErrConflict          = errors.New("conflict")
	ErrInternal          = errors.New("internal server error")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrResourceExhausted = errors.New("resource exhausted")
)

// Callable error codes, as seen by clients of the callable endpoints.
const (
	CodeInvalidArgument   = "invalid-argument"
	CodeNotFound          = "not-found"
	CodeAlreadyExists     = "already-exists"
	CodePermissionDenied  = "permission-denied"
	CodeUnauthenticated   = "unauthenticated"
	CodeResourceExhausted = "resource-exhausted"
	CodeInternal          = "internal"
)

type AppError struct {
	BaseError error
	Message   string
	Details   string
	Err       error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (Details: %s, Cause: %v)", e.BaseError.Error(), e.Message, e.Details, e.Err)
	}
	return fmt.Sprintf("%s: %s (Details: %s)", e.BaseError.Error(), e.Message, e.Details)
}

// Unwrap exposes both the sentinel and the cause so errors.Is works on either.
func (e *AppError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.BaseError, e.Err}
	}
	return []error{e.BaseError}
}

func NewAppError(base error, msg, details string, err error) *AppError {
	return &AppError{BaseError: base, Message: msg, Details: details, Err: err}
}

func NewNotFound(resource, identifier string) *AppError {
	msg := fmt.Sprintf("%s not found", resource)
	details := fmt.Sprintf("%s with identifier '%s' was not found", resource, identifier)
	return NewAppError(ErrNotFound, msg, details, nil)
}

func NewInvalidInput(details string, err error) *AppError {
	return NewAppError(ErrInvalidInput, "Invalid input provided", details, err)
}

func NewConflict(resource, field, value string) *AppError {
	msg := fmt.Sprintf("%s conflict", resource)
	details := fmt.Sprintf("%s with %s '%s' already exists", resource, field, value)
	return NewAppError(ErrConflict, msg, details, nil)
}

func NewInternal(details string, err error) *AppError {
	return NewAppError(ErrInternal, "An internal server error occurred", details, err)
}

func NewUnauthorized(details string, err error) *AppError {
	return NewAppError(ErrUnauthorized, "Invalid credentials", details, err)
}

func NewPermissionDenied(details string) *AppError {
	return NewAppError(ErrPermission, "Permission denied", details, nil)
}

func NewResourceExhausted(details string) *AppError {
	return NewAppError(ErrResourceExhausted, "Too many requests", details, nil)
}

// classify reduces err to the sentinel it is reported as. The outermost
// AppError decides, so a cause wrapping another sentinel is not consulted.
func classify(err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.BaseError != nil {
		return appErr.BaseError
	}
	return err
}

func ToHTTPStatus(err error) int {
	err = classify(err)
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrPermission) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrConflict) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrResourceExhausted) {
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

// ToCallableCode maps an error onto the callable protocol's error code.
// Anything unclassified is reported as internal.
func ToCallableCode(err error) string {
	err = classify(err)
	switch {
	case errors.Is(err, ErrInvalidInput):
		return CodeInvalidArgument
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrConflict):
		return CodeAlreadyExists
	case errors.Is(err, ErrPermission):
		return CodePermissionDenied
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthenticated
	case errors.Is(err, ErrResourceExhausted):
		return CodeResourceExhausted
	default:
		return CodeInternal
	}
}

// CanonicalStatus is the upper-case form of a callable code, e.g. NOT_FOUND.
func CanonicalStatus(code string) string {
	return strings.ToUpper(strings.ReplaceAll(code, "-", "_"))
}

func (e *AppError) ToJSON() gin.H {
	return gin.H{
		"error":   e.BaseError.Error(),
		"message": e.Message,
	}
}

// ToCallableJSON renders the error body of the callable protocol. Details are
// only exposed for internal errors, where they carry the underlying cause.
func (e *AppError) ToCallableJSON() gin.H {
	code := ToCallableCode(e)
	body := gin.H{
		"status":  CanonicalStatus(code),
		"code":    code,
		"message": e.Message,
	}
	if code == CodeInternal && e.Details != "" {
		body["details"] = e.Details
	}
	return gin.H{"error": body}
}
