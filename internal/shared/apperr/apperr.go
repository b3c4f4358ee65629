// Package apperr defines the error kinds surfaced to API callers.
//
// Domain packages declare their own sentinels with New and wrap causes with
// Wrap; handlers resolve any error to a Kind and HTTP status with KindOf and
// Status.
package apperr

import (
	"errors"
	"net/http"
)

// Kind is a stable machine-readable error code.
type Kind string

const (
	KindValidation    Kind = "validation_error"
	KindUnauthorized  Kind = "unauthorized"
	KindNotFound      Kind = "not_found"
	KindPrecondition  Kind = "precondition_failed"
	KindExtraction    Kind = "extraction_error"
	KindNormalization Kind = "normalization_error"
	KindGeneration    Kind = "generation_error"
	KindStorage       Kind = "storage_error"
	KindUpstream      Kind = "upstream_error"
	KindRateLimited   Kind = "rate_limited"
	KindInternal      Kind = "internal_error"
)

type kindSentinel struct{ kind Kind }

func (s *kindSentinel) Error() string { return string(s.kind) }

// Kind sentinels for errors.Is checks across packages.
var (
	ErrValidation    error = &kindSentinel{KindValidation}
	ErrUnauthorized  error = &kindSentinel{KindUnauthorized}
	ErrNotFound      error = &kindSentinel{KindNotFound}
	ErrPrecondition  error = &kindSentinel{KindPrecondition}
	ErrExtraction    error = &kindSentinel{KindExtraction}
	ErrNormalization error = &kindSentinel{KindNormalization}
	ErrGeneration    error = &kindSentinel{KindGeneration}
	ErrStorage       error = &kindSentinel{KindStorage}
	ErrUpstream      error = &kindSentinel{KindUpstream}
	ErrRateLimited   error = &kindSentinel{KindRateLimited}
)

// Error carries a kind, a caller-safe message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Details any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	s, ok := target.(*kindSentinel)
	return ok && s.kind == e.Kind
}

// New returns an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap returns an error of the given kind wrapping cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// Validation returns a validation error with optional details.
func Validation(message string, details any) *Error {
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

// NotFound returns a not-found error for the named entity.
func NotFound(what string) *Error {
	return &Error{Kind: KindNotFound, Message: what + " not found"}
}

// Precondition returns a precondition error.
func Precondition(message string) *Error {
	return &Error{Kind: KindPrecondition, Message: message}
}

// KindOf resolves err to its kind. Unclassified errors are internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var s *kindSentinel
	if errors.As(err, &s) {
		return s.kind
	}
	return KindInternal
}

// MessageOf returns the outermost caller-safe message for err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}

// DetailsOf returns the details attached to the outermost *Error, if any.
func DetailsOf(err error) any {
	var e *Error
	if errors.As(err, &e) {
		return e.Details
	}
	return nil
}

// Status maps a kind to its HTTP status code.
func Status(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindPrecondition:
		return http.StatusConflict
	case KindExtraction:
		return http.StatusUnprocessableEntity
	case KindNormalization, KindGeneration, KindUpstream:
		return http.StatusBadGateway
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
