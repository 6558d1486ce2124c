// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package so that storage and
// internal failures never leak driver messages to callers.
package apierror

import (
	"errors"
	"net/http"

	"github.com/alimarchal/maharat-sub001/internal/query"

	"gorm.io/gorm"
)

// Kind classifies a failure by how a client should react to it.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindInvalidQuery
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindInvalidQuery:
		return "invalid_query"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindStorage:
		return "storage"
	default:
		return "internal"
	}
}

// Status is the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindInvalidQuery:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Opaque reports whether the kind must hide its cause from the client.
func (k Kind) Opaque() bool { return k == KindInternal || k == KindStorage }

// Error is a classified error raised by services.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(msg string) *Error   { return &Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) *Error   { return &Error{Kind: KindConflict, Message: msg} }
func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }
func Forbidden(msg string) *Error  { return &Error{Kind: KindForbidden, Message: msg} }

func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }

// Storage wraps a persistence failure that is not otherwise classified.
func Storage(msg string, err error) *Error {
	return &Error{Kind: KindStorage, Message: msg, Err: err}
}

// Classify resolves the kind of an arbitrary error returned by a service.
func Classify(err error) Kind {
	var e *Error
	switch {
	case errors.As(err, &e):
		return e.Kind
	case errors.Is(err, query.ErrInvalidQueryParameter):
		return KindInvalidQuery
	case errors.Is(err, gorm.ErrRecordNotFound):
		return KindNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return KindConflict
	default:
		return KindInternal
	}
}

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Message: msg}
}

// ValidationError wraps field-keyed validation failures.
type ValidationError struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Message: "Validation failed", Errors: fields}
}

// Body builds the response body for err. Opaque kinds get a fixed message.
func Body(err error) (int, *APIError) {
	kind := Classify(err)
	if kind.Opaque() {
		return kind.Status(), New("Internal server error")
	}

	var e *Error
	if errors.As(err, &e) {
		body := New(e.Message)
		if e.Err != nil {
			body.Error = e.Err.Error()
		}
		return kind.Status(), body
	}

	switch kind {
	case KindNotFound:
		return kind.Status(), New("Record not found")
	case KindConflict:
		return kind.Status(), &APIError{Message: "Conflicting record", Error: err.Error()}
	default:
		return kind.Status(), &APIError{Message: "Invalid query parameter", Error: err.Error()}
	}
}
