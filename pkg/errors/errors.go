package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches errors sharing the same code so clones still satisfy errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrNotFound   = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrConflict   = New("CONFLICT", http.StatusConflict, "conflict")
	ErrValidation = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal   = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")

	ErrEmptyLayout          = New("EMPTY_LAYOUT", http.StatusBadRequest, "classroom layout has no desks")
	ErrEmptyRoster          = New("EMPTY_ROSTER", http.StatusBadRequest, "student roster is empty")
	ErrInsufficientSeats    = New("INSUFFICIENT_SEATS", http.StatusBadRequest, "not enough available seats for all students")
	ErrNoArrangement        = New("NO_ARRANGEMENT", http.StatusConflict, "there is no seating arrangement to modify")
	ErrGenerationInProgress = New("GENERATION_IN_PROGRESS", http.StatusConflict, "a seating request is already in progress")
	ErrAIDeclined           = New("AI_DECLINED", http.StatusUnprocessableEntity, "the request could not be satisfied")
	ErrAIInvalidResponse    = New("AI_INVALID_RESPONSE", http.StatusBadGateway, "invalid AI response format")
	ErrAICommunication      = New("AI_COMMUNICATION", http.StatusBadGateway, "communication error with the AI service, please try again")
	ErrAIDisabled           = New("AI_DISABLED", http.StatusServiceUnavailable, "AI seating is disabled")
	ErrStorage              = New("STORAGE_ERROR", http.StatusInternalServerError, "saved classrooms could not be accessed")
	ErrInvalidImport        = New("INVALID_IMPORT", http.StatusBadRequest, "invalid classroom import file")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
