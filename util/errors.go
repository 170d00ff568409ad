package util

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies every failure surfaced to API callers.
type Kind string

const (
	MissingField      Kind = "MissingField"
	InvalidFormat     Kind = "InvalidFormat"
	OutOfRange        Kind = "OutOfRange"
	InvalidIdentifier Kind = "InvalidIdentifier"
	ReferenceNotFound Kind = "ReferenceNotFound"
	NotFound          Kind = "NotFound"
	StoreUnavailable  Kind = "StoreUnavailable"
)

var (
	ErrInvalidIdentifier = &AppError{Kind: InvalidIdentifier, Message: INVALID_ID}
	ErrReferenceNotFound = &AppError{Kind: ReferenceNotFound, Message: INVALID_PATIENT_ID}
	ErrNotFound          = &AppError{Kind: NotFound, Message: DOCUMENT_NOT_FOUND}
	ErrStoreUnavailable  = &AppError{Kind: StoreUnavailable, Message: STORE_UNAVAILABLE}
)

// AppError is a non-validation failure. Two AppErrors match under errors.Is
// when their kinds are equal, so callers can test against the sentinels above.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Kind == e.Kind
}

// NewError builds an AppError of the given kind with a custom message.
func NewError(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// WrapError attaches a cause to an AppError of the given kind.
func WrapError(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

// Violation is one field-level validation failure.
type Violation struct {
	Field   string `json:"field"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// ValidationError enumerates every violated field of one input document.
type ValidationError struct {
	Violations []Violation `json:"violations"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s (%s)", v.Field, v.Message, v.Kind))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records a violation.
func (e *ValidationError) Add(field string, kind Kind, message string) {
	e.Violations = append(e.Violations, Violation{Field: field, Kind: kind, Message: message})
}

// Has reports whether a violation of kind was recorded for field.
func (e *ValidationError) Has(field string, kind Kind) bool {
	for _, v := range e.Violations {
		if v.Field == field && v.Kind == kind {
			return true
		}
	}
	return false
}

// OrNil returns nil when nothing was recorded, so callers can return it directly.
func (e *ValidationError) OrNil() error {
	if len(e.Violations) == 0 {
		return nil
	}
	return e
}

// KindOf reports the Kind carried by err, or "" for unclassified errors.
// A ValidationError reports the kind of its first violation.
func KindOf(err error) Kind {
	var verr *ValidationError
	if errors.As(err, &verr) && len(verr.Violations) > 0 {
		return verr.Violations[0].Kind
	}
	var aerr *AppError
	if errors.As(err, &aerr) {
		return aerr.Kind
	}
	return ""
}
