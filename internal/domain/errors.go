package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies business failures so callers and the request layer can
// react without parsing messages.
type ErrorKind int

const (
	// KindValidation marks malformed input: missing fields, non-positive
	// prices, return date before start date.
	KindValidation ErrorKind = iota + 1
	// KindNotFound marks a reference to an absent entity.
	KindNotFound
	// KindConflict marks a state-machine violation: unit not available,
	// loan already delivered, client over eligibility limits.
	KindConflict
)

// Error is a business failure with a stable kind and a human-readable message.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

func ValidationError(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFoundError(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func ConflictError(format string, args ...any) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the error's kind, or 0 for errors outside the taxonomy.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsConflict(err error) bool   { return KindOf(err) == KindConflict }
