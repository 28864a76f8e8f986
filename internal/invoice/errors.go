package invoice

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("invoice not found")

// Kind classifies why an invoice operation failed so callers can branch without parsing messages.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindStore
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindStore:
		return "store"
	case KindNotFound:
		return "not_found"
	}

	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is returned by every Service operation. Message is safe to show to the user; Err keeps the cause.
type Error struct {
	Kind    Kind
	Message string
	Fields  FieldErrors
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of err, or zero when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return 0
}

func storeError(message string, err error) *Error {
	return &Error{Kind: KindStore, Message: message, Err: err}
}
