package apperrors

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation       Kind = "validation_error"
	KindDuplicateTitle   Kind = "duplicate_title"
	KindNotFound         Kind = "not_found"
	KindInvalidArguments Kind = "invalid_arguments"
	KindStorage          Kind = "storage_error"
)

// Error carries one of the application error kinds through the service
// layers up to the dispatcher, which serializes kind and message for the
// caller. The wrapped cause (if any) is kept for logs.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func DuplicateTitle(title string) *Error {
	return &Error{Kind: KindDuplicateTitle, Message: fmt.Sprintf("a memory titled %q already exists", title)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func InvalidArguments(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidArguments, Message: fmt.Sprintf(format, args...)}
}

func Storage(message string, cause error) *Error {
	return &Error{Kind: KindStorage, Message: message, cause: cause}
}

// KindOf reports the application kind of err, or KindStorage when err is
// not an application error (unclassified failures are storage failures).
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStorage
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
