package usecase

import (
	"errors"
	"fmt"
)

// ErrorKind classifies service failures so the HTTP layer can map them to
// status codes without string matching.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotFound
	KindInvalidState
	KindValidation
	KindSpaceUnavailable
	KindPersistence
)

type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a service error, or KindUnknown for anything
// that did not originate from this package.
func KindOf(err error) ErrorKind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindUnknown
}

func NotFoundError(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func InvalidStateError(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

func ValidationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func SpaceUnavailableError(format string, args ...any) *Error {
	return &Error{Kind: KindSpaceUnavailable, Message: fmt.Sprintf(format, args...)}
}

func PersistenceError(err error, format string, args ...any) *Error {
	return &Error{Kind: KindPersistence, Message: fmt.Sprintf(format, args...), Err: err}
}

// asServiceError passes through typed errors and wraps everything else as a
// persistence failure, so a raw store error never crosses the service
// boundary untagged.
func asServiceError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if KindOf(err) != KindUnknown {
		return err
	}
	return PersistenceError(err, format, args...)
}
