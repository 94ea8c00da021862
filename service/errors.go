package service

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure so the API layer can map it to a
// status code without string matching.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidInput
	KindInvalidID
	KindNotFound
	KindConflict
	KindDependency
	KindPartialFailure
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the failure kind of err, or KindUnknown for errors that
// did not come from the service.
func KindOf(err error) Kind {
	var serr *Error
	if errors.As(err, &serr) {
		return serr.Kind
	}
	return KindUnknown
}

func errInvalidInput(format string, args ...any) error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func errInvalidID(format string, args ...any) error {
	return &Error{Kind: KindInvalidID, Message: fmt.Sprintf(format, args...)}
}

func errNotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func errConflict(format string, args ...any) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func errDependency(err error, message string) error {
	return &Error{Kind: KindDependency, Message: message, Err: err}
}

func errPartialFailure(err error, message string) error {
	return &Error{Kind: KindPartialFailure, Message: message, Err: err}
}
