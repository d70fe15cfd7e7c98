package model

import (
	"errors"
	"fmt"
)

// Error kinds, one per entity. Match them with errors.Is.
var (
	ErrRoom     = errors.New("room")
	ErrTimeslot = errors.New("timeslot")
	ErrShift    = errors.New("shift")
	ErrCourse   = errors.New("course")
	ErrStudent  = errors.New("student")
)

// Error is an invariant violation detected while building or mutating an entity.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Kind.Error()
	if e.Msg != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes both the entity kind and the wrapped cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func errorf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func wrapf(kind error, cause error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: cause}
}
