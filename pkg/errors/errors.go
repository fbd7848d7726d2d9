// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors

import (
	"errors"
	"fmt"
)

// Error is a status-coded error.
type Error struct {
	Code    Status
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Code.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// Is returns true if the target is a Status and matches the error's code, or
// if the target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	switch t := target.(type) {
	case Status:
		return e.Code == t
	case *Error:
		return e.Code == t.Code
	default:
		return false
	}
}

// With constructs an error from a set of values.
func (s Status) With(v ...interface{}) *Error {
	return &Error{Code: s, Message: fmt.Sprint(v...)}
}

// WithFormat constructs an error from a format string.
func (s Status) WithFormat(format string, args ...interface{}) *Error {
	e := &Error{Code: s, Message: fmt.Sprintf(format, args...)}
	for _, arg := range args {
		if err, ok := arg.(error); ok {
			e.Cause = err
		}
	}
	return e
}

// Wrap wraps the given error with the status. Wrap returns nil if the error
// is nil. If the error already carries a known code and the status does not
// add one, the error is returned unchanged.
func (s Status) Wrap(err error) error {
	if err == nil {
		// The return type must be `error`, otherwise this return statement
		// can cause strange errors
		return nil
	}

	if !s.IsKnownError() {
		if _, ok := err.(*Error); ok {
			return err
		}
	}

	return &Error{Code: s, Cause: err}
}

// IsKnownError returns true if the status is non-zero and not UnknownError.
func (s Status) IsKnownError() bool { return s != 0 && s != UnknownError }

// Code returns the status code of the error, or UnknownError if the error
// does not carry one. Code returns OK for nil.
func Code(err error) Status {
	if err == nil {
		return OK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var s Status
	if errors.As(err, &s) {
		return s
	}
	return UnknownError
}

// Is calls [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// As calls [errors.As].
func As(err error, target interface{}) bool { return errors.As(err, target) }
