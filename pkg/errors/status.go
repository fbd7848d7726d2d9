// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors

// Status is a coarse error classification modeled on HTTP status codes.
type Status uint64

const (
	// OK means the request completed.
	OK Status = 200

	// BadRequest means the request was invalid.
	BadRequest Status = 400

	// Unauthorized means the signer is not authorized for the request.
	Unauthorized Status = 401

	// NotAllowed means the requested action is forbidden by the record's
	// state.
	NotAllowed Status = 403

	// NotFound means a record could not be found.
	NotFound Status = 404

	// Conflict means the request conflicts with an existing record.
	Conflict Status = 409

	// InsufficientBalance means the balance is less than the debit.
	InsufficientBalance Status = 412

	// OutOfRange means a counter would exceed its bound.
	OutOfRange Status = 416

	// NotActivated means the required feature is not enabled.
	NotActivated Status = 423

	// Aborted means a post-condition check failed.
	Aborted Status = 424

	// UnknownError means the error is unknown.
	UnknownError Status = 500

	// EncodingError means encoding or decoding failed.
	EncodingError Status = 501

	// InternalError means an internal invariant was violated.
	InternalError Status = 502
)

// Success returns true if the status represents success.
func (s Status) Success() bool { return s < 300 }

// IsClientError returns true if the status is a client error.
func (s Status) IsClientError() bool { return s >= 400 && s < 500 }

// IsServerError returns true if the status is a server error.
func (s Status) IsServerError() bool { return s >= 500 }

// Error implements error.
func (s Status) Error() string { return s.String() }

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case BadRequest:
		return "bad request"
	case Unauthorized:
		return "unauthorized"
	case NotAllowed:
		return "not allowed"
	case NotFound:
		return "not found"
	case Conflict:
		return "conflict"
	case InsufficientBalance:
		return "insufficient balance"
	case OutOfRange:
		return "out of range"
	case NotActivated:
		return "not activated"
	case Aborted:
		return "aborted"
	case EncodingError:
		return "encoding error"
	case InternalError:
		return "internal error"
	default:
		return "unknown error"
	}
}
