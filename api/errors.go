// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error taxonomy for the hioload-buf library.
//
// Every failure kind is a distinct sentinel so callers can pattern-match
// with errors.Is and react differently: retry/backoff on pool overflow or
// timeout, hard failure on out-of-memory, range violation, or malformed
// wire data. The core never logs and never retries on its own.

package api

import "fmt"

// Sentinel errors for the failure kinds raised by this library.
var (
	// ErrOutOfMemory signals that a raw allocation could not be satisfied.
	ErrOutOfMemory = fmt.Errorf("out of memory")

	// ErrPoolOverflow signals a non-blocking acquire on an exhausted pool.
	// This is a backpressure signal, not a fault.
	ErrPoolOverflow = fmt.Errorf("buffer pool exhausted")

	// ErrTimeout signals a blocking acquire that waited out its deadline.
	ErrTimeout = fmt.Errorf("acquire timeout")

	// ErrRangeViolation signals a sub-range request outside a view's bounds.
	ErrRangeViolation = fmt.Errorf("range violation")

	// ErrDataFormat signals inconsistent or truncated wire data during decode.
	ErrDataFormat = fmt.Errorf("data format error")

	// ErrPoolClosed signals an acquire against a pool that has been closed.
	ErrPoolClosed = fmt.Errorf("buffer pool is closed")
)

// ErrorCode identifies a failure kind numerically for introspection surfaces.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeOutOfMemory
	ErrCodePoolOverflow
	ErrCodeTimeout
	ErrCodeRangeViolation
	ErrCodeDataFormat
	ErrCodePoolClosed
)

// sentinel maps a code back to its sentinel error.
func (c ErrorCode) sentinel() error {
	switch c {
	case ErrCodeOutOfMemory:
		return ErrOutOfMemory
	case ErrCodePoolOverflow:
		return ErrPoolOverflow
	case ErrCodeTimeout:
		return ErrTimeout
	case ErrCodeRangeViolation:
		return ErrRangeViolation
	case ErrCodeDataFormat:
		return ErrDataFormat
	case ErrCodePoolClosed:
		return ErrPoolClosed
	default:
		return nil
	}
}

// Error is a structured error carrying a failure code and optional context.
// It unwraps to the matching sentinel, so errors.Is(err, api.ErrTimeout)
// works on structured errors too.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// Unwrap exposes the sentinel for errors.Is matching.
func (e *Error) Unwrap() error {
	return e.Code.sentinel()
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
