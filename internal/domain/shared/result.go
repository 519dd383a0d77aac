package shared

import (
	"context"
	"errors"
)

// ErrorKind tells a caller whether a failed call is worth repeating
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindRetryable
	KindFatal
)

// String returns the kind's name
func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindRetryable:
		return "retryable"
	case KindFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

type retryableError struct {
	err error
}

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// MarkRetryable wraps err so that Classify reports it as retryable
func MarkRetryable(err error) error {
	if err == nil {
		return nil
	}
	return &retryableError{err: err}
}

// Classify decides the kind of an error.
// Timeouts, explicit retryable marks, ErrUnavailable and errors exposing
// Timeout() or Temporary() returning true are retryable; everything else is fatal.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var re *retryableError
	if errors.As(err, &re) {
		return KindRetryable
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrUnavailable) {
		return KindRetryable
	}
	var timeout interface{ Timeout() bool }
	if errors.As(err, &timeout) && timeout.Timeout() {
		return KindRetryable
	}
	var temporary interface{ Temporary() bool }
	if errors.As(err, &temporary) && temporary.Temporary() {
		return KindRetryable
	}
	return KindFatal
}

// Result carries either a value or a classified error
type Result[T any] struct {
	value T
	err   error
	kind  ErrorKind
}

// Ok wraps a successful value
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Err wraps a failure, classifying it with Classify
func Err[T any](err error) Result[T] {
	if err == nil {
		err = errors.New("nil error passed to Err")
	}
	return Result[T]{err: err, kind: Classify(err)}
}

// Fatal wraps a failure that must not be retried regardless of its type
func Fatal[T any](err error) Result[T] {
	r := Err[T](err)
	r.kind = KindFatal
	return r
}

// IsOk reports whether the result holds a value
func (r Result[T]) IsOk() bool {
	return r.err == nil
}

// Value returns the value, or the zero value on failure
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the failure, if any
func (r Result[T]) Err() error {
	return r.err
}

// Kind returns the failure classification
func (r Result[T]) Kind() ErrorKind {
	return r.kind
}

// Retryable reports whether the failure is transient
func (r Result[T]) Retryable() bool {
	return r.kind == KindRetryable
}

// Unwrap converts the result back to Go's value, error pair
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.err
}
