package fusion

import (
	"errors"
	"fmt"
)

// ErrStoreUnavailable matches every StoreError via errors.Is.
var ErrStoreUnavailable = errors.New("store unavailable")

// StoreError describes a failed collaborator call.
type StoreError struct {
	Store string
	Op    string
	Key   string
	Err   error
}

func (e *StoreError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %s %q: %v", e.Store, e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Store, e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is reports ErrStoreUnavailable for any store error.
func (e *StoreError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

func (e *StoreError) degradation() Degradation {
	msg := ""
	if e.Err != nil {
		msg = e.Err.Error()
	}
	return Degradation{Store: e.Store, Op: e.Op, Key: e.Key, Error: msg}
}

// Result is the outcome of one collaborator call: a value or a StoreError.
type Result[T any] struct {
	Value T
	Err   *StoreError
}

// OK reports whether the call succeeded.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// OrEmpty returns the value, or the zero value when the call failed.
func (r Result[T]) OrEmpty() T {
	if r.Err != nil {
		var zero T
		return zero
	}
	return r.Value
}

// attempt runs fn and converts any error or panic into a StoreError.
func attempt[T any](store, op, key string, fn func() (T, error)) (res Result[T]) {
	defer func() {
		if p := recover(); p != nil {
			res = Result[T]{Err: &StoreError{Store: store, Op: op, Key: key, Err: fmt.Errorf("panic: %v", p)}}
		}
	}()

	v, err := fn()
	if err != nil {
		return Result[T]{Err: &StoreError{Store: store, Op: op, Key: key, Err: err}}
	}
	return Result[T]{Value: v}
}
