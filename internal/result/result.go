// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package result

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotSet is returned by Result.Err for the zero Result, which holds neither a value nor an
// error.
var ErrNotSet = errors.New("result holds neither a value nor an error")

// Result represents the outcome of an operation: either a value of type T or an error.
type Result[T any] struct {
	value T
	err   error
	isset bool
}

// Ok returns a successful Result holding value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value, isset: true}
}

// Fail returns a failed Result holding err. A nil err is replaced by ErrNotSet so that a failed
// Result never reports success.
func Fail[T any](err error) Result[T] {
	if err == nil {
		err = ErrNotSet
	}
	return Result[T]{err: err, isset: true}
}

// IsOk returns true if the Result holds a value.
func (r Result[T]) IsOk() bool {
	return r.isset && r.err == nil
}

// Value returns the value of a successful Result or the zero value of T.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the error of a failed Result, nil for a successful one.
func (r Result[T]) Err() error {
	if !r.isset {
		return ErrNotSet
	}
	return r.err
}

// Unwrap returns the value and error of the Result.
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.Err()
}

// String returns a string representation of the Result.
func (r Result[T]) String() string {
	if !r.IsOk() {
		return fmt.Sprintf("failure: %s", r.Err())
	}
	return fmt.Sprintf("success: %v", r.value)
}

// Then runs fn with the value of r if r is a success. A failed r is passed on without calling fn.
// fn is also skipped if ctx is already done.
func Then[T, U any](ctx context.Context, r Result[T], fn func(context.Context, T) Result[U]) Result[U] {
	if !r.IsOk() {
		return Fail[U](r.Err())
	}
	if err := ctx.Err(); err != nil {
		return Fail[U](err)
	}
	return fn(ctx, r.value)
}
