// File: result.go
// Title: Result
// Description: Success-or-failure value and conversions to and from Option
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-07
// Modified: 2025-11-07
//
// Change History:
// - 2025-11-07 v0.1.0: Initial implementation

package maybe

import "fmt"

// Result holds either a success value (Ok) or a failure value (Err).
// The zero value is Ok with the zero T.
type Result[T, E any] struct {
	value T
	err   E
	isErr bool
}

// Ok wraps a success value
func Ok[T, E any](v T) Result[T, E] {
	return Result[T, E]{value: v}
}

// Err wraps a failure value
func Err[T, E any](e E) Result[T, E] {
	return Result[T, E]{err: e, isErr: true}
}

// Get returns the success value and whether the result is Ok
func (r Result[T, E]) Get() (T, bool) {
	return r.value, !r.isErr
}

// Error returns the failure value and whether the result is Err.
// Result does not implement the error interface.
func (r Result[T, E]) Error() (E, bool) {
	return r.err, r.isErr
}

// IsOk reports success
func (r Result[T, E]) IsOk() bool { return !r.isErr }

// IsErr reports failure
func (r Result[T, E]) IsErr() bool { return r.isErr }

// String renders Ok(v) or Err(e)
func (r Result[T, E]) String() string {
	if r.isErr {
		return fmt.Sprintf("Err(%v)", r.err)
	}
	return fmt.Sprintf("Ok(%v)", r.value)
}

// OrResultAll returns the first Ok, or Err with every failure in order
// when all are Err. No results gives Err with an empty slice.
func OrResultAll[T, E any](results ...Result[T, E]) Result[T, []E] {
	errs := make([]E, 0, len(results))
	for _, r := range results {
		if !r.isErr {
			return Ok[T, []E](r.value)
		}
		errs = append(errs, r.err)
	}
	return Err[T](errs)
}

// OrResultFirst returns the first Ok, or the first Err when all fail.
// It panics when called without results.
func OrResultFirst[T, E any](results ...Result[T, E]) Result[T, E] {
	if len(results) == 0 {
		panic("maybe: OrResultFirst called without results")
	}
	for _, r := range results {
		if !r.isErr {
			return r
		}
	}
	return results[0]
}

// OrResultLast returns the first Ok, or the last Err when all fail.
// It panics when called without results.
func OrResultLast[T, E any](results ...Result[T, E]) Result[T, E] {
	if len(results) == 0 {
		panic("maybe: OrResultLast called without results")
	}
	for _, r := range results {
		if !r.isErr {
			return r
		}
	}
	return results[len(results)-1]
}

// SomeToOk converts Some(v) to Ok(v) and None to Err(e)
func SomeToOk[T, E any](o Option[T], e E) Result[T, E] {
	if v, ok := o.Get(); ok {
		return Ok[T, E](v)
	}
	return Err[T](e)
}

// OkToSome converts Ok(v) to Some(v) and any Err to None
func OkToSome[T, E any](r Result[T, E]) Option[T] {
	if v, ok := r.Get(); ok {
		return Some(v)
	}
	return None[T]()
}

// ErrToSome converts Err(e) to Some(e) and any Ok to None
func ErrToSome[T, E any](r Result[T, E]) Option[E] {
	if e, ok := r.Error(); ok {
		return Some(e)
	}
	return None[E]()
}

// FromError converts a (value, error) pair into a Result
func FromError[T any](v T, err error) Result[T, error] {
	if err != nil {
		return Err[T](err)
	}
	return Ok[T, error](v)
}
