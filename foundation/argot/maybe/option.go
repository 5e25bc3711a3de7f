// File: option.go
// Title: Option
// Description: Optional value
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-07
// Modified: 2025-11-07
//
// Change History:
// - 2025-11-07 v0.1.0: Initial implementation

package maybe

import "fmt"

// Option holds either a value (Some) or nothing (None). The zero value is None.
type Option[T any] struct {
	value T
	ok    bool
}

// Some wraps v
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None returns the empty option
func None[T any]() Option[T] {
	return Option[T]{}
}

// FromPtr returns None for nil and Some(*p) otherwise
func FromPtr[T any](p *T) Option[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// Of returns Some(v) when ok is set, None otherwise. It adapts the
// (value, ok) idiom.
func Of[T any](v T, ok bool) Option[T] {
	if !ok {
		return None[T]()
	}
	return Some(v)
}

// Get returns the value and whether it is present
func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

// IsSome reports whether a value is present
func (o Option[T]) IsSome() bool { return o.ok }

// IsNone reports whether the option is empty
func (o Option[T]) IsNone() bool { return !o.ok }

// OrElse returns the value or fallback
func (o Option[T]) OrElse(fallback T) T {
	if o.ok {
		return o.value
	}
	return fallback
}

// String renders Some(v) or None
func (o Option[T]) String() string {
	if o.ok {
		return fmt.Sprintf("Some(%v)", o.value)
	}
	return "None"
}

// Map applies f to a present value
func Map[T, U any](o Option[T], f func(T) U) Option[U] {
	if v, ok := o.Get(); ok {
		return Some(f(v))
	}
	return None[U]()
}

// OrOption returns the first Some among opts, or None
func OrOption[T any](opts ...Option[T]) Option[T] {
	for _, o := range opts {
		if o.ok {
			return o
		}
	}
	return None[T]()
}
