// File: maybe_test.go
// Title: Option and Result Tests
// Description: Tests for constructors, accessors and conversions
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-07
// Modified: 2025-11-07
//
// Change History:
// - 2025-11-07 v0.1.0: Initial implementation

package maybe

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOption(t *testing.T) {
	var zero Option[int]
	assert.True(t, zero.IsNone())
	assert.Equal(t, "None", zero.String())
	assert.Equal(t, 7, zero.OrElse(7))

	s := Some(3)
	v, ok := s.Get()
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	assert.True(t, s.IsSome())
	assert.Equal(t, "Some(3)", s.String())
	assert.Equal(t, 3, s.OrElse(7))

	n := 5
	assert.Equal(t, Some(5), FromPtr(&n))
	assert.Equal(t, None[int](), FromPtr[int](nil))
	assert.Equal(t, Some("x"), Of("x", true))
	assert.Equal(t, None[string](), Of("x", false))

	assert.Equal(t, Some("3"), Map(Some(3), strconv.Itoa))
	assert.Equal(t, None[string](), Map(None[int](), strconv.Itoa))
}

func TestOrOption(t *testing.T) {
	assert.Equal(t, Some(2), OrOption(None[int](), Some(2), Some(3)))
	assert.Equal(t, None[int](), OrOption(None[int](), None[int]()))
	assert.Equal(t, None[int](), OrOption[int]())
}

func TestResult(t *testing.T) {
	ok := Ok[int, string](1)
	assert.True(t, ok.IsOk())
	assert.False(t, ok.IsErr())
	v, isOk := ok.Get()
	assert.True(t, isOk)
	assert.Equal(t, 1, v)
	_, isErr := ok.Error()
	assert.False(t, isErr)
	assert.Equal(t, "Ok(1)", ok.String())

	bad := Err[int]("boom")
	assert.True(t, bad.IsErr())
	e, isErr := bad.Error()
	assert.True(t, isErr)
	assert.Equal(t, "boom", e)
	assert.Equal(t, "Err(boom)", bad.String())
}

func TestOrResult(t *testing.T) {
	a := Err[int]("a")
	b := Err[int]("b")
	good := Ok[int, string](9)

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"all with ok", OrResultAll(a, good, b), Ok[int, []string](9)},
		{"all failing", OrResultAll(a, b), Err[int]([]string{"a", "b"})},
		{"all empty", OrResultAll[int, string](), Err[int]([]string{})},
		{"first with ok", OrResultFirst(a, good), good},
		{"first failing", OrResultFirst(a, b), a},
		{"last with ok", OrResultLast(a, good, b), good},
		{"last failing", OrResultLast(a, b), b},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}

	assert.Panics(t, func() { OrResultFirst[int, string]() })
	assert.Panics(t, func() { OrResultLast[int, string]() })
}

func TestConversions(t *testing.T) {
	assert.Equal(t, Ok[int, string](1), SomeToOk(Some(1), "missing"))
	assert.Equal(t, Err[int]("missing"), SomeToOk(None[int](), "missing"))
	assert.Equal(t, Some(1), OkToSome(Ok[int, string](1)))
	assert.Equal(t, None[int](), OkToSome(Err[int]("x")))
	assert.Equal(t, Some("x"), ErrToSome(Err[int]("x")))
	assert.Equal(t, None[string](), ErrToSome(Ok[int, string](1)))

	boom := errors.New("boom")
	assert.True(t, FromError(0, boom).IsErr())
	assert.Equal(t, Ok[int, error](4), FromError(4, nil))
}
