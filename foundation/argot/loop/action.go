// File: action.go
// Title: Loop Actions
// Description: Three-way control value returned by loop callbacks
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-08
// Modified: 2025-11-08
//
// Change History:
// - 2025-11-08 v0.1.0: Initial implementation

package loop

import (
	"fmt"

	"github.com/msto63/argot/foundation/argot/maybe"
)

// Tag discriminates an Action
type Tag int

const (
	TagStep Tag = iota
	TagFinish
	TagFail
)

// String returns the tag name
func (t Tag) String() string {
	switch t {
	case TagStep:
		return "step"
	case TagFinish:
		return "finish"
	case TagFail:
		return "fail"
	default:
		return fmt.Sprintf("Tag(%d)", int(t))
	}
}

// Action is Step with an item of type A, Finish with a value of type B or
// Fail with an error of type E. The zero value is Step with the zero A.
type Action[A, B, E any] struct {
	tag   Tag
	item  A
	value B
	err   E
}

// Control is an Action whose Step carries no item
type Control[B, E any] = Action[struct{}, B, E]

// Step continues the loop with item
func Step[A, B, E any](item A) Action[A, B, E] {
	return Action[A, B, E]{tag: TagStep, item: item}
}

// Continue continues the loop without an item
func Continue[B, E any]() Control[B, E] {
	return Control[B, E]{tag: TagStep}
}

// Finish ends the loop successfully with value
func Finish[A, B, E any](value B) Action[A, B, E] {
	return Action[A, B, E]{tag: TagFinish, value: value}
}

// Fail ends the loop, or hands err to an error handler
func Fail[A, B, E any](err E) Action[A, B, E] {
	return Action[A, B, E]{tag: TagFail, err: err}
}

// Tag returns the discriminator
func (a Action[A, B, E]) Tag() Tag { return a.tag }

// Item returns the Step item
func (a Action[A, B, E]) Item() (A, bool) { return a.item, a.tag == TagStep }

// Value returns the Finish value
func (a Action[A, B, E]) Value() (B, bool) { return a.value, a.tag == TagFinish }

// Err returns the Fail error
func (a Action[A, B, E]) Err() (E, bool) { return a.err, a.tag == TagFail }

func (a Action[A, B, E]) String() string {
	switch a.tag {
	case TagStep:
		return fmt.Sprintf("Step(%v)", a.item)
	case TagFinish:
		return fmt.Sprintf("Finish(%v)", a.value)
	default:
		return fmt.Sprintf("Fail(%v)", a.err)
	}
}

// SomeToStep turns Some(v) into Step(v) and None into Fail(err)
func SomeToStep[A, B, E any](o maybe.Option[A], err E) Action[A, B, E] {
	if v, ok := o.Get(); ok {
		return Step[A, B, E](v)
	}
	return Fail[A, B](err)
}

// SomeToFinish turns Some(v) into Finish(v) and None into Fail(err)
func SomeToFinish[A, B, E any](o maybe.Option[B], err E) Action[A, B, E] {
	if v, ok := o.Get(); ok {
		return Finish[A, B, E](v)
	}
	return Fail[A, B](err)
}

// OkToStep turns Ok(v) into Step(v) and Err(e) into Fail(e)
func OkToStep[A, B, E any](r maybe.Result[A, E]) Action[A, B, E] {
	if v, ok := r.Get(); ok {
		return Step[A, B, E](v)
	}
	e, _ := r.Error()
	return Fail[A, B](e)
}

// OkToFinish turns Ok(v) into Finish(v) and Err(e) into Fail(e)
func OkToFinish[A, B, E any](r maybe.Result[B, E]) Action[A, B, E] {
	if v, ok := r.Get(); ok {
		return Finish[A, B, E](v)
	}
	e, _ := r.Error()
	return Fail[A, B](e)
}
