// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package widget

import (
	"fmt"

	"reddeer/errors/stack"
)

// StaleWidgetError is returned when the target widget has been disposed.
type StaleWidgetError struct {
	Kind string
	Op   string
	stk  stack.Stack
}

// NewStaleWidgetError returns an error reporting that w was disposed
// before op could act on it.
func NewStaleWidgetError(w Widget, op string) *StaleWidgetError {
	return &StaleWidgetError{Kind: kindOf(w), Op: op, stk: stack.New(1)}
}

func (e *StaleWidgetError) Error() string {
	return fmt.Sprintf("%s: %s widget is disposed", e.Op, e.Kind)
}

// Format prints the creation stack for the "%+v" verb.
func (e *StaleWidgetError) Format(s fmt.State, verb rune) {
	formatWithStack(s, verb, e.Error(), e.stk)
}

// UnsupportedCapabilityError is returned when an operation requires a
// capability flag the widget lacks.
type UnsupportedCapabilityError struct {
	Kind     string
	Required Style
	Actual   Style
	stk      stack.Stack
}

// NewUnsupportedCapabilityError returns an error reporting that w lacks required.
func NewUnsupportedCapabilityError(w Widget, required Style) *UnsupportedCapabilityError {
	return &UnsupportedCapabilityError{Kind: kindOf(w), Required: required, Actual: w.Style(), stk: stack.New(1)}
}

func (e *UnsupportedCapabilityError) Error() string {
	if e.Required == StyleMulti {
		return fmt.Sprintf("%s does not support multi selection - it does not have %v style", e.Kind, e.Required)
	}
	return fmt.Sprintf("%s does not have %v style (style is %v)", e.Kind, e.Required, e.Actual)
}

// Format prints the creation stack for the "%+v" verb.
func (e *UnsupportedCapabilityError) Format(s fmt.State, verb rune) {
	formatWithStack(s, verb, e.Error(), e.stk)
}

// ItemNotFoundError is returned when a requested item text is absent.
type ItemNotFoundError struct {
	Kind string
	Item string
	stk  stack.Stack
}

// NewItemNotFoundError returns an error reporting that item is not in w.
func NewItemNotFoundError(w Widget, item string) *ItemNotFoundError {
	return &ItemNotFoundError{Kind: kindOf(w), Item: item, stk: stack.New(1)}
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("unable to select item %q of %s because it does not exist", e.Item, e.Kind)
}

// Format prints the creation stack for the "%+v" verb.
func (e *ItemNotFoundError) Format(s fmt.State, verb rune) {
	formatWithStack(s, verb, e.Error(), e.stk)
}

// IndexOutOfRangeError is returned when a requested index does not exist.
type IndexOutOfRangeError struct {
	Kind  string
	Index int
	Count int
	stk   stack.Stack
}

// NewIndexOutOfRangeError returns an error reporting that index is not
// within [0, count) of w.
func NewIndexOutOfRangeError(w Widget, index, count int) *IndexOutOfRangeError {
	return &IndexOutOfRangeError{Kind: kindOf(w), Index: index, Count: count, stk: stack.New(1)}
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("unable to select item with index %d of %s because it does not exist (%d items)", e.Index, e.Kind, e.Count)
}

// Format prints the creation stack for the "%+v" verb.
func (e *IndexOutOfRangeError) Format(s fmt.State, verb rune) {
	formatWithStack(s, verb, e.Error(), e.stk)
}

func kindOf(w Widget) string {
	if w == nil {
		return "<nil>"
	}
	return w.Kind()
}

func formatWithStack(s fmt.State, verb rune, msg string, stk stack.Stack) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s\n%v", msg, stk)
		return
	}
	fmt.Fprint(s, msg)
}
