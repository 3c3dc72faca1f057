// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package lookup locates live widgets by type and matcher predicates.
//
// Searches walk the widget tree depth-first on the UI thread within a single
// work item. Widgets are returned in tree order.
package lookup

import (
	"context"
	"fmt"
	"reflect"

	"reddeer/display"
	"reddeer/errors/stack"
	"reddeer/widget"
)

// NotFoundError is returned when no widget matches a lookup.
type NotFoundError struct {
	Type     string
	Matchers string
	Index    int
	stk      stack.Stack
}

func (e *NotFoundError) Error() string {
	if e.Index > 0 {
		return fmt.Sprintf("no %s matching [%s] at index %d", e.Type, e.Matchers, e.Index)
	}
	return fmt.Sprintf("no %s matching [%s]", e.Type, e.Matchers)
}

// Format prints the creation stack for the "%+v" verb.
func (e *NotFoundError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s\n%v", e.Error(), e.stk)
		return
	}
	fmt.Fprint(s, e.Error())
}

// Find returns the first widget of type T under root matching all ms.
func Find[T widget.Widget](ctx context.Context, d *display.Display, root widget.Composite, ms ...Matcher) (T, error) {
	return FindIndex[T](ctx, d, root, 0, ms...)
}

// FindIndex returns the index-th widget of type T under root matching all ms.
// Disposed widgets count towards index; if the selected one is disposed a
// *widget.StaleWidgetError is returned.
func FindIndex[T widget.Widget](ctx context.Context, d *display.Display, root widget.Composite, index int, ms ...Matcher) (T, error) {
	return display.SyncExecResult(ctx, d, func(ctx context.Context) (T, error) {
		var zero T
		if root.IsDisposed() {
			return zero, widget.NewStaleWidgetError(root, "lookup")
		}
		n := 0
		var found T
		ok := false
		walk(root, func(c widget.Control) bool {
			w, isT := c.(T)
			if !isT || !matchAll(w, ms) {
				return true
			}
			if n == index {
				found, ok = w, true
				return false
			}
			n++
			return true
		})
		if !ok {
			return zero, &NotFoundError{Type: typeName[T](), Matchers: describe(ms), Index: index, stk: stack.New(1)}
		}
		if found.IsDisposed() {
			return zero, widget.NewStaleWidgetError(found, "lookup")
		}
		return found, nil
	})
}

// FindAll returns all live widgets of type T under root matching all ms. It
// returns an empty slice if there is none.
func FindAll[T widget.Widget](ctx context.Context, d *display.Display, root widget.Composite, ms ...Matcher) ([]T, error) {
	return display.SyncExecResult(ctx, d, func(ctx context.Context) ([]T, error) {
		if root.IsDisposed() {
			return nil, widget.NewStaleWidgetError(root, "lookup")
		}
		out := []T{}
		walk(root, func(c widget.Control) bool {
			if w, ok := c.(T); ok && !w.IsDisposed() && matchAll(w, ms) {
				out = append(out, w)
			}
			return true
		})
		return out, nil
	})
}

// FindShell returns the first live shell of desktop matching all ms.
func FindShell(ctx context.Context, d *display.Display, desktop widget.Desktop, ms ...Matcher) (widget.Shell, error) {
	return display.SyncExecResult(ctx, d, func(ctx context.Context) (widget.Shell, error) {
		for _, s := range desktop.Shells() {
			if !s.IsDisposed() && matchAll(s, ms) {
				return s, nil
			}
		}
		return nil, &NotFoundError{Type: "Shell", Matchers: describe(ms), stk: stack.New(1)}
	})
}

// walk visits the descendants of root in depth-first pre-order until f
// returns false.
func walk(root widget.Composite, f func(c widget.Control) bool) bool {
	for _, c := range root.Children() {
		if !f(c) {
			return false
		}
		if comp, ok := c.(widget.Composite); ok {
			if !walk(comp, f) {
				return false
			}
		}
	}
	return true
}

func typeName[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
