// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package handler implements typed widget operations that touch live UI state.
//
// Every operation runs as a single work item on the UI thread. Preconditions
// (liveness, capability flags, item existence, index range) are validated
// inside that work item before anything is mutated, so a failed operation
// leaves the widget untouched.
//
// Handlers hold no widget state. Construct them once with New and share them.
package handler

import (
	"context"

	"reddeer/display"
	"reddeer/event"
	"reddeer/widget"
)

// Handlers bundles the handlers for every supported widget type.
type Handlers struct {
	Widget *WidgetHandler
	List   *ListHandler
	Button *ButtonHandler
	Shell  *ShellHandler
	Tree   *TreeHandler
}

// New returns handlers dispatching through the display of syn.
func New(syn *event.Synthesizer) *Handlers {
	return &Handlers{
		Widget: NewWidgetHandler(syn),
		List:   NewListHandler(syn),
		Button: NewButtonHandler(syn),
		Shell:  NewShellHandler(syn),
		Tree:   NewTreeHandler(syn),
	}
}

// base is embedded by every handler.
type base struct {
	d   *display.Display
	syn *event.Synthesizer
}

func newBase(syn *event.Synthesizer) base {
	return base{d: syn.Display(), syn: syn}
}

// checkLive returns a *widget.StaleWidgetError if w is disposed. It must be
// called on the UI thread.
func checkLive(w widget.Widget, op string) error {
	if w.IsDisposed() {
		return widget.NewStaleWidgetError(w, op)
	}
	return nil
}

// read runs f on the UI thread after checking that w is alive.
func read[W widget.Widget, T any](ctx context.Context, d *display.Display, w W, op string, f func(w W) T) (T, error) {
	return display.SyncExecResult(ctx, d, func(ctx context.Context) (T, error) {
		if err := checkLive(w, op); err != nil {
			var zero T
			return zero, err
		}
		return f(w), nil
	})
}
