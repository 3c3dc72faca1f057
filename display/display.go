// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package display marshals work onto the UI thread.
//
// Native widget state may only be touched by the single goroutine running the
// toolkit's event loop. Test code running on any other goroutine submits work
// items through a Display, which executes them on the UI thread and blocks the
// caller until they complete:
//
//	items, err := display.SyncExecResult(ctx, d, func(ctx context.Context) ([]string, error) {
//		return list.Items(), nil
//	})
//
// A work item receives a context marked as belonging to the UI thread. Nested
// Display calls made with that context run inline instead of being queued,
// which is what keeps a work item from deadlocking on itself. Code running on
// the UI thread must therefore pass along the context it was given.
package display

import (
	"context"

	"reddeer/errors"
	"reddeer/internal/logging"
)

// Executor is the run-queue of a native UI event loop.
type Executor interface {
	// Post schedules f to run on the UI thread. Post must not wait for f to
	// run. Every successfully posted function must eventually run exactly
	// once, unless the Executor implements Stopper and stops first.
	Post(f func()) error
}

// Stopper is implemented by an Executor that may stop without running every
// posted function.
type Stopper interface {
	// Stopped returns a channel closed once no posted function will run any
	// more. Functions that ran must have done so before the channel closed.
	Stopped() <-chan struct{}
}

// uiThreadKey is the context key marking a context as owned by the UI thread
// of a Display.
type uiThreadKey struct{}

// Display dispatches work items to the UI thread of one native display.
//
// A Display is safe for concurrent use. Construct one per event loop at
// startup and pass it to every handler.
type Display struct {
	exec Executor
}

// New returns a Display executing work items on exec.
func New(exec Executor) *Display {
	return &Display{exec: exec}
}

// IsUIThread reports whether ctx was handed to a work item by any Display,
// i.e. whether the caller runs on a UI thread.
func IsUIThread(ctx context.Context) bool {
	_, ok := ctx.Value(uiThreadKey{}).(*Display)
	return ok
}

// onUIThread reports whether ctx belongs to the UI thread of d.
func (d *Display) onUIThread(ctx context.Context) bool {
	owner, ok := ctx.Value(uiThreadKey{}).(*Display)
	return ok && owner == d
}

// SyncExec runs f on the UI thread and waits for it to finish.
//
// If ctx is already a UI thread context of d, f runs inline. If ctx is done
// before f is submitted, f does not run and the context error is returned.
// Once submitted, f runs to completion and SyncExec waits for it regardless of
// ctx, unless the executor stops before running it, in which case an error
// wrapping ErrClosed is returned. The error returned by f is returned unchanged. If f panics, the panic is
// re-raised on the calling goroutine with the original value.
func (d *Display) SyncExec(ctx context.Context, f func(ctx context.Context) error) error {
	_, err := SyncExecResult(ctx, d, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, f(ctx)
	})
	return err
}

// result carries the outcome of a work item back to its submitter.
type result[T any] struct {
	val      T
	err      error
	panicked bool
	panicVal interface{}
}

// SyncExecResult is like Display.SyncExec but returns the value produced by f.
func SyncExecResult[T any](ctx context.Context, d *Display, f func(ctx context.Context) (T, error)) (T, error) {
	if d.onUIThread(ctx) {
		return f(ctx)
	}

	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	uiCtx := context.WithValue(ctx, uiThreadKey{}, d)
	done := make(chan result[T], 1)
	if err := d.exec.Post(func() {
		var r result[T]
		defer func() {
			if v := recover(); v != nil {
				r.panicked = true
				r.panicVal = v
			}
			done <- r
		}()
		r.val, r.err = f(uiCtx)
	}); err != nil {
		return zero, errors.Wrap(err, "failed to submit work item to UI thread")
	}

	var stopped <-chan struct{}
	if s, ok := d.exec.(Stopper); ok {
		stopped = s.Stopped()
	}
	var r result[T]
	select {
	case r = <-done:
	case <-stopped:
		select {
		case r = <-done:
		default:
			return zero, errors.Wrap(ErrClosed, "work item discarded before it ran")
		}
	}
	if r.panicked {
		panic(r.panicVal)
	}
	return r.val, r.err
}

// AsyncExec schedules f to run on the UI thread and returns without waiting.
//
// This is needed for actions that start a nested event loop on the UI thread,
// such as pressing a button that opens a modal dialog; waiting for them would
// block until the dialog is closed. An error returned by f is logged to ctx.
func (d *Display) AsyncExec(ctx context.Context, f func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	uiCtx := context.WithValue(ctx, uiThreadKey{}, d)
	if err := d.exec.Post(func() {
		defer func() {
			if v := recover(); v != nil {
				logging.Infof(uiCtx, "Asynchronous work item panicked: %v", v)
			}
		}()
		if err := f(uiCtx); err != nil {
			logging.Infof(uiCtx, "Asynchronous work item failed: %v", err)
		}
	}); err != nil {
		return errors.Wrap(err, "failed to submit work item to UI thread")
	}
	return nil
}
