// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package wait polls conditions until asynchronous UI effects settle.
//
// Conditions that read widget state marshal their probes through the
// Dispatcher, so polling must happen off the UI thread. Until and While
// refuse to run with a context handed out to a UI thread work item.
package wait

import (
	"context"
	"fmt"
	"time"

	"code.cloudfoundry.org/clock"

	"reddeer/display"
	"reddeer/errors"
	"reddeer/errors/stack"
	"reddeer/internal/logging"
)

// DefaultInterval is the poll interval used when Options.Interval is not positive.
const DefaultInterval = 50 * time.Millisecond

// ErrOnUIThread is returned when a wait is attempted on the UI thread.
var ErrOnUIThread = errors.New("cannot wait on the UI thread")

// Options controls a wait. A nil *Options waits for TimePeriodDefault.
type Options struct {
	// Timeout is the maximum time to wait. Non-positive values test the
	// condition exactly once.
	Timeout time.Duration
	// Interval is the time between polls. Non-positive values mean DefaultInterval.
	Interval time.Duration
	// IgnoreTimeout makes a timed out wait return the last observed value of
	// the condition with a nil error instead of a *TimeoutError.
	IgnoreTimeout bool
	// Clock is used to measure time. nil means the wall clock.
	Clock clock.Clock
}

// TimeoutError is returned when a wait does not resolve before its deadline.
type TimeoutError struct {
	// Description is the description of the condition waited for.
	Description string
	// Timeout is the time waited.
	Timeout time.Duration
	// While is true if the wait was for the condition to become false.
	While bool
	stk   stack.Stack
}

func (e *TimeoutError) Error() string {
	verb := "until"
	if e.While {
		verb = "while"
	}
	return fmt.Sprintf("timed out after %v waiting %s %s", e.Timeout, verb, e.Description)
}

// Format prints the creation stack for the "%+v" verb.
func (e *TimeoutError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s\n%v", e.Error(), e.stk)
		return
	}
	fmt.Fprint(s, e.Error())
}

// Until polls c until it is satisfied. It returns the last observed value of c.
//
// If c is not satisfied before the timeout, Until returns a *TimeoutError, or
// false and a nil error if opts.IgnoreTimeout is set. An error returned by c
// aborts the wait and is returned unchanged, as is a context error.
func Until(ctx context.Context, c Condition, opts *Options) (bool, error) {
	return newWaiter(c, true, opts).run(ctx)
}

// While polls c until it is no longer satisfied. It returns the last observed
// value of c, so a successful While returns false.
//
// Timeouts and errors are handled as in Until.
func While(ctx context.Context, c Condition, opts *Options) (bool, error) {
	return newWaiter(c, false, opts).run(ctx)
}

// state is the state of a waiter.
type state int

const (
	statePolling state = iota
	stateSatisfied
	stateTimedOut
	stateAborted
)

// waiter performs a single wait. It cannot be reused once resolved.
type waiter struct {
	cond     Condition
	want     bool
	timeout  time.Duration
	interval time.Duration
	ignore   bool
	clk      clock.Clock

	state state
}

func newWaiter(c Condition, want bool, opts *Options) *waiter {
	w := &waiter{
		cond:     c,
		want:     want,
		timeout:  TimePeriodDefault.Duration(),
		interval: DefaultInterval,
		clk:      clock.NewClock(),
	}
	if opts != nil {
		w.timeout = opts.Timeout
		if opts.Interval > 0 {
			w.interval = opts.Interval
		}
		w.ignore = opts.IgnoreTimeout
		if opts.Clock != nil {
			w.clk = opts.Clock
		}
	}
	return w
}

func (w *waiter) run(ctx context.Context) (bool, error) {
	if w.state != statePolling {
		return false, errors.New("waiter already resolved")
	}
	if display.IsUIThread(ctx) {
		w.state = stateAborted
		return false, ErrOnUIThread
	}
	if err := ctx.Err(); err != nil {
		w.state = stateAborted
		return false, err
	}

	var changed <-chan struct{}
	if n, ok := w.cond.(Notifier); ok {
		done := make(chan struct{})
		defer close(done)
		changed = n.Changed(done)
	}

	start := w.clk.Now()
	deadline := start.Add(w.timeout)
	for {
		v, err := w.cond.Test(ctx)
		if err != nil {
			w.state = stateAborted
			return false, err
		}
		if v == w.want {
			w.state = stateSatisfied
			return v, nil
		}

		remaining := deadline.Sub(w.clk.Now())
		if remaining <= 0 {
			w.state = stateTimedOut
			if w.ignore {
				logging.Debugf(ctx, "Ignoring timeout after %v waiting for %s", w.timeout, w.cond.Description())
				return v, nil
			}
			return false, &TimeoutError{
				Description: w.cond.Description(),
				Timeout:     w.timeout,
				While:       !w.want,
				stk:         stack.New(1),
			}
		}

		d := w.interval
		if remaining < d {
			d = remaining
		}
		tm := w.clk.NewTimer(d)
		select {
		case <-tm.C():
		case _, ok := <-changed:
			tm.Stop()
			if !ok {
				changed = nil // closed notifiers fall back to polling
			}
		case <-ctx.Done():
			tm.Stop()
			w.state = stateAborted
			return false, ctx.Err()
		}
	}
}
