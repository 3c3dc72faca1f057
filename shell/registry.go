// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package shell tracks which top-level shell is active from the point of
// view of the test.
//
// The registry is fed by a Rule observing shell events on the UI thread and is
// only ever touched there. Test goroutines read it through accessors that
// marshal through the Dispatcher.
package shell

import (
	"context"

	"reddeer/display"
	"reddeer/errors"
	"reddeer/widget"
)

// Action is a shell transition observed by a Rule.
type Action struct {
	Title  string
	Closed bool
}

// Registry holds the active shell.
type Registry struct {
	d *display.Display

	// Fields below are only accessed on the UI thread.
	active  widget.Shell
	actions []Action
}

// NewRegistry returns an empty registry read through d.
func NewRegistry(d *display.Display) *Registry {
	return &Registry{d: d}
}

// Install creates a Rule updating r and registers it with src. Activations
// of the shell titled workbench are ignored. An empty workbench disables that
// check.
func (r *Registry) Install(ctx context.Context, src widget.EventSource, workbench string) (*Rule, error) {
	rule := &Rule{reg: r, workbench: workbench}
	if err := r.d.SyncExec(ctx, func(ctx context.Context) error {
		src.AddFilter(rule.Handle)
		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "failed to install shell rule")
	}
	return rule, nil
}

// Active returns the active shell, or nil if there is none or it has been
// disposed since it was activated.
func (r *Registry) Active(ctx context.Context) (widget.Shell, error) {
	return display.SyncExecResult(ctx, r.d, func(ctx context.Context) (widget.Shell, error) {
		return r.activeLocked(), nil
	})
}

// ActiveTitle returns the title of the active shell, or an empty string if
// there is none.
func (r *Registry) ActiveTitle(ctx context.Context) (string, error) {
	return display.SyncExecResult(ctx, r.d, func(ctx context.Context) (string, error) {
		s := r.activeLocked()
		if s == nil {
			return "", nil
		}
		return s.Text(), nil
	})
}

// Actions returns the shell transitions observed so far, oldest first.
func (r *Registry) Actions(ctx context.Context) ([]Action, error) {
	return display.SyncExecResult(ctx, r.d, func(ctx context.Context) ([]Action, error) {
		return append([]Action(nil), r.actions...), nil
	})
}

// Reset forgets the active shell and the recorded actions.
func (r *Registry) Reset(ctx context.Context) error {
	return r.d.SyncExec(ctx, func(ctx context.Context) error {
		r.active = nil
		r.actions = nil
		return nil
	})
}

func (r *Registry) activeLocked() widget.Shell {
	if r.active == nil || r.active.IsDisposed() {
		return nil
	}
	return r.active
}

// Rule updates a Registry from shell events. Its methods must be called on
// the UI thread.
type Rule struct {
	reg       *Registry
	workbench string
}

// AppliesTo reports whether e is a shell transition to be recorded.
//
// Re-activation of the active shell and activation of the workbench window
// are ignored. Disposal of any shell clears the active shell as a side effect
// without being recorded.
func (rl *Rule) AppliesTo(e widget.Event) bool {
	s, ok := e.Widget.(widget.Shell)
	if !ok {
		return false
	}
	switch e.Type {
	case widget.EventActivate:
		title := s.Text()
		if a := rl.reg.activeLocked(); a != nil && a.Text() == title {
			return false
		}
		return rl.workbench == "" || title != rl.workbench
	case widget.EventDispose:
		rl.reg.active = nil
		return false
	case widget.EventClose:
		return true
	}
	return false
}

// Handle records e in the registry if the rule applies to it.
func (rl *Rule) Handle(e widget.Event) {
	if !rl.AppliesTo(e) {
		return
	}
	s := e.Widget.(widget.Shell)
	act := Action{Title: s.Text(), Closed: e.Type == widget.EventClose}
	if act.Closed {
		rl.reg.active = nil
	} else {
		rl.reg.active = s
	}
	rl.reg.actions = append(rl.reg.actions, act)
}
