// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package swt provides page objects for the basic widgets of a UI.
//
// A page object wraps one located widget and exposes the operations a test
// performs on it. Lookups wait for the widget to appear, bounded by the
// DEFAULT time period scaled by the configured factor.
package swt

import (
	"context"

	"reddeer/condition"
	"reddeer/config"
	"reddeer/display"
	"reddeer/event"
	"reddeer/handler"
	"reddeer/lookup"
	"reddeer/wait"
	"reddeer/widget"
)

// Bot carries what page objects need to reach the UI.
type Bot struct {
	Display  *display.Display
	Handlers *handler.Handlers
	Desktop  widget.Desktop
	Options  *config.Options
}

// NewBot returns a Bot dispatching through the display of syn. A nil opts
// means config.Default.
func NewBot(syn *event.Synthesizer, desktop widget.Desktop, opts *config.Options) *Bot {
	if opts == nil {
		opts = config.Default()
	}
	return &Bot{
		Display:  syn.Display(),
		Handlers: handler.New(syn),
		Desktop:  desktop,
		Options:  opts,
	}
}

// WaitUntil waits until c is satisfied within the time period p.
func (b *Bot) WaitUntil(ctx context.Context, c wait.Condition, p wait.TimePeriod) error {
	_, err := wait.Until(ctx, c, b.Options.WaitOptions(p))
	return err
}

// WaitWhile waits while c is satisfied within the time period p.
func (b *Bot) WaitWhile(ctx context.Context, c wait.Condition, p wait.TimePeriod) error {
	_, err := wait.While(ctx, c, b.Options.WaitOptions(p))
	return err
}

// find waits for the index-th widget of type T under root matching ms and
// returns it.
func find[T widget.Widget](ctx context.Context, b *Bot, root widget.Composite, index int, ms ...lookup.Matcher) (T, error) {
	var found T
	c := wait.Func("widget is found", func(ctx context.Context) (bool, error) {
		w, err := lookup.FindIndex[T](ctx, b.Display, root, index, ms...)
		if err != nil {
			return false, nil
		}
		found = w
		return true, nil
	})
	if err := b.WaitUntil(ctx, c, wait.TimePeriodDefault); err != nil {
		// Report the lookup failure rather than the timeout.
		if _, lerr := lookup.FindIndex[T](ctx, b.Display, root, index, ms...); lerr != nil {
			return found, lerr
		}
		return found, err
	}
	return found, nil
}

// Exists reports whether a live widget of type T matching ms exists under
// root, without waiting.
func Exists[T widget.Widget](ctx context.Context, b *Bot, root widget.Composite, ms ...lookup.Matcher) (bool, error) {
	return wait.Until(ctx, condition.WidgetIsFound[T](b.Display, root, ms...), &wait.Options{Timeout: 0, IgnoreTimeout: true})
}
