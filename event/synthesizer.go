// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package event synthesizes native input events.
//
// Synthesized events are delivered to the target widget's listeners on the UI
// thread, so the application under test observes them exactly as if they had
// been produced by a real input device.
package event

import (
	"context"

	"code.cloudfoundry.org/clock"

	"reddeer/display"
	"reddeer/internal/logging"
	"reddeer/widget"
)

// primaryButton is the mouse button number of the primary button.
const primaryButton = 1

// Synthesizer builds and injects events targeted at widgets.
//
// A Synthesizer is safe for concurrent use. Event timestamps it produces are
// strictly increasing.
type Synthesizer struct {
	d   *display.Display
	clk clock.Clock

	last int64 // last timestamp handed out; only accessed on the UI thread
}

// NewSynthesizer returns a Synthesizer injecting events through d.
func NewSynthesizer(d *display.Display) *Synthesizer {
	return NewSynthesizerWithClock(d, clock.NewClock())
}

// NewSynthesizerWithClock is like NewSynthesizer but stamps events with clk.
func NewSynthesizerWithClock(d *display.Display, clk clock.Clock) *Synthesizer {
	return &Synthesizer{d: d, clk: clk}
}

// Display returns the display events are injected through.
func (s *Synthesizer) Display() *display.Display {
	return s.d
}

// Notify injects an event of type typ at the point (x, y) relative to w.
// count is the click count; for EventMouseDoubleClick it is forced to 2.
func (s *Synthesizer) Notify(ctx context.Context, typ widget.EventType, w widget.Widget, x, y, count int) error {
	return s.NotifyItemMouse(ctx, typ, 0, w, nil, x, y, count)
}

// NotifyItemMouse injects a mouse event of type typ at (x, y) relative to w,
// targeting item inside w. item may be nil.
func (s *Synthesizer) NotifyItemMouse(ctx context.Context, typ widget.EventType, stateMask widget.Modifiers, w, item widget.Widget, x, y, count int) error {
	e := widget.Event{
		Type:      typ,
		Item:      item,
		X:         x,
		Y:         y,
		StateMask: stateMask,
		Count:     count,
	}
	switch typ {
	case widget.EventMouseDown, widget.EventMouseUp:
		e.Button = primaryButton
	case widget.EventMouseDoubleClick:
		e.Button = primaryButton
		e.Count = 2
	}
	return s.NotifyWidget(ctx, typ, e, w)
}

// NotifyWidget injects a copy of template with its type, target and
// timestamp filled in. The template is not modified.
func (s *Synthesizer) NotifyWidget(ctx context.Context, typ widget.EventType, template widget.Event, w widget.Widget) error {
	return s.d.SyncExec(ctx, func(ctx context.Context) error {
		if w.IsDisposed() {
			return widget.NewStaleWidgetError(w, "notify "+typ.String())
		}
		e := template
		e.Type = typ
		e.Widget = w
		e.Time = s.timestamp()
		logging.Debugf(ctx, "Sending %v to %s at (%d, %d)", typ, w.Kind(), e.X, e.Y)
		w.Notify(e)
		return nil
	})
}

// clickSequence is the series of events a real pointer click produces on a
// control, in order. It contains exactly one EventSelection.
var clickSequence = []widget.EventType{
	widget.EventMouseEnter,
	widget.EventMouseMove,
	widget.EventActivate,
	widget.EventFocusIn,
	widget.EventMouseDown,
	widget.EventMouseUp,
	widget.EventSelection,
	widget.EventMouseHover,
	widget.EventMouseMove,
	widget.EventMouseExit,
	widget.EventDeactivate,
	widget.EventFocusOut,
}

// SendClickNotifications injects the full click sequence into w within a
// single UI thread work item, so no other work interleaves with it.
//
// w must be alive when the sequence starts. If a listener disposes w in
// response to an event, e.g. a dialog closing on its OK button, the rest of
// the sequence is dropped without error.
func (s *Synthesizer) SendClickNotifications(ctx context.Context, w widget.Widget) error {
	return s.d.SyncExec(ctx, func(ctx context.Context) error {
		if w.IsDisposed() {
			return widget.NewStaleWidgetError(w, "click")
		}
		for _, typ := range clickSequence {
			if w.IsDisposed() {
				logging.Debugf(ctx, "%s disposed during click; dropping %v and later events", w.Kind(), typ)
				return nil
			}
			if err := s.NotifyItemMouse(ctx, typ, 0, w, nil, 0, 0, 1); err != nil {
				return err
			}
		}
		return nil
	})
}

// DoubleClickAt injects a double click at p relative to w.
func (s *Synthesizer) DoubleClickAt(ctx context.Context, w widget.Widget, p widget.Point) error {
	return s.Notify(ctx, widget.EventMouseDoubleClick, w, p.X, p.Y, 2)
}

// timestamp returns the current time in milliseconds, bumped if needed so
// that it is greater than any previously returned value.
func (s *Synthesizer) timestamp() int64 {
	ts := s.clk.Now().UnixMilli()
	if ts <= s.last {
		ts = s.last + 1
	}
	s.last = ts
	return ts
}
