// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package event_test

import (
	"context"
	"testing"
	"time"

	"code.cloudfoundry.org/clock/fakeclock"
	"github.com/google/go-cmp/cmp"

	"reddeer/errors"
	"reddeer/event"
	"reddeer/internal/uitest"
	"reddeer/widget"
)

func TestDoubleClickIsSingleEvent(t *testing.T) {
	env := uitest.NewEnv(t)
	var l *uitest.List
	env.Do(t, func() {
		l = uitest.NewList(&env.Desktop.NewShell("s").Composite, widget.StyleSingle, "A", "B")
	})

	if err := env.Synth.DoubleClickAt(context.Background(), l, widget.Point{X: 5, Y: 20}); err != nil {
		t.Fatal("DoubleClickAt failed: ", err)
	}

	env.Do(t, func() {
		evs := l.Events(widget.EventMouseDoubleClick, widget.EventMouseDown, widget.EventMouseUp)
		if len(evs) != 1 {
			t.Fatalf("Got %d mouse events; want exactly 1 double click", len(evs))
		}
		e := evs[0]
		if e.Type != widget.EventMouseDoubleClick || e.Count != 2 || e.Button != 1 {
			t.Errorf("Got event {%v count=%d button=%d}; want {MouseDoubleClick count=2 button=1}", e.Type, e.Count, e.Button)
		}
		if e.X != 5 || e.Y != 20 {
			t.Errorf("Event at (%d, %d); want (5, 20)", e.X, e.Y)
		}
		if e.Widget != widget.Widget(l) {
			t.Errorf("Event widget = %v; want the list", e.Widget)
		}
	})
}

func TestNotifyWidgetKeepsTemplate(t *testing.T) {
	env := uitest.NewEnv(t)
	var b *uitest.Button
	env.Do(t, func() {
		b = uitest.NewButton(&env.Desktop.NewShell("s").Composite, "OK", widget.StylePush)
	})

	tmpl := widget.Event{X: 3, Y: 4, Detail: 7}
	if err := env.Synth.NotifyWidget(context.Background(), widget.EventSelection, tmpl, b); err != nil {
		t.Fatal("NotifyWidget failed: ", err)
	}
	if tmpl.Widget != nil || tmpl.Type != widget.EventNone || tmpl.Time != 0 {
		t.Errorf("Template was modified: %+v", tmpl)
	}
	env.Do(t, func() {
		evs := b.Events()
		if len(evs) != 1 {
			t.Fatalf("Got %d events; want 1", len(evs))
		}
		if evs[0].Detail != 7 || evs[0].Type != widget.EventSelection || evs[0].Time == 0 {
			t.Errorf("Got %+v; want a stamped Selection event with detail 7", evs[0])
		}
	})
}

func TestStaleWidget(t *testing.T) {
	env := uitest.NewEnv(t)
	var l *uitest.List
	env.Do(t, func() {
		l = uitest.NewList(&env.Desktop.NewShell("s").Composite, widget.StyleSingle, "A")
		l.Dispose()
		l.ClearEvents()
	})

	err := env.Synth.Notify(context.Background(), widget.EventMouseDown, l, 0, 0, 1)
	var se *widget.StaleWidgetError
	if !errors.As(err, &se) {
		t.Fatalf("Notify on disposed widget returned %v; want *widget.StaleWidgetError", err)
	}
	env.Do(t, func() {
		if n := len(l.Events()); n != 0 {
			t.Errorf("Disposed widget received %d events; want 0", n)
		}
	})
}

func TestClickSequence(t *testing.T) {
	env := uitest.NewEnv(t)
	var b *uitest.Button
	env.Do(t, func() {
		b = uitest.NewButton(&env.Desktop.NewShell("s").Composite, "OK", widget.StylePush)
	})
	if err := env.Synth.SendClickNotifications(context.Background(), b); err != nil {
		t.Fatal("SendClickNotifications failed: ", err)
	}
	env.Do(t, func() {
		var got []widget.EventType
		for _, e := range b.Events() {
			got = append(got, e.Type)
		}
		want := []widget.EventType{
			widget.EventMouseEnter, widget.EventMouseMove, widget.EventActivate, widget.EventFocusIn,
			widget.EventMouseDown, widget.EventMouseUp, widget.EventSelection, widget.EventMouseHover,
			widget.EventMouseMove, widget.EventMouseExit, widget.EventDeactivate, widget.EventFocusOut,
		}
		if diff := cmp.Diff(got, want); diff != "" {
			t.Errorf("Click sequence mismatch (-got +want):\n%s", diff)
		}
	})
}

func TestClickDisposingWidget(t *testing.T) {
	env := uitest.NewEnv(t)
	var s *uitest.Shell
	var b *uitest.Button
	env.Do(t, func() {
		s = env.Desktop.NewShell("Dialog")
		b = uitest.NewButton(&s.Composite, "OK", widget.StylePush)
		b.OnSelection(func() { s.Close() })
	})
	if err := env.Synth.SendClickNotifications(context.Background(), b); err != nil {
		t.Fatal("SendClickNotifications failed: ", err)
	}
	env.Do(t, func() {
		var got []widget.EventType
		for _, e := range b.Events() {
			if e.Type != widget.EventDispose {
				got = append(got, e.Type)
			}
		}
		want := []widget.EventType{
			widget.EventMouseEnter, widget.EventMouseMove, widget.EventActivate, widget.EventFocusIn,
			widget.EventMouseDown, widget.EventMouseUp, widget.EventSelection,
		}
		if diff := cmp.Diff(got, want); diff != "" {
			t.Errorf("Click sequence mismatch (-got +want):\n%s", diff)
		}
		if !s.IsDisposed() {
			t.Error("Dialog was not closed")
		}
	})
	err := env.Synth.SendClickNotifications(context.Background(), b)
	var se *widget.StaleWidgetError
	if !errors.As(err, &se) {
		t.Errorf("Clicking a disposed button returned %v; want *widget.StaleWidgetError", err)
	}
}

func TestTimestampsStrictlyIncrease(t *testing.T) {
	env := uitest.NewEnv(t)
	clk := fakeclock.NewFakeClock(time.Unix(1000, 0))
	syn := event.NewSynthesizerWithClock(env.Display, clk)
	var b *uitest.Button
	env.Do(t, func() {
		b = uitest.NewButton(&env.Desktop.NewShell("s").Composite, "OK", widget.StylePush)
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := syn.Notify(ctx, widget.EventMouseMove, b, 0, 0, 0); err != nil {
			t.Fatal(err)
		}
	}
	clk.Increment(time.Second)
	if err := syn.Notify(ctx, widget.EventMouseMove, b, 0, 0, 0); err != nil {
		t.Fatal(err)
	}

	env.Do(t, func() {
		var got []int64
		for _, e := range b.Events() {
			got = append(got, e.Time)
		}
		want := []int64{1000000, 1000001, 1000002, 1001000}
		if diff := cmp.Diff(got, want); diff != "" {
			t.Errorf("Timestamps mismatch (-got +want):\n%s", diff)
		}
	})
}
