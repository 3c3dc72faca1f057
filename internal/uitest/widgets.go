// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package uitest

import (
	"reddeer/widget"
)

// Listener is a callback registered on a fake widget.
type Listener func(e widget.Event)

// base implements widget.Widget and widget.Control for the fakes.
type base struct {
	kind     string
	style    widget.Style
	disposed bool
	enabled  bool
	visible  bool
	bounds   widget.Rect
	parent   widget.Composite
	self     widget.Control // outermost value, used as event source

	listeners map[widget.EventType][]Listener
	events    []widget.Event
}

func (b *base) init(self widget.Control, kind string, style widget.Style, parent *Composite) {
	b.self = self
	b.kind = kind
	b.style = style
	b.enabled = true
	b.visible = true
	b.bounds = widget.Rect{Width: 100, Height: 20}
	b.listeners = make(map[widget.EventType][]Listener)
	if parent != nil {
		b.parent = parent.self.(widget.Composite)
		parent.children = append(parent.children, self)
	}
}

// Kind implements widget.Widget.
func (b *base) Kind() string { return b.kind }

// IsDisposed implements widget.Widget.
func (b *base) IsDisposed() bool { return b.disposed }

// Style implements widget.Widget.
func (b *base) Style() widget.Style { return b.style }

// Notify implements widget.Widget. Every event is recorded before the
// listeners run.
func (b *base) Notify(e widget.Event) {
	if b.disposed {
		return
	}
	b.events = append(b.events, e)
	for _, l := range b.listeners[e.Type] {
		l(e)
	}
}

// Bounds implements widget.Control.
func (b *base) Bounds() widget.Rect { return b.bounds }

// IsEnabled implements widget.Control.
func (b *base) IsEnabled() bool { return b.enabled }

// IsVisible implements widget.Control.
func (b *base) IsVisible() bool { return b.visible }

// Parent implements widget.Control.
func (b *base) Parent() widget.Composite { return b.parent }

// SetBounds sets the bounds relative to the parent.
func (b *base) SetBounds(r widget.Rect) { b.bounds = r }

// SetEnabled enables or disables the control.
func (b *base) SetEnabled(enabled bool) { b.enabled = enabled }

// SetVisible shows or hides the control.
func (b *base) SetVisible(visible bool) { b.visible = visible }

// AddListener registers l for events of type t.
func (b *base) AddListener(t widget.EventType, l Listener) {
	b.listeners[t] = append(b.listeners[t], l)
}

// Events returns the recorded events, filtered to types if any are given.
func (b *base) Events(types ...widget.EventType) []widget.Event {
	if len(types) == 0 {
		return append([]widget.Event(nil), b.events...)
	}
	var out []widget.Event
	for _, e := range b.events {
		for _, t := range types {
			if e.Type == t {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// ClearEvents forgets the recorded events.
func (b *base) ClearEvents() { b.events = nil }

// Dispose disposes the widget after sending EventDispose.
func (b *base) Dispose() {
	if b.disposed {
		return
	}
	b.self.Notify(widget.Event{Type: widget.EventDispose, Widget: b.self})
	b.disposed = true
}

// Composite is a fake widget.Composite.
type Composite struct {
	base
	children []widget.Control
}

// NewComposite creates a composite inside parent.
func NewComposite(parent *Composite) *Composite {
	c := &Composite{}
	c.init(c, "Composite", widget.StyleNone, parent)
	return c
}

// Children implements widget.Composite.
func (c *Composite) Children() []widget.Control {
	return append([]widget.Control(nil), c.children...)
}

// Dispose disposes c and all of its descendants.
func (c *Composite) Dispose() {
	for _, ch := range c.children {
		if d, ok := ch.(interface{ Dispose() }); ok {
			d.Dispose()
		}
	}
	c.base.Dispose()
}

// Label is a fake widget.Label.
type Label struct {
	base
	text string
}

// NewLabel creates a label inside parent.
func NewLabel(parent *Composite, text string) *Label {
	l := &Label{text: text}
	l.init(l, "Label", widget.StyleNone, parent)
	return l
}

// Text implements widget.Texter.
func (l *Label) Text() string { return l.text }

// SetText changes the label text.
func (l *Label) SetText(text string) { l.text = text }

// Button is a fake widget.Button.
type Button struct {
	base
	text      string
	selection bool
}

// NewButton creates a button inside parent.
func NewButton(parent *Composite, text string, style widget.Style) *Button {
	b := &Button{text: text}
	b.init(b, "Button", style, parent)
	return b
}

// Text implements widget.Texter.
func (b *Button) Text() string { return b.text }

// Selection implements widget.Button.
func (b *Button) Selection() bool { return b.selection }

// SetSelection implements widget.Button.
func (b *Button) SetSelection(selected bool) { b.selection = selected }

// OnSelection registers f to run when the button is pressed.
func (b *Button) OnSelection(f func()) {
	b.AddListener(widget.EventSelection, func(widget.Event) { f() })
}
