// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package widget

// EventType identifies the kind of a native event.
type EventType uint8

// Native event kinds.
const (
	EventNone EventType = iota
	EventMouseDown
	EventMouseUp
	EventMouseMove
	EventMouseEnter
	EventMouseExit
	EventMouseHover
	EventMouseDoubleClick
	EventSelection
	EventDefaultSelection
	EventActivate
	EventDeactivate
	EventFocusIn
	EventFocusOut
	EventClose
	EventDispose
)

var eventTypeNames = map[EventType]string{
	EventNone:             "None",
	EventMouseDown:        "MouseDown",
	EventMouseUp:          "MouseUp",
	EventMouseMove:        "MouseMove",
	EventMouseEnter:       "MouseEnter",
	EventMouseExit:        "MouseExit",
	EventMouseHover:       "MouseHover",
	EventMouseDoubleClick: "MouseDoubleClick",
	EventSelection:        "Selection",
	EventDefaultSelection: "DefaultSelection",
	EventActivate:         "Activate",
	EventDeactivate:       "Deactivate",
	EventFocusIn:          "FocusIn",
	EventFocusOut:         "FocusOut",
	EventClose:            "Close",
	EventDispose:          "Dispose",
}

func (t EventType) String() string {
	if n, ok := eventTypeNames[t]; ok {
		return n
	}
	return "Unknown"
}

// Modifiers is the keyboard/mouse state mask of an event.
type Modifiers uint32

// Modifier bits.
const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModCommand
	ModButton1
	ModButton2
	ModButton3
)

// Event describes a native event. Events are passed by value and never
// modified after creation.
type Event struct {
	Type   EventType
	Widget Widget
	// Item is the item the event targets inside Widget, or nil.
	Item Widget
	// X and Y are relative to Widget.
	X, Y int
	// Button is the mouse button number (1 is the primary button), or 0.
	Button    int
	StateMask Modifiers
	// Count is the click count: 2 for a double click.
	Count int
	// Time is a timestamp in milliseconds.
	Time   int64
	Detail int
	Text   string
}
