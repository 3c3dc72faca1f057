// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package widget defines the contract between the automation core and the
// native UI toolkit.
//
// Every method of the interfaces in this package touches live widget state
// and must only be called on the UI thread, i.e. from a work item executed
// by a display.Display. Test code never calls them directly; it goes through
// the handler package instead.
package widget

import "fmt"

// Style is a set of capability flags of a widget, fixed at creation time.
type Style uint32

// Capability flags. Values are independent bits.
const (
	StyleNone   Style = 0
	StyleSingle Style = 1 << iota
	StyleMulti
	StylePush
	StyleCheck
	StyleRadio
	StyleToggle
	StyleReadOnly
)

// Has reports whether s contains every flag of f.
func (s Style) Has(f Style) bool {
	return s&f == f
}

var styleNames = []struct {
	f    Style
	name string
}{
	{StyleSingle, "SINGLE"},
	{StyleMulti, "MULTI"},
	{StylePush, "PUSH"},
	{StyleCheck, "CHECK"},
	{StyleRadio, "RADIO"},
	{StyleToggle, "TOGGLE"},
	{StyleReadOnly, "READ_ONLY"},
}

func (s Style) String() string {
	if s == StyleNone {
		return "NONE"
	}
	var out string
	for _, n := range styleNames {
		if s&n.f != 0 {
			if out != "" {
				out += "|"
			}
			out += n.name
		}
	}
	if out == "" {
		return fmt.Sprintf("Style(%#x)", uint32(s))
	}
	return out
}

// Point is a position in pixels.
type Point struct {
	X, Y int
}

// Rect is a rectangle in pixels. X and Y are relative to the parent.
type Rect struct {
	X, Y, Width, Height int
}

// Center returns the center point of r in r's own coordinate space.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Widget is the root of the native widget hierarchy.
type Widget interface {
	// Kind returns a short toolkit class name such as "List" or "Shell",
	// used in error messages.
	Kind() string
	// IsDisposed reports whether the native resource is gone.
	IsDisposed() bool
	// Style returns the capability flags of the widget.
	Style() Style
	// Notify delivers e to the listeners registered for e.Type as if it
	// came from the native input pipeline.
	Notify(e Event)
}

// Control is a widget with a place on the screen.
type Control interface {
	Widget
	Bounds() Rect
	IsEnabled() bool
	IsVisible() bool
	// Parent returns the parent composite, or nil for a shell.
	Parent() Composite
}

// Composite is a control containing other controls.
type Composite interface {
	Control
	Children() []Control
}

// Texter is implemented by widgets that show a text label.
type Texter interface {
	Text() string
}

// Shell is a top-level window.
type Shell interface {
	Composite
	Texter
	// Close asks the shell to close, which disposes it unless a close
	// listener vetoes.
	Close()
}

// Desktop enumerates the top-level shells of a display.
type Desktop interface {
	Shells() []Shell
}

// EventSource is implemented by displays that let observers see events on
// their way to widget listeners. Filters run on the UI thread before the
// listeners of the target widget.
type EventSource interface {
	AddFilter(f func(e Event))
}

// Button is a push, check, radio or toggle button.
type Button interface {
	Control
	Texter
	Selection() bool
	SetSelection(selected bool)
}

// Label is a static text control.
type Label interface {
	Control
	Texter
}

// List is a list of string items with single or multi selection.
type List interface {
	Control
	Items() []string
	ItemCount() int
	// IndexOf returns the index of the first item equal to item, or -1.
	IndexOf(item string) int
	Select(indices ...int)
	SelectAll()
	DeselectAll()
	Selection() []string
	// SelectionIndex returns the focused selected index, or -1.
	SelectionIndex() int
	SelectionIndices() []int
	ItemHeight() int
	TopIndex() int
}

// ItemBounder is implemented by item containers that can report the
// bounding rectangle of an item, relative to the container.
type ItemBounder interface {
	ItemBounds(index int) (Rect, bool)
}

// Tree is a hierarchical list.
type Tree interface {
	Control
	Items() []TreeItem
	Selection() []TreeItem
	SetSelection(items ...TreeItem)
}

// TreeItem is a node of a Tree.
type TreeItem interface {
	Widget
	Texter
	Items() []TreeItem
	Expanded() bool
	SetExpanded(expanded bool)
}
