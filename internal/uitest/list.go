// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package uitest

import (
	"reddeer/widget"
)

// DefaultItemHeight is the row height of a fake List in pixels.
const DefaultItemHeight = 16

// List is a fake widget.List. Like a native list it reacts to a double click
// by selecting the row under the pointer and sending EventSelection followed
// by EventDefaultSelection.
type List struct {
	base
	items      []string
	selected   []bool
	focus      int
	itemHeight int
	topIndex   int

	// Mutations counts calls of Select, SelectAll and DeselectAll.
	Mutations int
}

// NewList creates a list inside parent.
func NewList(parent *Composite, style widget.Style, items ...string) *List {
	l := &List{
		items:      append([]string(nil), items...),
		selected:   make([]bool, len(items)),
		focus:      -1,
		itemHeight: DefaultItemHeight,
	}
	l.init(l, "List", style, parent)
	l.bounds = widget.Rect{Width: 200, Height: DefaultItemHeight * 10}
	l.AddListener(widget.EventMouseDoubleClick, l.onDoubleClick)
	return l
}

// Items implements widget.List.
func (l *List) Items() []string { return append([]string(nil), l.items...) }

// ItemCount implements widget.List.
func (l *List) ItemCount() int { return len(l.items) }

// IndexOf implements widget.List.
func (l *List) IndexOf(item string) int {
	for i, it := range l.items {
		if it == item {
			return i
		}
	}
	return -1
}

// Select implements widget.List. Out of range indices are ignored. A
// single-selection list keeps only the last valid index.
func (l *List) Select(indices ...int) {
	l.Mutations++
	for _, i := range indices {
		if i < 0 || i >= len(l.items) {
			continue
		}
		if !l.style.Has(widget.StyleMulti) {
			l.clear()
		}
		l.selected[i] = true
		l.focus = i
	}
}

// SelectAll implements widget.List. It does nothing on a single-selection list.
func (l *List) SelectAll() {
	l.Mutations++
	if !l.style.Has(widget.StyleMulti) {
		return
	}
	for i := range l.selected {
		l.selected[i] = true
	}
	if len(l.items) > 0 && l.focus < 0 {
		l.focus = 0
	}
}

// DeselectAll implements widget.List.
func (l *List) DeselectAll() {
	l.Mutations++
	l.clear()
}

func (l *List) clear() {
	for i := range l.selected {
		l.selected[i] = false
	}
	l.focus = -1
}

// Selection implements widget.List.
func (l *List) Selection() []string {
	var out []string
	for i, s := range l.selected {
		if s {
			out = append(out, l.items[i])
		}
	}
	return out
}

// SelectionIndex implements widget.List.
func (l *List) SelectionIndex() int {
	if l.focus >= 0 && l.selected[l.focus] {
		return l.focus
	}
	for i, s := range l.selected {
		if s {
			return i
		}
	}
	return -1
}

// SelectionIndices implements widget.List.
func (l *List) SelectionIndices() []int {
	out := []int{}
	for i, s := range l.selected {
		if s {
			out = append(out, i)
		}
	}
	return out
}

// ItemHeight implements widget.List.
func (l *List) ItemHeight() int { return l.itemHeight }

// TopIndex implements widget.List.
func (l *List) TopIndex() int { return l.topIndex }

// SetTopIndex scrolls the list so that index is the first visible row.
func (l *List) SetTopIndex(index int) { l.topIndex = index }

// rowAt returns the index of the row at y, or -1.
func (l *List) rowAt(y int) int {
	if l.itemHeight <= 0 || y < 0 {
		return -1
	}
	row := l.topIndex + y/l.itemHeight
	if row >= len(l.items) {
		return -1
	}
	return row
}

func (l *List) onDoubleClick(e widget.Event) {
	row := l.rowAt(e.Y)
	if row < 0 {
		return
	}
	l.clear()
	l.selected[row] = true
	l.focus = row
	l.Notify(widget.Event{Type: widget.EventSelection, Widget: l.self, Time: e.Time})
	l.Notify(widget.Event{Type: widget.EventDefaultSelection, Widget: l.self, Time: e.Time})
}

// BoundedList is a List that also reports per-item bounds, with rows laid out
// under a header of HeaderHeight pixels.
type BoundedList struct {
	*List
	HeaderHeight int
}

// NewBoundedList creates a BoundedList inside parent.
func NewBoundedList(parent *Composite, style widget.Style, headerHeight int, items ...string) *BoundedList {
	bl := &BoundedList{List: NewList(parent, style, items...), HeaderHeight: headerHeight}
	bl.self = bl
	if parent != nil {
		parent.children[len(parent.children)-1] = bl
	}
	bl.listeners[widget.EventMouseDoubleClick] = []Listener{func(e widget.Event) {
		bl.List.onDoubleClick(widget.Event{Type: e.Type, Y: e.Y - bl.HeaderHeight, Time: e.Time})
	}}
	return bl
}

// ItemBounds implements widget.ItemBounder.
func (bl *BoundedList) ItemBounds(index int) (widget.Rect, bool) {
	if index < bl.topIndex || index >= len(bl.items) {
		return widget.Rect{}, false
	}
	return widget.Rect{
		X:      0,
		Y:      bl.HeaderHeight + (index-bl.topIndex)*bl.itemHeight,
		Width:  bl.bounds.Width,
		Height: bl.itemHeight,
	}, true
}
