// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package uitest

import (
	"reddeer/widget"
)

// Desktop is a fake widget.Desktop holding top-level shells.
type Desktop struct {
	shells  []*Shell
	active  *Shell
	filters []func(e widget.Event)
}

// NewDesktop returns an empty desktop.
func NewDesktop() *Desktop {
	return &Desktop{}
}

// Shells implements widget.Desktop. Disposed shells are omitted.
func (d *Desktop) Shells() []widget.Shell {
	var out []widget.Shell
	for _, s := range d.shells {
		if !s.IsDisposed() {
			out = append(out, s)
		}
	}
	return out
}

// Active returns the shell activated last, or nil if it is gone.
func (d *Desktop) Active() *Shell {
	if d.active == nil || d.active.IsDisposed() {
		return nil
	}
	return d.active
}

// AddFilter implements widget.EventSource. Filters see every event sent to
// a shell of d.
func (d *Desktop) AddFilter(f func(e widget.Event)) {
	d.filters = append(d.filters, f)
}

// Shell is a fake widget.Shell.
type Shell struct {
	Composite
	text    string
	desktop *Desktop

	// VetoClose makes Close send EventClose without disposing the shell.
	VetoClose bool
}

// NewShell creates a top-level shell titled text. It is not activated.
func (d *Desktop) NewShell(text string) *Shell {
	s := &Shell{text: text, desktop: d}
	s.init(s, "Shell", widget.StyleNone, nil)
	s.bounds = widget.Rect{Width: 800, Height: 600}
	d.shells = append(d.shells, s)
	return s
}

// Text implements widget.Texter.
func (s *Shell) Text() string { return s.text }

// Notify implements widget.Widget. Desktop filters run before the listeners.
func (s *Shell) Notify(e widget.Event) {
	if s.disposed {
		return
	}
	for _, f := range s.desktop.filters {
		f(e)
	}
	s.Composite.Notify(e)
}

// SetText changes the shell title.
func (s *Shell) SetText(text string) { s.text = text }

// Close implements widget.Shell.
func (s *Shell) Close() {
	if s.disposed {
		return
	}
	s.Notify(widget.Event{Type: widget.EventClose, Widget: s})
	if s.VetoClose {
		return
	}
	s.Dispose()
}

// Activate brings s to front and sends EventActivate.
func (s *Shell) Activate() {
	if s.disposed {
		return
	}
	s.desktop.active = s
	s.Notify(widget.Event{Type: widget.EventActivate, Widget: s})
}

// Tree is a fake widget.Tree.
type Tree struct {
	base
	items    []*TreeItem
	selected []widget.TreeItem
}

// NewTree creates a tree inside parent.
func NewTree(parent *Composite) *Tree {
	t := &Tree{}
	t.init(t, "Tree", widget.StyleSingle, parent)
	return t
}

// Items implements widget.Tree.
func (t *Tree) Items() []widget.TreeItem { return treeItems(t.items) }

// Selection implements widget.Tree.
func (t *Tree) Selection() []widget.TreeItem {
	return append([]widget.TreeItem(nil), t.selected...)
}

// SetSelection implements widget.Tree.
func (t *Tree) SetSelection(items ...widget.TreeItem) {
	t.selected = append([]widget.TreeItem(nil), items...)
}

// AddItem appends a root item.
func (t *Tree) AddItem(text string) *TreeItem {
	it := newTreeItem(text)
	t.items = append(t.items, it)
	return it
}

// TreeItem is a fake widget.TreeItem.
type TreeItem struct {
	base
	text     string
	items    []*TreeItem
	expanded bool
}

func newTreeItem(text string) *TreeItem {
	it := &TreeItem{text: text}
	it.init(it, "TreeItem", widget.StyleNone, nil)
	return it
}

// Text implements widget.Texter.
func (it *TreeItem) Text() string { return it.text }

// Items implements widget.TreeItem.
func (it *TreeItem) Items() []widget.TreeItem { return treeItems(it.items) }

// Expanded implements widget.TreeItem.
func (it *TreeItem) Expanded() bool { return it.expanded }

// SetExpanded implements widget.TreeItem.
func (it *TreeItem) SetExpanded(expanded bool) { it.expanded = expanded }

// AddItem appends a child item.
func (it *TreeItem) AddItem(text string) *TreeItem {
	c := newTreeItem(text)
	it.items = append(it.items, c)
	return c
}

func treeItems(items []*TreeItem) []widget.TreeItem {
	out := make([]widget.TreeItem, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}
