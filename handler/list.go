// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package handler

import (
	"context"

	"reddeer/errors"
	"reddeer/event"
	"reddeer/internal/logging"
	"reddeer/widget"
)

// ListHandler operates on widget.List.
type ListHandler struct {
	base
}

// NewListHandler returns a ListHandler.
func NewListHandler(syn *event.Synthesizer) *ListHandler {
	return &ListHandler{newBase(syn)}
}

// Items returns all items of l.
func (h *ListHandler) Items(ctx context.Context, l widget.List) ([]string, error) {
	return read(ctx, h.d, l, "get items", func(l widget.List) []string { return l.Items() })
}

// SelectedItems returns the selected items of l in list order.
func (h *ListHandler) SelectedItems(ctx context.Context, l widget.List) ([]string, error) {
	return read(ctx, h.d, l, "get selected items", func(l widget.List) []string {
		sel := l.Selection()
		if sel == nil {
			sel = []string{}
		}
		return sel
	})
}

// SelectionIndex returns the index of the focused selected item, or -1.
func (h *ListHandler) SelectionIndex(ctx context.Context, l widget.List) (int, error) {
	return read(ctx, h.d, l, "get selection index", func(l widget.List) int { return l.SelectionIndex() })
}

// SelectionIndices returns the indices of the selected items in ascending
// order. It returns an empty slice if nothing is selected.
func (h *ListHandler) SelectionIndices(ctx context.Context, l widget.List) ([]int, error) {
	return read(ctx, h.d, l, "get selection indices", func(l widget.List) []int {
		idx := l.SelectionIndices()
		if idx == nil {
			idx = []int{}
		}
		return idx
	})
}

// DeselectAll clears the selection of l.
func (h *ListHandler) DeselectAll(ctx context.Context, l widget.List) error {
	return h.d.SyncExec(ctx, func(ctx context.Context) error {
		if err := checkLive(l, "deselect all"); err != nil {
			return err
		}
		l.DeselectAll()
		return nil
	})
}

// SelectAll selects every item of l. l must have widget.StyleMulti.
func (h *ListHandler) SelectAll(ctx context.Context, l widget.List) error {
	return h.d.SyncExec(ctx, func(ctx context.Context) error {
		if err := checkMulti(l, "select all"); err != nil {
			return err
		}
		l.SelectAll()
		return h.syn.NotifyWidget(ctx, widget.EventSelection, widget.Event{}, l)
	})
}

// Select makes item the only selected item of l and sends the click
// notifications a user selecting it would produce. If item does not exist the
// selection is left unchanged and a *widget.ItemNotFoundError is returned.
func (h *ListHandler) Select(ctx context.Context, l widget.List, item string) error {
	return h.d.SyncExec(ctx, func(ctx context.Context) error {
		if err := checkLive(l, "select"); err != nil {
			return err
		}
		idx := l.IndexOf(item)
		if idx < 0 {
			return widget.NewItemNotFoundError(l, item)
		}
		logging.Debugf(ctx, "Selecting %q in %s", item, l.Kind())
		l.DeselectAll()
		l.Select(idx)
		return h.syn.SendClickNotifications(ctx, l)
	})
}

// SelectItems makes items the selection of l. l must have widget.StyleMulti
// and every item must exist. Nothing is changed if either check fails.
func (h *ListHandler) SelectItems(ctx context.Context, l widget.List, items ...string) error {
	return h.d.SyncExec(ctx, func(ctx context.Context) error {
		if err := checkMulti(l, "select items"); err != nil {
			return err
		}
		indices := make([]int, len(items))
		for i, item := range items {
			idx := l.IndexOf(item)
			if idx < 0 {
				return widget.NewItemNotFoundError(l, item)
			}
			indices[i] = idx
		}
		logging.Debugf(ctx, "Selecting %s in %s", logging.FormatItems(items), l.Kind())
		return h.replaceSelection(ctx, l, indices)
	})
}

// SelectIndices makes the items at indices the selection of l. l must have
// widget.StyleMulti and every index must be in range. Nothing is changed if
// either check fails.
func (h *ListHandler) SelectIndices(ctx context.Context, l widget.List, indices ...int) error {
	return h.d.SyncExec(ctx, func(ctx context.Context) error {
		if err := checkMulti(l, "select indices"); err != nil {
			return err
		}
		if err := checkIndices(l, indices); err != nil {
			return err
		}
		return h.replaceSelection(ctx, l, indices)
	})
}

// SelectIndex makes the item at index the only selected item of l. An index
// outside [0, ItemCount) yields a *widget.IndexOutOfRangeError and leaves the
// selection unchanged.
func (h *ListHandler) SelectIndex(ctx context.Context, l widget.List, index int) error {
	return h.d.SyncExec(ctx, func(ctx context.Context) error {
		if err := checkLive(l, "select index"); err != nil {
			return err
		}
		if err := checkIndices(l, []int{index}); err != nil {
			return err
		}
		return h.replaceSelection(ctx, l, []int{index})
	})
}

// Click double-clicks the row showing item. The list is expected to select
// and activate the row in response; Click does not select it beforehand.
//
// The row position comes from widget.ItemBounder when l implements it.
// Otherwise it is derived from ItemHeight and TopIndex, which assumes rows
// start at the top of the client area and is unreliable for lists with
// headers or variable row heights.
func (h *ListHandler) Click(ctx context.Context, l widget.List, item string) error {
	return h.d.SyncExec(ctx, func(ctx context.Context) error {
		if err := checkLive(l, "click"); err != nil {
			return err
		}
		idx := l.IndexOf(item)
		if idx < 0 {
			return widget.NewItemNotFoundError(l, item)
		}
		p, err := rowPoint(l, idx)
		if err != nil {
			return errors.Wrapf(err, "failed to locate %q", item)
		}
		logging.Debugf(ctx, "Double-clicking %q in %s at (%d, %d)", item, l.Kind(), p.X, p.Y)
		return h.syn.DoubleClickAt(ctx, l, p)
	})
}

// replaceSelection deselects everything, selects indices and sends a single
// selection event. It must be called on the UI thread.
func (h *ListHandler) replaceSelection(ctx context.Context, l widget.List, indices []int) error {
	l.DeselectAll()
	l.Select(indices...)
	return h.syn.NotifyWidget(ctx, widget.EventSelection, widget.Event{}, l)
}

// rowPoint returns the center of the row at idx relative to l.
func rowPoint(l widget.List, idx int) (widget.Point, error) {
	if ib, ok := l.(widget.ItemBounder); ok {
		r, ok := ib.ItemBounds(idx)
		if !ok {
			return widget.Point{}, errors.Errorf("item %d of %s is not visible", idx, l.Kind())
		}
		return r.Center(), nil
	}
	h := l.ItemHeight()
	if h <= 0 {
		return widget.Point{}, errors.Errorf("%s reports item height %d", l.Kind(), h)
	}
	row := idx - l.TopIndex()
	b := l.Bounds()
	y := row*h + h/2
	if row < 0 || y >= b.Height {
		return widget.Point{}, errors.Errorf("item %d of %s is scrolled out of view", idx, l.Kind())
	}
	return widget.Point{X: b.Width / 2, Y: y}, nil
}

func checkMulti(l widget.List, op string) error {
	if err := checkLive(l, op); err != nil {
		return err
	}
	if !l.Style().Has(widget.StyleMulti) {
		return widget.NewUnsupportedCapabilityError(l, widget.StyleMulti)
	}
	return nil
}

func checkIndices(l widget.List, indices []int) error {
	n := l.ItemCount()
	for _, i := range indices {
		if i < 0 || i >= n {
			return widget.NewIndexOutOfRangeError(l, i, n)
		}
	}
	return nil
}
