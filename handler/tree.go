// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package handler

import (
	"context"
	"strings"

	"reddeer/display"
	"reddeer/event"
	"reddeer/internal/logging"
	"reddeer/widget"
)

// pathSeparator joins tree path segments in messages.
const pathSeparator = " > "

// TreeHandler operates on widget.Tree.
type TreeHandler struct {
	base
}

// NewTreeHandler returns a TreeHandler.
func NewTreeHandler(syn *event.Synthesizer) *TreeHandler {
	return &TreeHandler{newBase(syn)}
}

// SelectPath selects the item reached by following path from the root
// items of t, expanding every ancestor on the way, and sends a selection
// event for it. If a segment is missing a *widget.ItemNotFoundError naming
// the path up to that segment is returned and nothing is changed.
func (h *TreeHandler) SelectPath(ctx context.Context, t widget.Tree, path ...string) error {
	return h.d.SyncExec(ctx, func(ctx context.Context) error {
		if err := checkLive(t, "select path"); err != nil {
			return err
		}
		if len(path) == 0 {
			return widget.NewItemNotFoundError(t, "")
		}
		var chain []widget.TreeItem
		items := t.Items()
		for i, seg := range path {
			it := findTreeItem(items, seg)
			if it == nil {
				return widget.NewItemNotFoundError(t, strings.Join(path[:i+1], pathSeparator))
			}
			chain = append(chain, it)
			items = it.Items()
		}
		for _, anc := range chain[:len(chain)-1] {
			anc.SetExpanded(true)
		}
		target := chain[len(chain)-1]
		logging.Debugf(ctx, "Selecting %s in %s", strings.Join(path, pathSeparator), t.Kind())
		t.SetSelection(target)
		return h.syn.NotifyWidget(ctx, widget.EventSelection, widget.Event{Item: target}, t)
	})
}

// SelectedTexts returns the texts of the selected items of t.
func (h *TreeHandler) SelectedTexts(ctx context.Context, t widget.Tree) ([]string, error) {
	return read(ctx, h.d, t, "get selection", func(t widget.Tree) []string {
		out := []string{}
		for _, it := range t.Selection() {
			out = append(out, it.Text())
		}
		return out
	})
}

// ItemTexts returns the texts of the children of the item at path, or of the
// root items if path is empty.
func (h *TreeHandler) ItemTexts(ctx context.Context, t widget.Tree, path ...string) ([]string, error) {
	return display.SyncExecResult(ctx, h.d, func(ctx context.Context) ([]string, error) {
		if err := checkLive(t, "get items"); err != nil {
			return nil, err
		}
		items := t.Items()
		for i, seg := range path {
			it := findTreeItem(items, seg)
			if it == nil {
				return nil, widget.NewItemNotFoundError(t, strings.Join(path[:i+1], pathSeparator))
			}
			items = it.Items()
		}
		out := make([]string, len(items))
		for i, it := range items {
			out[i] = it.Text()
		}
		return out, nil
	})
}

func findTreeItem(items []widget.TreeItem, text string) widget.TreeItem {
	for _, it := range items {
		if !it.IsDisposed() && it.Text() == text {
			return it
		}
	}
	return nil
}
