// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package swt

import (
	"context"

	"reddeer/internal/logging"
	"reddeer/lookup"
	"reddeer/widget"
)

// List is a list of string items.
type List struct {
	bot *Bot
	w   widget.List
}

// FindList waits for the index-th list under root matching ms.
func FindList(ctx context.Context, bot *Bot, root widget.Composite, index int, ms ...lookup.Matcher) (*List, error) {
	w, err := find[widget.List](ctx, bot, root, index, ms...)
	if err != nil {
		return nil, err
	}
	return &List{bot, w}, nil
}

// Widget returns the wrapped list.
func (l *List) Widget() widget.List { return l.w }

// Items returns all items.
func (l *List) Items(ctx context.Context) ([]string, error) {
	return l.bot.Handlers.List.Items(ctx, l.w)
}

// SelectedItems returns the selected items.
func (l *List) SelectedItems(ctx context.Context) ([]string, error) {
	return l.bot.Handlers.List.SelectedItems(ctx, l.w)
}

// SelectionIndex returns the focused selected index, or -1.
func (l *List) SelectionIndex(ctx context.Context) (int, error) {
	return l.bot.Handlers.List.SelectionIndex(ctx, l.w)
}

// SelectionIndices returns the selected indices.
func (l *List) SelectionIndices(ctx context.Context) ([]int, error) {
	return l.bot.Handlers.List.SelectionIndices(ctx, l.w)
}

// Select selects items. A single item is selected as a user click would;
// several items require a multi-selection list.
func (l *List) Select(ctx context.Context, items ...string) error {
	if len(items) == 1 {
		return l.bot.Handlers.List.Select(ctx, l.w, items[0])
	}
	logging.Infof(ctx, "Select list items (%s)", logging.FormatItems(items))
	return l.bot.Handlers.List.SelectItems(ctx, l.w, items...)
}

// SelectIndices selects the items at indices.
func (l *List) SelectIndices(ctx context.Context, indices ...int) error {
	if len(indices) == 1 {
		return l.bot.Handlers.List.SelectIndex(ctx, l.w, indices[0])
	}
	logging.Infof(ctx, "Select list items with indices (%s)", logging.FormatItems(indices))
	return l.bot.Handlers.List.SelectIndices(ctx, l.w, indices...)
}

// SelectAll selects every item of a multi-selection list.
func (l *List) SelectAll(ctx context.Context) error {
	return l.bot.Handlers.List.SelectAll(ctx, l.w)
}

// DeselectAll clears the selection.
func (l *List) DeselectAll(ctx context.Context) error {
	return l.bot.Handlers.List.DeselectAll(ctx, l.w)
}

// Click double-clicks item.
func (l *List) Click(ctx context.Context, item string) error {
	return l.bot.Handlers.List.Click(ctx, l.w, item)
}
