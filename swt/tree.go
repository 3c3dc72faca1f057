// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package swt

import (
	"context"
	"strings"

	"reddeer/internal/logging"
	"reddeer/lookup"
	"reddeer/widget"
)

// Tree is a hierarchical list.
type Tree struct {
	bot *Bot
	w   widget.Tree
}

// FindTree waits for the index-th tree under root matching ms.
func FindTree(ctx context.Context, bot *Bot, root widget.Composite, index int, ms ...lookup.Matcher) (*Tree, error) {
	w, err := find[widget.Tree](ctx, bot, root, index, ms...)
	if err != nil {
		return nil, err
	}
	return &Tree{bot, w}, nil
}

// Widget returns the wrapped tree.
func (t *Tree) Widget() widget.Tree { return t.w }

// Select selects the item at path, expanding its ancestors.
func (t *Tree) Select(ctx context.Context, path ...string) error {
	logging.Infof(ctx, "Select tree item %s", strings.Join(path, " > "))
	return t.bot.Handlers.Tree.SelectPath(ctx, t.w, path...)
}

// SelectedTexts returns the texts of the selected items.
func (t *Tree) SelectedTexts(ctx context.Context) ([]string, error) {
	return t.bot.Handlers.Tree.SelectedTexts(ctx, t.w)
}

// ItemTexts returns the texts of the children of the item at path, or of
// the root items if path is empty.
func (t *Tree) ItemTexts(ctx context.Context, path ...string) ([]string, error) {
	return t.bot.Handlers.Tree.ItemTexts(ctx, t.w, path...)
}

// Label is a static text.
type Label struct {
	bot *Bot
	w   widget.Label
}

// FindLabel waits for the index-th widget of kind "Label" under root
// matching ms. Buttons also have a text, so the kind is matched too.
func FindLabel(ctx context.Context, bot *Bot, root widget.Composite, index int, ms ...lookup.Matcher) (*Label, error) {
	ms = append([]lookup.Matcher{lookup.WithKind("Label")}, ms...)
	w, err := find[widget.Label](ctx, bot, root, index, ms...)
	if err != nil {
		return nil, err
	}
	return &Label{bot, w}, nil
}

// Text returns the label text.
func (l *Label) Text(ctx context.Context) (string, error) {
	return l.bot.Handlers.Widget.Text(ctx, l.w)
}
