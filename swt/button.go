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

// Button is a push, check, radio or toggle button.
type Button struct {
	bot *Bot
	w   widget.Button
}

// FindButton waits for the index-th button under root matching ms.
func FindButton(ctx context.Context, bot *Bot, root widget.Composite, index int, ms ...lookup.Matcher) (*Button, error) {
	w, err := find[widget.Button](ctx, bot, root, index, ms...)
	if err != nil {
		return nil, err
	}
	return &Button{bot, w}, nil
}

// FindPushButton waits for the index-th push button under root labeled
// text, ignoring mnemonics.
func FindPushButton(ctx context.Context, bot *Bot, root widget.Composite, index int, text string) (*Button, error) {
	return FindButton(ctx, bot, root, index, lookup.WithMnemonicText(text), lookup.WithStyle(widget.StylePush))
}

// FindFinishButton waits for the index-th "Finish" push button under root.
func FindFinishButton(ctx context.Context, bot *Bot, root widget.Composite, index int) (*Button, error) {
	return FindPushButton(ctx, bot, root, index, "Finish")
}

// Widget returns the wrapped button.
func (b *Button) Widget() widget.Button { return b.w }

// Text returns the button label.
func (b *Button) Text(ctx context.Context) (string, error) {
	return b.bot.Handlers.Button.Text(ctx, b.w)
}

// IsEnabled reports whether the button is enabled.
func (b *Button) IsEnabled(ctx context.Context) (bool, error) {
	return b.bot.Handlers.Widget.IsEnabled(ctx, b.w)
}

// IsSelected reports the selection of a check, radio or toggle button.
func (b *Button) IsSelected(ctx context.Context) (bool, error) {
	return b.bot.Handlers.Button.IsSelected(ctx, b.w)
}

// Click clicks the button.
func (b *Button) Click(ctx context.Context) error {
	text, err := b.Text(ctx)
	if err != nil {
		return err
	}
	logging.Infof(ctx, "Click button %s", lookup.StripMnemonic(text))
	return b.bot.Handlers.Button.Click(ctx, b.w)
}
