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

// ButtonHandler operates on widget.Button.
type ButtonHandler struct {
	base
}

// NewButtonHandler returns a ButtonHandler.
func NewButtonHandler(syn *event.Synthesizer) *ButtonHandler {
	return &ButtonHandler{newBase(syn)}
}

// Text returns the label of b.
func (h *ButtonHandler) Text(ctx context.Context, b widget.Button) (string, error) {
	return read(ctx, h.d, b, "get text", func(b widget.Button) string { return b.Text() })
}

// IsSelected returns the selection state of a check, radio or toggle button.
func (h *ButtonHandler) IsSelected(ctx context.Context, b widget.Button) (bool, error) {
	return read(ctx, h.d, b, "get selection", func(b widget.Button) bool { return b.Selection() })
}

// Click clicks b. b must be enabled and visible.
//
// Check and toggle buttons flip their selection and radio buttons become
// selected, deselecting the other radio buttons of the same parent, before
// the click notifications are sent.
func (h *ButtonHandler) Click(ctx context.Context, b widget.Button) error {
	return h.d.SyncExec(ctx, func(ctx context.Context) error {
		if err := checkLive(b, "click"); err != nil {
			return err
		}
		if !b.IsEnabled() {
			return errors.Errorf("cannot click %s %q: it is disabled", b.Kind(), b.Text())
		}
		if !b.IsVisible() {
			return errors.Errorf("cannot click %s %q: it is not visible", b.Kind(), b.Text())
		}
		st := b.Style()
		switch {
		case st.Has(widget.StyleRadio):
			deselectRadioSiblings(b)
			b.SetSelection(true)
		case st.Has(widget.StyleCheck), st.Has(widget.StyleToggle):
			b.SetSelection(!b.Selection())
		}
		logging.Debugf(ctx, "Clicking %s %q", b.Kind(), b.Text())
		return h.syn.SendClickNotifications(ctx, b)
	})
}

func deselectRadioSiblings(b widget.Button) {
	p := b.Parent()
	if p == nil {
		return
	}
	for _, c := range p.Children() {
		o, ok := c.(widget.Button)
		if !ok || o == b || o.IsDisposed() || !o.Style().Has(widget.StyleRadio) {
			continue
		}
		o.SetSelection(false)
	}
}
