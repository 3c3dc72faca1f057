// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package handler

import (
	"context"

	"reddeer/display"
	"reddeer/errors"
	"reddeer/event"
	"reddeer/widget"
)

// WidgetHandler provides operations common to all controls.
type WidgetHandler struct {
	base
}

// NewWidgetHandler returns a WidgetHandler.
func NewWidgetHandler(syn *event.Synthesizer) *WidgetHandler {
	return &WidgetHandler{newBase(syn)}
}

// IsEnabled reports whether c accepts input.
func (h *WidgetHandler) IsEnabled(ctx context.Context, c widget.Control) (bool, error) {
	return read(ctx, h.d, c, "is enabled", func(c widget.Control) bool { return c.IsEnabled() })
}

// IsVisible reports whether c is shown.
func (h *WidgetHandler) IsVisible(ctx context.Context, c widget.Control) (bool, error) {
	return read(ctx, h.d, c, "is visible", func(c widget.Control) bool { return c.IsVisible() })
}

// Kind returns the toolkit kind of w.
func (h *WidgetHandler) Kind(ctx context.Context, w widget.Widget) (string, error) {
	return display.SyncExecResult(ctx, h.d, func(ctx context.Context) (string, error) {
		return w.Kind(), nil
	})
}

// Text returns the text of w. w must implement widget.Texter.
func (h *WidgetHandler) Text(ctx context.Context, w widget.Widget) (string, error) {
	return display.SyncExecResult(ctx, h.d, func(ctx context.Context) (string, error) {
		if err := checkLive(w, "get text"); err != nil {
			return "", err
		}
		t, ok := w.(widget.Texter)
		if !ok {
			return "", errors.Errorf("%s has no text", w.Kind())
		}
		return t.Text(), nil
	})
}

// IsDisposed reports whether w has been disposed.
func (h *WidgetHandler) IsDisposed(ctx context.Context, w widget.Widget) (bool, error) {
	return display.SyncExecResult(ctx, h.d, func(ctx context.Context) (bool, error) {
		return w.IsDisposed(), nil
	})
}
