// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package handler

import (
	"context"

	"reddeer/display"
	"reddeer/event"
	"reddeer/internal/logging"
	"reddeer/widget"
)

// ShellHandler operates on widget.Shell.
type ShellHandler struct {
	base
}

// NewShellHandler returns a ShellHandler.
func NewShellHandler(syn *event.Synthesizer) *ShellHandler {
	return &ShellHandler{newBase(syn)}
}

// Title returns the title of s.
func (h *ShellHandler) Title(ctx context.Context, s widget.Shell) (string, error) {
	return read(ctx, h.d, s, "get title", func(s widget.Shell) string { return s.Text() })
}

// IsAvailable reports whether s is alive and visible. It never returns a
// *widget.StaleWidgetError.
func (h *ShellHandler) IsAvailable(ctx context.Context, s widget.Shell) (bool, error) {
	return display.SyncExecResult(ctx, h.d, func(ctx context.Context) (bool, error) {
		return !s.IsDisposed() && s.IsVisible(), nil
	})
}

// Activate sends an activation event to s.
func (h *ShellHandler) Activate(ctx context.Context, s widget.Shell) error {
	return h.syn.NotifyWidget(ctx, widget.EventActivate, widget.Event{}, s)
}

// Close asks s to close. Close listeners of s may veto, in which case s stays
// open.
func (h *ShellHandler) Close(ctx context.Context, s widget.Shell) error {
	return h.d.SyncExec(ctx, func(ctx context.Context) error {
		if err := checkLive(s, "close"); err != nil {
			return err
		}
		logging.Debugf(ctx, "Closing shell %q", s.Text())
		s.Close()
		return nil
	})
}
