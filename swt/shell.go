// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package swt

import (
	"context"

	"reddeer/condition"
	"reddeer/lookup"
	"reddeer/wait"
	"reddeer/widget"
)

// Shell is a top-level window.
type Shell struct {
	bot *Bot
	w   widget.Shell
}

// FindShell waits for a shell titled title and returns it.
func FindShell(ctx context.Context, bot *Bot, title string) (*Shell, error) {
	if err := bot.WaitUntil(ctx, condition.ShellIsAvailable(bot.Display, bot.Desktop, title), wait.TimePeriodDefault); err != nil {
		return nil, err
	}
	w, err := lookup.FindShell(ctx, bot.Display, bot.Desktop, lookup.WithText(title))
	if err != nil {
		return nil, err
	}
	return &Shell{bot, w}, nil
}

// NewShell wraps an already located shell.
func NewShell(bot *Bot, w widget.Shell) *Shell {
	return &Shell{bot, w}
}

// Widget returns the wrapped shell.
func (s *Shell) Widget() widget.Shell { return s.w }

// Bot returns the bot s was located with.
func (s *Shell) Bot() *Bot { return s.bot }

// Title returns the shell title.
func (s *Shell) Title(ctx context.Context) (string, error) {
	return s.bot.Handlers.Shell.Title(ctx, s.w)
}

// IsAvailable reports whether the shell is alive and visible.
func (s *Shell) IsAvailable(ctx context.Context) (bool, error) {
	return s.bot.Handlers.Shell.IsAvailable(ctx, s.w)
}

// Activate brings the shell to front.
func (s *Shell) Activate(ctx context.Context) error {
	return s.bot.Handlers.Shell.Activate(ctx, s.w)
}

// Close closes the shell and waits until it is gone.
func (s *Shell) Close(ctx context.Context) error {
	if err := s.bot.Handlers.Shell.Close(ctx, s.w); err != nil {
		return err
	}
	return s.WaitClosed(ctx)
}

// WaitClosed waits until the shell is no longer available.
func (s *Shell) WaitClosed(ctx context.Context) error {
	return s.bot.WaitWhile(ctx, wait.Func("shell is available", s.IsAvailable), wait.TimePeriodDefault)
}
