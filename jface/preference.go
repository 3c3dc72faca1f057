// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package jface provides page objects for the standard dialogs of a
// workbench: the preference dialog and wizard dialogs.
package jface

import (
	"context"

	"reddeer/condition"
	"reddeer/errors"
	"reddeer/internal/logging"
	"reddeer/lookup"
	"reddeer/swt"
	"reddeer/wait"
	"reddeer/widget"
)

// PreferenceDialogTitle is the usual title of the preference dialog.
const PreferenceDialogTitle = "Preferences"

// applyAndClose is the label newer workbenches use instead of "OK".
const applyAndClose = "Apply and Close"

// PreferenceDialog is a dialog with a tree of preference pages.
type PreferenceDialog struct {
	*swt.Shell
}

// FindPreferenceDialog waits for the preference dialog titled title.
func FindPreferenceDialog(ctx context.Context, bot *swt.Bot, title string) (*PreferenceDialog, error) {
	s, err := swt.FindShell(ctx, bot, title)
	if err != nil {
		return nil, err
	}
	return &PreferenceDialog{s}, nil
}

// Select selects the preference page at path in the page tree and waits
// briefly for the page title to show.
func (d *PreferenceDialog) Select(ctx context.Context, path ...string) error {
	if len(path) == 0 {
		return errors.New("preference page path is empty")
	}
	t, err := swt.FindTree(ctx, d.Bot(), d.Widget(), 0)
	if err != nil {
		return err
	}
	if err := t.Select(ctx, path...); err != nil {
		return err
	}
	shown := condition.WidgetIsFound[widget.Label](d.Bot().Display, d.Widget(),
		lookup.WithKind("Label"), lookup.WithText(path[len(path)-1]))
	opts := d.Bot().Options.WaitOptions(wait.TimePeriodShort)
	opts.IgnoreTimeout = true
	_, err = wait.Until(ctx, shown, opts)
	return err
}

// PageName returns the title of the current preference page.
func (d *PreferenceDialog) PageName(ctx context.Context) (string, error) {
	l, err := swt.FindLabel(ctx, d.Bot(), d.Widget(), 0)
	if err != nil {
		return "", err
	}
	return l.Text(ctx)
}

// finishButton returns the "Apply and Close" button if the dialog has one
// and the "OK" button otherwise.
func (d *PreferenceDialog) finishButton(ctx context.Context) (*swt.Button, error) {
	ok, err := swt.Exists[widget.Button](ctx, d.Bot(), d.Widget(),
		lookup.WithMnemonicText(applyAndClose), lookup.WithStyle(widget.StylePush))
	if err != nil {
		return nil, err
	}
	if ok {
		return swt.FindPushButton(ctx, d.Bot(), d.Widget(), 0, applyAndClose)
	}
	return swt.FindPushButton(ctx, d.Bot(), d.Widget(), 0, "OK")
}

// CanFinish reports whether the button confirming the dialog is enabled.
func (d *PreferenceDialog) CanFinish(ctx context.Context) (bool, error) {
	b, err := d.finishButton(ctx)
	if err != nil {
		return false, err
	}
	return b.IsEnabled(ctx)
}

// OK confirms the dialog and waits until it closes.
func (d *PreferenceDialog) OK(ctx context.Context) error {
	b, err := d.finishButton(ctx)
	if err != nil {
		return err
	}
	if err := b.Click(ctx); err != nil {
		return err
	}
	return d.WaitClosed(ctx)
}

// Cancel cancels the dialog and waits until it closes.
func (d *PreferenceDialog) Cancel(ctx context.Context) error {
	logging.Info(ctx, "Cancel preference dialog")
	return clickAndWaitClosed(ctx, d.Shell, "Cancel")
}

// clickAndWaitClosed clicks the push button labeled text in s and waits
// until s closes.
func clickAndWaitClosed(ctx context.Context, s *swt.Shell, text string) error {
	b, err := swt.FindPushButton(ctx, s.Bot(), s.Widget(), 0, text)
	if err != nil {
		return err
	}
	if err := b.Click(ctx); err != nil {
		return err
	}
	return s.WaitClosed(ctx)
}
