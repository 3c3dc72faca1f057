// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package jface

import (
	"context"

	"reddeer/swt"
	"reddeer/wait"
)

const (
	nextLabel = "Next >"
	backLabel = "< Back"
)

// WizardDialog is a dialog stepping through wizard pages.
type WizardDialog struct {
	*swt.Shell
}

// FindWizardDialog waits for the wizard dialog titled title.
func FindWizardDialog(ctx context.Context, bot *swt.Bot, title string) (*WizardDialog, error) {
	s, err := swt.FindShell(ctx, bot, title)
	if err != nil {
		return nil, err
	}
	return &WizardDialog{s}, nil
}

func (d *WizardDialog) button(ctx context.Context, text string) (*swt.Button, error) {
	return swt.FindPushButton(ctx, d.Bot(), d.Widget(), 0, text)
}

// Next goes to the next wizard page.
func (d *WizardDialog) Next(ctx context.Context) error {
	b, err := d.button(ctx, nextLabel)
	if err != nil {
		return err
	}
	return b.Click(ctx)
}

// Back goes to the previous wizard page.
func (d *WizardDialog) Back(ctx context.Context) error {
	b, err := d.button(ctx, backLabel)
	if err != nil {
		return err
	}
	return b.Click(ctx)
}

// IsNextEnabled reports whether the wizard can advance.
func (d *WizardDialog) IsNextEnabled(ctx context.Context) (bool, error) {
	b, err := d.button(ctx, nextLabel)
	if err != nil {
		return false, err
	}
	return b.IsEnabled(ctx)
}

// CanFinish reports whether the Finish button is enabled.
func (d *WizardDialog) CanFinish(ctx context.Context) (bool, error) {
	b, err := swt.FindFinishButton(ctx, d.Bot(), d.Widget(), 0)
	if err != nil {
		return false, err
	}
	return b.IsEnabled(ctx)
}

// Finish finishes the wizard and waits until the dialog closes. Wizards
// often run work on finish, so the wait is bounded by the LONG period.
func (d *WizardDialog) Finish(ctx context.Context) error {
	b, err := swt.FindFinishButton(ctx, d.Bot(), d.Widget(), 0)
	if err != nil {
		return err
	}
	if err := b.Click(ctx); err != nil {
		return err
	}
	return d.Bot().WaitWhile(ctx, wait.Func("wizard is available", d.IsAvailable), wait.TimePeriodLong)
}

// Cancel cancels the wizard and waits until the dialog closes.
func (d *WizardDialog) Cancel(ctx context.Context) error {
	return clickAndWaitClosed(ctx, d.Shell, "Cancel")
}
