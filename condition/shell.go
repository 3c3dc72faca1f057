// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package condition provides reusable wait conditions.
//
// Conditions are small and independently testable. Compound conditions are
// built with wait.And, wait.Or and wait.Not rather than written as one-off
// predicates.
package condition

import (
	"context"
	"fmt"

	"reddeer/display"
	"reddeer/errors"
	"reddeer/lookup"
	"reddeer/shell"
	"reddeer/wait"
	"reddeer/widget"
)

// ShellIsActive is satisfied when the shell titled title is the active shell
// of reg.
func ShellIsActive(reg *shell.Registry, title string) wait.Condition {
	return wait.Func(fmt.Sprintf("shell %q is active", title), func(ctx context.Context) (bool, error) {
		got, err := reg.ActiveTitle(ctx)
		if err != nil {
			return false, err
		}
		return got == title, nil
	})
}

// OpenedShell waits for a shell other than the one active at its creation
// to become active.
type OpenedShell struct {
	reg    *shell.Registry
	before widget.Shell
	opened widget.Shell
}

// ShellOpened returns a condition satisfied once a shell other than the one
// active now becomes active. Create it before the action that opens the
// shell.
func ShellOpened(ctx context.Context, reg *shell.Registry) (*OpenedShell, error) {
	before, err := reg.Active(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get active shell")
	}
	return &OpenedShell{reg: reg, before: before}, nil
}

func (c *OpenedShell) Test(ctx context.Context) (bool, error) {
	s, err := c.reg.Active(ctx)
	if err != nil {
		return false, err
	}
	if s == nil || s == c.before {
		return false, nil
	}
	c.opened = s
	return true, nil
}

func (c *OpenedShell) Description() string {
	return "a new shell is opened"
}

// Shell returns the newly opened shell once the condition has been satisfied.
func (c *OpenedShell) Shell() widget.Shell {
	return c.opened
}

// ShellIsAvailable is satisfied when desktop has a live shell titled title.
func ShellIsAvailable(d *display.Display, desktop widget.Desktop, title string) wait.Condition {
	return wait.Func(fmt.Sprintf("shell %q is available", title), func(ctx context.Context) (bool, error) {
		_, err := lookup.FindShell(ctx, d, desktop, lookup.WithText(title))
		var nf *lookup.NotFoundError
		if errors.As(err, &nf) {
			return false, nil
		}
		return err == nil, err
	})
}
