// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package condition

import (
	"context"
	"fmt"
	"strings"

	"reddeer/display"
	"reddeer/errors"
	"reddeer/lookup"
	"reddeer/wait"
	"reddeer/widget"
)

// WidgetIsFound is satisfied when a live widget of type T matching ms exists
// under root.
func WidgetIsFound[T widget.Widget](d *display.Display, root widget.Composite, ms ...lookup.Matcher) wait.Condition {
	descs := make([]string, len(ms))
	for i, m := range ms {
		descs[i] = m.String()
	}
	desc := fmt.Sprintf("widget matching [%s] is found", strings.Join(descs, ", "))
	return wait.Func(desc, func(ctx context.Context) (bool, error) {
		_, err := lookup.Find[T](ctx, d, root, ms...)
		var nf *lookup.NotFoundError
		var se *widget.StaleWidgetError
		if errors.As(err, &nf) || errors.As(err, &se) {
			return false, nil
		}
		return err == nil, err
	})
}

// WidgetIsEnabled is satisfied when c is alive and enabled.
func WidgetIsEnabled(d *display.Display, c widget.Control) wait.Condition {
	return wait.Func("control is enabled", func(ctx context.Context) (bool, error) {
		return display.SyncExecResult(ctx, d, func(ctx context.Context) (bool, error) {
			return !c.IsDisposed() && c.IsEnabled(), nil
		})
	})
}
