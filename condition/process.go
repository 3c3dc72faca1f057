// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package condition

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/process"

	"reddeer/errors"
	"reddeer/wait"
)

// ProcessIsRunning is satisfied while a process named name exists in the
// process table.
func ProcessIsRunning(name string) wait.Condition {
	return wait.Func(fmt.Sprintf("process %q is running", name), func(ctx context.Context) (bool, error) {
		procs, err := process.ProcessesWithContext(ctx)
		if err != nil {
			return false, errors.Wrap(err, "failed to list processes")
		}
		for _, p := range procs {
			// Processes may exit while being inspected.
			n, err := p.NameWithContext(ctx)
			if err != nil {
				continue
			}
			if n == name {
				return true, nil
			}
		}
		return false, nil
	})
}

// PIDIsRunning is satisfied while the process with the given pid exists.
func PIDIsRunning(pid int32) wait.Condition {
	return wait.Func(fmt.Sprintf("process %d is running", pid), func(ctx context.Context) (bool, error) {
		ok, err := process.PidExistsWithContext(ctx, pid)
		if err != nil {
			return false, errors.Wrapf(err, "failed to check process %d", pid)
		}
		return ok, nil
	})
}
