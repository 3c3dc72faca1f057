// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package condition

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/exp/slices"

	"reddeer/wait"
)

// Job is a background job of the application under test.
type Job struct {
	Name string
	// System is true for jobs not started on behalf of the user.
	System bool
}

// JobManager lists the running background jobs. Implementations may also
// implement wait.Notifier to signal job changes.
type JobManager interface {
	Jobs(ctx context.Context) ([]Job, error)
}

// JobIsRunning is satisfied while a job whose name contains name runs.
// System jobs are considered only if includeSystem is true.
func JobIsRunning(jm JobManager, name string, includeSystem bool) wait.Condition {
	return &jobIsRunning{jm: jm, name: name, includeSystem: includeSystem}
}

type jobIsRunning struct {
	jm            JobManager
	name          string
	includeSystem bool
}

func (c *jobIsRunning) Test(ctx context.Context) (bool, error) {
	jobs, err := c.jm.Jobs(ctx)
	if err != nil {
		return false, err
	}
	for _, j := range jobs {
		if j.System && !c.includeSystem {
			continue
		}
		if strings.Contains(j.Name, c.name) {
			return true, nil
		}
	}
	return false, nil
}

func (c *jobIsRunning) Description() string {
	return fmt.Sprintf("job containing %q is running", c.name)
}

func (c *jobIsRunning) Changed(done <-chan struct{}) <-chan struct{} {
	if n, ok := c.jm.(wait.Notifier); ok {
		return n.Changed(done)
	}
	return nil
}

// JobTable is an in-memory JobManager fed by the application under test.
// It is safe for concurrent use.
type JobTable struct {
	mu      sync.Mutex
	jobs    map[int]Job
	nextID  int
	changed chan struct{}
}

// NewJobTable returns an empty JobTable.
func NewJobTable() *JobTable {
	return &JobTable{jobs: make(map[int]Job), changed: make(chan struct{}, 1)}
}

// Start registers a running job. The returned function marks it finished
// and may be called more than once.
func (t *JobTable) Start(j Job) (done func()) {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.jobs[id] = j
	t.mu.Unlock()
	t.signal()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.jobs, id)
			t.mu.Unlock()
			t.signal()
		})
	}
}

// Jobs implements JobManager. Jobs are returned in start order.
func (t *JobTable) Jobs(ctx context.Context) ([]Job, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make([]int, 0, len(t.jobs))
	for id := range t.jobs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]Job, len(ids))
	for i, id := range ids {
		out[i] = t.jobs[id]
	}
	return out, nil
}

// Changed implements wait.Notifier.
func (t *JobTable) Changed(done <-chan struct{}) <-chan struct{} {
	return t.changed
}

func (t *JobTable) signal() {
	select {
	case t.changed <- struct{}{}:
	default:
	}
}

// RunStatus reports the progress of a test run as shown by the test runner
// view, e.g. "3/5" or "5/5 (1 skipped)".
type RunStatus interface {
	RunStatus(ctx context.Context) (string, error)
}

// RunStatusFunc adapts a function to RunStatus.
type RunStatusFunc func(ctx context.Context) (string, error)

// RunStatus implements RunStatus.
func (f RunStatusFunc) RunStatus(ctx context.Context) (string, error) { return f(ctx) }

var runStatusRe = regexp.MustCompile(`^([0-9]+)/([0-9]+).*`)

// RunCountComplete is satisfied when status reports N/M with N == M > 0.
func RunCountComplete(status RunStatus) wait.Condition {
	return wait.Func("all tests of the run have been executed", func(ctx context.Context) (bool, error) {
		s, err := status.RunStatus(ctx)
		if err != nil {
			return false, err
		}
		m := runStatusRe.FindStringSubmatch(s)
		if m == nil {
			return false, nil
		}
		done, err := strconv.Atoi(m[1])
		if err != nil {
			return false, nil
		}
		all, err := strconv.Atoi(m[2])
		if err != nil {
			return false, nil
		}
		return done > 0 && done == all, nil
	})
}

// testRunJobName is the job name fragment of test runner jobs.
const testRunJobName = "JUnit"

// TestRunHasFinished is satisfied when every test of the run has been
// executed and no test runner job is running any more.
func TestRunHasFinished(status RunStatus, jm JobManager) wait.Condition {
	return &named{
		Condition: wait.And(RunCountComplete(status), wait.Not(JobIsRunning(jm, testRunJobName, false))),
		desc:      "test run has finished",
	}
}

// named overrides the description of a condition.
type named struct {
	wait.Condition
	desc string
}

func (c *named) Description() string { return c.desc }

func (c *named) Changed(done <-chan struct{}) <-chan struct{} {
	if n, ok := c.Condition.(wait.Notifier); ok {
		return n.Changed(done)
	}
	return nil
}
