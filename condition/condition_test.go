// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package condition_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"code.cloudfoundry.org/clock/fakeclock"
	"golang.org/x/sync/errgroup"

	"reddeer/condition"
	"reddeer/errors"
	"reddeer/internal/uitest"
	"reddeer/lookup"
	"reddeer/shell"
	"reddeer/testutil"
	"reddeer/wait"
	"reddeer/widget"
)

// quick waits briefly with the wall clock.
var quick = &wait.Options{Timeout: 5 * time.Second, Interval: time.Millisecond}

// once tests a condition a single time.
var once = &wait.Options{Timeout: 0, IgnoreTimeout: true}

// untilNotified waits for c with a clock that never advances, so that only a
// notification from c can end the wait.
func untilNotified(t *testing.T, c wait.Condition) {
	t.Helper()
	opts := &wait.Options{Timeout: time.Minute, Clock: fakeclock.NewFakeClock(time.Unix(0, 0))}
	done := make(chan error, 1)
	go func() {
		_, err := wait.Until(context.Background(), c, opts)
		done <- err
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Error("Until failed: ", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatalf("Wait for %s was not woken by a notification", c.Description())
	}
}

func TestShellConditions(t *testing.T) {
	env := uitest.NewEnv(t)
	ctx := context.Background()
	reg := shell.NewRegistry(env.Display)
	if _, err := reg.Install(ctx, env.Desktop, "Workbench"); err != nil {
		t.Fatal("Install failed: ", err)
	}
	var wb *uitest.Shell
	env.Do(t, func() {
		wb = env.Desktop.NewShell("Workbench")
		wb.Activate()
	})

	opened, err := condition.ShellOpened(ctx, reg)
	if err != nil {
		t.Fatal("ShellOpened failed: ", err)
	}
	if ok, err := wait.Until(ctx, opened, once); err != nil || ok {
		t.Errorf("ShellOpened before opening = (%v, %v); want (false, nil)", ok, err)
	}
	if ok, _ := wait.Until(ctx, condition.ShellIsAvailable(env.Display, env.Desktop, "Preferences"), once); ok {
		t.Error("ShellIsAvailable satisfied before the shell exists")
	}

	var dlg *uitest.Shell
	env.Do(t, func() {
		dlg = env.Desktop.NewShell("Preferences")
		dlg.Activate()
	})

	for _, c := range []wait.Condition{
		opened,
		condition.ShellIsActive(reg, "Preferences"),
		condition.ShellIsAvailable(env.Display, env.Desktop, "Preferences"),
	} {
		if _, err := wait.Until(ctx, c, quick); err != nil {
			t.Errorf("Waiting until %s failed: %v", c.Description(), err)
		}
	}
	if opened.Shell() != widget.Shell(dlg) {
		t.Errorf("ShellOpened recorded %v; want the preferences shell", opened.Shell())
	}

	env.Do(t, func() { dlg.Close() })
	if _, err := wait.While(ctx, condition.ShellIsAvailable(env.Display, env.Desktop, "Preferences"), quick); err != nil {
		t.Error("Waiting for the closed shell to go away failed: ", err)
	}
	if ok, _ := wait.Until(ctx, condition.ShellIsActive(reg, "Preferences"), once); ok {
		t.Error("Closed shell is still active")
	}
}

func TestWidgetIsFound(t *testing.T) {
	env := uitest.NewEnv(t)
	ctx := context.Background()
	var s *uitest.Shell
	env.Do(t, func() { s = env.Desktop.NewShell("Wizard") })

	c := condition.WidgetIsFound[widget.Button](env.Display, s, lookup.WithMnemonicText("Finish"))
	if ok, err := wait.Until(ctx, c, once); err != nil || ok {
		t.Errorf("WidgetIsFound before creation = (%v, %v); want (false, nil)", ok, err)
	}
	var b *uitest.Button
	env.Do(t, func() { b = uitest.NewButton(&s.Composite, "&Finish", widget.StylePush) })
	if _, err := wait.Until(ctx, c, quick); err != nil {
		t.Error("WidgetIsFound failed: ", err)
	}

	enabled := condition.WidgetIsEnabled(env.Display, b)
	if ok, _ := wait.Until(ctx, enabled, once); !ok {
		t.Error("WidgetIsEnabled not satisfied for an enabled button")
	}
	env.Do(t, func() { b.Dispose() })
	if ok, err := wait.Until(ctx, c, once); err != nil || ok {
		t.Errorf("WidgetIsFound after dispose = (%v, %v); want (false, nil)", ok, err)
	}
	if ok, _ := wait.Until(ctx, enabled, once); ok {
		t.Error("WidgetIsEnabled satisfied for a disposed button")
	}
}

func TestJobIsRunning(t *testing.T) {
	ctx := context.Background()
	jt := condition.NewJobTable()
	user := condition.JobIsRunning(jt, "Build", false)
	sys := condition.JobIsRunning(jt, "Build", true)

	doneUser := jt.Start(condition.Job{Name: "Building workspace"})
	doneSys := jt.Start(condition.Job{Name: "Build index", System: true})
	for _, tc := range []struct {
		name string
		c    wait.Condition
		want bool
	}{
		{"UserJob", user, true},
		{"SystemJob", sys, true},
	} {
		if got, _ := tc.c.Test(ctx); got != tc.want {
			t.Errorf("%s: Test = %v; want %v", tc.name, got, tc.want)
		}
	}

	doneUser()
	doneUser()
	if got, _ := user.Test(ctx); got {
		t.Error("JobIsRunning ignoring system jobs satisfied by a system job")
	}
	if got, _ := sys.Test(ctx); !got {
		t.Error("JobIsRunning including system jobs not satisfied by a system job")
	}
	doneSys()
	jobs, err := jt.Jobs(ctx)
	if err != nil || len(jobs) != 0 {
		t.Errorf("Jobs = (%v, %v); want none", jobs, err)
	}
}

func TestTestRunHasFinished(t *testing.T) {
	ctx := context.Background()
	for _, tc := range []struct {
		status  string
		running bool
		want    bool
	}{
		{"5/5", false, true},
		{"5/5 (1 skipped)", false, true},
		{"5/5", true, false},
		{"3/5", false, false},
		{"0/0", false, false},
		{"Starting...", false, false},
		{"", false, false},
	} {
		jt := condition.NewJobTable()
		if tc.running {
			jt.Start(condition.Job{Name: "JUnit test run"})
		}
		status := condition.RunStatusFunc(func(ctx context.Context) (string, error) { return tc.status, nil })
		c := condition.TestRunHasFinished(status, jt)
		got, err := c.Test(ctx)
		if err != nil {
			t.Errorf("status %q, running %v: Test failed: %v", tc.status, tc.running, err)
		} else if got != tc.want {
			t.Errorf("status %q, running %v: Test = %v; want %v", tc.status, tc.running, got, tc.want)
		}
	}
}

func TestTestRunHasFinishedWakesOnJobEnd(t *testing.T) {
	jt := condition.NewJobTable()
	done := jt.Start(condition.Job{Name: "JUnit test run"})
	status := condition.RunStatusFunc(func(ctx context.Context) (string, error) { return "2/2", nil })
	c := condition.TestRunHasFinished(status, jt)
	if d := c.Description(); d != "test run has finished" {
		t.Errorf("Description = %q", d)
	}
	if _, ok := c.(wait.Notifier); !ok {
		t.Fatal("TestRunHasFinished does not forward job notifications")
	}

	go func() {
		time.Sleep(10 * time.Millisecond)
		done()
	}()
	untilNotified(t, c)
}

func TestCompoundJobWaitsKeepNotifications(t *testing.T) {
	ctx := context.Background()
	jt := condition.NewJobTable()
	jt.Start(condition.Job{Name: "A"})
	c := wait.And(condition.JobIsRunning(jt, "A", false), wait.Not(condition.JobIsRunning(jt, "B", false)))

	before := runtime.NumGoroutine()
	for i := 0; i < 50; i++ {
		if ok, err := wait.Until(ctx, c, once); err != nil || !ok {
			t.Fatalf("Until = (%v, %v); want (true, nil)", ok, err)
		}
	}
	deadline := time.Now().Add(10 * time.Second)
	for runtime.NumGoroutine() > before && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if n := runtime.NumGoroutine(); n > before {
		t.Fatalf("%d goroutines running after compound waits; want at most %d", n, before)
	}

	// Later waits on the same table must still receive its notifications.
	go func() {
		time.Sleep(10 * time.Millisecond)
		jt.Start(condition.Job{Name: "C"})
	}()
	untilNotified(t, condition.JobIsRunning(jt, "C", false))
}

func TestRunStatusError(t *testing.T) {
	wantErr := errors.New("view not open")
	status := condition.RunStatusFunc(func(ctx context.Context) (string, error) { return "", wantErr })
	_, err := wait.Until(context.Background(), condition.RunCountComplete(status), quick)
	if err != wantErr {
		t.Errorf("Until returned %v; want %v", err, wantErr)
	}
}

func TestProcessConditions(t *testing.T) {
	ctx := context.Background()
	if ok, err := wait.Until(ctx, condition.PIDIsRunning(int32(os.Getpid())), once); err != nil || !ok {
		t.Errorf("PIDIsRunning(self) = (%v, %v); want (true, nil)", ok, err)
	}
	if ok, err := wait.Until(ctx, condition.ProcessIsRunning("reddeer-no-such-process"), once); err != nil || ok {
		t.Errorf("ProcessIsRunning for a missing process = (%v, %v); want (false, nil)", ok, err)
	}
}

func TestFileExists(t *testing.T) {
	ctx := context.Background()
	dir := testutil.TempDir(t)
	path := filepath.Join(dir, "ready")

	c, err := condition.NewFileExists(ctx, path)
	if err != nil {
		t.Fatal("NewFileExists failed: ", err)
	}
	defer c.Close()

	if ok, err := c.Test(ctx); err != nil || ok {
		t.Fatalf("Test before creation = (%v, %v); want (false, nil)", ok, err)
	}
	go func() {
		time.Sleep(10 * time.Millisecond)
		testutil.WriteFiles(dir, map[string]string{"ready": "ok"})
	}()
	if _, err := wait.Until(ctx, c, &wait.Options{Timeout: 30 * time.Second, Interval: 100 * time.Millisecond}); err != nil {
		t.Error("Until failed: ", err)
	}
	if err := c.Close(); err != nil {
		t.Error("Close failed: ", err)
	}
}

func TestFileExistsConcurrentClose(t *testing.T) {
	ctx := context.Background()
	c, err := condition.NewFileExists(ctx, filepath.Join(testutil.TempDir(t), "ready"))
	if err != nil {
		t.Fatal("NewFileExists failed: ", err)
	}
	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(c.Close)
	}
	if err := g.Wait(); err != nil {
		t.Error("Close failed: ", err)
	}
	if _, ok := <-c.Changed(nil); ok {
		t.Error("Changed channel still open after Close")
	}
}
