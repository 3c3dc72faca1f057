// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package shell_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"reddeer/internal/uitest"
	"reddeer/shell"
	"reddeer/widget"
)

func setUp(t *testing.T, workbench string) (*uitest.Env, *shell.Registry) {
	t.Helper()
	env := uitest.NewEnv(t)
	reg := shell.NewRegistry(env.Display)
	if _, err := reg.Install(context.Background(), env.Desktop, workbench); err != nil {
		t.Fatal("Install failed: ", err)
	}
	return env, reg
}

func activeTitle(t *testing.T, reg *shell.Registry) string {
	t.Helper()
	title, err := reg.ActiveTitle(context.Background())
	if err != nil {
		t.Fatal("ActiveTitle failed: ", err)
	}
	return title
}

func TestActivation(t *testing.T) {
	env, reg := setUp(t, "")
	if got := activeTitle(t, reg); got != "" {
		t.Errorf("Initial active shell = %q; want none", got)
	}

	var dlg *uitest.Shell
	env.Do(t, func() {
		dlg = env.Desktop.NewShell("New Project")
		dlg.Activate()
	})
	if got := activeTitle(t, reg); got != "New Project" {
		t.Errorf("Active shell = %q; want %q", got, "New Project")
	}
	s, err := reg.Active(context.Background())
	if err != nil {
		t.Fatal("Active failed: ", err)
	}
	if s != widget.Shell(dlg) {
		t.Errorf("Active returned %v; want the activated shell", s)
	}
}

func TestIgnoresWorkbenchAndReactivation(t *testing.T) {
	env, reg := setUp(t, "Eclipse")
	env.Do(t, func() {
		wb := env.Desktop.NewShell("Eclipse")
		dlg := env.Desktop.NewShell("Preferences")
		dlg.Activate()
		dlg.Activate()
		wb.Activate()
	})
	if got := activeTitle(t, reg); got != "Preferences" {
		t.Errorf("Active shell = %q; want %q", got, "Preferences")
	}
	acts, err := reg.Actions(context.Background())
	if err != nil {
		t.Fatal("Actions failed: ", err)
	}
	if diff := cmp.Diff(acts, []shell.Action{{Title: "Preferences"}}); diff != "" {
		t.Errorf("Actions mismatch (-got +want):\n%s", diff)
	}
}

func TestCloseClearsActive(t *testing.T) {
	env, reg := setUp(t, "")
	env.Do(t, func() {
		dlg := env.Desktop.NewShell("About")
		dlg.Activate()
		dlg.Close()
	})
	if got := activeTitle(t, reg); got != "" {
		t.Errorf("Active shell after close = %q; want none", got)
	}
	acts, err := reg.Actions(context.Background())
	if err != nil {
		t.Fatal("Actions failed: ", err)
	}
	want := []shell.Action{{Title: "About"}, {Title: "About", Closed: true}}
	if diff := cmp.Diff(acts, want); diff != "" {
		t.Errorf("Actions mismatch (-got +want):\n%s", diff)
	}
}

func TestDisposeClearsActive(t *testing.T) {
	env, reg := setUp(t, "")
	env.Do(t, func() {
		dlg := env.Desktop.NewShell("Progress")
		dlg.Activate()
		dlg.Dispose()
	})
	if got := activeTitle(t, reg); got != "" {
		t.Errorf("Active shell after dispose = %q; want none", got)
	}
}

func TestSynthesizedActivation(t *testing.T) {
	env, reg := setUp(t, "")
	var dlg *uitest.Shell
	env.Do(t, func() { dlg = env.Desktop.NewShell("Synthesized") })
	if err := env.Synth.Notify(context.Background(), widget.EventActivate, dlg, 0, 0, 0); err != nil {
		t.Fatal("Notify failed: ", err)
	}
	if got := activeTitle(t, reg); got != "Synthesized" {
		t.Errorf("Active shell = %q; want %q", got, "Synthesized")
	}
	if err := reg.Reset(context.Background()); err != nil {
		t.Fatal("Reset failed: ", err)
	}
	if got := activeTitle(t, reg); got != "" {
		t.Errorf("Active shell after reset = %q; want none", got)
	}
}
