// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/subcommands"

	"reddeer/config"
	"reddeer/testutil"
)

// execute parses args with the flags of cmd and runs it.
func execute(ctx context.Context, t *testing.T, cmd subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet("", flag.ContinueOnError)
	cmd.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatal(err)
	}
	return cmd.Execute(ctx, f)
}

func TestKindsCmd(t *testing.T) {
	var buf bytes.Buffer
	if st := execute(context.Background(), t, newKindsCmd(&buf)); st != subcommands.ExitSuccess {
		t.Fatalf("kinds exited with %v", st)
	}
	if diff := cmp.Diff(buf.String(), "cleanWorkspace\nprocess\nserver\n"); diff != "" {
		t.Errorf("Output mismatch (-got +want):\n%s", diff)
	}
	if st := execute(context.Background(), t, newKindsCmd(&buf), "extra"); st != subcommands.ExitUsageError {
		t.Errorf("kinds with arguments exited with %v; want %v", st, subcommands.ExitUsageError)
	}
}

func TestConfigCmd(t *testing.T) {
	dir := testutil.TempDir(t)
	if err := testutil.WriteFiles(dir, map[string]string{"reddeer.yaml": "timePeriodFactor: 3\npollInterval: 1s\n"}); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	st := execute(context.Background(), t, newConfigCmd(&buf), "-config", filepath.Join(dir, "reddeer.yaml"), "-pollinterval=5ms")
	if st != subcommands.ExitSuccess {
		t.Fatalf("config exited with %v", st)
	}
	got := &config.Options{}
	if err := got.Parse(buf.Bytes()); err != nil {
		t.Fatalf("Output %q is not valid: %v", buf.String(), err)
	}
	want := config.Default()
	want.TimePeriodFactor = 3
	want.PollInterval = 5 * time.Millisecond
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Options mismatch (-got +want):\n%s", diff)
	}

	if st := execute(context.Background(), t, newConfigCmd(&buf), "-timeperiodfactor=0"); st != subcommands.ExitUsageError {
		t.Errorf("config with a zero factor exited with %v; want %v", st, subcommands.ExitUsageError)
	}
}

func TestEnvCmd(t *testing.T) {
	dir := testutil.TempDir(t)
	root := filepath.Join(dir, "root")
	if err := testutil.WriteFiles(dir, map[string]string{
		"reqs.yaml": "requirements:\n- kind: cleanWorkspace\n  params:\n    root: " + root + "\n",
	}); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		// Wait until the workspace and its lock exist, then interrupt.
		for {
			if ents, err := os.ReadDir(root); err == nil && len(ents) == 2 {
				cancel()
				return
			}
			time.Sleep(time.Millisecond)
		}
	}()

	if st := execute(ctx, t, newEnvCmd(), filepath.Join(dir, "reqs.yaml")); st != subcommands.ExitSuccess {
		t.Fatalf("env exited with %v", st)
	}
	if ents, err := os.ReadDir(root); err != nil || len(ents) != 0 {
		t.Errorf("Root after env has %d entries (%v); want none", len(ents), err)
	}
}

func TestEnvCmdUsage(t *testing.T) {
	if st := execute(context.Background(), t, newEnvCmd()); st != subcommands.ExitUsageError {
		t.Errorf("env without a file exited with %v; want %v", st, subcommands.ExitUsageError)
	}
	if st := execute(context.Background(), t, newEnvCmd(), "a.yaml", "b.yaml"); st != subcommands.ExitUsageError {
		t.Errorf("env with two files exited with %v; want %v", st, subcommands.ExitUsageError)
	}
}
