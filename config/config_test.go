// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package config

import (
	"flag"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"reddeer/requirement"
	"reddeer/testutil"
	"reddeer/wait"
)

func TestDefault(t *testing.T) {
	o := Default()
	if err := o.Validate(); err != nil {
		t.Fatal("Default options are invalid: ", err)
	}
	if got := o.Period(wait.TimePeriodDefault); got != 10*time.Second {
		t.Errorf("Period(DEFAULT) = %v; want 10s", got)
	}
}

func TestLoadThenFlags(t *testing.T) {
	dir := testutil.TempDir(t)
	if err := testutil.WriteFiles(dir, map[string]string{"reddeer.yaml": `
timePeriodFactor: 2
pollInterval: 100ms
requirements: reqs.yaml
`}); err != nil {
		t.Fatal(err)
	}

	o := Default()
	if err := o.Load(filepath.Join(dir, "reddeer.yaml")); err != nil {
		t.Fatal("Load failed: ", err)
	}
	f := flag.NewFlagSet("", flag.ContinueOnError)
	o.SetFlags(f)
	if err := f.Parse([]string{"-reqtimeout=1m"}); err != nil {
		t.Fatal(err)
	}

	want := &Options{
		TimePeriodFactor:       2,
		PollInterval:           100 * time.Millisecond,
		RequirementTimeout:     time.Minute,
		RequirementGracePeriod: requirement.DefaultGracePeriod,
		Requirements:           "reqs.yaml",
	}
	if diff := cmp.Diff(o, want); diff != "" {
		t.Errorf("Options mismatch (-got +want):\n%s", diff)
	}
	if diff := cmp.Diff(o.WaitOptions(wait.TimePeriodShort), &wait.Options{Timeout: 2 * time.Second, Interval: 100 * time.Millisecond}); diff != "" {
		t.Errorf("WaitOptions mismatch (-got +want):\n%s", diff)
	}

	s := requirement.NewSet(nil, nil)
	o.ApplyTo(s)
	if s.Timeout != time.Minute || s.GracePeriod != requirement.DefaultGracePeriod {
		t.Errorf("ApplyTo set (%v, %v)", s.Timeout, s.GracePeriod)
	}
}

func TestParseErrors(t *testing.T) {
	for _, doc := range []string{
		"timePeriodFactor: 0\n",
		"pollInterval: -1s\n",
		"pollInterval: often\n",
		"unknownOption: 3\n",
	} {
		if err := Default().Parse([]byte(doc)); err == nil {
			t.Errorf("Parse(%q) succeeded", doc)
		}
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	o := Default()
	o.TimePeriodFactor = 1.5
	b, err := o.Marshal()
	if err != nil {
		t.Fatal("Marshal failed: ", err)
	}
	got := &Options{}
	if err := got.Parse(b); err != nil {
		t.Fatalf("Parse(%q) failed: %v", b, err)
	}
	if diff := cmp.Diff(got, o); diff != "" {
		t.Errorf("Options mismatch (-got +want):\n%s", diff)
	}
}
