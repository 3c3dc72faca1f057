// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package uitest provides an in-memory widget toolkit for unit tests.
//
// The fakes implement the interfaces of package widget and, like native
// widgets, must only be touched on the UI thread. Tests use Env.Do to build
// widget trees and inspect them.
package uitest

import (
	"context"
	"testing"

	"reddeer/display"
	"reddeer/event"
)

// Env is a running fake display.
type Env struct {
	Loop    *display.Loop
	Display *display.Display
	Synth   *event.Synthesizer
	Desktop *Desktop
}

// NewEnv starts a UI event loop on a background goroutine. The loop is
// stopped when t finishes.
func NewEnv(t *testing.T) *Env {
	t.Helper()
	l := display.NewLoop()
	done := make(chan struct{})
	go func() {
		defer close(done)
		l.Run(context.Background())
	}()
	t.Cleanup(func() {
		l.Close()
		<-done
	})
	d := display.New(l)
	return &Env{
		Loop:    l,
		Display: d,
		Synth:   event.NewSynthesizer(d),
		Desktop: NewDesktop(),
	}
}

// Do runs f on the UI thread and waits for it.
func (e *Env) Do(t *testing.T, f func()) {
	t.Helper()
	if err := e.Display.SyncExec(context.Background(), func(ctx context.Context) error {
		f()
		return nil
	}); err != nil {
		t.Fatal("Failed to run on UI thread: ", err)
	}
}
