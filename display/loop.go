// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package display

import (
	"context"
	"sync"

	"reddeer/errors"
)

// ErrClosed is returned by Loop.Post after the loop has stopped. Work items
// discarded by Loop.Close fail with it too.
var ErrClosed = errors.New("UI event loop is closed")

// Loop is an Executor whose UI thread is the goroutine calling Run.
//
// Toolkits with an OS-thread affinity should call Run from the main goroutine
// after runtime.LockOSThread. Work items run in submission order.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	closed  bool
	running bool

	wake    chan struct{} // has capacity 1; signaled when queue becomes non-empty
	quit    chan struct{} // closed by Close
	stopped chan struct{} // closed once no queued work item will run any more
	once    sync.Once
	stop    sync.Once
}

var _ Stopper = (*Loop)(nil)

// NewLoop returns a new Loop. Work items are accepted immediately but run
// only once Run is called.
func NewLoop() *Loop {
	return &Loop{
		wake:    make(chan struct{}, 1),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Post implements Executor.
func (l *Loop) Post(f func()) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	l.queue = append(l.queue, f)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return nil
}

// Stopped implements Stopper.
func (l *Loop) Stopped() <-chan struct{} {
	return l.stopped
}

// Run executes posted work items on the calling goroutine until ctx is done
// or Close is called. Before returning it stops accepting new work and runs
// every item that was already posted, so no submitter is left waiting.
//
// Run returns ErrClosed if Close was called before it started.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	l.running = true
	l.mu.Unlock()

	defer l.drain()
	for {
		for _, f := range l.take() {
			f()
		}
		select {
		case <-l.wake:
		case <-l.quit:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close stops accepting work. A running Run returns after draining pending
// work items. If Run is not running, pending work items are discarded and
// their submitters fail with ErrClosed.
func (l *Loop) Close() {
	l.once.Do(func() {
		l.mu.Lock()
		l.closed = true
		running := l.running
		if !running {
			l.queue = nil
		}
		l.mu.Unlock()
		close(l.quit)
		if !running {
			l.markStopped()
		}
	})
}

func (l *Loop) markStopped() {
	l.stop.Do(func() { close(l.stopped) })
}

// take removes and returns all queued work items.
func (l *Loop) take() []func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	q := l.queue
	l.queue = nil
	return q
}

func (l *Loop) drain() {
	defer l.markStopped()
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
	for {
		q := l.take()
		if len(q) == 0 {
			return
		}
		for _, f := range q {
			f()
		}
	}
}
