// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package requirement

import (
	"context"
	"sync/atomic"
	"time"

	"reddeer/ctxutil"
	"reddeer/errors"
)

// DefaultGracePeriod is the time a requirement call may keep running after
// its timeout before it is abandoned.
const DefaultGracePeriod = 30 * time.Second

// safeCall runs f on a goroutine to protect callers from its possible bad
// behavior.
//
// f is called with a context having the specified timeout. A non-positive
// timeout means no timeout beyond that of ctx. If f does not return within
// timeout + gracePeriod or ctx is canceled before f finishes, safeCall
// abandons the goroutine and returns an error naming name.
//
// A panic in f is recovered and returned as an error. Otherwise the error
// returned by f is returned unchanged.
func safeCall(ctx context.Context, name string, timeout, gracePeriod time.Duration, f func(ctx context.Context) error) error {
	// The main goroutine and the background goroutine race for a token. The
	// winner decides whether the result of f is reported.
	var token uint32
	takeToken := func() bool {
		return atomic.CompareAndSwapUint32(&token, 0, 1)
	}

	done := make(chan struct{}) // closed when the background goroutine finishes
	var ferr error

	go func() {
		defer close(done)
		defer func() {
			val := recover()
			if !takeToken() {
				return
			}
			if val != nil {
				ferr = errors.Errorf("%s panicked: %v", name, val)
			}
		}()

		ctx, cancel := ctxutil.OptionalTimeout(ctx, timeout)
		defer cancel()
		ferr = f(ctx)
	}()

	var abandon <-chan time.Time
	if timeout > 0 {
		tm := time.NewTimer(timeout + gracePeriod)
		defer tm.Stop()
		abandon = tm.C
	}

	select {
	case <-done:
		return ferr
	case <-abandon:
		if !takeToken() {
			<-done
			return ferr
		}
		return errors.Errorf("%s did not return on timeout", name)
	case <-ctx.Done():
		if !takeToken() {
			<-done
			return ferr
		}
		return ctx.Err()
	}
}
