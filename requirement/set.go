// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package requirement

import (
	"context"
	"fmt"
	"sort"
	"time"

	"reddeer/errors"
	"reddeer/errors/stack"
	"reddeer/internal/logging"
)

// FulfillmentError is returned when a requirement cannot be fulfilled.
type FulfillmentError struct {
	// Kind is the kind of the failed requirement.
	Kind string
	// Index is the position of its declaration.
	Index int
	// Err is the error returned by Fulfill.
	Err error
	stk stack.Stack
}

func (e *FulfillmentError) Error() string {
	return fmt.Sprintf("failed to fulfill requirement %s (#%d): %v", e.Kind, e.Index, e.Err)
}

// Unwrap returns the error returned by Fulfill.
func (e *FulfillmentError) Unwrap() error {
	return e.Err
}

// Format prints the creation stack for the "%+v" verb.
func (e *FulfillmentError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s\n%v", e.Error(), e.stk)
		return
	}
	fmt.Fprint(s, e.Error())
}

// Set is an ordered collection of requirements of one test. A Set is not
// safe for concurrent use.
type Set struct {
	// Timeout bounds each Fulfill and CleanUp call. Zero means no timeout.
	Timeout time.Duration
	// GracePeriod is the time a call may overrun Timeout before it is
	// abandoned.
	GracePeriod time.Duration

	ordered   []*entry // fulfillment order
	fulfilled []*entry // fulfilled so far, in fulfillment order
}

func newSet(entries []*entry) *Set {
	ordered := append([]*entry(nil), entries...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].req.Priority() > ordered[j].req.Priority()
	})
	return &Set{GracePeriod: DefaultGracePeriod, ordered: ordered}
}

// NewSet returns a Set of reqs. Their declarations are named by kinds, which
// must have the same length as reqs.
func NewSet(kinds []string, reqs []Requirement) *Set {
	entries := make([]*entry, len(reqs))
	for i, r := range reqs {
		entries[i] = &entry{decl: Declaration{Kind: kinds[i]}, req: r, seq: i}
	}
	return newSet(entries)
}

// Order returns the declarations in fulfillment order: priority descending,
// ties in declaration order.
func (s *Set) Order() []Declaration {
	out := make([]Declaration, len(s.ordered))
	for i, e := range s.ordered {
		out[i] = e.decl
	}
	return out
}

// Fulfill fulfills the requirements in order. If one fails, the already
// fulfilled ones are cleaned up in reverse order and a *FulfillmentError is
// returned.
func (s *Set) Fulfill(ctx context.Context) error {
	if len(s.fulfilled) > 0 {
		return errors.New("requirements already fulfilled")
	}
	for _, e := range s.ordered {
		logging.Infof(ctx, "Fulfilling %s with priority %d", e.name(), e.req.Priority())
		if err := safeCall(ctx, e.name(), s.Timeout, s.GracePeriod, e.req.Fulfill); err != nil {
			ferr := &FulfillmentError{Kind: e.decl.Kind, Index: e.seq, Err: err, stk: stack.New(1)}
			logging.Info(ctx, ferr.Error())
			if cerr := s.CleanUp(ctx); cerr != nil {
				logging.Infof(ctx, "Cleanup after failed fulfillment failed: %v", cerr)
			}
			return ferr
		}
		s.fulfilled = append(s.fulfilled, e)
	}
	return nil
}

// CleanUp cleans up the fulfilled requirements in exactly the reverse order
// of fulfillment. It continues past failures and returns the first error.
func (s *Set) CleanUp(ctx context.Context) error {
	var firstErr error
	for i := len(s.fulfilled) - 1; i >= 0; i-- {
		e := s.fulfilled[i]
		logging.Infof(ctx, "Cleaning up %s", e.name())
		if err := safeCall(ctx, e.name(), s.Timeout, s.GracePeriod, e.req.CleanUp); err != nil {
			logging.Infof(ctx, "Failed to clean up %s: %v", e.name(), err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	s.fulfilled = nil
	return firstErr
}

// Run fulfills s, runs body and cleans up s. The error of body takes
// precedence over a cleanup error. body does not run if fulfillment fails.
func Run(ctx context.Context, s *Set, body func(ctx context.Context) error) error {
	if err := s.Fulfill(ctx); err != nil {
		return err
	}
	berr := body(ctx)
	cerr := s.CleanUp(ctx)
	if berr != nil {
		return berr
	}
	return cerr
}
