// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package wait

import (
	"context"
	"fmt"
	"strings"
)

// Condition is a predicate polled by Until and While.
type Condition interface {
	// Test evaluates the predicate. A non-nil error aborts the wait.
	Test(ctx context.Context) (bool, error)
	// Description describes what is waited for, e.g. "shell \"New Project\" is active".
	Description() string
}

// Notifier is optionally implemented by a Condition whose state changes can
// be observed. The engine re-tests the condition as soon as the returned
// channel receives a value instead of waiting for the next poll.
//
// done is closed when the wait ends. Goroutines started by Changed must exit
// once done is closed.
type Notifier interface {
	Changed(done <-chan struct{}) <-chan struct{}
}

// funcCondition is a Condition backed by a function.
type funcCondition struct {
	desc string
	f    func(ctx context.Context) (bool, error)
}

// Func returns a Condition testing f.
func Func(desc string, f func(ctx context.Context) (bool, error)) Condition {
	return &funcCondition{desc: desc, f: f}
}

func (c *funcCondition) Test(ctx context.Context) (bool, error) { return c.f(ctx) }
func (c *funcCondition) Description() string                    { return c.desc }

// andCondition is satisfied when all of its parts are.
type andCondition struct {
	conds []Condition
}

// And returns a Condition satisfied when every one of conds is. Parts are
// tested in order and testing stops at the first unsatisfied one.
func And(conds ...Condition) Condition {
	return &andCondition{conds: conds}
}

func (c *andCondition) Test(ctx context.Context) (bool, error) {
	for _, sub := range c.conds {
		ok, err := sub.Test(ctx)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func (c *andCondition) Description() string {
	return joinDescriptions(c.conds, " and ")
}

func (c *andCondition) Changed(done <-chan struct{}) <-chan struct{} {
	return mergeNotifiers(c.conds, done)
}

// orCondition is satisfied when any of its parts is.
type orCondition struct {
	conds []Condition
}

// Or returns a Condition satisfied when at least one of conds is. Parts are
// tested in order and testing stops at the first satisfied one.
func Or(conds ...Condition) Condition {
	return &orCondition{conds: conds}
}

func (c *orCondition) Test(ctx context.Context) (bool, error) {
	for _, sub := range c.conds {
		ok, err := sub.Test(ctx)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (c *orCondition) Description() string {
	return joinDescriptions(c.conds, " or ")
}

func (c *orCondition) Changed(done <-chan struct{}) <-chan struct{} {
	return mergeNotifiers(c.conds, done)
}

// notCondition negates another condition.
type notCondition struct {
	c Condition
}

// Not returns a Condition satisfied when c is not.
func Not(c Condition) Condition {
	return &notCondition{c: c}
}

func (c *notCondition) Test(ctx context.Context) (bool, error) {
	ok, err := c.c.Test(ctx)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

func (c *notCondition) Description() string {
	return fmt.Sprintf("not (%s)", c.c.Description())
}

func (c *notCondition) Changed(done <-chan struct{}) <-chan struct{} {
	return mergeNotifiers([]Condition{c.c}, done)
}

func joinDescriptions(conds []Condition, sep string) string {
	parts := make([]string, len(conds))
	for i, c := range conds {
		parts[i] = "(" + c.Description() + ")"
	}
	return strings.Join(parts, sep)
}

// mergeNotifiers returns a channel that receives a value whenever any of the
// Notifier conditions among conds signals, or nil if there is none.
// Forwarding goroutines exit when done is closed or their source is closed.
func mergeNotifiers(conds []Condition, done <-chan struct{}) <-chan struct{} {
	var srcs []<-chan struct{}
	for _, c := range conds {
		if n, ok := c.(Notifier); ok {
			if ch := n.Changed(done); ch != nil {
				srcs = append(srcs, ch)
			}
		}
	}
	switch len(srcs) {
	case 0:
		return nil
	case 1:
		return srcs[0]
	}
	out := make(chan struct{}, 1)
	for _, src := range srcs {
		go func(src <-chan struct{}) {
			for {
				select {
				case _, ok := <-src:
					if !ok {
						return
					}
				case <-done:
					return
				}
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}(src)
	}
	return out
}
