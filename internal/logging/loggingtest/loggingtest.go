// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package loggingtest provides logging utilities for unit tests.
package loggingtest

import (
	"strings"
	"sync"
	"testing"

	"reddeer/internal/logging"
)

// Logger is a logging.Logger that accumulates logs at or above a level to an
// in-memory buffer, as well as emitting them as unit test logs.
//
// Tests attach it to a context and inspect what a handler or a requirement
// reported, e.g. the items a list selection logged.
type Logger struct {
	*logging.SinkLogger
	t *testing.T

	mu   sync.Mutex
	logs []string
}

// NewLogger creates a new Logger.
func NewLogger(t *testing.T, level logging.Level) *Logger {
	l := &Logger{t: t}
	l.SinkLogger = logging.NewSinkLogger(level, false, logging.NewFuncSink(l.record))
	return l
}

func (l *Logger) record(msg string) {
	l.t.Log(msg)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logs = append(l.logs, msg)
}

// Logs returns a list of logs received so far.
func (l *Logger) Logs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.logs...)
}

// String returns received logs as a newline-separated string.
func (l *Logger) String() string {
	return strings.Join(l.Logs(), "\n")
}
