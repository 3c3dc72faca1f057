// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package wait

import (
	"time"
)

// TimePeriod is a named wait duration.
type TimePeriod int

// Named wait durations, from shortest to longest.
const (
	TimePeriodNone TimePeriod = iota
	TimePeriodShort
	TimePeriodDefault
	TimePeriodMedium
	TimePeriodLong
	TimePeriodVeryLong
)

var periodDurations = map[TimePeriod]time.Duration{
	TimePeriodNone:     0,
	TimePeriodShort:    time.Second,
	TimePeriodDefault:  10 * time.Second,
	TimePeriodMedium:   20 * time.Second,
	TimePeriodLong:     60 * time.Second,
	TimePeriodVeryLong: 120 * time.Second,
}

var periodNames = map[TimePeriod]string{
	TimePeriodNone:     "NONE",
	TimePeriodShort:    "SHORT",
	TimePeriodDefault:  "DEFAULT",
	TimePeriodMedium:   "MEDIUM",
	TimePeriodLong:     "LONG",
	TimePeriodVeryLong: "VERY_LONG",
}

// Duration returns the unscaled duration of p. Unknown periods have the
// default duration.
func (p TimePeriod) Duration() time.Duration {
	if d, ok := periodDurations[p]; ok {
		return d
	}
	return periodDurations[TimePeriodDefault]
}

// Scaled returns the duration of p multiplied by factor. Non-positive
// factors are treated as 1.
func (p TimePeriod) Scaled(factor float64) time.Duration {
	if factor <= 0 {
		factor = 1
	}
	return time.Duration(float64(p.Duration()) * factor)
}

func (p TimePeriod) String() string {
	if s, ok := periodNames[p]; ok {
		return s
	}
	return "UNKNOWN"
}

// ParseTimePeriod returns the period named s, as printed by String.
func ParseTimePeriod(s string) (TimePeriod, bool) {
	for p, name := range periodNames {
		if name == s {
			return p, true
		}
	}
	return TimePeriodDefault, false
}
