// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package config holds the named numeric options of reddeer.
//
// Options have defaults and may be overridden from a YAML file and then from
// command-line flags, in that order:
//
//	timePeriodFactor: 2
//	pollInterval: 100ms
//	requirementTimeout: 5m
package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"reddeer/errors"
	"reddeer/requirement"
	"reddeer/wait"
)

const (
	defaultTimePeriodFactor       = 1.0
	defaultRequirementTimeout     = 5 * time.Minute
	defaultRequirementGracePeriod = requirement.DefaultGracePeriod
)

// Options is the set of named options. The zero value is not useful; use
// Default.
type Options struct {
	// TimePeriodFactor scales every wait.TimePeriod. Slow machines raise it.
	TimePeriodFactor float64 `yaml:"timePeriodFactor"`
	// PollInterval is the interval at which wait conditions are tested.
	PollInterval time.Duration `yaml:"pollInterval"`
	// RequirementTimeout bounds each Fulfill and CleanUp call.
	RequirementTimeout time.Duration `yaml:"requirementTimeout"`
	// RequirementGracePeriod is the time a requirement call may overrun
	// RequirementTimeout before it is abandoned.
	RequirementGracePeriod time.Duration `yaml:"requirementGracePeriod"`
	// Requirements is the path of a YAML file declaring requirements.
	Requirements string `yaml:"requirements,omitempty"`
}

// Default returns Options holding the default values.
func Default() *Options {
	return &Options{
		TimePeriodFactor:       defaultTimePeriodFactor,
		PollInterval:           wait.DefaultInterval,
		RequirementTimeout:     defaultRequirementTimeout,
		RequirementGracePeriod: defaultRequirementGracePeriod,
	}
}

// Parse overrides o with the options set in the YAML document b. Unknown
// keys are rejected.
func (o *Options) Parse(b []byte) error {
	if err := yaml.UnmarshalStrict(b, o); err != nil {
		return errors.Wrap(err, "failed to parse options")
	}
	return o.Validate()
}

// Load overrides o with the options in the YAML file at path.
func (o *Options) Load(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read options")
	}
	return o.Parse(b)
}

// Validate reports an error if some option is out of range.
func (o *Options) Validate() error {
	if o.TimePeriodFactor <= 0 {
		return errors.Errorf("timePeriodFactor must be positive; got %v", o.TimePeriodFactor)
	}
	if o.PollInterval <= 0 {
		return errors.Errorf("pollInterval must be positive; got %v", o.PollInterval)
	}
	if o.RequirementTimeout < 0 || o.RequirementGracePeriod < 0 {
		return errors.New("requirement timeouts must not be negative")
	}
	return nil
}

// SetFlags registers flags overriding o to f. Current values of o are used
// as flag defaults.
func (o *Options) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&o.TimePeriodFactor, "timeperiodfactor", o.TimePeriodFactor, "factor scaling every wait time period")
	f.DurationVar(&o.PollInterval, "pollinterval", o.PollInterval, "interval at which wait conditions are tested")
	f.DurationVar(&o.RequirementTimeout, "reqtimeout", o.RequirementTimeout, "timeout of each requirement fulfillment and cleanup")
	f.DurationVar(&o.RequirementGracePeriod, "reqgrace", o.RequirementGracePeriod, "time a timed out requirement call may keep running")
	f.StringVar(&o.Requirements, "requirements", o.Requirements, "YAML file declaring requirements")
}

// Period returns the duration of p scaled by TimePeriodFactor.
func (o *Options) Period(p wait.TimePeriod) time.Duration {
	return p.Scaled(o.TimePeriodFactor)
}

// WaitOptions returns wait options with the scaled duration of p as timeout.
func (o *Options) WaitOptions(p wait.TimePeriod) *wait.Options {
	return &wait.Options{Timeout: o.Period(p), Interval: o.PollInterval}
}

// ApplyTo sets the requirement call timeouts of s.
func (o *Options) ApplyTo(s *requirement.Set) {
	s.Timeout = o.RequirementTimeout
	s.GracePeriod = o.RequirementGracePeriod
}

// Marshal returns o as a YAML document.
func (o *Options) Marshal() ([]byte, error) {
	b, err := yaml.Marshal(o)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal options")
	}
	return b, nil
}

func (o *Options) String() string {
	return fmt.Sprintf("factor=%v poll=%v reqtimeout=%v reqgrace=%v",
		o.TimePeriodFactor, o.PollInterval, o.RequirementTimeout, o.RequirementGracePeriod)
}
