// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"io"

	"github.com/google/subcommands"

	"reddeer/config"
	"reddeer/internal/logging"
)

// configCmd implements subcommands.Command to print effective options.
type configCmd struct {
	stdout  io.Writer
	cfgFile string
	opts    *config.Options // flag destination; see effectiveOptions
}

var _ = subcommands.Command(&configCmd{})

func newConfigCmd(stdout io.Writer) *configCmd {
	return &configCmd{stdout: stdout, opts: config.Default()}
}

func (*configCmd) Name() string     { return "config" }
func (*configCmd) Synopsis() string { return "print effective options" }
func (*configCmd) Usage() string {
	return `Usage: config [flag]...

Description:
    Print the options that result from defaults, the -config file and
    flags, as YAML.

Flag:
`
}

func (cc *configCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&cc.cfgFile, "config", "", "YAML file with options")
	cc.opts.SetFlags(f)
}

func (cc *configCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opts, err := effectiveOptions(f, cc.cfgFile)
	if err != nil {
		logging.Info(ctx, "Bad options: ", err)
		return subcommands.ExitUsageError
	}
	b, err := opts.Marshal()
	if err != nil {
		logging.Info(ctx, err)
		return subcommands.ExitFailure
	}
	if _, err := cc.stdout.Write(b); err != nil {
		logging.Info(ctx, "Failed to write options: ", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// effectiveOptions returns options from defaults, overridden by cfgFile,
// overridden by the option flags explicitly set on f.
func effectiveOptions(f *flag.FlagSet, cfgFile string) (*config.Options, error) {
	opts := config.Default()
	if cfgFile != "" {
		if err := opts.Load(cfgFile); err != nil {
			return nil, err
		}
	}
	// Re-apply explicitly set flags on top of the file.
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	opts.SetFlags(fs)
	var err error
	f.Visit(func(fl *flag.Flag) {
		if fs.Lookup(fl.Name) == nil || err != nil {
			return
		}
		err = fs.Set(fl.Name, fl.Value.String())
	})
	if err != nil {
		return nil, err
	}
	return opts, opts.Validate()
}
