// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"reddeer/config"
	"reddeer/internal/logging"
	"reddeer/requirement"
	"reddeer/requirement/builtin"
)

// envCmd implements subcommands.Command to fulfill requirements until
// interrupted.
type envCmd struct {
	cfgFile string
	opts    *config.Options // flag destination; see effectiveOptions
	reg     *requirement.Registry
}

var _ = subcommands.Command(&envCmd{})

func newEnvCmd() *envCmd {
	return &envCmd{opts: config.Default(), reg: builtin.NewRegistry()}
}

func (*envCmd) Name() string     { return "env" }
func (*envCmd) Synopsis() string { return "fulfill requirements until interrupted" }
func (*envCmd) Usage() string {
	return `Usage: env [flag]... [requirements.yaml]

Description:
    Fulfill the requirements declared in a YAML file, wait for SIGINT or
    SIGTERM and clean them up again. The file is taken from the argument or
    from the -requirements option.

    Example file:

        requirements:
        - kind: cleanWorkspace
        - kind: server
          params:
            container: app-server

Flag:
`
}

func (ec *envCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&ec.cfgFile, "config", "", "YAML file with options")
	ec.opts.SetFlags(f)
}

func (ec *envCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opts, err := effectiveOptions(f, ec.cfgFile)
	if err != nil {
		logging.Info(ctx, "Bad options: ", err)
		return subcommands.ExitUsageError
	}
	path := opts.Requirements
	switch f.NArg() {
	case 0:
	case 1:
		path = f.Arg(0)
	default:
		logging.Info(ctx, "Too many arguments.\n\n"+ec.Usage())
		return subcommands.ExitUsageError
	}
	if path == "" {
		logging.Info(ctx, "Missing requirements file.\n\n"+ec.Usage())
		return subcommands.ExitUsageError
	}

	if err := ec.run(ctx, opts, path); err != nil {
		logging.Infof(ctx, "Failed: %+v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// run fulfills the requirements in path and holds them until ctx is done.
func (ec *envCmd) run(ctx context.Context, opts *config.Options, path string) error {
	decls, err := requirement.LoadDeclarations(path)
	if err != nil {
		return err
	}
	set, err := ec.reg.Resolve(decls)
	if err != nil {
		return err
	}
	opts.ApplyTo(set)

	// Cleanup must survive the cancellation that ends the wait.
	runCtx := context.WithoutCancel(ctx)
	return requirement.Run(runCtx, set, func(context.Context) error {
		logging.Infof(ctx, "Environment ready with %d requirements; interrupt to clean up", len(decls))
		<-ctx.Done()
		return nil
	})
}
