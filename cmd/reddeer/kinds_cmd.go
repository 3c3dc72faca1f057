// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/google/subcommands"

	"reddeer/internal/logging"
	"reddeer/requirement/builtin"
)

// kindsCmd implements subcommands.Command to list requirement kinds.
type kindsCmd struct {
	stdout io.Writer
}

var _ = subcommands.Command(&kindsCmd{})

func newKindsCmd(stdout io.Writer) *kindsCmd {
	return &kindsCmd{stdout: stdout}
}

func (*kindsCmd) Name() string     { return "kinds" }
func (*kindsCmd) Synopsis() string { return "list requirement kinds" }
func (*kindsCmd) Usage() string {
	return `Usage: kinds

Description:
    Print the requirement kinds that can be declared, one per line.
`
}

func (*kindsCmd) SetFlags(f *flag.FlagSet) {}

func (kc *kindsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		logging.Info(ctx, "Unexpected arguments.\n\n"+kc.Usage())
		return subcommands.ExitUsageError
	}
	for _, k := range builtin.NewRegistry().Kinds() {
		if _, err := fmt.Fprintln(kc.stdout, k); err != nil {
			logging.Info(ctx, "Failed to write kinds: ", err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}
