// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package main implements the reddeer executable, used to inspect options
// and requirement kinds and to hold a test environment up by hand.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/google/subcommands"
	"golang.org/x/crypto/ssh/terminal"
	"golang.org/x/sys/unix"

	"reddeer/internal/logging"
)

const (
	signalChannelSize = 3 // capacity of channel used to intercept signals
)

// Version is the version info of this command. It is filled in at build time.
var Version = "<unknown>"

// newLogger creates a logger writing to stdout and, if logFile is not empty,
// to that file as well. The returned function closes the file.
func newLogger(verbose, logTime bool, logFile string) (*logging.MultiLogger, func(), error) {
	level := logging.LevelInfo
	if verbose {
		level = logging.LevelDebug
	}
	ml := logging.NewMultiLogger(logging.NewSinkLogger(level, logTime, logging.NewWriterSink(os.Stdout)))
	if logFile == "" {
		return ml, func() {}, nil
	}
	f, err := os.Create(logFile)
	if err != nil {
		return nil, nil, err
	}
	ml.AddLogger(logging.NewSinkLogger(logging.LevelDebug, true, logging.NewWriterSink(f)))
	return ml, func() { f.Close() }, nil
}

// installSignalHandler cancels the returned context on the first SIGINT or
// SIGTERM so that commands can clean up. A second signal restores the
// terminal and exits immediately.
func installSignalHandler(ctx context.Context) (context.Context, context.CancelFunc) {
	var st *terminal.State
	fd := int(os.Stdin.Fd())
	if terminal.IsTerminal(fd) {
		var err error
		if st, err = terminal.GetState(fd); err != nil {
			logging.Info(ctx, "Failed to get terminal state: ", err)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	sc := make(chan os.Signal, signalChannelSize)
	go func() {
		sig := <-sc
		logging.Infof(ctx, "Caught %v signal; cleaning up", sig)
		cancel()
		sig = <-sc
		if st != nil {
			terminal.Restore(fd, st)
		}
		fmt.Fprintf(os.Stdout, "\nCaught %v signal again; exiting\n", sig)
		os.Exit(1)
	}()
	signal.Notify(sc, unix.SIGINT, unix.SIGTERM)
	return ctx, cancel
}

// doMain implements the main body of the program. It's a separate function so
// that its deferred functions will run before os.Exit makes the program exit
// immediately.
func doMain() int {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(newKindsCmd(os.Stdout), "")
	subcommands.Register(newConfigCmd(os.Stdout), "")
	subcommands.Register(newEnvCmd(), "")

	version := flag.Bool("version", false, "print version and exit")
	verbose := flag.Bool("verbose", false, "use verbose logging")
	logTime := flag.Bool("logtime", true, "include date/time headers in logs")
	logFile := flag.String("logfile", "", "file to copy logs to")
	flag.Parse()

	if *version {
		fmt.Printf("reddeer version %s\n", Version)
		return 0
	}

	lg, closeLog, err := newLogger(*verbose, *logTime, *logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return 1
	}
	defer closeLog()
	ctx := logging.AttachLogger(context.Background(), lg)

	ctx, cancel := installSignalHandler(ctx)
	defer cancel()

	return int(subcommands.Execute(ctx))
}

func main() {
	os.Exit(doMain())
}
