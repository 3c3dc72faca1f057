// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package process implements the process requirement, which launches a
// command before a test and terminates it afterwards.
package process

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	gprocess "github.com/shirou/gopsutil/v3/process"

	"reddeer/condition"
	"reddeer/errors"
	"reddeer/internal/logging"
	"reddeer/requirement"
	"reddeer/shutil"
	"reddeer/wait"
)

// Kind is the declaration kind of the requirement.
const Kind = "process"

// DefaultPriority launches processes after workspaces and servers.
const DefaultPriority = 10

const (
	// DefaultReadyTimeout bounds the wait for a launched process to become
	// ready.
	DefaultReadyTimeout = time.Minute
	// DefaultStopGrace is the time a terminated process has to exit before
	// it is killed.
	DefaultStopGrace = 10 * time.Second
)

// Process is a process requirement.
//
// Fulfill launches Args and waits until the process is in the process table
// and, if ReadyFile is set, until that file exists. CleanUp sends SIGTERM
// and kills the process if it has not exited after StopGrace.
type Process struct {
	Args         []string
	Dir          string
	LogPath      string // stdout and stderr go here if set
	ReadyFile    string
	ReadyTimeout time.Duration
	StopGrace    time.Duration
	// Interval is the polling interval of the readiness wait.
	Interval time.Duration

	priority int
	cmd      *exec.Cmd
	exited   chan struct{} // closed when cmd exits
	logFile  *os.File
}

var _ requirement.Requirement = (*Process)(nil)

// New builds a Process from a declaration. Recognized parameters are
// "command" (split on spaces), "dir", "log", "readyFile", "timeout",
// "stopGrace" and "priority".
func New(decl requirement.Declaration) (requirement.Requirement, error) {
	args := strings.Fields(decl.Param("command", ""))
	if len(args) == 0 {
		return nil, errors.New("process: command parameter is required")
	}
	prio, err := decl.Priority(DefaultPriority)
	if err != nil {
		return nil, err
	}
	timeout, err := decl.DurationParam("timeout", DefaultReadyTimeout)
	if err != nil {
		return nil, err
	}
	grace, err := decl.DurationParam("stopGrace", DefaultStopGrace)
	if err != nil {
		return nil, err
	}
	p := NewWithPriority(args, prio)
	p.Dir = decl.Param("dir", "")
	p.LogPath = decl.Param("log", "")
	p.ReadyFile = decl.Param("readyFile", "")
	p.ReadyTimeout = timeout
	p.StopGrace = grace
	return p, nil
}

// NewWithPriority returns a Process running args with default timeouts.
func NewWithPriority(args []string, priority int) *Process {
	return &Process{
		Args:         args,
		ReadyTimeout: DefaultReadyTimeout,
		StopGrace:    DefaultStopGrace,
		Interval:     100 * time.Millisecond,
		priority:     priority,
	}
}

// Priority implements requirement.Requirement.
func (p *Process) Priority() int {
	return p.priority
}

// PID returns the process ID of the launched process, or 0 if none runs.
func (p *Process) PID() int {
	if p.cmd == nil || p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

// Fulfill implements requirement.Requirement.
func (p *Process) Fulfill(ctx context.Context) error {
	if p.cmd != nil {
		return errors.New("process already launched")
	}
	cmd := exec.Command(p.Args[0], p.Args[1:]...)
	cmd.Dir = p.Dir
	if p.LogPath != "" {
		f, err := os.Create(p.LogPath)
		if err != nil {
			return errors.Wrap(err, "failed to create process log")
		}
		cmd.Stdout = f
		cmd.Stderr = f
		p.logFile = f
	}

	var ready *condition.FileExists
	if p.ReadyFile != "" {
		var err error
		if ready, err = condition.NewFileExists(ctx, p.ReadyFile); err != nil {
			p.closeLog()
			return err
		}
		defer ready.Close()
	}

	logging.Infof(ctx, "Launching %s", shutil.CommandLine(p.Dir, p.Args))
	if err := cmd.Start(); err != nil {
		p.closeLog()
		return errors.Wrapf(err, "failed to launch %s", p.Args[0])
	}
	p.cmd = cmd
	p.exited = make(chan struct{})
	go func() {
		cmd.Wait()
		close(p.exited)
	}()

	conds := []wait.Condition{p.alive(), condition.PIDIsRunning(int32(cmd.Process.Pid))}
	if ready != nil {
		conds = append(conds, ready)
	}
	if _, err := wait.Until(ctx, wait.And(conds...), &wait.Options{Timeout: p.ReadyTimeout, Interval: p.Interval}); err != nil {
		p.stop(ctx)
		return err
	}
	logging.Infof(ctx, "Process %d is ready", cmd.Process.Pid)
	return nil
}

// alive returns a condition failing the wait once the process has exited.
func (p *Process) alive() wait.Condition {
	return wait.Func("process has not exited", func(ctx context.Context) (bool, error) {
		select {
		case <-p.exited:
			return false, errors.Errorf("%s exited: %v", p.Args[0], p.cmd.ProcessState)
		default:
			return true, nil
		}
	})
}

// CleanUp implements requirement.Requirement.
func (p *Process) CleanUp(ctx context.Context) error {
	if p.cmd == nil {
		return nil
	}
	return p.stop(ctx)
}

// stop terminates the process, escalating to a kill after StopGrace.
func (p *Process) stop(ctx context.Context) error {
	defer func() {
		p.closeLog()
		p.cmd = nil
	}()

	select {
	case <-p.exited:
		logging.Infof(ctx, "Process %d already exited: %v", p.cmd.Process.Pid, p.cmd.ProcessState)
		return nil
	default:
	}

	proc, err := gprocess.NewProcessWithContext(ctx, int32(p.cmd.Process.Pid))
	if err != nil {
		return errors.Wrap(err, "failed to look up process")
	}
	logging.Infof(ctx, "Terminating process %d", proc.Pid)
	if err := proc.TerminateWithContext(ctx); err != nil {
		return errors.Wrapf(err, "failed to terminate process %d", proc.Pid)
	}

	tm := time.NewTimer(p.StopGrace)
	defer tm.Stop()
	select {
	case <-p.exited:
		return nil
	case <-tm.C:
	case <-ctx.Done():
	}
	logging.Infof(ctx, "Killing process %d", proc.Pid)
	if err := proc.KillWithContext(context.Background()); err != nil {
		return errors.Wrapf(err, "failed to kill process %d", proc.Pid)
	}
	<-p.exited
	return nil
}

func (p *Process) closeLog() {
	if p.logFile != nil {
		p.logFile.Close()
		p.logFile = nil
	}
}
