// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package server implements the server requirement, which makes sure an
// application server running in a Docker container is up before a test.
package server

import (
	"context"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"

	"reddeer/errors"
	"reddeer/internal/logging"
	"reddeer/requirement"
	"reddeer/wait"
)

// Kind is the declaration kind of the requirement.
const Kind = "server"

// DefaultPriority fulfills servers after the workspace and before processes.
const DefaultPriority = 50

// DefaultStartTimeout bounds the wait for a started container.
const DefaultStartTimeout = 2 * time.Minute

// ContainerAPI is the subset of the Docker client used by Server.
type ContainerAPI interface {
	ContainerInspect(ctx context.Context, id string) (types.ContainerJSON, error)
	ContainerStart(ctx context.Context, id string, options types.ContainerStartOptions) error
	ContainerStop(ctx context.Context, id string, options container.StopOptions) error
}

var _ ContainerAPI = (*client.Client)(nil)

// Server is a server requirement.
//
// Fulfill starts Container unless it is already running and waits until it
// runs and, if the container defines a health check, reports healthy.
// CleanUp stops the container only if Fulfill started it.
type Server struct {
	Container    string
	StartTimeout time.Duration
	// Options configures the wait for the container. Its Timeout is
	// overridden by StartTimeout.
	Options wait.Options

	api      ContainerAPI
	priority int
	started  bool
}

var _ requirement.Requirement = (*Server)(nil)

// NewWithAPI returns a Server managing container through api.
func NewWithAPI(api ContainerAPI, container string, priority int) *Server {
	return &Server{
		Container:    container,
		StartTimeout: DefaultStartTimeout,
		Options:      wait.Options{Interval: time.Second},
		api:          api,
		priority:     priority,
	}
}

// New builds a Server from a declaration, connecting to the Docker daemon
// named by the environment. Recognized parameters are "container",
// "timeout" and "priority".
func New(decl requirement.Declaration) (requirement.Requirement, error) {
	name := decl.Param("container", "")
	if name == "" {
		return nil, errors.New("server: container parameter is required")
	}
	prio, err := decl.Priority(DefaultPriority)
	if err != nil {
		return nil, err
	}
	timeout, err := decl.DurationParam("timeout", DefaultStartTimeout)
	if err != nil {
		return nil, err
	}
	cl, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, errors.Wrap(err, "failed to create docker client")
	}
	s := NewWithAPI(cl, name, prio)
	s.StartTimeout = timeout
	return s, nil
}

// Priority implements requirement.Requirement.
func (s *Server) Priority() int {
	return s.priority
}

// Fulfill implements requirement.Requirement.
func (s *Server) Fulfill(ctx context.Context) error {
	info, err := s.api.ContainerInspect(ctx, s.Container)
	if err != nil {
		return errors.Wrapf(err, "failed to inspect container %s", s.Container)
	}
	if state(info) == nil || !state(info).Running {
		logging.Infof(ctx, "Starting container %s", s.Container)
		if err := s.api.ContainerStart(ctx, s.Container, types.ContainerStartOptions{}); err != nil {
			return errors.Wrapf(err, "failed to start container %s", s.Container)
		}
		s.started = true
	} else {
		logging.Infof(ctx, "Container %s is already running", s.Container)
	}

	opts := s.Options
	opts.Timeout = s.StartTimeout
	if _, err := wait.Until(ctx, s.ready(), &opts); err != nil {
		return err
	}
	return nil
}

// ready returns a condition satisfied once the container runs and is not
// starting or unhealthy.
func (s *Server) ready() wait.Condition {
	return wait.Func("container "+s.Container+" is ready", func(ctx context.Context) (bool, error) {
		info, err := s.api.ContainerInspect(ctx, s.Container)
		if err != nil {
			return false, errors.Wrapf(err, "failed to inspect container %s", s.Container)
		}
		st := state(info)
		if st == nil {
			return false, nil
		}
		if !st.Running {
			if st.Status == "exited" || st.Status == "dead" {
				return false, errors.Errorf("container %s is %s (exit code %d)", s.Container, st.Status, st.ExitCode)
			}
			return false, nil
		}
		return st.Health == nil || st.Health.Status == types.Healthy, nil
	})
}

// CleanUp implements requirement.Requirement.
func (s *Server) CleanUp(ctx context.Context) error {
	if !s.started {
		return nil
	}
	s.started = false
	logging.Infof(ctx, "Stopping container %s", s.Container)
	if err := s.api.ContainerStop(ctx, s.Container, container.StopOptions{}); err != nil {
		return errors.Wrapf(err, "failed to stop container %s", s.Container)
	}
	return nil
}

func state(info types.ContainerJSON) *types.ContainerState {
	if info.ContainerJSONBase == nil {
		return nil
	}
	return info.State
}
