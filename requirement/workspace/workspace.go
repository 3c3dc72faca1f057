// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package workspace implements the cleanWorkspace requirement, which gives a
// test an empty, exclusively locked workspace directory.
package workspace

import (
	"context"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"reddeer/errors"
	"reddeer/internal/logging"
	"reddeer/requirement"
)

// Kind is the declaration kind of the requirement.
const Kind = "cleanWorkspace"

// DefaultPriority makes the workspace available before servers and processes
// that may write into it.
const DefaultPriority = 100

// lockName is the name of the lock file created next to the workspace.
const lockName = ".reddeer.lock"

// Workspace is a cleanWorkspace requirement.
//
// If Path is empty, Fulfill creates a uniquely named directory under Root
// (os.TempDir if empty). Otherwise Path is created if needed and emptied. In
// both cases the workspace is guarded by a lock file in its parent directory
// so that two tests never share it.
type Workspace struct {
	Root     string
	Path     string
	Keep     bool // keep the directory contents on cleanup
	priority int

	dir  string // effective directory, set by Fulfill
	made bool   // whether Fulfill created dir
	lock *flock.Flock
}

var _ requirement.Requirement = (*Workspace)(nil)

// New builds a Workspace from a declaration. Recognized parameters are
// "root", "path", "keep" and "priority".
func New(decl requirement.Declaration) (requirement.Requirement, error) {
	prio, err := decl.Priority(DefaultPriority)
	if err != nil {
		return nil, err
	}
	keep, err := decl.BoolParam("keep", false)
	if err != nil {
		return nil, err
	}
	return &Workspace{
		Root:     decl.Param("root", ""),
		Path:     decl.Param("path", ""),
		Keep:     keep,
		priority: prio,
	}, nil
}

// Priority implements requirement.Requirement.
func (w *Workspace) Priority() int {
	return w.priority
}

// Dir returns the workspace directory. It is empty until Fulfill succeeds.
func (w *Workspace) Dir() string {
	return w.dir
}

// Fulfill implements requirement.Requirement.
func (w *Workspace) Fulfill(ctx context.Context) error {
	dir := w.Path
	if dir == "" {
		root := w.Root
		if root == "" {
			root = os.TempDir()
		}
		dir = filepath.Join(root, "workspace-"+uuid.New().String())
	}
	dir = filepath.Clean(dir)

	if err := os.MkdirAll(filepath.Dir(dir), 0755); err != nil {
		return errors.Wrap(err, "failed to create workspace parent")
	}
	lock := flock.New(filepath.Join(filepath.Dir(dir), filepath.Base(dir)+lockName))
	locked, err := lock.TryLock()
	if err != nil {
		return errors.Wrapf(err, "failed to lock workspace %s", dir)
	}
	if !locked {
		return errors.Errorf("workspace %s is in use", dir)
	}

	made, err := prepare(dir)
	if err != nil {
		lock.Unlock()
		return err
	}
	logging.Infof(ctx, "Using workspace %s", dir)
	w.dir, w.made, w.lock = dir, made, lock
	return nil
}

// prepare makes dir an existing empty directory. It reports whether dir was
// created.
func prepare(dir string) (made bool, err error) {
	ents, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		if err := os.Mkdir(dir, 0755); err != nil {
			return false, errors.Wrap(err, "failed to create workspace")
		}
		return true, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "failed to read workspace")
	}
	for _, ent := range ents {
		if err := os.RemoveAll(filepath.Join(dir, ent.Name())); err != nil {
			return false, errors.Wrap(err, "failed to empty workspace")
		}
	}
	return false, nil
}

// CleanUp implements requirement.Requirement. A directory created by Fulfill
// is removed. A given Path is emptied but kept.
func (w *Workspace) CleanUp(ctx context.Context) error {
	if w.lock == nil {
		return nil
	}
	defer func() {
		w.lock.Unlock()
		os.Remove(w.lock.Path())
		w.dir, w.made, w.lock = "", false, nil
	}()
	if w.Keep {
		logging.Infof(ctx, "Keeping workspace %s", w.dir)
		return nil
	}
	if w.made {
		if err := os.RemoveAll(w.dir); err != nil {
			return errors.Wrap(err, "failed to remove workspace")
		}
		return nil
	}
	_, err := prepare(w.dir)
	return err
}
