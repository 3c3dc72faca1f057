// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package condition

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"reddeer/errors"
	"reddeer/internal/logging"
)

// FileExists waits for a file to appear. It watches the parent directory and
// wakes the wait engine on changes to the file, falling back to plain polling
// if the directory cannot be watched.
type FileExists struct {
	path    string
	watcher *fsnotify.Watcher
	changed chan struct{}
	done    chan struct{}

	closeOnce sync.Once
	closeErr  error
}

// NewFileExists returns a FileExists condition for path. Close must be
// called to release the watcher.
func NewFileExists(ctx context.Context, path string) (*FileExists, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", path)
	}
	c := &FileExists{
		path:    abs,
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		logging.Infof(ctx, "fsnotify not available, polling for %s: %v", abs, err)
		return c, nil
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		logging.Infof(ctx, "Cannot watch %s, polling instead: %v", filepath.Dir(abs), err)
		w.Close()
		return c, nil
	}
	c.watcher = w
	go c.processEvents(ctx)
	return c, nil
}

func (c *FileExists) processEvents(ctx context.Context) {
	// Closing changed ends the forwarders of combined conditions.
	defer close(c.changed)
	for {
		select {
		case ev, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != c.path {
				continue
			}
			select {
			case c.changed <- struct{}{}:
			default:
			}
		case err, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
			logging.Debugf(ctx, "Watcher error for %s: %v", c.path, err)
		case <-c.done:
			return
		}
	}
}

// Test implements wait.Condition.
func (c *FileExists) Test(ctx context.Context) (bool, error) {
	_, err := os.Stat(c.path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Wrapf(err, "failed to stat %s", c.path)
}

// Description implements wait.Condition.
func (c *FileExists) Description() string {
	return fmt.Sprintf("file %s exists", c.path)
}

// Changed implements wait.Notifier. The channel is closed by Close.
func (c *FileExists) Changed(done <-chan struct{}) <-chan struct{} {
	return c.changed
}

// Close stops watching. It is safe to call Close more than once and from
// several goroutines.
func (c *FileExists) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
		if c.watcher == nil {
			close(c.changed)
			return
		}
		c.closeErr = c.watcher.Close()
	})
	return c.closeErr
}
