// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package builtin registers the requirement kinds shipped with reddeer.
package builtin

import (
	"reddeer/requirement"
	"reddeer/requirement/process"
	"reddeer/requirement/server"
	"reddeer/requirement/workspace"
)

var factories = map[string]requirement.Factory{
	workspace.Kind: workspace.New,
	server.Kind:    server.New,
	process.Kind:   process.New,
}

// Register registers all built-in kinds to reg.
func Register(reg *requirement.Registry) error {
	for kind, f := range factories {
		if err := reg.Register(kind, f); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a registry holding the built-in kinds.
func NewRegistry() *requirement.Registry {
	reg := requirement.NewRegistry()
	if err := Register(reg); err != nil {
		panic(err)
	}
	return reg
}
