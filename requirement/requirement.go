// Copyright 2024 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package requirement establishes declarative test preconditions.
//
// A test declares the requirements it needs as a list of Declarations, e.g.
// loaded from YAML:
//
//	requirements:
//	- kind: cleanWorkspace
//	- kind: server
//	  params:
//	    container: app-server
//
// A Registry turns declarations into Requirements through the Factory
// registered for each kind. The resulting Set fulfills them by descending
// priority before the test body and cleans them up in exactly the reverse
// order afterwards.
package requirement

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v2"

	"reddeer/errors"
)

// Requirement is a precondition of a test.
type Requirement interface {
	// Fulfill establishes the precondition.
	Fulfill(ctx context.Context) error
	// CleanUp tears down what Fulfill established.
	CleanUp(ctx context.Context) error
	// Priority orders fulfillment. Higher priorities are fulfilled first.
	Priority() int
}

// Declaration names a requirement kind and its parameters.
type Declaration struct {
	Kind   string            `yaml:"kind"`
	Params map[string]string `yaml:"params,omitempty"`
}

func (d Declaration) String() string {
	return d.Kind
}

// Param returns the parameter key, or def if it is not set.
func (d Declaration) Param(key, def string) string {
	if v, ok := d.Params[key]; ok {
		return v
	}
	return def
}

// IntParam returns the parameter key parsed as an integer, or def if it is
// not set.
func (d Declaration) IntParam(key string, def int) (int, error) {
	v, ok := d.Params[key]
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrapf(err, "%s: bad %s parameter", d.Kind, key)
	}
	return n, nil
}

// DurationParam returns the parameter key parsed with time.ParseDuration, or
// def if it is not set.
func (d Declaration) DurationParam(key string, def time.Duration) (time.Duration, error) {
	v, ok := d.Params[key]
	if !ok {
		return def, nil
	}
	t, err := time.ParseDuration(v)
	if err != nil {
		return 0, errors.Wrapf(err, "%s: bad %s parameter", d.Kind, key)
	}
	return t, nil
}

// BoolParam returns the parameter key parsed with strconv.ParseBool, or def
// if it is not set.
func (d Declaration) BoolParam(key string, def bool) (bool, error) {
	v, ok := d.Params[key]
	if !ok {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.Wrapf(err, "%s: bad %s parameter", d.Kind, key)
	}
	return b, nil
}

// Priority returns the "priority" parameter, or def if it is not set.
func (d Declaration) Priority(def int) (int, error) {
	return d.IntParam("priority", def)
}

// declarationFile is the YAML document holding declarations.
type declarationFile struct {
	Requirements []Declaration `yaml:"requirements"`
}

// ParseDeclarations parses a YAML document listing declarations under a
// top-level "requirements" key.
func ParseDeclarations(b []byte) ([]Declaration, error) {
	var f declarationFile
	if err := yaml.UnmarshalStrict(b, &f); err != nil {
		return nil, errors.Wrap(err, "failed to parse requirement declarations")
	}
	for i, d := range f.Requirements {
		if d.Kind == "" {
			return nil, errors.Errorf("requirement #%d has no kind", i)
		}
	}
	return f.Requirements, nil
}

// LoadDeclarations reads declarations from the YAML file at path.
func LoadDeclarations(path string) ([]Declaration, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read requirement declarations")
	}
	return ParseDeclarations(b)
}

// Factory builds a Requirement from its declaration.
type Factory func(decl Declaration) (Requirement, error)

// Registry maps declaration kinds to factories. It is safe for concurrent use.
type Registry struct {
	mu        sync.Mutex
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register associates kind with f. Registering a kind twice is an error.
func (r *Registry) Register(kind string, f Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if kind == "" {
		return errors.New("empty requirement kind")
	}
	if _, ok := r.factories[kind]; ok {
		return errors.Errorf("requirement kind %q already registered", kind)
	}
	r.factories[kind] = f
	return nil
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := maps.Keys(r.factories)
	slices.Sort(kinds)
	return kinds
}

// Resolve builds a Set from decls. It fails if any kind is unknown or any
// factory fails.
func (r *Registry) Resolve(decls []Declaration) (*Set, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var entries []*entry
	for i, d := range decls {
		f, ok := r.factories[d.Kind]
		if !ok {
			return nil, errors.Errorf("unknown requirement kind %q", d.Kind)
		}
		req, err := f(d)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create requirement %s", d.Kind)
		}
		entries = append(entries, &entry{decl: d, req: req, seq: i})
	}
	return newSet(entries), nil
}

// entry is a resolved requirement.
type entry struct {
	decl Declaration
	req  Requirement
	seq  int // position in the declaration list
}

func (e *entry) name() string {
	return fmt.Sprintf("requirement %s (#%d)", e.decl.Kind, e.seq)
}
