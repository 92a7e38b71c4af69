// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package buildsystems defines the build-system emitter contract and the
// shared machinery emitters need: the loaded-package index and the
// classification of exported references against it.
package buildsystems

import (
	"fmt"
	"sort"

	"daml.com/x/prefab/pkg/libref"
	"daml.com/x/prefab/pkg/platform"
	"daml.com/x/prefab/pkg/prebuilt"
)

// Generator emits one build system's integration files for a set of packages
// and a single target requirement.
type Generator interface {
	Name() string
	Generate(pkgs []*prebuilt.Package, req platform.Data, outputDir string) error
}

var generators = map[string]func() Generator{}

// Register makes a generator available under its name. Called from the
// emitter packages' init functions.
func Register(name string, create func() Generator) {
	generators[name] = create
}

// New returns the generator registered under name.
func New(name string) (Generator, error) {
	create, ok := generators[name]
	if !ok {
		return nil, fmt.Errorf("unknown build system %q. Must be one of %q", name, Names())
	}
	return create(), nil
}

func Names() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Index maps package names to loaded packages for reference resolution.
type Index map[string]*prebuilt.Package

func NewIndex(pkgs []*prebuilt.Package) Index {
	index := make(Index, len(pkgs))
	for _, p := range pkgs {
		index[p.Name] = p
	}
	return index
}

func (i Index) Module(packageName, moduleName string) (*prebuilt.Module, error) {
	p, ok := i[packageName]
	if !ok {
		return nil, fmt.Errorf("reference //%s:%s names a package that was not provided", packageName, moduleName)
	}
	m, ok := p.Module(moduleName)
	if !ok {
		return nil, fmt.Errorf("package %s does not contain a module named %s", packageName, moduleName)
	}
	return m, nil
}

// TargetKind is how a referenced module materializes in emitted output.
type TargetKind int

const (
	TargetHeaderOnly TargetKind = iota
	TargetShared
	TargetStatic
)

// ReferenceTarget resolves a module reference made from within a package and
// classifies the referred-to module for the requirement. Literal references
// carry no target and must be handled by the caller.
func (i Index) ReferenceTarget(from *prebuilt.Package, ref libref.Reference, req platform.Data) (*prebuilt.Module, TargetKind, error) {
	var m *prebuilt.Module
	var err error

	switch r := ref.(type) {
	case libref.Local:
		var ok bool
		if m, ok = from.Module(r.Module); !ok {
			return nil, 0, fmt.Errorf("package %s does not contain a module named %s", from.Name, r.Module)
		}
	case libref.External:
		if m, err = i.Module(r.Package, r.Module); err != nil {
			return nil, 0, err
		}
	default:
		return nil, 0, fmt.Errorf("reference %q does not name a module", ref)
	}

	if m.IsHeaderOnly() {
		return m, TargetHeaderOnly, nil
	}
	lib, err := m.Resolve(req)
	if err != nil {
		return nil, 0, err
	}
	if lib.IsStatic() {
		return m, TargetStatic, nil
	}
	return m, TargetShared, nil
}
