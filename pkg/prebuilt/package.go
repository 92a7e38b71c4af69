// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package prebuilt loads prebuilt-library packages from disk and resolves
// each module's variants against a target requirement.
package prebuilt

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"daml.com/x/prefab/pkg/libref"
	"daml.com/x/prefab/pkg/platform"
	"daml.com/x/prefab/pkg/prebuilt/metadata"
	"daml.com/x/prefab/pkg/schema"
	"github.com/Masterminds/semver/v3"
	"github.com/samber/lo"
)

const (
	PackageMetadataFile = "prefab.json"
	ModuleMetadataFile  = "module.json"
	AbiMetadataFile     = "abi.json"
)

var ErrInvalidPackage = fmt.Errorf("invalid package")

// Package is one prebuilt-library distribution: its metadata plus all of its
// modules. Built once by ReadPackage, immutable afterwards.
type Package struct {
	Name         string
	Path         string
	Version      string
	Dependencies []string
	Modules      []*Module
}

func (p *Package) Module(name string) (*Module, bool) {
	return lo.Find(p.Modules, func(m *Module) bool { return m.Name == name })
}

// ReadPackage loads the package rooted at dir, migrating its metadata from
// whatever schema version it was written at.
func ReadPackage(dir string) (*Package, error) {
	metadataPath := filepath.Join(dir, PackageMetadataFile)
	version, err := probeSchemaVersion(metadataPath)
	if err != nil {
		return nil, err
	}

	meta, err := metadata.LoadPackage(version, metadataPath)
	if err != nil {
		return nil, err
	}
	if meta.Name == "" {
		return nil, fmt.Errorf("%w: %s is missing required field 'name'", ErrInvalidPackage, metadataPath)
	}
	if meta.Version != "" {
		if _, err := semver.NewVersion(meta.Version); err != nil {
			return nil, fmt.Errorf("%w: package %s has invalid version %q: %s",
				ErrInvalidPackage, meta.Name, meta.Version, err.Error())
		}
	}

	p := &Package{
		Name:         meta.Name,
		Path:         dir,
		Version:      meta.Version,
		Dependencies: meta.Dependencies,
	}

	modulesDir := filepath.Join(dir, "modules")
	entries, err := os.ReadDir(modulesDir)
	if os.IsNotExist(err) {
		return p, nil
	}
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		m, err := readModule(meta.Name, filepath.Join(modulesDir, e.Name()), version)
		if err != nil {
			return nil, err
		}
		p.Modules = append(p.Modules, m)
	}

	return p, nil
}

// ReadPackages loads every package directory and checks that the set is
// closed under declared dependencies.
func ReadPackages(dirs []string) ([]*Package, error) {
	pkgs := make([]*Package, 0, len(dirs))
	for _, dir := range dirs {
		p, err := ReadPackage(dir)
		if err != nil {
			return nil, err
		}
		pkgs = append(pkgs, p)
	}
	if err := ValidateDependencies(pkgs); err != nil {
		return nil, err
	}
	return pkgs, nil
}

// probeSchemaVersion peeks at schema_version before the full metadata is
// parsed, since the schema version decides which parser applies.
func probeSchemaVersion(metadataPath string) (schema.Version, error) {
	contents, err := os.ReadFile(metadataPath)
	if err != nil {
		return 0, err
	}

	var probe struct {
		SchemaVersion int `json:"schema_version"`
	}
	if err := json.Unmarshal(contents, &probe); err != nil {
		return 0, fmt.Errorf("%w: failed to parse %s: %s", ErrInvalidPackage, metadataPath, err.Error())
	}
	return schema.ParseVersion(probe.SchemaVersion)
}

func readModule(packageName, dir string, version schema.Version) (*Module, error) {
	meta, err := metadata.LoadModule(version, filepath.Join(dir, ModuleMetadataFile))
	if err != nil {
		return nil, err
	}

	m := &Module{
		Name:        filepath.Base(dir),
		PackageName: packageName,
		Path:        dir,
		libraryName: meta.LibraryName,
	}
	if m.exportLibraries, err = libref.ParseAll(meta.ExportLibraries); err != nil {
		return nil, fmt.Errorf("module %s: %w", m.CanonicalName(), err)
	}
	if meta.Android != nil {
		m.androidLibraryName = meta.Android.LibraryName
		if m.androidExportLibraries, err = libref.ParseAll(meta.Android.ExportLibraries); err != nil {
			return nil, fmt.Errorf("module %s: %w", m.CanonicalName(), err)
		}
	}

	if headers := filepath.Join(dir, "include"); dirExists(headers) {
		m.Headers = headers
	}

	libsDir := filepath.Join(dir, "libs")
	entries, err := os.ReadDir(libsDir)
	if os.IsNotExist(err) {
		return m, nil
	}
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		lib, err := readLibrary(m, filepath.Join(libsDir, e.Name()), version)
		if err != nil {
			return nil, err
		}
		m.Libraries = append(m.Libraries, lib)
	}

	return m, nil
}

func readLibrary(m *Module, libDir string, version schema.Version) (*PrebuiltLibrary, error) {
	platformName, _, _ := strings.Cut(filepath.Base(libDir), ".")
	if platformName != "android" {
		return nil, fmt.Errorf("%w: module %s has a variant for unsupported platform %q",
			ErrInvalidPackage, m.CanonicalName(), platformName)
	}

	meta, err := metadata.LoadAndroidAbi(version, filepath.Join(libDir, AbiMetadataFile), libDir)
	if err != nil {
		return nil, err
	}
	abi, err := platform.ParseAbi(meta.Abi)
	if err != nil {
		return nil, fmt.Errorf("module %s: %w", m.CanonicalName(), err)
	}
	stl, err := platform.ParseStl(meta.Stl)
	if err != nil {
		return nil, fmt.Errorf("module %s: %w", m.CanonicalName(), err)
	}
	target := platform.NewAndroid(abi, meta.Api, stl, meta.NdkMajorVersion, meta.Static)

	artifact, err := metadata.FindArtifact(libDir)
	if err != nil {
		return nil, err
	}
	base := filepath.Base(artifact)
	if stem := strings.TrimSuffix(base, filepath.Ext(base)); stem != m.LibraryName(target) {
		return nil, fmt.Errorf("%w: artifact for module %s must be named %s.so or %s.a, found %s",
			ErrInvalidPackage, m.CanonicalName(), m.LibraryName(target), m.LibraryName(target), base)
	}

	lib := &PrebuiltLibrary{
		path:      artifact,
		directory: libDir,
		module:    m,
		platform:  target,
	}
	if headers := filepath.Join(libDir, "include"); dirExists(headers) {
		lib.headers = headers
	}
	return lib, nil
}

// ValidateDependencies checks that every declared package dependency is among
// the loaded packages.
func ValidateDependencies(pkgs []*Package) error {
	names := lo.SliceToMap(pkgs, func(p *Package) (string, struct{}) {
		return p.Name, struct{}{}
	})
	for _, p := range pkgs {
		for _, dep := range p.Dependencies {
			if _, ok := names[dep]; !ok {
				return fmt.Errorf("%w: package %s depends on %s, but %s was not provided",
					ErrInvalidPackage, p.Name, dep, dep)
			}
		}
	}
	return nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
