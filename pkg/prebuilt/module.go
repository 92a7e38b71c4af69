// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package prebuilt

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"daml.com/x/prefab/pkg/libref"
	"daml.com/x/prefab/pkg/platform"
)

// Module is one named unit of library distribution inside a package: an
// optional headers directory plus zero or more prebuilt variants, one per
// supported target configuration. Modules are built once by ReadPackage and
// immutable afterwards. A module with zero variants is header-only and
// bypasses platform resolution entirely.
type Module struct {
	Name        string
	PackageName string
	Path        string

	// Headers is the module-level include directory, or "" if absent.
	Headers string

	Libraries []*PrebuiltLibrary

	exportLibraries        []libref.Reference
	androidExportLibraries []libref.Reference
	libraryName            string
	androidLibraryName     string
}

// CanonicalName is the package-qualified name used in diagnostics and
// external references.
func (m *Module) CanonicalName() string {
	return fmt.Sprintf("//%s/%s", m.PackageName, m.Name)
}

func (m *Module) IsHeaderOnly() bool {
	return len(m.Libraries) == 0
}

// ExportedLibraries returns the link references this module exposes to
// consumers targeting the given platform. Platform-specific references are
// appended to the module-level list.
func (m *Module) ExportedLibraries(target platform.Data) []libref.Reference {
	refs := slices.Clone(m.exportLibraries)
	if target.Name() == "android" {
		refs = append(refs, m.androidExportLibraries...)
	}
	return refs
}

// LibraryName is the artifact file stem (e.g. "libfoo" for libfoo.so) for
// the given platform. Defaults to "lib" + the module name.
func (m *Module) LibraryName(target platform.Data) string {
	if target.Name() == "android" && m.androidLibraryName != "" {
		return m.androidLibraryName
	}
	if m.libraryName != "" {
		return m.libraryName
	}
	return "lib" + m.Name
}

// Resolve picks the single best variant for the requirement. When no variant
// is compatible it fails with a *NoMatchingLibraryError listing every variant
// considered and why it was rejected. Fatal selection errors (gapped or
// redundant variant sets) are passed through unchanged. Callers must handle
// header-only modules before calling.
func (m *Module) Resolve(req platform.Data) (*PrebuiltLibrary, error) {
	if m.IsHeaderOnly() {
		return nil, fmt.Errorf("cannot resolve header-only module %s", m.CanonicalName())
	}

	var compatible []platform.Library
	var rejections []Rejection
	for _, lib := range m.Libraries {
		if ok, reason := req.CheckIfUsable(lib); ok {
			compatible = append(compatible, lib)
		} else {
			rejections = append(rejections, Rejection{Directory: lib.DirectoryName(), Reason: reason})
		}
	}

	if len(compatible) == 0 {
		slices.SortFunc(rejections, func(a, b Rejection) int {
			return strings.Compare(a.Directory, b.Directory)
		})
		return nil, &NoMatchingLibraryError{Module: m.CanonicalName(), Rejections: rejections}
	}

	best, err := req.FindBestMatch(compatible)
	if err != nil {
		return nil, err
	}
	return best.(*PrebuiltLibrary), nil
}

// PrebuiltLibrary is one concrete artifact belonging to a module: the built
// library file, the target configuration it was built for, and its headers.
// It implements platform.Library.
type PrebuiltLibrary struct {
	path      string
	directory string
	headers   string
	module    *Module
	platform  platform.Data
}

func (l *PrebuiltLibrary) Platform() platform.Data {
	return l.platform
}

func (l *PrebuiltLibrary) Path() string {
	return l.path
}

func (l *PrebuiltLibrary) DirectoryName() string {
	return filepath.Base(l.directory)
}

func (l *PrebuiltLibrary) Module() *Module {
	return l.module
}

// IsStatic reports whether the artifact is a static archive.
func (l *PrebuiltLibrary) IsStatic() bool {
	return filepath.Ext(l.path) == ".a"
}

// Headers is the include directory for this variant: the variant-specific
// one when present, the module-level one otherwise.
func (l *PrebuiltLibrary) Headers() string {
	if l.headers != "" {
		return l.headers
	}
	return l.module.Headers
}
