// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package cmake emits CMake package-config files for resolved packages, one
// directory per package, consumable with find_package in CONFIG mode.
package cmake

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"daml.com/x/prefab/pkg/buildsystems"
	"daml.com/x/prefab/pkg/libref"
	"daml.com/x/prefab/pkg/platform"
	"daml.com/x/prefab/pkg/prebuilt"
	"github.com/Masterminds/semver/v3"
)

func init() {
	buildsystems.Register("cmake", func() buildsystems.Generator { return &generator{} })
}

type generator struct{}

func (g *generator) Name() string {
	return "cmake"
}

type configData struct {
	Dependencies []string
	Modules      []moduleData
}

type moduleData struct {
	Target        string
	Kind          string
	Location      string
	Includes      string
	LinkLibraries string
}

var configTemplate = template.Must(template.New("config").Parse(
	`{{range .Dependencies -}}
find_package({{.}} REQUIRED CONFIG)
{{end -}}
{{range .Modules}}
if(NOT TARGET {{.Target}})
add_library({{.Target}} {{.Kind}} IMPORTED)
set_target_properties({{.Target}} PROPERTIES
{{- if .Location}}
    IMPORTED_LOCATION "{{.Location}}"
{{- end}}
    INTERFACE_INCLUDE_DIRECTORIES "{{.Includes}}"
    INTERFACE_LINK_LIBRARIES "{{.LinkLibraries}}"
)
endif()
{{end}}`))

var configVersionTemplate = template.Must(template.New("configVersion").Parse(
	`set(PACKAGE_VERSION {{.}})
if("${PACKAGE_VERSION}" VERSION_LESS "${PACKAGE_FIND_VERSION}")
    set(PACKAGE_VERSION_COMPATIBLE FALSE)
else()
    set(PACKAGE_VERSION_COMPATIBLE TRUE)
    if("${PACKAGE_VERSION}" VERSION_EQUAL "${PACKAGE_FIND_VERSION}")
        set(PACKAGE_VERSION_EXACT TRUE)
    endif()
endif()
`))

func (g *generator) Generate(pkgs []*prebuilt.Package, req platform.Data, outputDir string) error {
	index := buildsystems.NewIndex(pkgs)
	for _, p := range pkgs {
		if err := g.generatePackage(index, p, req, outputDir); err != nil {
			return err
		}
	}
	return nil
}

func (g *generator) generatePackage(index buildsystems.Index, p *prebuilt.Package, req platform.Data, outputDir string) error {
	data := configData{Dependencies: p.Dependencies}

	for _, m := range p.Modules {
		links, err := linkLibraries(index, p, m, req)
		if err != nil {
			return err
		}

		md := moduleData{
			Target:        target(p.Name, m.Name),
			LinkLibraries: links,
			Includes:      m.Headers,
		}

		if m.IsHeaderOnly() {
			md.Kind = "INTERFACE"
		} else {
			lib, err := m.Resolve(req)
			var noMatch *prebuilt.NoMatchingLibraryError
			if errors.As(err, &noMatch) {
				slog.Warn("skipping module with no compatible library", "module", m.CanonicalName(), "reason", err.Error())
				continue
			}
			if err != nil {
				return err
			}
			md.Kind = "SHARED"
			if lib.IsStatic() {
				md.Kind = "STATIC"
			}
			md.Location = lib.Path()
			md.Includes = lib.Headers()
		}

		data.Modules = append(data.Modules, md)
	}

	dir := filepath.Join(outputDir, p.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := writeTemplate(filepath.Join(dir, p.Name+"-config.cmake"), configTemplate, data); err != nil {
		return err
	}

	// A config-version file only makes sense for versions CMake can compare.
	if _, err := semver.StrictNewVersion(p.Version); err == nil {
		versionPath := filepath.Join(dir, p.Name+"-config-version.cmake")
		if err := writeTemplate(versionPath, configVersionTemplate, p.Version); err != nil {
			return err
		}
	}
	return nil
}

// linkLibraries renders a module's exported references as the
// INTERFACE_LINK_LIBRARIES value: literal flags verbatim, module references
// as namespaced CMake targets. CMake link lists do not distinguish
// header-only from static from shared targets, so references only need to
// exist; their kind is irrelevant here.
func linkLibraries(index buildsystems.Index, p *prebuilt.Package, m *prebuilt.Module, req platform.Data) (string, error) {
	var links []string
	for _, ref := range m.ExportedLibraries(req) {
		switch r := ref.(type) {
		case libref.Literal:
			links = append(links, r.Flag)
		case libref.Local:
			if _, ok := p.Module(r.Module); !ok {
				return "", fmt.Errorf("module %s: package %s does not contain a module named %s",
					m.CanonicalName(), p.Name, r.Module)
			}
			links = append(links, target(p.Name, r.Module))
		case libref.External:
			if _, err := index.Module(r.Package, r.Module); err != nil {
				return "", fmt.Errorf("module %s: %w", m.CanonicalName(), err)
			}
			links = append(links, target(r.Package, r.Module))
		}
	}
	return strings.Join(links, ";"), nil
}

func target(packageName, moduleName string) string {
	return packageName + "::" + moduleName
}

func writeTemplate(path string, t *template.Template, data any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return t.Execute(f, data)
}
