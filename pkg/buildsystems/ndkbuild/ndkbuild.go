// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package ndkbuild emits ndk-build Android.mk files for resolved packages,
// one directory per package, importable with $(call import-module,...).
package ndkbuild

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"text/template"

	"daml.com/x/prefab/pkg/buildsystems"
	"daml.com/x/prefab/pkg/libref"
	"daml.com/x/prefab/pkg/platform"
	"daml.com/x/prefab/pkg/prebuilt"
)

func init() {
	buildsystems.Register("ndk-build", func() buildsystems.Generator { return &generator{} })
}

type generator struct{}

func (g *generator) Name() string {
	return "ndk-build"
}

type moduleData struct {
	Name            string
	SourceFile      string
	Includes        string
	SharedLibraries []string
	StaticLibraries []string
	LdLibs          []string

	// Static selects PREBUILT_STATIC_LIBRARY over PREBUILT_SHARED_LIBRARY.
	// HeaderOnly modules are emitted as sourceless static libraries instead,
	// since ndk-build has no header-only prebuilt kind.
	Static     bool
	HeaderOnly bool
}

var androidMkTemplate = template.Must(template.New("androidmk").Parse(
	`LOCAL_PATH := $(call my-dir)
{{range .}}
include $(CLEAR_VARS)
LOCAL_MODULE := {{.Name}}
{{- if .SourceFile}}
LOCAL_SRC_FILES := {{.SourceFile}}
{{- end}}
{{- if .Includes}}
LOCAL_EXPORT_C_INCLUDES := {{.Includes}}
{{- end}}
{{- if .SharedLibraries}}
LOCAL_EXPORT_SHARED_LIBRARIES :={{range .SharedLibraries}} {{.}}{{end}}
{{- end}}
{{- if .StaticLibraries}}
LOCAL_EXPORT_STATIC_LIBRARIES :={{range .StaticLibraries}} {{.}}{{end}}
{{- end}}
{{- if .LdLibs}}
LOCAL_EXPORT_LDLIBS :={{range .LdLibs}} {{.}}{{end}}
{{- end}}
{{- if .HeaderOnly}}
include $(BUILD_STATIC_LIBRARY)
{{- else if .Static}}
include $(PREBUILT_STATIC_LIBRARY)
{{- else}}
include $(PREBUILT_SHARED_LIBRARY)
{{- end}}
{{end}}`))

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
	var modules []moduleData

	for _, m := range p.Modules {
		md := moduleData{
			Name:     m.Name,
			Includes: m.Headers,
		}

		if m.IsHeaderOnly() {
			md.HeaderOnly = true
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
			md.SourceFile = lib.Path()
			md.Includes = lib.Headers()
			md.Static = lib.IsStatic()
		}

		for _, ref := range m.ExportedLibraries(req) {
			if err := appendReference(index, p, ref, req, &md); err != nil {
				return err
			}
		}

		modules = append(modules, md)
	}

	dir := filepath.Join(outputDir, p.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, "Android.mk"))
	if err != nil {
		return err
	}
	defer f.Close()
	return androidMkTemplate.Execute(f, modules)
}

// appendReference sorts one exported reference into the right
// LOCAL_EXPORT_* bucket. ndk-build module names are a flat namespace, so
// local and external module references both reduce to the module name.
func appendReference(index buildsystems.Index, p *prebuilt.Package, ref libref.Reference, req platform.Data, md *moduleData) error {
	if literal, ok := ref.(libref.Literal); ok {
		md.LdLibs = append(md.LdLibs, literal.Flag)
		return nil
	}

	dep, kind, err := index.ReferenceTarget(p, ref, req)
	if err != nil {
		return err
	}
	if kind == buildsystems.TargetShared {
		md.SharedLibraries = append(md.SharedLibraries, dep.Name)
	} else {
		md.StaticLibraries = append(md.StaticLibraries, dep.Name)
	}
	return nil
}
