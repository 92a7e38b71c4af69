// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package resolution builds a diagnostic report of a full resolution pass:
// for every module of every package, which variant was selected for the
// target, or why each variant was rejected.
package resolution

import (
	"errors"

	"daml.com/x/prefab/pkg/platform"
	"daml.com/x/prefab/pkg/prebuilt"
)

type Report struct {
	Target   string              `yaml:"target"`
	Packages map[string]*Package `yaml:"packages"`
}

// Package is a <module name> -> Module mapping
type Package struct {
	Modules map[string]*Module `yaml:"modules"`
}

type Module struct {
	HeaderOnly bool     `yaml:"header-only,omitempty"`
	Library    string   `yaml:"library,omitempty"`
	Errors     []string `yaml:"errors,omitempty"`
}

// Build resolves every module of every package against req and collects the
// outcomes. Resolution failures are recorded per module, never raised;
// packages resolve independently of each other.
func Build(pkgs []*prebuilt.Package, req platform.Data) *Report {
	report := &Report{
		Target:   req.Name(),
		Packages: make(map[string]*Package),
	}
	if s, ok := req.(interface{ String() string }); ok {
		report.Target = s.String()
	}

	for _, p := range pkgs {
		rp := &Package{Modules: make(map[string]*Module)}
		report.Packages[p.Name] = rp

		for _, m := range p.Modules {
			rm := &Module{}
			rp.Modules[m.Name] = rm

			if m.IsHeaderOnly() {
				rm.HeaderOnly = true
				continue
			}

			lib, err := m.Resolve(req)
			if err == nil {
				rm.Library = lib.DirectoryName()
				continue
			}

			var noMatch *prebuilt.NoMatchingLibraryError
			if errors.As(err, &noMatch) {
				for _, r := range noMatch.Rejections {
					rm.Errors = append(rm.Errors, r.Directory+": "+r.Reason)
				}
			} else {
				rm.Errors = append(rm.Errors, err.Error())
			}
		}
	}

	return report
}
