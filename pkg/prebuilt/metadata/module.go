// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package metadata

// ModuleMetadataV1 is the module.json shape for schema version 1.
type ModuleMetadataV1 struct {
	ExportLibraries []string                 `json:"export_libraries"`
	LibraryName     string                   `json:"library_name,omitempty"`
	Android         *AndroidModuleMetadataV1 `json:"android,omitempty"`
}

// AndroidModuleMetadataV1 overrides module-level settings for Android
// consumers only.
type AndroidModuleMetadataV1 struct {
	ExportLibraries []string `json:"export_libraries,omitempty"`
	LibraryName     string   `json:"library_name,omitempty"`
}

// ModuleMetadataV2 is the module.json shape for schema version 2, and the
// current in-memory shape.
type ModuleMetadataV2 struct {
	ExportLibraries []string                 `json:"export_libraries"`
	LibraryName     string                   `json:"library_name,omitempty"`
	Android         *AndroidModuleMetadataV2 `json:"android,omitempty"`
}

type AndroidModuleMetadataV2 struct {
	ExportLibraries []string `json:"export_libraries,omitempty"`
	LibraryName     string   `json:"library_name,omitempty"`
}

func (m *ModuleMetadataV1) migrate() *ModuleMetadataV2 {
	migrated := &ModuleMetadataV2{
		ExportLibraries: m.ExportLibraries,
		LibraryName:     m.LibraryName,
	}
	if m.Android != nil {
		migrated.Android = &AndroidModuleMetadataV2{
			ExportLibraries: m.Android.ExportLibraries,
			LibraryName:     m.Android.LibraryName,
		}
	}
	return migrated
}

func loadModuleV1(path string) (*ModuleMetadataV2, error) {
	var raw ModuleMetadataV1
	if err := decodeStrict(path, &raw); err != nil {
		return nil, err
	}
	return raw.migrate(), nil
}

func loadModuleV2(path string) (*ModuleMetadataV2, error) {
	var raw ModuleMetadataV2
	if err := decodeStrict(path, &raw); err != nil {
		return nil, err
	}
	return &raw, nil
}
