// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package metadata

// PackageMetadataV1 is the prefab.json shape for schema version 1.
type PackageMetadataV1 struct {
	Name          string   `json:"name"`
	SchemaVersion int      `json:"schema_version"`
	Dependencies  []string `json:"dependencies"`
	Version       string   `json:"version,omitempty"`
}

// PackageMetadataV2 is the prefab.json shape for schema version 2, and the
// current in-memory shape. The package-level fields did not change between
// versions; only abi.json did.
type PackageMetadataV2 struct {
	Name          string   `json:"name"`
	SchemaVersion int      `json:"schema_version"`
	Dependencies  []string `json:"dependencies"`
	Version       string   `json:"version,omitempty"`
}

func (m *PackageMetadataV1) migrate() *PackageMetadataV2 {
	return &PackageMetadataV2{
		Name:          m.Name,
		SchemaVersion: m.SchemaVersion,
		Dependencies:  m.Dependencies,
		Version:       m.Version,
	}
}

func loadPackageV1(path string) (*PackageMetadataV2, error) {
	var raw PackageMetadataV1
	if err := decodeStrict(path, &raw); err != nil {
		return nil, err
	}
	return raw.migrate(), nil
}

func loadPackageV2(path string) (*PackageMetadataV2, error) {
	var raw PackageMetadataV2
	if err := decodeStrict(path, &raw); err != nil {
		return nil, err
	}
	return &raw, nil
}
