// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package metadata holds the versioned on-disk record types for prefab.json,
// module.json, and abi.json, and the migrations that normalize older schema
// versions into the current in-memory shape. Each metadata domain has its own
// loader table keyed by schema.Version; the tables are built once and never
// mutated.
package metadata

import (
	"encoding/json"
	"fmt"
	"os"

	"daml.com/x/prefab/pkg/schema"
)

var ErrInvalidMetadata = fmt.Errorf("invalid metadata")

var packageLoaders = map[schema.Version]func(path string) (*PackageMetadataV2, error){
	schema.V1: loadPackageV1,
	schema.V2: loadPackageV2,
}

var moduleLoaders = map[schema.Version]func(path string) (*ModuleMetadataV2, error){
	schema.V1: loadModuleV1,
	schema.V2: loadModuleV2,
}

var androidAbiLoaders = map[schema.Version]func(path, libDir string) (*AndroidAbiMetadataV2, error){
	schema.V1: loadAndroidAbiV1,
	schema.V2: loadAndroidAbiV2,
}

// LoadPackage reads a prefab.json written at schema version v and migrates it
// to the current shape.
func LoadPackage(v schema.Version, path string) (*PackageMetadataV2, error) {
	return packageLoaders[v](path)
}

// LoadModule reads a module.json written at schema version v and migrates it
// to the current shape.
func LoadModule(v schema.Version, path string) (*ModuleMetadataV2, error) {
	return moduleLoaders[v](path)
}

// LoadAndroidAbi reads an abi.json written at schema version v and migrates
// it to the current shape. libDir is the variant directory holding the
// artifact; V1 migration inspects it to recover the artifact kind.
func LoadAndroidAbi(v schema.Version, path, libDir string) (*AndroidAbiMetadataV2, error) {
	return androidAbiLoaders[v](path, libDir)
}

// decodeStrict parses a metadata file, rejecting unknown fields so typos and
// fields from future schema versions fail loudly.
func decodeStrict(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	decoder := json.NewDecoder(f)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("%w: failed to parse %s: %s", ErrInvalidMetadata, path, err.Error())
	}
	return nil
}
