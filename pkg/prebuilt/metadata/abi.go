// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package metadata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

// AndroidAbiMetadataV1 is the abi.json shape for schema version 1. It does
// not say whether the artifact is a static archive; that was not knowable
// without the built artifact present, so migration recovers it from the
// artifact's file extension.
type AndroidAbiMetadataV1 struct {
	Abi             string `json:"abi"`
	Api             int    `json:"api"`
	NdkMajorVersion int    `json:"ndk"`
	Stl             string `json:"stl"`
}

// AndroidAbiMetadataV2 is the abi.json shape for schema version 2, and the
// current in-memory shape. Static is recorded explicitly so migration from
// here on is a pure data copy.
type AndroidAbiMetadataV2 struct {
	Abi             string `json:"abi"`
	Api             int    `json:"api"`
	NdkMajorVersion int    `json:"ndk"`
	Stl             string `json:"stl"`
	Static          bool   `json:"static"`
}

func (m *AndroidAbiMetadataV1) migrate(libDir string) (*AndroidAbiMetadataV2, error) {
	artifact, err := FindArtifact(libDir)
	if err != nil {
		return nil, err
	}
	return &AndroidAbiMetadataV2{
		Abi:             m.Abi,
		Api:             m.Api,
		NdkMajorVersion: m.NdkMajorVersion,
		Stl:             m.Stl,
		Static:          strings.HasSuffix(artifact, ".a"),
	}, nil
}

func loadAndroidAbiV1(path, libDir string) (*AndroidAbiMetadataV2, error) {
	var raw AndroidAbiMetadataV1
	if err := decodeStrict(path, &raw); err != nil {
		return nil, err
	}
	return raw.migrate(libDir)
}

func loadAndroidAbiV2(path, _ string) (*AndroidAbiMetadataV2, error) {
	var raw AndroidAbiMetadataV2
	if err := decodeStrict(path, &raw); err != nil {
		return nil, err
	}
	return &raw, nil
}

// FindArtifact locates the single .so or .a file in a variant directory.
// Zero or multiple artifacts make the package unusable.
func FindArtifact(libDir string) (string, error) {
	entries, err := os.ReadDir(libDir)
	if err != nil {
		return "", err
	}

	artifacts := lo.FilterMap(entries, func(e os.DirEntry, _ int) (string, bool) {
		if e.IsDir() {
			return "", false
		}
		ext := filepath.Ext(e.Name())
		return filepath.Join(libDir, e.Name()), ext == ".so" || ext == ".a"
	})

	switch len(artifacts) {
	case 0:
		return "", fmt.Errorf("%w: %s contains no .so or .a artifact", ErrInvalidMetadata, libDir)
	case 1:
		return artifacts[0], nil
	default:
		return "", fmt.Errorf("%w: %s contains more than one artifact: %q", ErrInvalidMetadata, libDir, artifacts)
	}
}
