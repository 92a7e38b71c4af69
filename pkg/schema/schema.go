// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package schema versions the on-disk package metadata format.
package schema

import (
	"fmt"
)

// Version tags one on-disk metadata shape. Loaders and migrations are keyed
// by it; see pkg/prebuilt/metadata.
type Version int

const (
	// V1 is the original format. It did not record whether an artifact is a
	// static archive, so migration has to infer that from the files on disk.
	V1 Version = 1

	// V2 records the artifact kind explicitly in abi.json.
	V2 Version = 2

	// Current is the in-memory shape all older versions migrate to.
	Current = V2
)

var ErrUnsupportedVersion = fmt.Errorf("unsupported schema version")

// ParseVersion validates a raw schema_version value read from prefab.json.
func ParseVersion(raw int) (Version, error) {
	if raw < int(V1) || raw > int(Current) {
		return 0, fmt.Errorf("%w: schema_version must be between %d and %d, got %d",
			ErrUnsupportedVersion, V1, Current, raw)
	}
	return Version(raw), nil
}
