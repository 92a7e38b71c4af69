// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package platform

// Library is the view of one prebuilt artifact that the compatibility and
// selection logic needs. pkg/prebuilt's concrete library type implements it.
type Library interface {
	// Platform describes the configuration the artifact was built for.
	Platform() Data

	// Path is the location of the artifact file, used in diagnostics.
	Path() string

	// DirectoryName is the base name of the variant directory the artifact
	// was loaded from (e.g. "android.arm64-v8a").
	DirectoryName() string
}

// Data is a target description: either a consumer's stated requirement or the
// configuration a library variant declares it was built for. Platform kinds
// are a closed set; values of different kinds are never compatible.
type Data interface {
	Name() string

	// CheckIfUsable reports whether lib can satisfy this requirement. When it
	// cannot, the second return value carries the human-readable reason.
	// Rejection is an expected outcome, not an error.
	CheckIfUsable(lib Library) (bool, string)

	// FindBestMatch picks the single best library out of a non-empty set that
	// has already passed CheckIfUsable against this requirement. It fails for
	// contract violations (empty input, foreign platform kinds) and for
	// malformed variant sets (gaps or redundant duplicates).
	FindBestMatch(libs []Library) (Library, error)
}
