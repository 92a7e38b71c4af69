// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package buildversion

// To be populated at build-time, e.g.:
// go build -ldflags "-X 'daml.com/x/prefab/pkg/buildversion.Version=1.2.3'"
var (
	Version   string
	Build     string
	BuildDate string
)

func defaultUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func GetVersion() string {
	return defaultUnknown(Version)
}

func GetBuild() string {
	return defaultUnknown(Build)
}

func GetBuildDate() string {
	return defaultUnknown(BuildDate)
}
