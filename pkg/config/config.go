// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package config carries the target and output settings shared by every
// prefab subcommand.
package config

import (
	"fmt"

	"daml.com/x/prefab/pkg/platform"
)

const AndroidPlatform = "android"

type Config struct {
	BuildSystem string
	OutputDir   string

	Platform        string
	Abi             string
	OsVersion       int
	Stl             string
	NdkMajorVersion int
}

// Requirement builds the target description the resolution engine filters
// against. The requirement side of a target never describes an artifact, so
// its static flag is always false.
func (c *Config) Requirement() (platform.Data, error) {
	if c.Platform != AndroidPlatform {
		return nil, fmt.Errorf("unsupported platform %q. Must be %q", c.Platform, AndroidPlatform)
	}

	abi, err := platform.ParseAbi(c.Abi)
	if err != nil {
		return nil, err
	}
	stl, err := platform.ParseStl(c.Stl)
	if err != nil {
		return nil, err
	}
	if c.OsVersion < 1 {
		return nil, fmt.Errorf("os version must be a positive integer, got %d", c.OsVersion)
	}
	if c.NdkMajorVersion < 1 {
		return nil, fmt.Errorf("NDK major version must be a positive integer, got %d", c.NdkMajorVersion)
	}

	return platform.NewAndroid(abi, c.OsVersion, stl, c.NdkMajorVersion, false), nil
}
