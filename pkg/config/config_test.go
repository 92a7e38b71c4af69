// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"testing"

	"daml.com/x/prefab/pkg/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		BuildSystem:     "cmake",
		OutputDir:       "out",
		Platform:        AndroidPlatform,
		Abi:             "arm64-v8a",
		OsVersion:       24,
		Stl:             "c++_shared",
		NdkMajorVersion: 27,
	}
}

func TestRequirement(t *testing.T) {
	req, err := validConfig().Requirement()
	require.NoError(t, err)

	android, ok := req.(*platform.Android)
	require.True(t, ok)
	assert.Equal(t, platform.AbiArm64, android.Abi)
	assert.Equal(t, 24, android.OsVersion)
	assert.Equal(t, platform.StlCxxShared, android.Stl)
	assert.Equal(t, 27, android.NdkMajorVersion)
	assert.False(t, android.IsStatic)
}

func TestRequirementErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"unsupported platform", func(c *Config) { c.Platform = "qnx" }, `unsupported platform "qnx"`},
		{"unknown abi", func(c *Config) { c.Abi = "mips" }, `unknown ABI "mips"`},
		{"unknown stl", func(c *Config) { c.Stl = "stlport_shared" }, `unknown STL "stlport_shared"`},
		{"bad os version", func(c *Config) { c.OsVersion = 0 }, "os version must be a positive integer"},
		{"bad ndk version", func(c *Config) { c.NdkMajorVersion = -1 }, "NDK major version must be a positive integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			_, err := c.Requirement()
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
