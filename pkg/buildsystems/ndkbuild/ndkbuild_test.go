// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package ndkbuild

import (
	"os"
	"path/filepath"
	"testing"

	"daml.com/x/prefab/pkg/buildsystems"
	"daml.com/x/prefab/pkg/platform"
	"daml.com/x/prefab/pkg/prebuilt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func writePackages(t *testing.T, root string) []string {
	t.Helper()

	openssl := filepath.Join(root, "openssl")
	write(t, filepath.Join(openssl, "prefab.json"),
		`{"name": "openssl", "schema_version": 2, "dependencies": []}`)

	ssl := filepath.Join(openssl, "modules", "ssl")
	write(t, filepath.Join(ssl, "module.json"), `{"export_libraries": ["-ldl", ":crypto"]}`)
	write(t, filepath.Join(ssl, "include", "openssl", "ssl.h"), "")
	variant := filepath.Join(ssl, "libs", "android.arm64-v8a")
	write(t, filepath.Join(variant, "abi.json"),
		`{"abi": "arm64-v8a", "api": 21, "ndk": 21, "stl": "c++_shared", "static": false}`)
	write(t, filepath.Join(variant, "libssl.so"), "")

	crypto := filepath.Join(openssl, "modules", "crypto")
	write(t, filepath.Join(crypto, "module.json"), `{"export_libraries": []}`)
	write(t, filepath.Join(crypto, "include", "openssl", "crypto.h"), "")

	curl := filepath.Join(root, "curl")
	write(t, filepath.Join(curl, "prefab.json"),
		`{"name": "curl", "schema_version": 2, "dependencies": ["openssl"]}`)
	curlMod := filepath.Join(curl, "modules", "curl")
	write(t, filepath.Join(curlMod, "module.json"), `{"export_libraries": ["//openssl:ssl"]}`)
	variant = filepath.Join(curlMod, "libs", "android.arm64-v8a")
	write(t, filepath.Join(variant, "abi.json"),
		`{"abi": "arm64-v8a", "api": 21, "ndk": 21, "stl": "c++_static", "static": true}`)
	write(t, filepath.Join(variant, "libcurl.a"), "")

	return []string{openssl, curl}
}

func TestGenerate(t *testing.T) {
	root := t.TempDir()
	pkgs, err := prebuilt.ReadPackages(writePackages(t, root))
	require.NoError(t, err)

	req := platform.NewAndroid(platform.AbiArm64, 24, platform.StlCxxShared, 21, false)
	outputDir := filepath.Join(root, "out")

	generator, err := buildsystems.New("ndk-build")
	require.NoError(t, err)
	require.NoError(t, generator.Generate(pkgs, req, outputDir))

	mk, err := os.ReadFile(filepath.Join(outputDir, "openssl", "Android.mk"))
	require.NoError(t, err)
	contents := string(mk)

	assert.Contains(t, contents, "LOCAL_PATH := $(call my-dir)")
	assert.Contains(t, contents, "LOCAL_MODULE := ssl")
	assert.Contains(t, contents,
		"LOCAL_SRC_FILES := "+filepath.Join(root, "openssl", "modules", "ssl", "libs", "android.arm64-v8a", "libssl.so"))
	assert.Contains(t, contents, "LOCAL_EXPORT_LDLIBS := -ldl")
	// crypto is header-only, so ssl exports it as a static library.
	assert.Contains(t, contents, "LOCAL_EXPORT_STATIC_LIBRARIES := crypto")
	assert.Contains(t, contents, "include $(PREBUILT_SHARED_LIBRARY)")

	assert.Contains(t, contents, "LOCAL_MODULE := crypto")
	assert.Contains(t, contents, "include $(BUILD_STATIC_LIBRARY)")

	mk, err = os.ReadFile(filepath.Join(outputDir, "curl", "Android.mk"))
	require.NoError(t, err)
	contents = string(mk)

	assert.Contains(t, contents, "LOCAL_MODULE := curl")
	assert.Contains(t, contents, "LOCAL_EXPORT_SHARED_LIBRARIES := ssl")
	assert.Contains(t, contents, "include $(PREBUILT_STATIC_LIBRARY)")
}

func TestGenerateSkipsModulesWithNoCompatibleLibrary(t *testing.T) {
	root := t.TempDir()
	pkgs, err := prebuilt.ReadPackages(writePackages(t, root))
	require.NoError(t, err)

	req := platform.NewAndroid(platform.AbiX86, 24, platform.StlCxxShared, 21, false)
	outputDir := filepath.Join(root, "out")

	generator, err := buildsystems.New("ndk-build")
	require.NoError(t, err)
	require.NoError(t, generator.Generate(pkgs, req, outputDir))

	mk, err := os.ReadFile(filepath.Join(outputDir, "openssl", "Android.mk"))
	require.NoError(t, err)
	assert.NotContains(t, string(mk), "LOCAL_MODULE := ssl")
	assert.Contains(t, string(mk), "LOCAL_MODULE := crypto")
}
