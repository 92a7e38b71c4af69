// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package prebuilt

import (
	"testing"

	"daml.com/x/prefab/pkg/libref"
	"daml.com/x/prefab/pkg/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func androidReq(abi platform.Abi, api, ndk int) platform.Data {
	return platform.NewAndroid(abi, api, platform.StlCxxShared, ndk, false)
}

func TestResolvePicksMatchingAbi(t *testing.T) {
	dir := writeOpenssl(t, t.TempDir())
	p, err := ReadPackage(dir)
	require.NoError(t, err)
	ssl, _ := p.Module("ssl")

	lib, err := ssl.Resolve(androidReq(platform.AbiArm64, 24, 21))
	require.NoError(t, err)
	assert.Equal(t, "android.arm64-v8a", lib.DirectoryName())

	lib, err = ssl.Resolve(androidReq(platform.AbiArm32, 24, 21))
	require.NoError(t, err)
	assert.Equal(t, "android.armeabi-v7a", lib.DirectoryName())
}

func TestResolveNoMatchReportsEveryRejection(t *testing.T) {
	dir := writeOpenssl(t, t.TempDir())
	p, err := ReadPackage(dir)
	require.NoError(t, err)
	ssl, _ := p.Module("ssl")

	_, err = ssl.Resolve(androidReq(platform.AbiX86, 24, 21))

	var noMatch *NoMatchingLibraryError
	require.ErrorAs(t, err, &noMatch)
	assert.Equal(t, "//openssl/ssl", noMatch.Module)
	require.Len(t, noMatch.Rejections, 2)
	// Sorted by directory name for reproducible output.
	assert.Equal(t, "android.arm64-v8a", noMatch.Rejections[0].Directory)
	assert.Equal(t, "android.armeabi-v7a", noMatch.Rejections[1].Directory)

	assert.Equal(t,
		"no compatible library found for //openssl/ssl. Rejected the following libraries:\n"+
			"    android.arm64-v8a: user requested ABI x86 but library is for arm64-v8a\n"+
			"    android.armeabi-v7a: user requested ABI x86 but library is for armeabi-v7a",
		err.Error())
}

func TestResolveClampsAcrossNdkVariants(t *testing.T) {
	root := t.TempDir()
	dir := writePackage(t, root, "curl",
		`{"name": "curl", "schema_version": 2, "dependencies": []}`)
	m := writeModule(t, dir, "curl", `{"export_libraries": []}`)
	writeVariant(t, m, "android.arm64-v8a.ndk18",
		`{"abi": "arm64-v8a", "api": 21, "ndk": 18, "stl": "c++_shared", "static": false}`, "libcurl.so")
	writeVariant(t, m, "android.arm64-v8a.ndk21",
		`{"abi": "arm64-v8a", "api": 21, "ndk": 21, "stl": "c++_shared", "static": false}`, "libcurl.so")

	p, err := ReadPackage(dir)
	require.NoError(t, err)
	curl, _ := p.Module("curl")

	lib, err := curl.Resolve(androidReq(platform.AbiArm64, 24, 27))
	require.NoError(t, err)
	assert.Equal(t, "android.arm64-v8a.ndk21", lib.DirectoryName())
}

func TestResolveAmbiguousVariantsIsFatal(t *testing.T) {
	root := t.TempDir()
	dir := writePackage(t, root, "curl",
		`{"name": "curl", "schema_version": 2, "dependencies": []}`)
	m := writeModule(t, dir, "curl", `{"export_libraries": []}`)
	writeVariant(t, m, "android.arm64-v8a.a",
		`{"abi": "arm64-v8a", "api": 21, "ndk": 21, "stl": "c++_shared", "static": false}`, "libcurl.so")
	writeVariant(t, m, "android.arm64-v8a.b",
		`{"abi": "arm64-v8a", "api": 21, "ndk": 21, "stl": "c++_shared", "static": false}`, "libcurl.so")

	p, err := ReadPackage(dir)
	require.NoError(t, err)
	curl, _ := p.Module("curl")

	_, err = curl.Resolve(androidReq(platform.AbiArm64, 24, 21))
	require.ErrorContains(t, err, "unable to distinguish between multiple libraries")
}

func TestResolveHeaderOnlyModule(t *testing.T) {
	dir := writeOpenssl(t, t.TempDir())
	p, err := ReadPackage(dir)
	require.NoError(t, err)
	crypto, _ := p.Module("crypto")

	_, err = crypto.Resolve(androidReq(platform.AbiArm64, 24, 21))
	assert.ErrorContains(t, err, "cannot resolve header-only module //openssl/crypto")
}

func TestExportedLibraries(t *testing.T) {
	dir := writePackage(t, t.TempDir(), "curl",
		`{"name": "curl", "schema_version": 2, "dependencies": ["openssl"]}`)
	writeModule(t, dir, "curl",
		`{"export_libraries": ["//openssl:ssl"], "android": {"export_libraries": ["-lz"]}}`)

	p, err := ReadPackage(dir)
	require.NoError(t, err)
	curl, _ := p.Module("curl")

	refs := curl.ExportedLibraries(androidReq(platform.AbiArm64, 24, 21))
	assert.Equal(t, []libref.Reference{
		libref.External{Package: "openssl", Module: "ssl"},
		libref.Literal{Flag: "-lz"},
	}, refs)
}
