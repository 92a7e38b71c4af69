// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package platform

import (
	"fmt"

	"github.com/samber/lo"
)

// Abi identifies an Android instruction set. The string value is the
// canonical directory-name token used under a module's libs/ directory.
type Abi string

const (
	AbiArm32  Abi = "armeabi-v7a"
	AbiArm64  Abi = "arm64-v8a"
	AbiX86    Abi = "x86"
	AbiX86_64 Abi = "x86_64"
)

var allAbis = []Abi{AbiArm32, AbiArm64, AbiX86, AbiX86_64}

func ParseAbi(name string) (Abi, error) {
	abi := Abi(name)
	if !lo.Contains(allAbis, abi) {
		return "", fmt.Errorf("unknown ABI %q. Must be one of %q", name, allAbis)
	}
	return abi, nil
}

// Bitness is the pointer width of the ABI in bits.
func (a Abi) Bitness() int {
	switch a {
	case AbiArm64, AbiX86_64:
		return 64
	default:
		return 32
	}
}

// Triple is the target triple matching the ABI.
func (a Abi) Triple() string {
	switch a {
	case AbiArm32:
		return "arm-linux-androideabi"
	case AbiArm64:
		return "aarch64-linux-android"
	case AbiX86:
		return "i686-linux-android"
	case AbiX86_64:
		return "x86_64-linux-android"
	}
	return ""
}

// Stl identifies a C++ runtime choice as spelled in abi.json and on the
// command line.
type Stl string

const (
	StlCxxShared    Stl = "c++_shared"
	StlCxxStatic    Stl = "c++_static"
	StlGnustlShared Stl = "gnustl_shared"
	StlGnustlStatic Stl = "gnustl_static"
	StlNone         Stl = "none"
	StlSystem       Stl = "system"
)

var allStls = []Stl{
	StlCxxShared, StlCxxStatic, StlGnustlShared, StlGnustlStatic, StlNone, StlSystem,
}

func ParseStl(name string) (Stl, error) {
	stl := Stl(name)
	if !lo.Contains(allStls, stl) {
		return "", fmt.Errorf("unknown STL %q. Must be one of %q", name, allStls)
	}
	return stl, nil
}

// StlFamily groups runtimes that share linking constraints. Two shared
// runtimes from different families can never be loaded into one process.
type StlFamily string

const (
	StlFamilyCxx    StlFamily = "libc++"
	StlFamilyGnustl StlFamily = "libstdc++"
	StlFamilyNone   StlFamily = "none"
)

func (s Stl) Family() StlFamily {
	switch s {
	case StlCxxShared, StlCxxStatic:
		return StlFamilyCxx
	case StlGnustlShared, StlGnustlStatic:
		return StlFamilyGnustl
	default:
		return StlFamilyNone
	}
}

func (s Stl) IsShared() bool {
	return s == StlCxxShared || s == StlGnustlShared
}

// Android describes one Android target configuration: either what the user is
// building for, or what a library variant was built for. IsStatic describes
// the artifact kind and is only meaningful on the library side.
type Android struct {
	Abi             Abi
	OsVersion       int
	Stl             Stl
	NdkMajorVersion int
	IsStatic        bool
}

// NewAndroid builds an Android target description. 64-bit ABIs first shipped
// in API 21, so osVersion is raised to at least 21 for those regardless of
// what was requested or declared.
func NewAndroid(abi Abi, osVersion int, stl Stl, ndkMajorVersion int, isStatic bool) *Android {
	if abi.Bitness() == 64 && osVersion < 21 {
		osVersion = 21
	}
	return &Android{
		Abi:             abi,
		OsVersion:       osVersion,
		Stl:             stl,
		NdkMajorVersion: ndkMajorVersion,
		IsStatic:        isStatic,
	}
}

func (a *Android) Name() string {
	return "android"
}

func (a *Android) String() string {
	return fmt.Sprintf("android/%s api=%d ndk=r%d stl=%s", a.Abi, a.OsVersion, a.NdkMajorVersion, a.Stl)
}

func (a *Android) CheckIfUsable(lib Library) (bool, string) {
	other, ok := lib.Platform().(*Android)
	if !ok {
		return false, "library is not an Android library"
	}

	if a.Abi != other.Abi {
		return false, fmt.Sprintf("user requested ABI %s but library is for %s", a.Abi, other.Abi)
	}

	if a.OsVersion < other.OsVersion {
		return false, fmt.Sprintf("user has minSdkVersion %d but library was built for %d", a.OsVersion, other.OsVersion)
	}

	return a.stlsAreCompatible(other)
}

// stlsAreCompatible applies the runtime rules. Static artifacts do not own a
// runtime choice (whoever links the final shared object or executable picks
// one), so they are far more permissive than shared artifacts.
func (a *Android) stlsAreCompatible(lib *Android) (bool, string) {
	if lib.Stl.Family() == StlFamilyNone {
		return true, ""
	}

	if a.Stl.Family() != lib.Stl.Family() {
		return false, fmt.Sprintf("user requested %s but library requires %s", a.Stl.Family(), lib.Stl.Family())
	}

	if lib.IsStatic {
		return true, ""
	}

	if !lib.Stl.IsShared() {
		return false, "shared libraries with statically linked STLs are not usable by any consumer"
	}

	if !a.Stl.IsShared() {
		return false, "user requested a static STL but library requires a shared STL"
	}

	return true, ""
}

func (a *Android) FindBestMatch(libs []Library) (Library, error) {
	if len(libs) == 0 {
		return nil, fmt.Errorf("no libraries provided")
	}

	candidates := make([]*Android, len(libs))
	for i, lib := range libs {
		candidate, ok := lib.Platform().(*Android)
		if !ok {
			return nil, fmt.Errorf("library %s is not an Android library", lib.Path())
		}
		candidates[i] = candidate
	}

	// Prefer libraries built against the newest usable OS baseline. Anything
	// newer than the requirement was already rejected by CheckIfUsable.
	bestOsVersion := candidates[0].OsVersion
	for _, c := range candidates[1:] {
		bestOsVersion = max(bestOsVersion, c.OsVersion)
	}
	survivors := lo.Filter(libs, func(lib Library, i int) bool {
		return candidates[i].OsVersion == bestOsVersion
	})
	if len(survivors) == 1 {
		return survivors[0], nil
	}

	// Use the closest NDK the module shipped a variant for rather than
	// failing when the user's NDK is newer or older than all of them.
	ndkVersions := lo.Map(survivors, func(lib Library, _ int) int {
		return lib.Platform().(*Android).NdkMajorVersion
	})
	clamped := clamp(a.NdkMajorVersion, lo.Min(ndkVersions), lo.Max(ndkVersions))

	matches := lo.Filter(survivors, func(lib Library, _ int) bool {
		return lib.Platform().(*Android).NdkMajorVersion == clamped
	})

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf(
			"no library matches NDK r%d even though variants for NDK r%d through r%d exist; "+
				"the module's variant coverage has a gap", clamped, lo.Min(ndkVersions), lo.Max(ndkVersions))
	case 1:
		return matches[0], nil
	default:
		paths := lo.Map(matches, func(lib Library, _ int) string { return lib.Path() })
		return nil, fmt.Errorf("unable to distinguish between multiple libraries: %q", paths)
	}
}

func clamp(v, floor, ceil int) int {
	return min(max(v, floor), ceil)
}
