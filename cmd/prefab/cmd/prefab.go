// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"daml.com/x/prefab/cmd/prefab/cmd/modules"
	"daml.com/x/prefab/cmd/prefab/cmd/resolve"
	"daml.com/x/prefab/cmd/prefab/cmd/version"
	"daml.com/x/prefab/pkg/buildsystems"
	"daml.com/x/prefab/pkg/config"
	"daml.com/x/prefab/pkg/logging"
	"daml.com/x/prefab/pkg/platform"
	"daml.com/x/prefab/pkg/prebuilt"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	_ "daml.com/x/prefab/pkg/buildsystems/cmake"
	_ "daml.com/x/prefab/pkg/buildsystems/ndkbuild"
)

const PrefabName = "prefab"

func RootCmd() (*cobra.Command, error) {
	if err := logging.InitLogging(); err != nil {
		return nil, err
	}

	cfg := &config.Config{}

	cmd := &cobra.Command{
		Use:   PrefabName + " [flags] <package path>...",
		Short: "generate build system integrations for prebuilt library packages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkgs, err := prebuilt.ReadPackages(args)
			if err != nil {
				return err
			}
			req, err := cfg.Requirement()
			if err != nil {
				return err
			}
			generator, err := buildsystems.New(cfg.BuildSystem)
			if err != nil {
				return err
			}
			if err := generator.Generate(pkgs, req, cfg.OutputDir); err != nil {
				return err
			}
			cmd.Printf("generated %s integration in %s\n", generator.Name(), color.GreenString(cfg.OutputDir))
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfg.BuildSystem, "build-system", "cmake", "build system to generate integration files for")
	flags.StringVarP(&cfg.OutputDir, "output", "o", "prefab-output", "directory to write integration files to")
	flags.StringVar(&cfg.Platform, "platform", config.AndroidPlatform, "target platform")
	flags.StringVar(&cfg.Abi, "abi", string(platform.AbiArm64), "target ABI")
	flags.IntVar(&cfg.OsVersion, "os-version", 21, "target minimum OS version (Android API level)")
	flags.StringVar(&cfg.Stl, "stl", string(platform.StlCxxShared), "C++ STL the consumer links against")
	flags.IntVar(&cfg.NdkMajorVersion, "ndk-version", 27, "major version of the NDK in use")

	cmd.AddCommand(
		resolve.Cmd(cfg),
		modules.Cmd(cfg),
		version.Cmd(),
	)

	return cmd, nil
}
