// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"context"
	"log/slog"

	"daml.com/x/prefab/pkg/config"
	"daml.com/x/prefab/pkg/prebuilt"
	"daml.com/x/prefab/pkg/resolution"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

func getResolutionOutput(ctx context.Context, cfg *config.Config, packagePaths []string) (string, error) {
	pkgs, err := prebuilt.ReadPackages(packagePaths)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load packages", "error", err)
		return "", err
	}

	req, err := cfg.Requirement()
	if err != nil {
		slog.ErrorContext(ctx, "failed to build target requirement", "error", err)
		return "", err
	}

	bytes, err := yaml.Marshal(resolution.Build(pkgs, req))
	if err != nil {
		slog.ErrorContext(ctx, "failed to marshal resolution report", "error", err)
		return "", err
	}

	return string(bytes), nil
}

func Cmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:    "resolve <package path>...",
		Long:   "resolves every module against the target and prints the report",
		Hidden: true,
		Args:   cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := getResolutionOutput(cmd.Context(), cfg, args)
			if err != nil {
				return err
			}
			cmd.Println(output)
			return nil
		},
	}
}
