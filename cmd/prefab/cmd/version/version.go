// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"daml.com/x/prefab/pkg/buildversion"
	"github.com/spf13/cobra"
)

func Cmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the prefab version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Printf("prefab %s (build %s, %s)\n",
				buildversion.GetVersion(), buildversion.GetBuild(), buildversion.GetBuildDate())
			return nil
		},
	}
}
