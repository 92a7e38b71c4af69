// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package modules

import (
	"strconv"

	"daml.com/x/prefab/pkg/config"
	"daml.com/x/prefab/pkg/platform"
	"daml.com/x/prefab/pkg/prebuilt"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func Cmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "modules <package path>...",
		Short: "list every module and prebuilt variant in the given packages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkgs, err := prebuilt.ReadPackages(args)
			if err != nil {
				return err
			}
			cmd.Println(modulesTable(pkgs))
			return nil
		},
	}
}

func modulesTable(pkgs []*prebuilt.Package) string {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		Headers("PACKAGE", "MODULE", "VARIANT", "API", "NDK", "STL")

	headerOnly := lipgloss.NewStyle().Faint(true).Italic(true)

	for _, p := range pkgs {
		for _, m := range p.Modules {
			if m.IsHeaderOnly() {
				t.Row(p.Name, m.Name, headerOnly.Render("header-only"), "", "", "")
				continue
			}
			for _, lib := range m.Libraries {
				android, ok := lib.Platform().(*platform.Android)
				if !ok {
					t.Row(p.Name, m.Name, lib.DirectoryName(), "", "", "")
					continue
				}
				t.Row(
					p.Name,
					m.Name,
					lib.DirectoryName(),
					strconv.Itoa(android.OsVersion),
					"r"+strconv.Itoa(android.NdkMajorVersion),
					string(android.Stl),
				)
			}
		}
	}

	return t.String()
}
