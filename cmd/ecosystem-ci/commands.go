// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	workDirFlag  string // Target repository checkout (install-plugins, install-artifact)
	commandFlag  string // Lint command line to extract config flags from
	cloneRoot    string // Directory checkouts are created under
	logLevelFlag string // Log verbosity (debug/info/warn/error)
	jsonLogsFlag bool   // Emit JSON logs instead of text

	rootCmd = &cobra.Command{
		Use:   "ecosystem-ci",
		Short: "Run oxlint against a matrix of real-world repositories",
		Long: `ecosystem-ci clones a suite of pinned repositories, installs the
third-party oxlint JS plugins their lint configs declare, drops a prebuilt
oxlint binary into each checkout, and runs the per-repository lint command.`,
		PersistentPreRunE: initLogging, // Defined in main.go
	}

	// --- Full pipeline ---
	runCmd = &cobra.Command{
		Use:   "run [suite.yaml]",
		Short: "Clone, install plugins, install the binary, and run every suite entry",
		Args:  cobra.ExactArgs(1),
		RunE:  runSuite, // Defined in cmd_run.go
	}

	// --- Individual stages ---
	cloneCmd = &cobra.Command{
		Use:   "clone [suite.yaml]",
		Short: "Shallow-clone every suite entry without running anything",
		Args:  cobra.ExactArgs(1),
		RunE:  runClone, // Defined in cmd_clone.go
	}
	installPluginsCmd = &cobra.Command{
		Use:   "install-plugins",
		Short: "Resolve and install the JS plugin packages one lint command needs",
		Args:  cobra.NoArgs,
		RunE:  runInstallPlugins, // Defined in cmd_install.go
	}
	installArtifactCmd = &cobra.Command{
		Use:   "install-artifact",
		Short: "Copy the prebuilt oxlint binary into a checkout's node_modules/.bin",
		Args:  cobra.NoArgs,
		RunE:  runInstallArtifact, // Defined in cmd_install.go
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "info",
		"Log verbosity: debug, info, warn, or error")
	rootCmd.PersistentFlags().BoolVar(&jsonLogsFlag, "json-logs", false,
		"Emit structured JSON logs")

	runCmd.Flags().StringVar(&cloneRoot, "root", "repos",
		"Directory checkouts are created under")
	cloneCmd.Flags().StringVar(&cloneRoot, "root", "repos",
		"Directory checkouts are created under")

	installPluginsCmd.Flags().StringVar(&workDirFlag, "dir", ".",
		"Target repository checkout")
	installPluginsCmd.Flags().StringVar(&commandFlag, "command", "",
		"Lint command line whose config flags name the plugins (defaults to $OXLINT_COMMAND)")

	installArtifactCmd.Flags().StringVar(&workDirFlag, "dir", ".",
		"Target repository checkout")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(cloneCmd)
	rootCmd.AddCommand(installPluginsCmd)
	rootCmd.AddCommand(installArtifactCmd)
}
