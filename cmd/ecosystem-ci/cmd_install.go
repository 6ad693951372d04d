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
	"os"

	"github.com/spf13/cobra"

	"github.com/oxc-project/oxc-ecosystem-ci/pkg/artifact"
	"github.com/oxc-project/oxc-ecosystem-ci/pkg/console"
	"github.com/oxc-project/oxc-ecosystem-ci/pkg/installer"
	"github.com/oxc-project/oxc-ecosystem-ci/pkg/specifier"
)

// commandEnvVar is the environment fallback for --command. It is read
// only here; everything below the CLI takes the command as an explicit
// argument.
const commandEnvVar = "OXLINT_COMMAND"

// runInstallPlugins resolves the plugin packages one lint command needs
// and installs them into the target checkout.
func runInstallPlugins(cmd *cobra.Command, args []string) error {
	command := commandFlag
	if command == "" {
		command = os.Getenv(commandEnvVar)
	}

	raw := specifier.Collect(command, workDirFlag, appLog).Sorted()
	plan := specifier.FilterInstallable(raw, appLog)

	inst := installer.New(installer.WithLogger(appLog))
	if err := inst.Install(cmd.Context(), plan, workDirFlag); err != nil {
		return err
	}
	if len(plan) > 0 {
		console.Success("installed %d plugin packages into %s", len(plan), workDirFlag)
	}
	return nil
}

// runInstallArtifact copies the prebuilt binary into the target checkout.
func runInstallArtifact(cmd *cobra.Command, args []string) error {
	installed, err := artifact.Install(workDirFlag, appLog)
	if err != nil {
		return err
	}
	if !installed {
		console.Warn("no prebuilt %s binary found near %s", artifact.BinaryName, workDirFlag)
		return nil
	}
	console.Success("%s installed into %s", artifact.BinaryName, workDirFlag)
	return nil
}
