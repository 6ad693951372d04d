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
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oxc-project/oxc-ecosystem-ci/pkg/installer"
	"github.com/oxc-project/oxc-ecosystem-ci/pkg/logging"
)

// appLog is the process-wide logger, configured in initLogging before any
// subcommand runs.
var appLog = logging.Default()

func main() {
	os.Exit(run())
}

// run executes the root command and maps the result to an exit status.
func run() int {
	err := rootCmd.Execute()
	defer appLog.Close()
	return exitStatus(err)
}

// exitStatus maps a command error to the process exit code.
//
// When a plugin install subprocess failed, its exit code is propagated so
// CI sees the same status npm produced; every other error exits 1.
func exitStatus(err error) int {
	if err == nil {
		return 0
	}
	var installErr *installer.InstallError
	if errors.As(err, &installErr) && installErr.ExitCode > 0 {
		return installErr.ExitCode
	}
	return 1
}

// initLogging builds the process logger from the persistent flags.
func initLogging(cmd *cobra.Command, args []string) error {
	level, err := parseLevel(logLevelFlag)
	if err != nil {
		return err
	}
	appLog = logging.New(logging.Config{
		Level:   level,
		Service: "ecosystem-ci",
		JSON:    jsonLogsFlag,
	})
	return nil
}

// parseLevel maps a flag value to a logging level.
func parseLevel(s string) (logging.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return logging.LevelDebug, nil
	case "info", "":
		return logging.LevelInfo, nil
	case "warn", "warning":
		return logging.LevelWarn, nil
	case "error":
		return logging.LevelError, nil
	default:
		return logging.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
