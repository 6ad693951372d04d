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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oxc-project/oxc-ecosystem-ci/pkg/console"
	"github.com/oxc-project/oxc-ecosystem-ci/pkg/matrix"
)

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

// runSuite executes the full pipeline for every entry in the suite file.
func runSuite(cmd *cobra.Command, args []string) error {
	suite, err := matrix.Load(args[0])
	if err != nil {
		return err
	}

	runner := matrix.NewRunner(cloneRoot, matrix.WithLogger(appLog))
	results, err := runner.Run(cmd.Context(), suite)

	passed, skipped, failed := 0, 0, 0
	for _, res := range results {
		switch {
		case res.Skipped:
			skipped++
		case res.Err != nil:
			failed++
		default:
			passed++
		}
	}
	console.Heading(fmt.Sprintf("%d passed, %d skipped, %d failed", passed, skipped, failed))

	return err
}
