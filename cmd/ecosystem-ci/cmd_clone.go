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

	"github.com/oxc-project/oxc-ecosystem-ci/pkg/console"
	"github.com/oxc-project/oxc-ecosystem-ci/pkg/matrix"
)

// runClone shallow-clones every suite entry without running anything.
func runClone(cmd *cobra.Command, args []string) error {
	suite, err := matrix.Load(args[0])
	if err != nil {
		return err
	}

	cloner := matrix.NewCloner(matrix.WithCloneLogger(appLog))
	if err := cloner.CloneAll(cmd.Context(), suite, cloneRoot); err != nil {
		return err
	}
	console.Success("cloned %d repositories into %s", len(suite.Entries), cloneRoot)
	return nil
}
