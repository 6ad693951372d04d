// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package specifier

import (
	"os"
	"path/filepath"

	"github.com/oxc-project/oxc-ecosystem-ci/pkg/logging"
	"github.com/oxc-project/oxc-ecosystem-ci/pkg/validation"
)

// DefaultConfigNames lists conventional lint config filenames, probed in
// order when a command line carries no -c/--config flag. The first name
// that exists in the working directory is used.
var DefaultConfigNames = []string{".oxlintrc.json", "oxlint.json"}

// Collect gathers every plugin specifier referenced by one matrix entry
// invocation.
//
// Description:
//
//	Scans the command string for config-file flags, parses each referenced
//	config, and merges the declared specifiers into a Set. When no flag is
//	present, falls back to DefaultConfigNames in the working directory.
//	If any collected specifier is a relative path (a local in-repository
//	plugin), the auxiliary runtime-support package is added so the local
//	plugin can actually load.
//
// Inputs:
//
//	command - Raw shell command string for the entry (threaded explicitly
//	          from the CLI; this function never reads the environment)
//	workDir - Directory config paths are resolved against
//	log - Destination for parse warnings and collection decisions
//
// Outputs:
//
//	*Set - The collected specifiers; empty for skipped entries
func Collect(command, workDir string, log *logging.Logger) *Set {
	set := NewSet()

	if IsSkipped(command) {
		log.Info("entry marked skip, not collecting plugins", "command", command)
		return set
	}

	paths := ConfigPaths(command)
	for _, path := range paths {
		resolved := path
		if !filepath.IsAbs(resolved) {
			resolved = filepath.Join(workDir, resolved)
		}
		set.AddAll(ParseConfig(resolved, log))
	}

	// Fallback: applies whenever flag processing yielded nothing, whether
	// because no flag was present or because the flagged configs were
	// missing or declared no plugins; most projects rely on the
	// conventional filename.
	if set.Len() == 0 {
		for _, name := range DefaultConfigNames {
			candidate := filepath.Join(workDir, name)
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			log.Debug("using default lint config", "path", candidate)
			set.AddAll(ParseConfig(candidate, log))
			break
		}
	}

	// A relative specifier is a local plugin; it is never installable
	// itself but needs the runtime-support package at load time.
	for _, spec := range set.Sorted() {
		if isLocalPath(spec) {
			log.Info("local plugin detected, adding runtime support package",
				"specifier", spec,
				"package", validation.AuxiliaryPackage)
			set.Add(validation.AuxiliaryPackage)
			break
		}
	}

	return set
}
