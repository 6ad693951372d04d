// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package validation provides input validation for security-critical operations.
//
// This package validates strings that originate in semi-trusted cloned
// repositories before they are handed to subprocesses. The install tool can
// trigger arbitrary network fetches for whatever names it is given, so the
// only things allowed through are plugin-shaped npm package names.
//
// This is the last check before the installer spawns; the specifier filter
// performs the same check earlier with an independently-written pattern
// (defense in depth).
package validation

import (
	"fmt"
	"regexp"
)

// AuxiliaryPackage is the runtime-support package required by plugins that
// are referenced by a local relative path inside the target repository.
// It is the only non-plugin-shaped name the allowlist accepts.
const AuxiliaryPackage = "@eslint/plugin-kit"

// packageNamePattern matches installable plugin package names.
//
// Accepted shapes:
//   - eslint-plugin-<name>            (name: word chars and dashes)
//   - @<scope>/eslint-plugin          (scope: word chars and dashes)
//   - @<scope>/eslint-plugin-<name>
//
// Deliberately NOT accepted: filesystem paths, names with whitespace,
// version suffixes, or any package that is not plugin-shaped.
var packageNamePattern = regexp.MustCompile(`^(eslint-plugin-[\w-]+|@[\w-]+/eslint-plugin(-[\w-]+)?)$`)

// ValidatePackageName validates a single package name against the allowlist.
//
// Returns an error if the name is empty or does not match any accepted
// shape.
//
// Example:
//
//	if err := validation.ValidatePackageName(name); err != nil {
//	    return fmt.Errorf("refusing to install: %w", err)
//	}
//	// Safe to pass to the install tool
func ValidatePackageName(name string) error {
	if name == "" {
		return fmt.Errorf("package name cannot be empty")
	}
	if name == AuxiliaryPackage {
		return nil
	}
	if !packageNamePattern.MatchString(name) {
		return fmt.Errorf("invalid plugin package name: %q (must be eslint-plugin-<name> or @<scope>/eslint-plugin[-<name>])", name)
	}
	return nil
}

// ValidatePackageNames validates a batch of package names.
//
// Rejects the entire batch if any name fails, and the returned error lists
// every offending name. A specifier reaching this stage without matching
// the allowlist means an earlier filter was bypassed, so nothing from the
// batch may be installed.
func ValidatePackageNames(names []string) error {
	var invalid []string
	for _, n := range names {
		if err := ValidatePackageName(n); err != nil {
			invalid = append(invalid, n)
		}
	}

	if len(invalid) > 0 {
		return fmt.Errorf("invalid plugin package names: %v", invalid)
	}
	return nil
}
